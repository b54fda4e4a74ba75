package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnbryo/pkg/errcode"
)

func CreateDirError(dir string, err error) error {
	msg := "Cannot create directory <em>%s</em>"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot create %s: %w", fn, dir, err),
	}
}

// DataDirError is returned when the directory for species.json and
// hierarchy.json is unusable.
func DataDirError(dir string, err error) error {
	msg := "Data directory <em>%s</em> is not usable, " +
		"check <em>data_dir</em> setting"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DataDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: data dir %s: %w", fn, dir, err),
	}
}

func WriteConfigError(path string, err error) error {
	msg := "Cannot write default configuration to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WriteConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write config %s: %w", fn, path, err),
	}
}

// ReadConfigError is returned when config.yaml cannot be read or does
// not fit the configuration fields.
func ReadConfigError(path string, err error) error {
	msg := "Cannot read configuration <em>%s</em>, " +
		"fix it or delete it to restore defaults"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read config %s: %w", fn, path, err),
	}
}
