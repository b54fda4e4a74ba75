package iostore

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnbryo/pkg/errcode"
)

func LoadError(path string, err error) error {
	msg := "Cannot load <em>%s</em>, starting with empty data"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot load %s: %w", fn, path, err),
	}
}

func FlushError(path string, err error) error {
	msg := "Cannot save <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreFlushError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot flush %s: %w", fn, path, err),
	}
}

func ExportError(path string, err error) error {
	msg := "Cannot export species to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreExportError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot export to %s: %w", fn, path, err),
	}
}
