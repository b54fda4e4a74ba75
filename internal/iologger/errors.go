package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnbryo/pkg/errcode"
)

// OpenLogFileError is returned when log.destination is "file" and the log
// cannot be opened. Other destinations do not need a file.
func OpenLogFileError(path string, err error) error {
	msg := "Cannot open log <em>%s</em>, " +
		"set <em>log.destination</em> to stderr to run without it"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.OpenLogFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open log %s: %w", fn, path, err),
	}
}
