package ioharvest

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnbryo/pkg/errcode"
)

func CancelledError(processed, total int, err error) error {
	msg := "Harvest interrupted after <em>%d</em> of <em>%d</em> taxa, " +
		"results are saved"
	vars := []any{processed, total}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.HarvestCancelledError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: harvest cancelled: %w", fn, err),
	}
}
