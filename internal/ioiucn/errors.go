package ioiucn

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnbryo/pkg/errcode"
)

func TokenMissingError() error {
	msg := "IUCN token is not set, use <em>GNBRYO_IUCN_TOKEN</em>, " +
		"<em>IUCN_API_KEY</em> or <em>iucn.token</em> in config.yaml"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.IUCNTokenMissingError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: IUCN token is empty", fn),
	}
}

func RequestError(genus, species string, err error) error {
	msg := "Cannot get IUCN assessment for <em>%s %s</em>"
	vars := []any{genus, species}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.IUCNRequestError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: assessment of %s %s: %w",
			fn, genus, species, err),
	}
}

func DecodeError(genus, species string, err error) error {
	msg := "Cannot decode IUCN assessment for <em>%s %s</em>"
	vars := []any{genus, species}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.IUCNDecodeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: decode assessment of %s %s: %w",
			fn, genus, species, err),
	}
}
