package iogbif

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnbryo/pkg/errcode"
)

func RequestError(url string, err error) error {
	msg := "Cannot get data from GBIF <em>%s</em>"
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GBIFRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: request %s: %w", fn, url, err),
	}
}

func TaxonNotFoundError(id int) error {
	msg := "Taxon <em>%d</em> is not found in GBIF"
	vars := []any{id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GBIFTaxonNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: taxon %d not found", fn, id),
	}
}

func DecodeError(url string, err error) error {
	msg := "Cannot decode GBIF response from <em>%s</em>"
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GBIFDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: decode %s: %w", fn, url, err),
	}
}
