package ioextract

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnbryo/pkg/errcode"
)

func DownloadError(url string, err error) error {
	msg := "Cannot download <em>%s</em>"
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractDownloadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot download %s: %w", fn, url, err),
	}
}

func UnzipError(path string, err error) error {
	msg := "Cannot extract %s from <em>%s</em>"
	vars := []any{TaxonFile, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractUnzipError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot unzip %s: %w", fn, path, err),
	}
}

func ReadError(path string, err error) error {
	msg := "Cannot read taxa from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
	}
}

func WriteError(path string, err error) error {
	msg := "Cannot write <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn, path, err),
	}
}

func NoTaxaError(phylum string) error {
	msg := "No taxa of phylum <em>%s</em> found"
	vars := []any{phylum}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractNoTaxaError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no taxa for phylum %s", fn, phylum),
	}
}

func IDsFileError(path string, err error) error {
	msg := "Cannot read taxon IDs from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.HarvestIDsFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read IDs %s: %w", fn, path, err),
	}
}

func NoIDsError(path string) error {
	msg := "No taxon IDs in <em>%s</em>, run <em>gnbryo extract</em> first"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.HarvestNoIDsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no IDs in %s", fn, path),
	}
}
