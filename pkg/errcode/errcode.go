package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	DataDirError
	WriteConfigError
	ReadConfigError

	// Logging errors
	OpenLogFileError

	// Configuration errors
	IUCNTokenMissingError

	// Upstream service errors
	GBIFRequestError
	GBIFTaxonNotFoundError
	GBIFDecodeError
	IUCNRequestError
	IUCNDecodeError

	// Store errors
	StoreLoadError
	StoreFlushError
	StoreExportError

	// Harvest errors
	HarvestIDsFileError
	HarvestNoIDsError
	HarvestCancelledError

	// Extract errors
	ExtractDownloadError
	ExtractUnzipError
	ExtractReadError
	ExtractWriteError
	ExtractNoTaxaError
)
