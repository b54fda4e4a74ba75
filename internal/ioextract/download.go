package ioextract

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
)

// TaxonFile is the file of the backbone archive with all name usages.
const TaxonFile = "Taxon.tsv"

// BackboneFile is the local name of the downloaded backbone archive.
const BackboneFile = "backbone.zip"

// ensureTaxonFile returns the path to Taxon.tsv in dir. If the file is
// missing, the backbone archive is downloaded and Taxon.tsv is unpacked
// from it.
func (e *Extractor) ensureTaxonFile(ctx context.Context, dir string) (string, error) {
	taxonPath := filepath.Join(dir, TaxonFile)
	if _, err := os.Stat(taxonPath); err == nil {
		slog.Info("Using cached backbone taxa", "path", taxonPath)
		return taxonPath, nil
	}

	zipPath := filepath.Join(dir, BackboneFile)
	if _, err := os.Stat(zipPath); err != nil {
		gn.Info("Downloading GBIF backbone taxonomy...")
		if err = e.download(ctx, zipPath); err != nil {
			return "", err
		}
	}

	gn.Info("Extracting <em>%s</em>...", TaxonFile)
	if err := unzipTaxa(zipPath, taxonPath); err != nil {
		return "", err
	}
	return taxonPath, nil
}

func (e *Extractor) download(ctx context.Context, path string) error {
	url := e.backboneURL
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return DownloadError(url, err)
	}

	resp, err := e.http.Do(req)
	if err != nil {
		return DownloadError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return DownloadError(url, fmt.Errorf("status %d", resp.StatusCode))
	}

	tmp := path + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return DownloadError(url, err)
	}

	var body io.Reader = resp.Body
	if e.withBar {
		bar := pb.Full.Start64(resp.ContentLength)
		bar.Set(pb.Bytes, true)
		bar.Set("prefix", "backbone.zip ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
		body = bar.NewProxyReader(resp.Body)
	}

	n, err := io.Copy(f, body)
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return DownloadError(url, err)
	}
	if err = f.Close(); err != nil {
		os.Remove(tmp)
		return DownloadError(url, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return DownloadError(url, err)
	}

	slog.Info("Downloaded backbone", "path", path, "size", humanize.Bytes(uint64(n)))
	return nil
}

// unzipTaxa copies Taxon.tsv from the archive at zipPath to taxonPath.
func unzipTaxa(zipPath, taxonPath string) error {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return UnzipError(zipPath, err)
	}
	defer zr.Close()

	var zf *zip.File
	for _, v := range zr.File {
		if filepath.Base(v.Name) == TaxonFile {
			zf = v
			break
		}
	}
	if zf == nil {
		return UnzipError(zipPath, fmt.Errorf("%s not in archive", TaxonFile))
	}

	rc, err := zf.Open()
	if err != nil {
		return UnzipError(zipPath, err)
	}
	defer rc.Close()

	tmp := taxonPath + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return UnzipError(zipPath, err)
	}
	if _, err = io.Copy(out, rc); err != nil {
		out.Close()
		os.Remove(tmp)
		return UnzipError(zipPath, err)
	}
	if err = out.Close(); err != nil {
		os.Remove(tmp)
		return UnzipError(zipPath, err)
	}
	if err = os.Rename(tmp, taxonPath); err != nil {
		return UnzipError(zipPath, err)
	}
	return nil
}
