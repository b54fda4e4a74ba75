package ioextract

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

// taxaColumns are the backbone fields copied to taxa.csv, taxonID first.
var taxaColumns = []string{
	"taxonID", "scientificName", "kingdom", "phylum", "class", "order",
	"family", "genus",
}

type taxonRow struct {
	id        int
	canonical string
	fields    []string
}

// extract reads the header of Taxon.tsv and then runs reader, filter and
// writer concurrently.
func (e *Extractor) extract(ctx context.Context, taxonPath string) (Result, error) {
	var res Result
	res.IDsPath, res.TaxaPath = e.outPaths()

	f, err := os.Open(taxonPath)
	if err != nil {
		return res, ReadError(taxonPath, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 1<<20), 16<<20)
	idx, err := readHeader(sc, taxonPath)
	if err != nil {
		return res, err
	}

	chLines := make(chan []string)
	chTaxa := make(chan taxonRow)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chLines)
		return readTaxa(gCtx, sc, taxonPath, chLines)
	})

	var rows, malformed int
	g.Go(func() error {
		defer close(chTaxa)
		var err error
		rows, malformed, err = e.filterTaxa(gCtx, idx, chLines, chTaxa)
		return err
	})

	var kept int
	g.Go(func() error {
		var err error
		kept, err = writeTaxa(res.IDsPath, res.TaxaPath, chTaxa)
		return err
	})

	if err = g.Wait(); err != nil {
		return res, err
	}
	res.Rows, res.Malformed, res.Kept = rows, malformed, kept
	return res, nil
}

// readHeader maps column names of Taxon.tsv to their positions.
func readHeader(sc *bufio.Scanner, path string) (map[string]int, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, ReadError(path, err)
		}
		return nil, ReadError(path, errors.New("empty file"))
	}

	res := make(map[string]int)
	for i, v := range strings.Split(sc.Text(), "\t") {
		res[strings.TrimSpace(v)] = i
	}
	for _, v := range taxaColumns {
		if _, ok := res[v]; !ok {
			return nil, ReadError(path, fmt.Errorf("no %s column", v))
		}
	}
	return res, nil
}

// readTaxa sends split lines of Taxon.tsv to ch.
func readTaxa(
	ctx context.Context,
	sc *bufio.Scanner,
	path string,
	ch chan<- []string,
) error {
	var count int
	for sc.Scan() {
		count++
		select {
		case ch <- strings.Split(sc.Text(), "\t"):
		case <-ctx.Done():
			return ctx.Err()
		}
		if count%1_000_000 == 0 {
			fmt.Fprintf(os.Stderr, "\r%s", strings.Repeat(" ", 40))
			fmt.Fprintf(os.Stderr, "\rRead %s taxa", humanize.Comma(int64(count)))
		}
	}
	if count >= 1_000_000 {
		fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", 40))
	}
	if err := sc.Err(); err != nil {
		return ReadError(path, err)
	}
	return nil
}

// filterTaxa keeps rows of the phylum. Short rows and rows without
// numeric taxonID are counted as malformed.
func (e *Extractor) filterTaxa(
	ctx context.Context,
	idx map[string]int,
	chIn <-chan []string,
	chOut chan<- taxonRow,
) (int, int, error) {
	var width int
	for _, v := range taxaColumns {
		width = max(width, idx[v]+1)
	}

	var rows, malformed int
	for line := range chIn {
		rows++
		if len(line) < width {
			malformed++
			continue
		}
		if line[idx["phylum"]] != e.phylum {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(line[idx["taxonID"]]))
		if err != nil {
			malformed++
			continue
		}

		row := taxonRow{id: id, fields: make([]string, len(taxaColumns))}
		for i, v := range taxaColumns {
			row.fields[i] = line[idx[v]]
		}
		if e.parser != nil {
			row.canonical = e.parser.Canonical(row.fields[1])
		}

		select {
		case chOut <- row:
		case <-ctx.Done():
			return rows, malformed, ctx.Err()
		}
	}
	return rows, malformed, nil
}

// writeTaxa writes IDs and taxa.csv rows. It drains ch to the end.
func writeTaxa(idsPath, taxaPath string, ch <-chan taxonRow) (int, error) {
	idsFile, err := os.Create(idsPath)
	if err != nil {
		return 0, WriteError(idsPath, err)
	}
	defer idsFile.Close()

	taxaFile, err := os.Create(taxaPath)
	if err != nil {
		return 0, WriteError(taxaPath, err)
	}
	defer taxaFile.Close()

	ids := bufio.NewWriter(idsFile)
	taxa := csv.NewWriter(taxaFile)

	header := make([]string, 0, len(taxaColumns)+1)
	header = append(header, taxaColumns[:2]...)
	header = append(header, "canonicalName")
	header = append(header, taxaColumns[2:]...)
	if err = taxa.Write(header); err != nil {
		return 0, WriteError(taxaPath, err)
	}

	var count int
	for row := range ch {
		count++
		fmt.Fprintln(ids, row.id)

		rec := make([]string, 0, len(header))
		rec = append(rec, row.fields[:2]...)
		rec = append(rec, row.canonical)
		rec = append(rec, row.fields[2:]...)
		if err = taxa.Write(rec); err != nil {
			return count, WriteError(taxaPath, err)
		}
	}

	if err = ids.Flush(); err != nil {
		return count, WriteError(idsPath, err)
	}
	taxa.Flush()
	if err = taxa.Error(); err != nil {
		return count, WriteError(taxaPath, err)
	}
	return count, nil
}
