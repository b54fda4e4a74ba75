package ioextract

import (
	"bufio"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// ReadIDs reads taxon IDs, one per line. Empty lines and lines starting
// with '#' are ignored, other non-integer lines are logged and counted as
// bad.
func ReadIDs(path string) (ids []int, bad int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, IDsFileError(path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	var lineNum int
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		id, err := strconv.Atoi(line)
		if err != nil || id <= 0 {
			bad++
			slog.Warn("Ignoring bad taxon ID",
				"path", path, "line", lineNum, "value", line)
			continue
		}
		ids = append(ids, id)
	}
	if err = sc.Err(); err != nil {
		return nil, bad, IDsFileError(path, err)
	}
	if len(ids) == 0 {
		return nil, bad, NoIDsError(path)
	}
	return ids, bad, nil
}
