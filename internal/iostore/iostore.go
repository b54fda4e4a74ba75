// Package iostore keeps harvest state in two JSON documents of the data
// directory: species.json with the flat list of records and
// hierarchy.json with the class/order/family/genus tree.
package iostore

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gn"
	"github.com/gnames/gnbryo/pkg/config"
	"github.com/gnames/gnbryo/pkg/species"
	"github.com/gnames/gnbryo/pkg/store"
	"github.com/gnames/gnfmt"
)

type jsonStore struct {
	dir string
	st  *store.State
	enc gnfmt.GNjson
}

// New creates a Store that persists its state in dir. The state is empty
// until Load is called.
func New(dir string) store.Store {
	return &jsonStore{
		dir: dir,
		st:  store.NewState(),
		enc: gnfmt.GNjson{Pretty: true},
	}
}

func (s *jsonStore) speciesPath() string {
	return filepath.Join(s.dir, config.SpeciesFile)
}

func (s *jsonStore) hierarchyPath() string {
	return filepath.Join(s.dir, config.HierarchyFile)
}

// Load reads both documents. A missing document is the normal state of
// the first run, a corrupt one is reported as a warning. Neither stops
// the harvest.
func (s *jsonStore) Load() error {
	var recs []species.Record
	if err := s.read(s.speciesPath(), &recs); err != nil {
		warn(err)
		recs = nil
	}

	hierarchy := store.NewNode()
	if err := s.read(s.hierarchyPath(), hierarchy); err != nil {
		warn(err)
		hierarchy = nil
	}

	s.st = store.FromData(recs, hierarchy)
	slog.Info("Loaded stored state",
		"dir", s.dir, "species", s.st.Len())
	return nil
}

func (s *jsonStore) read(path string, out any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("No stored data", "path", path)
		return nil
	}
	if err != nil {
		return LoadError(path, err)
	}

	if err = s.enc.Decode(data, out); err != nil {
		return LoadError(path, err)
	}
	return nil
}

func warn(err error) {
	slog.Warn("Stored data ignored", "error", err)
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		gn.Warn(gnErr.Msg, gnErr.Vars...)
	}
}

func (s *jsonStore) Merge(rec species.Record) {
	s.st.Merge(rec)
}

func (s *jsonStore) Replace(rec species.Record) bool {
	return s.st.Replace(rec)
}

func (s *jsonStore) Has(taxonID int) bool {
	return s.st.Has(taxonID)
}

func (s *jsonStore) State() *store.State {
	return s.st
}

// Flush writes hierarchy.json and then species.json. Each file is replaced
// only after its new version is completely on disk, but the pair is not
// replaced at once. After a failed species write the hierarchy on disk
// still covers every record of species.json.
func (s *jsonStore) Flush() error {
	docs := []struct {
		path string
		val  any
	}{
		{s.hierarchyPath(), s.st.Hierarchy},
		{s.speciesPath(), s.st.Species},
	}
	for _, v := range docs {
		data, err := s.enc.Encode(v.val)
		if err != nil {
			return FlushError(v.path, err)
		}
		if err = writeAtomic(v.path, data); err != nil {
			return FlushError(v.path, err)
		}
	}
	slog.Debug("State flushed", "dir", s.dir, "species", s.st.Len())
	return nil
}

// writeAtomic writes data to a temporary file in the directory of path,
// syncs it and renames it to path.
func writeAtomic(path string, data []byte) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if err = f.Chmod(0644); err != nil {
		f.Close()
		return err
	}
	if _, err = f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
