// Package iotesting provides shared utilities for tests that need GBIF
// and IUCN services or a configuration isolated from the user's home.
package iotesting

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/gnames/gnbryo/pkg/config"
)

// GetTestConfig returns configuration with home and data directories in
// a temporary directory. Conservation enrichment is off unless opts turn
// it on.
func GetTestConfig(t *testing.T, opts ...config.Option) *config.Config {
	t.Helper()

	home := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(home),
		config.OptDataDir(home),
		config.OptHarvestWithConservation(false),
	})
	cfg.Update(opts)
	return cfg
}

// WriteIDs writes the taxon IDs file used by harvest.
func WriteIDs(t *testing.T, cfg *config.Config, ids ...int) {
	t.Helper()

	var sb strings.Builder
	for _, v := range ids {
		sb.WriteString(strconv.Itoa(v))
		sb.WriteByte('\n')
	}
	err := os.WriteFile(cfg.IDsPath(), []byte(sb.String()), 0644)
	if err != nil {
		t.Fatalf("Failed to write taxon IDs: %v", err)
	}
}

// GBIF is a fake of GBIF API with taxa as JSON documents and countries
// of their occurrences.
type GBIF struct {
	Taxa        map[int]string
	Occurrences map[int][]string
}

// Start runs the fake GBIF server until the test ends.
func (g GBIF) Start(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/species/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		data, ok := g.Taxa[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, data)
	})
	mux.HandleFunc("/occurrence/search", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.URL.Query().Get("taxonKey"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		countries := g.Occurrences[id]
		if limit > 0 && len(countries) > limit {
			countries = countries[:limit]
		}
		res := make([]string, len(countries))
		for i, v := range countries {
			res[i] = fmt.Sprintf(`{"country":%q}`, v)
		}
		fmt.Fprintf(w, `{"results":[%s]}`, strings.Join(res, ","))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// IUCN is a fake of IUCN Red List API v4. Reports are JSON documents
// keyed by "Genus species".
type IUCN struct {
	Token   string
	Reports map[string]string
}

// Start runs the fake IUCN server until the test ends.
func (iu IUCN) Start(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/taxa/scientific_name", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != iu.Token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		q := r.URL.Query()
		data, ok := iu.Reports[q.Get("genus_name")+" "+q.Get("species_name")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, data)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}
