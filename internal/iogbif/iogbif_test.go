package iogbif

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnbryo/pkg/config"
	"github.com/gnames/gnbryo/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const taxonJSON = `{
  "key": 2673452,
  "taxonomicStatus": "ACCEPTED",
  "scientificName": "Polytrichum commune Hedw.",
  "genus": "Polytrichum",
  "species": "Polytrichum commune",
  "family": "Polytrichaceae",
  "order": "Polytrichales",
  "class": "Polytrichopsida",
  "vernacularName": "Common Haircap",
  "publishedIn": "Sp. Musc. Frond. 88. 1801"
}`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/species/2673452", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		fmt.Fprint(w, taxonJSON)
	})
	mux.HandleFunc("/species/500", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/species/600", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "{not json")
	})
	mux.HandleFunc("/occurrence/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2673452", r.URL.Query().Get("taxonKey"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		fmt.Fprint(w, `{"results":[{"country":"Norway"},{"country":"Canada"},{}]}`)
	})
	mux.HandleFunc("/species/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "35", q.Get("phylumKey"))
		assert.Equal(t, "SPECIES", q.Get("rank"))
		assert.Equal(t, "ACCEPTED", q.Get("status"))
		offset, _ := strconv.Atoi(q.Get("offset"))
		limit, _ := strconv.Atoi(q.Get("limit"))
		total := 1500
		end := min(offset+limit, total)
		fmt.Fprint(w, `{"results":[`)
		for i := offset; i < end; i++ {
			if i > offset {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"key":%d}`, i+1)
		}
		fmt.Fprintf(w, `],"endOfRecords":%t}`, end == total)
	})
	mux.HandleFunc("/species/match", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PHYLUM", r.URL.Query().Get("rank"))
		switch r.URL.Query().Get("name") {
		case "Bryophyta":
			fmt.Fprint(w, `{"usageKey":35,"rank":"PHYLUM","matchType":"EXACT"}`)
		default:
			fmt.Fprint(w, `{"matchType":"NONE"}`)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(srv *httptest.Server) *Client {
	return New(config.GBIFConfig{URL: srv.URL, Timeout: 5})
}

func TestTaxon(t *testing.T) {
	c := newClient(newServer(t))
	ctx := context.Background()

	tx, err := c.Taxon(ctx, 2673452)
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Equal(t, 2673452, tx.Key)
	assert.Equal(t, "ACCEPTED", tx.TaxonomicStatus)
	assert.Equal(t, "Polytrichum commune", tx.Species)
	assert.Equal(t, "Polytrichopsida", tx.Class)
	assert.Equal(t, 0, tx.AcceptedKey)

	tx, err = c.Taxon(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, tx, "404 means not found, not an error")
}

func TestTaxonErrors(t *testing.T) {
	c := newClient(newServer(t))
	ctx := context.Background()

	tests := []struct {
		msg  string
		id   int
		code gn.ErrorCode
	}{
		{"status", 500, errcode.GBIFRequestError},
		{"decode", 600, errcode.GBIFDecodeError},
	}
	for _, tt := range tests {
		_, err := c.Taxon(ctx, tt.id)
		require.Error(t, err, tt.msg)
		var gnErr *gn.Error
		require.ErrorAs(t, err, &gnErr, tt.msg)
		assert.Equal(t, tt.code, gnErr.Code, tt.msg)
	}
}

func TestTaxonCancelled(t *testing.T) {
	c := newClient(newServer(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Taxon(ctx, 2673452)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.GBIFRequestError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, context.Canceled)
}

func TestOccurrences(t *testing.T) {
	c := newClient(newServer(t))
	occs, err := c.Occurrences(context.Background(), 2673452, 5)
	require.NoError(t, err)
	require.Len(t, occs, 3)
	assert.Equal(t, "Norway", occs[0].Country)
	assert.Empty(t, occs[2].Country)
}

func TestSearch(t *testing.T) {
	c := newClient(newServer(t))
	ctx := context.Background()

	tests := []struct {
		limit, count, last int
	}{
		{10, 10, 10},
		{1200, 1200, 1200},
		{5000, 1500, 1500},
	}
	for _, tt := range tests {
		keys, err := c.Search(ctx, BryophytaKey, tt.limit)
		require.NoError(t, err)
		require.Len(t, keys, tt.count)
		assert.Equal(t, 1, keys[0])
		assert.Equal(t, tt.last, keys[len(keys)-1])
	}
}

func TestNotFoundError(t *testing.T) {
	err := TaxonNotFoundError(42)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.GBIFTaxonNotFoundError, gnErr.Code)
	assert.Equal(t, []any{42}, gnErr.Vars)
}

func TestPhylumKey(t *testing.T) {
	c := newClient(newServer(t))
	ctx := context.Background()

	key, err := c.PhylumKey(ctx, "Bryophyta")
	require.NoError(t, err)
	assert.Equal(t, BryophytaKey, key)

	key, err = c.PhylumKey(ctx, "Nonexistentophyta")
	require.NoError(t, err)
	assert.Equal(t, 0, key)
}
