package iotesting

import (
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTestConfig(t *testing.T) {
	cfg := GetTestConfig(t)
	assert.NotEmpty(t, cfg.HomeDir)
	assert.Equal(t, cfg.HomeDir, cfg.DataPath())
	assert.False(t, cfg.Harvest.WithConservation)

	WriteIDs(t, cfg, 1, 2)
	data, err := os.ReadFile(cfg.IDsPath())
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", string(data))
}

func get(t *testing.T, url, token string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestGBIF(t *testing.T) {
	srv := GBIF{
		Taxa:        map[int]string{1: `{"key":1}`},
		Occurrences: map[int][]string{1: {"Peru", "Chile", "Chile"}},
	}.Start(t)

	code, body := get(t, srv.URL+"/species/1", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `{"key":1}`, body)

	code, _ = get(t, srv.URL+"/species/2", "")
	assert.Equal(t, http.StatusNotFound, code)

	_, body = get(t, srv.URL+"/occurrence/search?taxonKey=1&limit=2", "")
	assert.Equal(t, `{"results":[{"country":"Peru"},{"country":"Chile"}]}`, body)
}

func TestIUCN(t *testing.T) {
	srv := IUCN{
		Token:   "secret",
		Reports: map[string]string{"Bryum argenteum": `{"assessments":[]}`},
	}.Start(t)

	u := srv.URL + "/taxa/scientific_name?genus_name=Bryum&species_name=argenteum"
	code, _ := get(t, u, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := get(t, u, "secret")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `{"assessments":[]}`, body)
}
