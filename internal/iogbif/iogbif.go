// Package iogbif talks to GBIF API: taxon lookup, occurrence search and
// species search.
package iogbif

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gnames/gnbryo/pkg/config"
	"github.com/gnames/gnbryo/pkg/species"
	"github.com/gnames/gnfmt"
)

// BryophytaKey is GBIF backbone key of the Bryophyta phylum.
const BryophytaKey = 35

// maxPage is the largest page GBIF species search returns.
const maxPage = 1000

// bodyLimit caps the size of a GBIF response.
const bodyLimit = 10 << 20

var errStatus = errors.New("unexpected status")

// Client is a GBIF API client. It satisfies lookup interfaces of resolver
// and harvest packages.
type Client struct {
	url  string
	http *http.Client
	enc  gnfmt.GNjson
}

// New creates GBIF client from configuration.
func New(cfg config.GBIFConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		url:  cfg.URL,
		http: &http.Client{Timeout: timeout},
	}
}

// Taxon returns a name usage by its GBIF key. If the key is unknown to
// GBIF it returns nil without error.
func (c *Client) Taxon(ctx context.Context, id int) (*species.Taxon, error) {
	u := fmt.Sprintf("%s/species/%d", c.url, id)

	var res species.Taxon
	found, err := c.get(ctx, u, &res)
	if err != nil || !found {
		return nil, err
	}
	return &res, nil
}

type occurrenceResponse struct {
	Results []species.Occurrence `json:"results"`
}

// Occurrences returns up to limit occurrences of a taxon.
func (c *Client) Occurrences(
	ctx context.Context,
	taxonID, limit int,
) ([]species.Occurrence, error) {
	q := url.Values{}
	q.Set("taxonKey", strconv.Itoa(taxonID))
	q.Set("limit", strconv.Itoa(limit))
	u := c.url + "/occurrence/search?" + q.Encode()

	var res occurrenceResponse
	if _, err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	return res.Results, nil
}

type searchResponse struct {
	EndOfRecords bool `json:"endOfRecords"`
	Results      []struct {
		Key int `json:"key"`
	} `json:"results"`
}

// Search returns keys of up to limit accepted species of a phylum.
// Results are paged transparently.
func (c *Client) Search(
	ctx context.Context,
	phylumKey, limit int,
) ([]int, error) {
	var res []int
	for offset := 0; len(res) < limit; {
		page := min(limit-len(res), maxPage)
		q := url.Values{}
		q.Set("phylumKey", strconv.Itoa(phylumKey))
		q.Set("rank", "SPECIES")
		q.Set("status", "ACCEPTED")
		q.Set("limit", strconv.Itoa(page))
		q.Set("offset", strconv.Itoa(offset))
		u := c.url + "/species/search?" + q.Encode()

		var sr searchResponse
		if _, err := c.get(ctx, u, &sr); err != nil {
			return res, err
		}
		for _, v := range sr.Results {
			res = append(res, v.Key)
		}
		if sr.EndOfRecords || len(sr.Results) == 0 {
			break
		}
		offset += len(sr.Results)
	}
	return res, nil
}

type matchResponse struct {
	UsageKey  int    `json:"usageKey"`
	Rank      string `json:"rank"`
	MatchType string `json:"matchType"`
}

// PhylumKey finds GBIF key of a phylum by its name. It returns 0 if there
// is no exact match.
func (c *Client) PhylumKey(ctx context.Context, name string) (int, error) {
	q := url.Values{}
	q.Set("name", name)
	q.Set("rank", "PHYLUM")
	q.Set("strict", "true")
	u := c.url + "/species/match?" + q.Encode()

	var mr matchResponse
	if _, err := c.get(ctx, u, &mr); err != nil {
		return 0, err
	}
	if mr.MatchType != "EXACT" || mr.Rank != "PHYLUM" {
		return 0, nil
	}
	return mr.UsageKey, nil
}

// get decodes JSON from u into out. It returns false if GBIF answers with
// 404.
func (c *Client) get(ctx context.Context, u string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, RequestError(u, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, RequestError(u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("%w %d", errStatus, resp.StatusCode)
		return false, RequestError(u, err)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, bodyLimit))
	if err != nil {
		return false, RequestError(u, err)
	}

	if err = c.enc.Decode(body, out); err != nil {
		return false, DecodeError(u, err)
	}
	return true, nil
}
