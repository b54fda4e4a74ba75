// Package ioiucn gets conservation assessments from IUCN Red List API v4.
package ioiucn

import (
	"bytes"
	"context"
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

const bodyLimit = 10 << 20

// Client requests assessments of species by genus and specific epithet.
type Client struct {
	url   string
	token string
	http  *http.Client
	enc   gnfmt.GNjson
}

// New creates IUCN client. It fails if the token is empty, because every
// IUCN v4 request requires it.
func New(cfg config.IUCNConfig, timeout int) (*Client, error) {
	if cfg.Token == "" {
		return nil, TokenMissingError()
	}
	if timeout <= 0 {
		timeout = 30
	}
	res := Client{
		url:   cfg.URL,
		token: cfg.Token,
		http:  &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
	return &res, nil
}

// yearString accepts year_published as a string or a number.
type yearString string

func (y *yearString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*y = yearString(s)
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("year_published %s: %w", data, err)
	}
	*y = yearString(strconv.Itoa(n))
	return nil
}

type assessment struct {
	Latest                   bool       `json:"latest"`
	URL                      string     `json:"url"`
	YearPublished            yearString `json:"year_published"`
	PossiblyExtinct          bool       `json:"possibly_extinct"`
	PossiblyExtinctInTheWild bool       `json:"possibly_extinct_in_the_wild"`
}

type commonName struct {
	Name string `json:"name"`
	Main bool   `json:"main"`
}

type response struct {
	Taxon struct {
		Authority   string       `json:"authority"`
		CommonNames []commonName `json:"common_names"`
	} `json:"taxon"`
	Assessments []assessment `json:"assessments"`
}

func (r response) report() *species.AssessmentReport {
	res := species.AssessmentReport{
		Authority:   r.Taxon.Authority,
		Assessments: make([]species.Assessment, len(r.Assessments)),
		CommonNames: make([]species.CommonName, len(r.Taxon.CommonNames)),
	}
	for i, v := range r.Assessments {
		res.Assessments[i] = species.Assessment{
			Latest:                   v.Latest,
			URL:                      v.URL,
			YearPublished:            string(v.YearPublished),
			PossiblyExtinct:          v.PossiblyExtinct,
			PossiblyExtinctInTheWild: v.PossiblyExtinctInTheWild,
		}
	}
	for i, v := range r.Taxon.CommonNames {
		res.CommonNames[i] = species.CommonName{Name: v.Name, Main: v.Main}
	}
	return &res
}

// Assessment returns assessments of a species. It returns nil without
// error if IUCN does not know the species or has no assessments for it.
func (c *Client) Assessment(
	ctx context.Context,
	genus, sp string,
) (*species.AssessmentReport, error) {
	q := url.Values{}
	q.Set("genus_name", genus)
	q.Set("species_name", sp)
	u := c.url + "/taxa/scientific_name?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, RequestError(genus, sp, err)
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, RequestError(genus, sp, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		err = fmt.Errorf("status %d", resp.StatusCode)
		return nil, RequestError(genus, sp, err)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, bodyLimit))
	if err != nil {
		return nil, RequestError(genus, sp, err)
	}

	var r response
	if err = c.enc.Decode(body, &r); err != nil {
		return nil, DecodeError(genus, sp, err)
	}
	if len(r.Assessments) == 0 {
		return nil, nil
	}
	return r.report(), nil
}
