// Package parserpool provides a pool of gnparser instances for scientific
// names of plants. This is a pure package - parsing is computation, not I/O.
package parserpool

import (
	"runtime"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
	"github.com/gnames/gnuuid"
)

// Pool provides botanical gnparser instances for concurrent parsing.
type Pool interface {
	// Parse parses a scientific name string using botanical code.
	// It retrieves a parser from the pool, parses the name, and returns
	// the parser to the pool. This method is safe for concurrent use.
	Parse(nameString string) parsed.Parsed

	// Canonical returns the simple canonical form of a name, or an empty
	// string if the name cannot be parsed.
	Canonical(nameString string) string

	// GenusSpecies returns the first two words of the canonical form.
	// If the name cannot be parsed, words of the name string itself are used.
	// The last value is false if there are less than two words.
	GenusSpecies(nameString string) (genus, species string, ok bool)

	// Close shuts down the parser pool and releases resources.
	// After calling Close, the pool should not be used.
	Close()
}

type pool struct {
	botanicalCh chan gnparser.GNparser
	poolSize    int
}

// NewPool creates a new parser pool with the specified number of workers.
// If jobsNum is 0, it defaults to runtime.NumCPU().
func NewPool(jobsNum int) Pool {
	poolSize := jobsNum
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}

	// Mosses follow botanical code, it also keeps "Aus (Bus)" from being
	// parsed as a subgenus.
	cfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Botanical))
	botanicalCh := gnparser.NewPool(cfg, poolSize)

	return &pool{
		botanicalCh: botanicalCh,
		poolSize:    poolSize,
	}
}

// Parse parses a scientific name string using botanical code.
func (p *pool) Parse(nameString string) parsed.Parsed {
	parser := <-p.botanicalCh
	res := parser.ParseName(nameString)
	p.botanicalCh <- parser
	return res
}

// Canonical returns the simple canonical form of a name.
func (p *pool) Canonical(nameString string) string {
	res := p.Parse(nameString)
	if !res.Parsed || res.Canonical == nil {
		return ""
	}
	return res.Canonical.Simple
}

// GenusSpecies returns genus and specific epithet of a name.
func (p *pool) GenusSpecies(nameString string) (string, string, bool) {
	words := strings.Fields(p.Canonical(nameString))
	if len(words) < 2 {
		words = strings.Fields(nameString)
	}
	if len(words) < 2 {
		return "", "", false
	}
	return words[0], words[1], true
}

// Close shuts down the parser pool.
func (p *pool) Close() {
	if p.botanicalCh != nil {
		close(p.botanicalCh)
		for range p.botanicalCh {
		}
	}
}

// NameID returns UUIDv5 of a canonical name, the same identifier other
// Global Names tools use for name-strings. Empty canonical gives empty ID.
func NameID(canonical string) string {
	if canonical == "" {
		return ""
	}
	return gnuuid.New(canonical).String()
}
