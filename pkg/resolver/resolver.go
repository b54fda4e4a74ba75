// Package resolver turns a taxon ID into a record of its accepted name,
// following synonym links of the taxon lookup service.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gnames/gnbryo/pkg/parserpool"
	"github.com/gnames/gnbryo/pkg/species"
)

// MaxSynonymDepth limits the number of synonym links followed from one ID.
const MaxSynonymDepth = 32

var (
	// ErrAlreadyVisited means the ID was already resolved with the same
	// visited set. It is also how synonym cycles end.
	ErrAlreadyVisited = errors.New("taxon already processed")

	// ErrTaxonNotFound means the lookup service does not know the ID.
	ErrTaxonNotFound = errors.New("taxon not found")

	// ErrNoAcceptedName means a synonym does not point to an accepted name.
	ErrNoAcceptedName = errors.New("synonym without accepted name")

	// ErrSynonymChainTooLong means MaxSynonymDepth was reached.
	ErrSynonymChainTooLong = errors.New("synonym chain is too long")
)

// TaxonSource fetches name usages by ID.
type TaxonSource interface {
	// Taxon returns the usage with the given ID. A nil usage with nil error
	// means the ID is unknown to the service.
	Taxon(ctx context.Context, id int) (*species.Taxon, error)
}

// Visited is a set of taxon IDs that were already resolved.
// The caller decides its lifetime: one per batch or one per input ID.
type Visited map[int]struct{}

// NewVisited creates an empty set.
func NewVisited() Visited {
	return make(Visited)
}

// Has checks if the ID was visited.
func (v Visited) Has(id int) bool {
	_, ok := v[id]
	return ok
}

// Add marks the ID as visited.
func (v Visited) Add(id int) {
	v[id] = struct{}{}
}

// Resolver resolves taxon IDs to accepted names.
type Resolver struct {
	src    TaxonSource
	parser parserpool.Pool
}

// New creates a Resolver. The parser is optional, without it records do not
// get canonical names and name IDs.
func New(src TaxonSource, parser parserpool.Pool) *Resolver {
	return &Resolver{src: src, parser: parser}
}

// Resolve returns the record of the accepted name of the given ID.
// Every ID fetched on the way, including synonyms, is added to visited.
func (r *Resolver) Resolve(
	ctx context.Context,
	id int,
	visited Visited,
) (*species.Record, error) {
	curr := id
	for range MaxSynonymDepth {
		if visited.Has(curr) {
			return nil, fmt.Errorf("%w: %d", ErrAlreadyVisited, curr)
		}
		visited.Add(curr)

		taxon, err := r.src.Taxon(ctx, curr)
		if err != nil {
			return nil, err
		}
		if taxon == nil {
			return nil, fmt.Errorf("%w: %d", ErrTaxonNotFound, curr)
		}

		if !isSynonym(taxon.TaxonomicStatus) {
			if taxon.Key == 0 {
				taxon.Key = curr
			}
			return r.record(taxon), nil
		}

		if taxon.AcceptedKey == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoAcceptedName, taxon.ScientificName)
		}
		slog.Debug("Following synonym",
			"taxon_id", curr,
			"name", taxon.ScientificName,
			"accepted_id", taxon.AcceptedKey,
		)
		curr = taxon.AcceptedKey
	}
	return nil, fmt.Errorf("%w: started at %d", ErrSynonymChainTooLong, id)
}

func (r *Resolver) record(t *species.Taxon) *species.Record {
	res := species.NewRecord(t)
	if r.parser != nil && t.ScientificName != "" {
		res.CanonicalName = r.parser.Canonical(t.ScientificName)
		res.NameID = parserpool.NameID(res.CanonicalName)
	}
	return res
}

func isSynonym(status string) bool {
	return strings.Contains(strings.ToLower(status), "synonym")
}
