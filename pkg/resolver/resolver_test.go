package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/gnbryo/pkg/parserpool"
	"github.com/gnames/gnbryo/pkg/resolver"
	"github.com/gnames/gnbryo/pkg/species"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	taxa  map[int]*species.Taxon
	calls []int
	err   error
}

func (f *fakeSource) Taxon(_ context.Context, id int) (*species.Taxon, error) {
	f.calls = append(f.calls, id)
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.taxa[id]
	if !ok {
		return nil, nil
	}
	res := *t
	return &res, nil
}

func accepted(id int, name string) *species.Taxon {
	return &species.Taxon{
		Key:             id,
		TaxonomicStatus: "ACCEPTED",
		ScientificName:  name,
		Genus:           "Polytrichum",
		Species:         "Polytrichum commune",
		Family:          "Polytrichaceae",
		Order:           "Polytrichales",
		Class:           "Polytrichopsida",
		PublishedIn:     "Hedw., Sp. Musc. Frond.: 1801",
	}
}

func synonym(id, acceptedKey int, status string) *species.Taxon {
	return &species.Taxon{
		Key:             id,
		TaxonomicStatus: status,
		AcceptedKey:     acceptedKey,
		ScientificName:  "Polytrichum vulgare",
	}
}

func TestResolveAccepted(t *testing.T) {
	src := &fakeSource{taxa: map[int]*species.Taxon{
		1: accepted(1, "Polytrichum commune Hedw."),
	}}
	r := resolver.New(src, nil)

	rec, err := r.Resolve(context.Background(), 1, resolver.NewVisited())
	require.NoError(t, err)
	assert.Equal(t, 1, rec.TaxonID)
	assert.Equal(t, "Polytrichum commune Hedw.", rec.ScientificName)
	assert.Equal(t, "1801", rec.DiscoveredYear)
	assert.Equal(t, species.Unknown, rec.VernacularName)
	assert.Empty(t, rec.CanonicalName)
}

func TestResolveSynonymMatchesAccepted(t *testing.T) {
	taxa := map[int]*species.Taxon{
		1: accepted(1, "Polytrichum commune Hedw."),
		2: synonym(2, 1, "SYNONYM"),
		3: synonym(3, 2, "heterotypic_synonym"),
	}

	direct, err := resolver.New(&fakeSource{taxa: taxa}, nil).
		Resolve(context.Background(), 1, resolver.NewVisited())
	require.NoError(t, err)

	for _, id := range []int{2, 3} {
		src := &fakeSource{taxa: taxa}
		visited := resolver.NewVisited()
		rec, err := resolver.New(src, nil).Resolve(context.Background(), id, visited)
		require.NoError(t, err)
		assert.Equal(t, direct, rec)
		assert.True(t, visited.Has(1))
		assert.True(t, visited.Has(id))
	}
}

func TestResolveCycle(t *testing.T) {
	tests := []struct {
		msg  string
		taxa map[int]*species.Taxon
	}{
		{
			msg:  "self reference",
			taxa: map[int]*species.Taxon{1: synonym(1, 1, "SYNONYM")},
		},
		{
			msg: "transitive",
			taxa: map[int]*species.Taxon{
				1: synonym(1, 2, "SYNONYM"),
				2: synonym(2, 3, "SYNONYM"),
				3: synonym(3, 1, "SYNONYM"),
			},
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			src := &fakeSource{taxa: v.taxa}
			rec, err := resolver.New(src, nil).
				Resolve(context.Background(), 1, resolver.NewVisited())
			assert.Nil(t, rec)
			assert.ErrorIs(t, err, resolver.ErrAlreadyVisited)
			assert.Len(t, src.calls, len(v.taxa))
		})
	}
}

func TestResolveVisitedShortCircuit(t *testing.T) {
	src := &fakeSource{taxa: map[int]*species.Taxon{
		1: accepted(1, "Polytrichum commune Hedw."),
		2: synonym(2, 1, "SYNONYM"),
	}}
	r := resolver.New(src, nil)
	visited := resolver.NewVisited()

	_, err := r.Resolve(context.Background(), 1, visited)
	require.NoError(t, err)

	// accepted name was visited, so its synonym is dropped in the same set
	rec, err := r.Resolve(context.Background(), 2, visited)
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, resolver.ErrAlreadyVisited)

	rec, err = r.Resolve(context.Background(), 1, visited)
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, resolver.ErrAlreadyVisited)
	assert.Equal(t, []int{1, 2}, src.calls)
}

func TestResolveFailures(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		src := &fakeSource{taxa: map[int]*species.Taxon{}}
		_, err := resolver.New(src, nil).
			Resolve(context.Background(), 42, resolver.NewVisited())
		assert.ErrorIs(t, err, resolver.ErrTaxonNotFound)
	})

	t.Run("synonym without accepted name", func(t *testing.T) {
		src := &fakeSource{taxa: map[int]*species.Taxon{
			2: synonym(2, 0, "SYNONYM"),
		}}
		_, err := resolver.New(src, nil).
			Resolve(context.Background(), 2, resolver.NewVisited())
		assert.ErrorIs(t, err, resolver.ErrNoAcceptedName)
	})

	t.Run("transport error", func(t *testing.T) {
		boom := errors.New("connection refused")
		src := &fakeSource{err: boom}
		visited := resolver.NewVisited()
		_, err := resolver.New(src, nil).
			Resolve(context.Background(), 7, visited)
		assert.ErrorIs(t, err, boom)
		assert.True(t, visited.Has(7))
	})

	t.Run("chain too long", func(t *testing.T) {
		taxa := make(map[int]*species.Taxon)
		for i := 1; i <= resolver.MaxSynonymDepth+1; i++ {
			taxa[i] = synonym(i, i+1, "SYNONYM")
		}
		src := &fakeSource{taxa: taxa}
		_, err := resolver.New(src, nil).
			Resolve(context.Background(), 1, resolver.NewVisited())
		assert.ErrorIs(t, err, resolver.ErrSynonymChainTooLong)
		assert.Len(t, src.calls, resolver.MaxSynonymDepth)
	})
}

func TestResolveCanonical(t *testing.T) {
	pool := parserpool.NewPool(1)
	defer pool.Close()

	src := &fakeSource{taxa: map[int]*species.Taxon{
		1: accepted(1, "Polytrichum commune Hedw."),
	}}
	rec, err := resolver.New(src, pool).
		Resolve(context.Background(), 1, resolver.NewVisited())
	require.NoError(t, err)
	assert.Equal(t, "Polytrichum commune", rec.CanonicalName)
	assert.Equal(t, parserpool.NameID("Polytrichum commune"), rec.NameID)
}
