package harvest_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gnames/gnbryo/pkg/harvest"
	"github.com/gnames/gnbryo/pkg/resolver"
	"github.com/gnames/gnbryo/pkg/species"
	"github.com/gnames/gnbryo/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taxonSource map[int]*species.Taxon

func (ts taxonSource) Taxon(_ context.Context, id int) (*species.Taxon, error) {
	t, ok := ts[id]
	if !ok {
		return nil, nil
	}
	res := *t
	return &res, nil
}

type occSource struct {
	occs  map[int][]species.Occurrence
	err   error
	calls []int
	limit int
}

func (o *occSource) Occurrences(
	_ context.Context,
	id, limit int,
) ([]species.Occurrence, error) {
	o.calls = append(o.calls, id)
	o.limit = limit
	if o.err != nil {
		return nil, o.err
	}
	return o.occs[id], nil
}

type assessSource struct {
	reports map[string]*species.AssessmentReport
	calls   []string
}

func (a *assessSource) Assessment(
	_ context.Context,
	genus, sp string,
) (*species.AssessmentReport, error) {
	name := genus + " " + sp
	a.calls = append(a.calls, name)
	return a.reports[name], nil
}

// memStore keeps copies of the state at every flush.
type memStore struct {
	st      *store.State
	flushed [][]species.Record
	err     error
}

func newMemStore() *memStore {
	return &memStore{st: store.NewState()}
}

func (m *memStore) Load() error { return nil }
func (m *memStore) Merge(rec species.Record) { m.st.Merge(rec) }
func (m *memStore) Replace(rec species.Record) bool { return m.st.Replace(rec) }
func (m *memStore) Has(id int) bool { return m.st.Has(id) }
func (m *memStore) State() *store.State { return m.st }
func (m *memStore) Len() int { return m.st.Len() }
func (m *memStore) record(i int) species.Record { return m.st.Species[i] }

func (m *memStore) Flush() error {
	if m.err != nil {
		return m.err
	}
	snap := make([]species.Record, m.st.Len())
	copy(snap, m.st.Species)
	m.flushed = append(m.flushed, snap)
	return nil
}

func moss(id int, name string) *species.Taxon {
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

func TestRunPipeline(t *testing.T) {
	taxa := taxonSource{
		1: moss(1, "Polytrichum commune Hedw."),
		2: {Key: 2, TaxonomicStatus: "SYNONYM", AcceptedKey: 1,
			ScientificName: "Polytrichum vulgare"},
		3: moss(3, "SH123456.08FU"),
		4: func() *species.Taxon {
			t := moss(4, "Polytrichum strictum Brid.")
			t.Family = ""
			return t
		}(),
		6: {Key: 6, TaxonomicStatus: "SYNONYM", ScientificName: "Bryum orphan"},
	}
	occ := &occSource{occs: map[int][]species.Occurrence{
		1: {{Country: "Norway"}, {Country: "Canada"}, {}},
	}}
	as := &assessSource{reports: map[string]*species.AssessmentReport{
		"Polytrichum commune": {
			Assessments: []species.Assessment{
				{URL: "first", YearPublished: "2000"},
				{URL: "latest", YearPublished: "2019", Latest: true},
			},
			Authority: "Hedw.",
		},
	}}
	st := newMemStore()

	var progress []float64
	d := harvest.New(
		resolver.New(taxa, nil), occ, st,
		harvest.OptAssessments(as),
		harvest.OptProgress(func(processed, total int) {
			progress = append(progress, float64(processed)/float64(total))
		}),
	)

	sum, err := d.Run(context.Background(), []int{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	assert.Equal(t, 6, sum.Total)
	assert.Equal(t, 6, sum.Processed)
	assert.Equal(t, 1, sum.Merged)
	assert.Equal(t, 5, sum.SkippedTotal())
	assert.Equal(t, 1, sum.Skipped[harvest.AlreadyVisited])
	assert.Equal(t, 1, sum.Skipped[harvest.Placeholder])
	assert.Equal(t, 1, sum.Skipped[harvest.Incomplete])
	assert.Equal(t, 2, sum.Skipped[harvest.Unresolved])
	assert.Equal(t, 1, sum.Flushes)
	assert.Equal(t, 1, sum.Stored)
	assert.Len(t, progress, 6)
	assert.InDelta(t, 1.0, progress[5], 0.0001)
	assert.InDelta(t, 0.5, progress[2], 0.0001)

	require.Equal(t, 1, st.Len())
	r := st.record(0)
	assert.Equal(t, 1, r.TaxonID)
	assert.Equal(t, []string{"Canada", "Norway"}, r.Habitats)
	assert.Equal(t, "latest", r.AssessmentURL)
	assert.Equal(t, "2019", r.AssessmentYear)
	assert.Equal(t, "Hedw.", r.Authority)
	assert.Empty(t, r.Family)
	assert.True(t, st.State().Hierarchy.Has(
		"Polytrichopsida", "Polytrichales", "Polytrichaceae", "Polytrichum",
	))

	// placeholder is not enriched, incomplete record is
	assert.Equal(t, []string{"Polytrichum commune", "Polytrichum strictum"}, as.calls)
	assert.Equal(t, []int{1, 4}, occ.calls)
	assert.Equal(t, harvest.DefaultOccurrenceLimit, occ.limit)
}

func TestRunConservationOnlyForLongNames(t *testing.T) {
	taxa := taxonSource{1: moss(1, "Polytrichum commune")}
	as := &assessSource{}
	d := harvest.New(resolver.New(taxa, nil), &occSource{}, newMemStore(),
		harvest.OptAssessments(as))

	sum, err := d.Run(context.Background(), []int{1})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Merged)
	assert.Empty(t, as.calls)
}

func TestRunOccurrenceFailureIsNotFatal(t *testing.T) {
	taxa := taxonSource{1: moss(1, "Polytrichum commune Hedw.")}
	occ := &occSource{err: errors.New("timeout")}
	st := newMemStore()
	d := harvest.New(resolver.New(taxa, nil), occ, st)

	sum, err := d.Run(context.Background(), []int{1})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Merged)
	assert.NotNil(t, st.record(0).Habitats)
	assert.Empty(t, st.record(0).Habitats)
}

func TestRunOccurrencesOfInputID(t *testing.T) {
	taxa := taxonSource{
		1: moss(1, "Polytrichum commune Hedw."),
		2: {Key: 2, TaxonomicStatus: "SYNONYM", AcceptedKey: 1,
			ScientificName: "Polytrichum vulgare"},
	}
	occ := &occSource{occs: map[int][]species.Occurrence{
		1: {{Country: "Norway"}},
		2: {{Country: "Chile"}},
	}}
	st := newMemStore()
	d := harvest.New(resolver.New(taxa, nil), occ, st)

	sum, err := d.Run(context.Background(), []int{2})
	require.NoError(t, err)
	require.Equal(t, 1, sum.Merged)
	assert.Equal(t, []int{2}, occ.calls)
	assert.Equal(t, 1, st.record(0).TaxonID)
	assert.Equal(t, []string{"Chile"}, st.record(0).Habitats)
}

func manyTaxa(n int) (taxonSource, []int) {
	taxa := make(taxonSource)
	ids := make([]int, n)
	for i := range n {
		id := i + 1
		taxa[id] = moss(id, fmt.Sprintf("Polytrichum commune%c Hedw.", 'a'+i%26))
		ids[i] = id
	}
	return taxa, ids
}

func TestRunCheckpoints(t *testing.T) {
	taxa, ids := manyTaxa(51)
	st := newMemStore()
	d := harvest.New(resolver.New(taxa, nil), &occSource{}, st,
		harvest.OptLimit(0),
		harvest.OptCheckpointEvery(50),
	)

	sum, err := d.Run(context.Background(), ids)
	require.NoError(t, err)
	assert.Equal(t, 51, sum.Merged)
	assert.Equal(t, 2, sum.Flushes)
	require.Len(t, st.flushed, 2)
	assert.Len(t, st.flushed[0], 50)
	assert.Len(t, st.flushed[1], 51)
	assert.Equal(t, st.flushed[0], st.flushed[1][:50])
}

func TestRunLimit(t *testing.T) {
	taxa, ids := manyTaxa(10)
	occ := &occSource{}
	d := harvest.New(resolver.New(taxa, nil), occ, newMemStore(),
		harvest.OptLimit(3))

	sum, err := d.Run(context.Background(), ids)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 3, sum.Merged)
	assert.Equal(t, []int{1, 2, 3}, occ.calls)
}

func TestRunVisitedScope(t *testing.T) {
	taxa := taxonSource{
		1: moss(1, "Polytrichum commune Hedw."),
		2: {Key: 2, TaxonomicStatus: "SYNONYM", AcceptedKey: 1},
	}

	t.Run("batch scope drops synonym of resolved taxon", func(t *testing.T) {
		st := newMemStore()
		d := harvest.New(resolver.New(taxa, nil), &occSource{}, st,
			harvest.OptVisitedScope(harvest.BatchScope),
			harvest.OptDuplicatePolicy(harvest.AppendDuplicates),
		)
		sum, err := d.Run(context.Background(), []int{1, 2})
		require.NoError(t, err)
		assert.Equal(t, 1, sum.Merged)
		assert.Equal(t, 1, sum.Skipped[harvest.AlreadyVisited])
	})

	t.Run("chain scope resolves synonym again", func(t *testing.T) {
		st := newMemStore()
		d := harvest.New(resolver.New(taxa, nil), &occSource{}, st,
			harvest.OptVisitedScope(harvest.ChainScope),
			harvest.OptDuplicatePolicy(harvest.AppendDuplicates),
		)
		sum, err := d.Run(context.Background(), []int{1, 2})
		require.NoError(t, err)
		assert.Equal(t, 2, sum.Merged)
		assert.Equal(t, 2, st.Len())
	})
}

func TestRunDuplicatePolicy(t *testing.T) {
	taxa := taxonSource{1: moss(1, "Polytrichum commune Hedw.")}
	occ := &occSource{occs: map[int][]species.Occurrence{
		1: {{Country: "Chile"}},
	}}

	prepare := func() *memStore {
		st := newMemStore()
		old := species.NewRecord(moss(1, "Polytrichum commune Hedw."))
		old.Habitats = []string{"Norway"}
		st.Merge(*old)
		return st
	}

	tests := []struct {
		msg      string
		policy   harvest.DuplicatePolicy
		len      int
		habitats []string
		merged   int
		replaced int
	}{
		{"skip", harvest.SkipDuplicates, 1, []string{"Norway"}, 0, 0},
		{"append", harvest.AppendDuplicates, 2, []string{"Norway"}, 1, 0},
		{"replace", harvest.ReplaceDuplicates, 1, []string{"Chile"}, 0, 1},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			st := prepare()
			d := harvest.New(resolver.New(taxa, nil), occ, st,
				harvest.OptDuplicatePolicy(v.policy))
			sum, err := d.Run(context.Background(), []int{1})
			require.NoError(t, err)
			assert.Equal(t, v.len, st.Len())
			assert.Equal(t, v.habitats, st.record(0).Habitats)
			assert.Equal(t, v.merged, sum.Merged)
			assert.Equal(t, v.replaced, sum.Replaced)
		})
	}
}

func TestRunCancelled(t *testing.T) {
	taxa, ids := manyTaxa(5)
	st := newMemStore()
	ctx, cancel := context.WithCancel(context.Background())

	d := harvest.New(resolver.New(taxa, nil), &occSource{}, st,
		harvest.OptProgress(func(processed, _ int) {
			if processed == 2 {
				cancel()
			}
		}),
	)

	sum, err := d.Run(ctx, ids)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, sum.Processed)
	assert.Equal(t, 1, sum.Flushes)
	require.Len(t, st.flushed, 1)
	assert.Len(t, st.flushed[0], 2)
}

func TestRunFlushError(t *testing.T) {
	taxa, ids := manyTaxa(1)
	st := newMemStore()
	st.err = errors.New("disk full")
	d := harvest.New(resolver.New(taxa, nil), &occSource{}, st)

	_, err := d.Run(context.Background(), ids)
	assert.ErrorIs(t, err, st.err)
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "PENDING", harvest.Pending.String())
	assert.Equal(t, "MERGED", harvest.Merged.String())
	assert.Equal(t, "SKIPPED", harvest.Skipped.String())
	assert.Equal(t, "placeholder", harvest.Placeholder.String())
	assert.Equal(t, harvest.ChainScope, harvest.NewVisitedScope("chain"))
	assert.Equal(t, harvest.BatchScope, harvest.NewVisitedScope("batch"))
	assert.Equal(t, harvest.ReplaceDuplicates, harvest.NewDuplicatePolicy("replace"))
	assert.Equal(t, harvest.SkipDuplicates, harvest.NewDuplicatePolicy(""))
}

func TestLookup(t *testing.T) {
	src := taxonSource{
		1: {Key: 1, TaxonomicStatus: "SYNONYM", AcceptedKey: 2,
			ScientificName: "Hypnum cupressiforme var. lacunosum Brid."},
		2: {Key: 2, TaxonomicStatus: "ACCEPTED",
			ScientificName: "Hypnum lacunosum (Brid.) Hoffm.",
			Genus:          "Hypnum", Species: "Hypnum lacunosum"},
	}
	occ := &occSource{occs: map[int][]species.Occurrence{
		1: {{Country: "Spain"}, {Country: "France"}},
	}}
	st := newMemStore()
	d := harvest.New(resolver.New(src, nil), occ, st)

	rec, err := d.Lookup(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.TaxonID)
	assert.Equal(t, []string{"France", "Spain"}, rec.Habitats)
	assert.Equal(t, species.Unknown, rec.Family,
		"lookup does not filter incomplete records")
	assert.Equal(t, 0, st.Len())
	assert.Empty(t, st.flushed)

	_, err = d.Lookup(context.Background(), 3)
	assert.ErrorIs(t, err, resolver.ErrTaxonNotFound)
}
