// Package store keeps the aggregated harvest results: a flat list of
// species records and the class/order/family/genus hierarchy built from
// them. The state outlives a run, Store implementations load it at start
// and flush it to durable storage.
package store

import (
	"github.com/gnames/gnbryo/pkg/species"
)

// Store is the aggregation state with persistence.
type Store interface {
	// Load reads the previous state. Missing or corrupt data gives an
	// empty state, never an error that stops the harvest.
	Load() error

	// Merge adds a record to the state.
	Merge(rec species.Record)

	// Replace swaps stored records having the same taxon ID with a single
	// copy of rec. If there are none, rec is merged. Returns true if
	// anything was replaced.
	Replace(rec species.Record) bool

	// Has checks if a record with the taxon ID is in the state.
	Has(taxonID int) bool

	// Flush writes the state to durable storage, replacing the previous
	// copy only when the new one is written completely.
	Flush() error

	// State returns the in-memory state.
	State() *State
}

// State is the in-memory aggregation state.
type State struct {
	Species   []species.Record
	Hierarchy *Node
	index     map[int][]int
}

// NewState creates an empty state.
func NewState() *State {
	return &State{
		Species:   []species.Record{},
		Hierarchy: NewNode(),
		index:     make(map[int][]int),
	}
}

// FromData creates state from loaded documents, rebuilding the index.
func FromData(recs []species.Record, hierarchy *Node) *State {
	res := NewState()
	if recs != nil {
		res.Species = recs
	}
	if hierarchy != nil && hierarchy.Children != nil {
		res.Hierarchy = hierarchy
	}
	for i := range res.Species {
		id := res.Species[i].TaxonID
		res.index[id] = append(res.index[id], i)
	}
	return res
}

// Merge appends the record and inserts its class, order, family and genus
// into the hierarchy. Family, order and class are removed from the stored
// record. Duplicates are not checked.
func (s *State) Merge(rec species.Record) {
	s.Hierarchy.Insert(rec.Class, rec.Order, rec.Family, rec.Genus)
	rec.StripRanks()
	s.index[rec.TaxonID] = append(s.index[rec.TaxonID], len(s.Species))
	s.Species = append(s.Species, rec)
}

// Replace overwrites the first record with the same taxon ID. Other
// records with this ID, left by appending runs, are removed, so the ID
// keeps one slot.
func (s *State) Replace(rec species.Record) bool {
	idx, ok := s.index[rec.TaxonID]
	if !ok {
		s.Merge(rec)
		return false
	}
	s.Hierarchy.Insert(rec.Class, rec.Order, rec.Family, rec.Genus)
	rec.StripRanks()
	s.Species[idx[0]] = rec
	if len(idx) > 1 {
		s.compact(idx[1:])
	}
	return true
}

// compact removes records at the given ascending positions and rebuilds
// the index.
func (s *State) compact(drop []int) {
	res := s.Species[:0]
	var j int
	for i, v := range s.Species {
		if j < len(drop) && drop[j] == i {
			j++
			continue
		}
		res = append(res, v)
	}
	clear(s.Species[len(res):])
	s.Species = res

	s.index = make(map[int][]int, len(s.Species))
	for i := range s.Species {
		id := s.Species[i].TaxonID
		s.index[id] = append(s.index[id], i)
	}
}

// Has checks if a record with the taxon ID was merged.
func (s *State) Has(taxonID int) bool {
	_, ok := s.index[taxonID]
	return ok
}

// Len returns the number of stored records.
func (s *State) Len() int {
	return len(s.Species)
}
