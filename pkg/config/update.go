package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Harvest.WithConservation).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	s = c.GBIF.URL
	if s != "" {
		res = append(res, OptGBIFURL(s))
	}
	i = c.GBIF.OccurrenceLimit
	if i > 0 {
		res = append(res, OptGBIFOccurrenceLimit(i))
	}
	i = c.GBIF.Timeout
	if i > 0 {
		res = append(res, OptGBIFTimeout(i))
	}

	s = c.IUCN.URL
	if s != "" {
		res = append(res, OptIUCNURL(s))
	}
	s = c.IUCN.Token
	if s != "" {
		res = append(res, OptIUCNToken(s))
	}

	// zero is a valid limit that removes the cap
	i = c.Harvest.Limit
	if i >= 0 {
		res = append(res, OptHarvestLimit(i))
	}
	i = c.Harvest.CheckpointEvery
	if i > 0 {
		res = append(res, OptHarvestCheckpointEvery(i))
	}
	s = c.Harvest.VisitedScope
	if s != "" {
		res = append(res, OptHarvestVisitedScope(s))
	}
	s = c.Harvest.OnDuplicate
	if s != "" {
		res = append(res, OptHarvestOnDuplicate(s))
	}
	s = c.Harvest.IDsFile
	if s != "" {
		res = append(res, OptHarvestIDsFile(s))
	}

	s = c.Extract.Phylum
	if s != "" {
		res = append(res, OptExtractPhylum(s))
	}
	s = c.Extract.BackboneURL
	if s != "" {
		res = append(res, OptExtractBackboneURL(s))
	}

	s = c.DataDir
	if s != "" {
		res = append(res, OptDataDir(s))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidNonNegInt(name string, i int) bool {
	res := i >= 0
	if !res {
		gn.Warn("<em>%s</em> cannot be negative, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Harvest.VisitedScope": {"batch": s, "chain": s},
		"Harvest.OnDuplicate":  {"skip": s, "append": s, "replace": s},
		"Log.Level":            {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":           {"json": s, "text": s, "tint": s},
		"Log.Destination":      {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	} else {
		gn.Warn(
			"<em>%s</em> does not support '%s' as a value. "+
				"Valid values are: \n%s\nIgnoring...",
			name, val, strings.Join(lines, "\n"),
		)
		return false
	}
}
