package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptGBIFURL sets the base URL of the GBIF API.
func OptGBIFURL(s string) Option {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidString("GBIF URL", s) {
			c.GBIF.URL = s
		}
	}
}

// OptGBIFOccurrenceLimit sets how many occurrences are used to find
// habitats of a species.
func OptGBIFOccurrenceLimit(i int) Option {
	return func(c *Config) {
		if isValidInt("GBIF Occurrence Limit", i) {
			c.GBIF.OccurrenceLimit = i
		}
	}
}

// OptGBIFTimeout sets HTTP timeout in seconds.
func OptGBIFTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("GBIF Timeout", i) {
			c.GBIF.Timeout = i
		}
	}
}

// OptIUCNURL sets the base URL of the IUCN Red List API.
func OptIUCNURL(s string) Option {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidString("IUCN URL", s) {
			c.IUCN.URL = s
		}
	}
}

// OptIUCNToken sets the IUCN Red List API token.
func OptIUCNToken(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("IUCN Token", s) {
			c.IUCN.Token = s
		}
	}
}

// OptHarvestLimit caps the number of IDs processed by one harvest run.
// Zero removes the cap.
func OptHarvestLimit(i int) Option {
	return func(c *Config) {
		if isValidNonNegInt("Harvest Limit", i) {
			c.Harvest.Limit = i
		}
	}
}

// OptHarvestCheckpointEvery sets the number of merged records between
// checkpoints.
func OptHarvestCheckpointEvery(i int) Option {
	return func(c *Config) {
		if isValidInt("Harvest Checkpoint Every", i) {
			c.Harvest.CheckpointEvery = i
		}
	}
}

// OptHarvestVisitedScope sets the lifetime of visited taxon IDs.
// Valid values: "batch", "chain".
func OptHarvestVisitedScope(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Harvest.VisitedScope", s) {
			c.Harvest.VisitedScope = s
		}
	}
}

// OptHarvestOnDuplicate sets the policy for taxon IDs already in the store.
// Valid values: "skip", "append", "replace".
func OptHarvestOnDuplicate(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Harvest.OnDuplicate", s) {
			c.Harvest.OnDuplicate = s
		}
	}
}

// OptHarvestIDsFile sets the file with taxon IDs.
func OptHarvestIDsFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Harvest IDs File", s) {
			c.Harvest.IDsFile = s
		}
	}
}

// OptHarvestWithConservation enables or disables IUCN enrichment.
// Runtime-only field - not in ToOptions().
func OptHarvestWithConservation(b bool) Option {
	return func(c *Config) {
		c.Harvest.WithConservation = b
	}
}

// OptExtractPhylum sets the phylum used to filter the backbone.
func OptExtractPhylum(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Extract Phylum", s) {
			c.Extract.Phylum = s
		}
	}
}

// OptExtractBackboneURL sets the URL of the GBIF backbone archive.
func OptExtractBackboneURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Extract Backbone URL", s) {
			c.Extract.BackboneURL = s
		}
	}
}

// OptDataDir sets the directory of aggregated data.
func OptDataDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Data Directory", s) {
			c.DataDir = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
