// Package config provides configuration management for gnbryo.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - GBIF: url, occurrence_limit, timeout
//   - IUCN: url, token
//   - Harvest: limit, checkpoint_every, visited_scope, on_duplicate, ids_file
//   - Extract: phylum, backbone_url
//   - Log: level, format, destination
//   - General: data_dir
//
// Runtime-only fields (CLI flags only):
//   - Harvest.WithConservation (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNBRYO_ prefix with underscores for nesting:
//
//	GNBRYO_GBIF_URL=https://api.gbif.org/v1
//	GNBRYO_IUCN_TOKEN=secret
//	GNBRYO_HARVEST_LIMIT=100
//	GNBRYO_LOG_LEVEL=info
//
// The IUCN token is also read from IUCN_API_KEY.
package config

// Config represents the complete gnbryo configuration.
type Config struct {
	// GBIF contains settings of the GBIF species and occurrence API.
	GBIF GBIFConfig `mapstructure:"gbif" yaml:"gbif"`

	// IUCN contains settings of the IUCN Red List API (v4).
	IUCN IUCNConfig `mapstructure:"iucn" yaml:"iucn"`

	// Harvest contains settings specific to the harvest command.
	Harvest HarvestConfig `mapstructure:"harvest" yaml:"harvest"`

	// Extract contains settings of the backbone taxonomy extraction.
	Extract ExtractConfig `mapstructure:"extract" yaml:"extract"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// DataDir is where species.json, hierarchy.json, exports and
	// extracted ID lists are kept. If empty, DataDir(HomeDir) is used.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `yaml:"-"`
}

// GBIFConfig contains GBIF API parameters.
type GBIFConfig struct {
	// URL is the base of the GBIF API, without trailing slash.
	URL string `mapstructure:"url" yaml:"url"`

	// OccurrenceLimit is the number of occurrences fetched per taxon to
	// determine its habitats.
	OccurrenceLimit int `mapstructure:"occurrence_limit" yaml:"occurrence_limit"`

	// Timeout is the HTTP timeout in seconds.
	Timeout int `mapstructure:"timeout" yaml:"timeout"`
}

// IUCNConfig contains IUCN Red List API parameters.
type IUCNConfig struct {
	// URL is the base of the IUCN Red List v4 API, without trailing slash.
	URL string `mapstructure:"url" yaml:"url"`

	// Token is a static credential sent in the Authorization header.
	// Harvesting with conservation data is impossible without it.
	Token string `mapstructure:"token" yaml:"token"`
}

// HarvestConfig contains settings of the harvest pipeline.
type HarvestConfig struct {
	// Limit caps the number of taxon IDs processed in one run.
	// Zero means all IDs from the list.
	Limit int `mapstructure:"limit" yaml:"limit"`

	// CheckpointEvery is the number of merged records after which
	// the aggregated state is flushed to disk.
	CheckpointEvery int `mapstructure:"checkpoint_every" yaml:"checkpoint_every"`

	// VisitedScope determines the lifetime of the set of visited taxon IDs.
	// "batch" shares one set for the whole run, so a taxon resolved once is
	// never resolved again. "chain" creates a new set for every input ID.
	VisitedScope string `mapstructure:"visited_scope" yaml:"visited_scope"`

	// OnDuplicate decides what happens with a record whose taxon ID is
	// already in the store: "skip", "append" or "replace".
	OnDuplicate string `mapstructure:"on_duplicate" yaml:"on_duplicate"`

	// IDsFile is a text file with one taxon ID per line. If empty,
	// the file created by the extract command is used.
	IDsFile string `mapstructure:"ids_file" yaml:"ids_file"`

	// WithConservation enables IUCN enrichment. Runtime-only.
	WithConservation bool `mapstructure:"-" yaml:"-"`
}

// ExtractConfig contains settings for the GBIF backbone extraction.
type ExtractConfig struct {
	// Phylum is the value of the phylum column used to filter taxa.
	Phylum string `mapstructure:"phylum" yaml:"phylum"`

	// BackboneURL is the location of the GBIF backbone archive.
	BackboneURL string `mapstructure:"backbone_url" yaml:"backbone_url"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		GBIF: GBIFConfig{
			URL:             "https://api.gbif.org/v1",
			OccurrenceLimit: 5,
			Timeout:         30,
		},
		IUCN: IUCNConfig{
			URL: "https://api.iucnredlist.org/api/v4",
		},
		Harvest: HarvestConfig{
			Limit:            100,
			CheckpointEvery:  50,
			VisitedScope:     "batch",
			OnDuplicate:      "skip",
			WithConservation: true,
		},
		Extract: ExtractConfig{
			Phylum:      "Bryophyta",
			BackboneURL: "https://hosted-datasets.gbif.org/datasets/backbone/current/backbone.zip",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			Destination: "file",
		},
	}

	return res
}

// DataPath returns the directory for the aggregated data.
func (c *Config) DataPath() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return DataDir(c.HomeDir)
}

// IDsPath returns the file with taxon IDs used by harvest.
func (c *Config) IDsPath() string {
	if c.Harvest.IDsFile != "" {
		return c.Harvest.IDsFile
	}
	return IDsFilePath(c.DataPath())
}
