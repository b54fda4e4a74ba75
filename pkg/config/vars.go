package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gnbryo"

	// SpeciesFile keeps the flat list of aggregated species records.
	SpeciesFile = "species.json"

	// HierarchyFile keeps class/order/family/genus tree.
	HierarchyFile = "hierarchy.json"

	// SpeciesCSVFile is the CSV export of the species list.
	SpeciesCSVFile = "species.csv"

	// IDsFile is the list of taxon IDs created by extract.
	IDsFile = "taxon_ids.txt"

	// TaxaCSVFile contains extracted backbone rows.
	TaxaCSVFile = "taxa.csv"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gnbryo by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/gnbryo by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gnbryo/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// DataDir returns the default directory for aggregated data.
// Returns ~/.local/share/gnbryo/data by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "data")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gnbryo/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// IDsFilePath returns the path of the taxon IDs list in dataDir.
func IDsFilePath(dataDir string) string {
	return filepath.Join(dataDir, IDsFile)
}
