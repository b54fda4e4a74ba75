// Package iofs prepares directories and files gnbryo keeps in the user's
// home directory.
package iofs

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/gnames/gnbryo/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config, cache, log and data directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
		config.DataDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return CreateDirError(v, err)
		}
	}
	return nil
}

// touchDir creates a directory with its parents if it does not exist.
// A file with the same name is an error.
func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if info.IsDir() {
			return nil
		}
		return fmt.Errorf("%s is a file", dir)
	}
	return os.MkdirAll(dir, 0755)
}

// EnsureConfigFile writes the default config.yaml if it does not exist.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return WriteConfigError(configPath, err)
	}

	return nil
}

// EnsureDataDir creates the directory for aggregated data. It can differ
// from the default one in the home directory.
func EnsureDataDir(dir string) error {
	if err := touchDir(dir); err != nil {
		return DataDirError(dir, err)
	}
	return nil
}
