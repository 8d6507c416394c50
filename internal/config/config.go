// Package config loads the optional YAML configuration file that tunes the
// Pebble CLI's ambient behavior (history location, prompt text). It has
// nothing to do with the language itself — there is no module system or
// package manifest in Pebble — it only configures the driver.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the parsed contents of a .pebblerc.yml file.
type Config struct {
	// Prompt is shown before each line read in the interactive REPL.
	Prompt string `yaml:"prompt"`

	// HistoryFile is where REPL line history is persisted between
	// sessions. An empty value disables history persistence.
	HistoryFile string `yaml:"history_file"`

	// Echo prints the value each REPL input chunk evaluates to after it
	// runs, the way a REPL conventionally echoes expression results.
	Echo bool `yaml:"echo"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Prompt:      "pebble> ",
		HistoryFile: "",
		Echo:        false,
	}
}

// Load reads and parses path, falling back to Default() when path does not
// exist. Any other read or parse failure is returned to the caller.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
