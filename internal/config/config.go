// Package config loads the settings of the salt command from YAML.
package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultFilename = ".salt.yaml"

type Config struct {
	// LogLevel is a fortio.org/log level name: debug, verbose, info, warning, error.
	LogLevel string `yaml:"log_level"`
	// MaxCallDepth limits nested calls; 0 disables the limit.
	MaxCallDepth int `yaml:"max_call_depth"`
	// PrintResult prints the value returned by main after the program output.
	PrintResult bool `yaml:"print_result"`

	REPL REPL `yaml:"repl"`
}

type REPL struct {
	HistoryFile string `yaml:"history_file"`
	Prompt      string `yaml:"prompt"`
	Continue    string `yaml:"continue"`
}

func Default() *Config {
	history := ".salt_history"
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, history)
	}

	return &Config{
		LogLevel:     "info",
		MaxCallDepth: 10000,
		REPL: REPL{
			HistoryFile: history,
			Prompt:      "salt> ",
			Continue:    "...   ",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return nil, errors.Wrap(err, "opening config")
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}

	if cfg.MaxCallDepth < 0 {
		return nil, errors.Errorf("%s: max_call_depth must not be negative", path)
	}

	return cfg, nil
}
