/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: config.go
Description: Run configuration for the ILA command line. Holds training, storage, output and
logging settings with defaults and validation.
*/

package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/kleascm/ila-classifier/pkg/store"
)

// DefaultModelFile is where train saves and predict loads when no path is given
const DefaultModelFile = "ila_model.gob"

// DefaultDatabase is the SQLite file used by the sqlite store
const DefaultDatabase = "ila_models.db"

// Config holds everything a command needs
type Config struct {
	Workers    int    `json:"workers" mapstructure:"workers"`
	ModelFile  string `json:"model_file" mapstructure:"model_file"`
	Store      string `json:"store" mapstructure:"store"`
	Database   string `json:"database" mapstructure:"database"`
	ResultsDir string `json:"results_dir" mapstructure:"results_dir"`
	Confusion  bool   `json:"confusion" mapstructure:"confusion"`

	LogLevel  string `json:"log_level" mapstructure:"log_level"`
	LogFormat string `json:"log_format" mapstructure:"log_format"`
	LogDir    string `json:"log_dir" mapstructure:"log_dir"`
	JSONLogs  bool   `json:"json_logs" mapstructure:"json_logs"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Workers:   1,
		ModelFile: DefaultModelFile,
		Store:     string(store.KindFile),
		Database:  DefaultDatabase,
		LogLevel:  "info",
		LogFormat: "custom",
	}
}

// Validate checks the configuration and fills derived values
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}

	switch store.Kind(c.Store) {
	case store.KindFile:
		if c.ModelFile == "" {
			c.ModelFile = DefaultModelFile
		}
	case store.KindSQLite:
		if c.Database == "" {
			c.Database = DefaultDatabase
		}
	case "":
		c.Store = string(store.KindFile)
		if c.ModelFile == "" {
			c.ModelFile = DefaultModelFile
		}
	default:
		return fmt.Errorf("unknown store %q (want file or sqlite)", c.Store)
	}

	c.LogLevel = strings.ToLower(c.LogLevel)
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "fatal":
	case "warning":
		c.LogLevel = "warn"
	default:
		return fmt.Errorf("invalid log level %q (want debug, info, warn, error or fatal)", c.LogLevel)
	}

	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.JSONLogs {
		c.LogFormat = "json"
	}
	switch c.LogFormat {
	case "text", "json", "custom":
	default:
		return fmt.Errorf("invalid log format %q (want text, json or custom)", c.LogFormat)
	}

	return nil
}

// StorePath returns the path the configured store is rooted at
func (c *Config) StorePath() string {
	if store.Kind(c.Store) == store.KindSQLite {
		return c.Database
	}
	return c.ModelFile
}
