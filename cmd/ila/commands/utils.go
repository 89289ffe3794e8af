/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the ILA commands. Provides configuration loading, logging
setup and store access used across all command implementations.
*/

package commands

import (
	"fmt"
	"strings"

	"github.com/kleascm/ila-classifier/pkg/config"
	"github.com/kleascm/ila-classifier/pkg/logging"
	"github.com/kleascm/ila-classifier/pkg/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	viper.SetEnvPrefix("ILA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	return nil
}

// SetupLogging configures the global logrus logger
func SetupLogging() error {
	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	logrus.SetLevel(level)
	if viper.GetBool("json_logs") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return nil
}

// createConfig creates the run configuration from viper
func createConfig(resultsKey string) *config.Config {
	cfg := config.Default()
	cfg.Workers = viper.GetInt("workers")
	cfg.Store = viper.GetString("store")
	cfg.Database = viper.GetString("database")
	cfg.Confusion = viper.GetBool("confusion")
	cfg.LogLevel = viper.GetString("log_level")
	cfg.LogFormat = viper.GetString("log_format")
	cfg.LogDir = viper.GetString("log_dir")
	cfg.JSONLogs = viper.GetBool("json_logs")
	if resultsKey != "" {
		cfg.ResultsDir = viper.GetString(resultsKey)
	}
	if mf := viper.GetString("model_file"); mf != "" {
		cfg.ModelFile = mf
	}
	return cfg
}

// prepare loads and validates configuration and starts the command logger
func prepare(cmd *cobra.Command, resultsKey string) (*config.Config, *logging.Logger, error) {
	if err := LoadConfig(); err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := SetupLogging(); err != nil {
		return nil, nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	cfg := createConfig(resultsKey)
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevel(cfg.LogLevel),
		Format:    logging.LogFormat(cfg.LogFormat),
		OutputDir: cfg.LogDir,
		MaxFiles:  10,
		MaxSize:   100 * 1024 * 1024,
		Timestamp: true,
		Colors:    false,
		Console:   cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}

// openStore opens the configured model store rooted at path
func openStore(cfg *config.Config, path string) (store.Store, error) {
	if path == "" {
		path = cfg.StorePath()
	}
	s, err := store.Open(store.Kind(cfg.Store), path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}
	return s, nil
}
