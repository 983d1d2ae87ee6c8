package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"schema-rules/internal/schema"
)

var errNoActiveDB = errors.New("no active database found in config (set active: true)")

type DBConfig struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Active bool   `mapstructure:"active"`
}

// GetActiveDBConfig returns the currently active database configuration.
func GetActiveDBConfig() (*DBConfig, error) {
	var configs []DBConfig

	if err := viper.UnmarshalKey("databases", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse databases config: %w", err)
	}

	var activeConfig *DBConfig
	count := 0

	for i := range configs {
		if configs[i].Active {
			activeConfig = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, errNoActiveDB
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active databases found (only one can be active)")
	}

	if activeConfig.Driver == "" {
		activeConfig.Driver = detectDriver(activeConfig.DSN)
	}
	return activeConfig, nil
}

// resolveDBConfig prefers the --dsn flag (or database.dsn) and falls back to
// the active entry of the databases list.
func resolveDBConfig() (*DBConfig, error) {
	if connStr := viper.GetString("database.dsn"); connStr != "" {
		drv := viper.GetString("database.driver")
		if drv == "" {
			drv = detectDriver(connStr)
		}
		return &DBConfig{Name: "cli", Driver: drv, DSN: connStr, Active: true}, nil
	}

	config, err := GetActiveDBConfig()
	if errors.Is(err, errNoActiveDB) {
		return nil, fmt.Errorf("database.dsn is required (via flag, env or an active databases entry)")
	}
	return config, err
}

// parserConfig reads the classifier settings.
func parserConfig() schema.ParserConfig {
	return schema.ParserConfig{
		MaximumValidation: viper.GetBool("settings.maximum_validation"),
	}
}
