package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schema-rules/internal/dialect"
	"schema-rules/internal/logger"
)

var (
	dsn        string
	driver     string
	DB         *sql.DB
	SchemaName string // database for MySQL, schema for the other engines
	cfgFile    string
	DriverName string // "mysql", "mariadb", "postgres", "sqlserver" or "oracle"
)

var RootCmd = &cobra.Command{
	Use:   "schema-rules",
	Short: "Derive validation categories from a database schema",
	Long: `schema-rules reads DESCRIBE and SHOW CREATE TABLE output and groups every
column by the validations that apply to it: required, numeric ranges, string
lengths, dates, enumerations, defaults and unique constraints.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Setup(viper.GetString("log.level"), viper.GetString("log.format")); err != nil {
			return err
		}

		config, err := resolveDBConfig()
		if err != nil {
			return err
		}
		DriverName = config.Driver

		DB, err = sql.Open(dialect.SQLDriverName(DriverName), config.DSN)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		if err := DB.PingContext(cmd.Context()); err != nil {
			return fmt.Errorf("failed to connect to db: %w", err)
		}

		// Fetch current database/schema name for Analyzer
		switch DriverName {
		case "mysql", "mariadb":
			if err := DB.QueryRowContext(cmd.Context(), "SELECT DATABASE()").Scan(&SchemaName); err != nil {
				return fmt.Errorf("failed to get database name: %w", err)
			}
			if SchemaName == "" {
				return fmt.Errorf("no database selected in DSN")
			}
		default:
			SchemaName = viper.GetString("database.schema")
		}

		log.Info().
			Str("Name", config.Name).
			Str("Driver", DriverName).
			Str("Schema", SchemaName).
			Msg("connected")
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if DB != nil {
			return DB.Close()
		}
		return nil
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("")
		os.Exit(1)
	}
}

// detectDriver guesses the database/sql driver from the DSN shape.
func detectDriver(connStr string) string {
	switch {
	case strings.HasPrefix(connStr, "postgres") || strings.Contains(connStr, "sslmode"):
		return "postgres"
	case strings.HasPrefix(connStr, "sqlserver://"):
		return "sqlserver"
	case strings.HasPrefix(connStr, "oracle://"):
		return "oracle"
	default:
		return "mysql"
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Define flags
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./schema-rules.yaml)")
	RootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Database Source Name (DSN)")
	RootCmd.PersistentFlags().StringVar(&driver, "driver", "", "database driver (mysql, mariadb, postgres, sqlserver, oracle); detected from the DSN when empty")
	RootCmd.PersistentFlags().String("schema", "", "schema to introspect for postgres, sqlserver and oracle")
	RootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	RootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")

	// Bind flags to viper
	_ = viper.BindPFlag("database.dsn", RootCmd.PersistentFlags().Lookup("dsn"))
	_ = viper.BindPFlag("database.driver", RootCmd.PersistentFlags().Lookup("driver"))
	_ = viper.BindPFlag("database.schema", RootCmd.PersistentFlags().Lookup("schema"))
	_ = viper.BindPFlag("log.level", RootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", RootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("schema-rules")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SCHEMA_RULES")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Debug().Str("File", viper.ConfigFileUsed()).Msg("using config file")
	}
}
