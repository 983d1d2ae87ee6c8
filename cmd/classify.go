package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schema-rules/internal/dialect"
	"schema-rules/internal/report"
	"schema-rules/internal/schema"
)

var (
	dryRun bool
	tables []string
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify every column of the selected tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		format := viper.GetString("settings.format")
		switch format {
		case report.FormatTable, report.FormatYAML, report.FormatJSON:
		default:
			return fmt.Errorf("%w: %q", report.ErrUnknownFormat, format)
		}

		cat, err := loadCatalog(cmd.Context())
		if err != nil {
			return err
		}

		if dryRun {
			fmt.Println("Tables selected for classification:")
			for i, t := range cat.Tables() {
				fmt.Printf("[%02d] %s (%d columns)\n", i+1, t, len(cat.Columns(t)))
			}
			return nil
		}

		start := time.Now()
		parsed, err := parseWithProgress(cmd.Context(), cat)
		if err != nil {
			return err
		}
		log.Info().
			Int("Tables", len(parsed)).
			Dur("Elapsed", time.Since(start)).
			Msg("classification done")

		return report.Render(os.Stdout, parsed, format)
	},
}

// loadCatalog introspects the connected database and applies the table
// selection: the --tables flag first, then settings.tables, else everything.
func loadCatalog(ctx context.Context) (*schema.Catalog, error) {
	d, err := dialect.GetDialect(DriverName)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("Dialect", DriverName).Msg("using dialect")

	log.Info().Msg("analyzing schema")
	cat, err := schema.Analyze(ctx, DB, d, SchemaName)
	if err != nil {
		return nil, err
	}

	names := tables
	if len(names) == 0 {
		names = viper.GetStringSlice("settings.tables")
	}
	return cat.Filter(names)
}

// parseWithProgress runs the classifier over the catalog, showing a progress
// bar on the terminal.
func parseWithProgress(ctx context.Context, cat *schema.Catalog) ([]schema.TableSchema, error) {
	uiprogress.Start()
	bar := uiprogress.AddBar(len(cat.Tables())).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return "Classifying: "
	})

	parsed, err := cat.ParseAll(ctx, parserConfig(), viper.GetInt("settings.workers"), func() {
		bar.Incr()
	})
	uiprogress.Stop()
	return parsed, err
}

func init() {
	RootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the selected tables without classifying them")
	classifyCmd.Flags().StringSliceVarP(&tables, "tables", "t", []string{}, "Specific tables to classify (comma-separated)")
	classifyCmd.Flags().Bool("maximum-validation", false, "Strict mode: enums leave the string bucket and bit(1) columns may be required")
	classifyCmd.Flags().String("format", report.FormatTable, "Output format (table, yaml, json)")
	classifyCmd.Flags().Int("workers", 4, "Number of tables classified concurrently")

	_ = viper.BindPFlag("settings.maximum_validation", classifyCmd.Flags().Lookup("maximum-validation"))
	_ = viper.BindPFlag("settings.format", classifyCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("settings.workers", classifyCmd.Flags().Lookup("workers"))
	viper.SetDefault("settings.workers", 4)
	viper.SetDefault("settings.format", report.FormatTable)
}
