package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schema-rules/internal/engine"
	"schema-rules/internal/report"
)

var (
	rows int
	seed int64
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print example rows that satisfy the derived validations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if rows < 1 {
			return fmt.Errorf("--rows must be positive, got %d", rows)
		}

		cat, err := loadCatalog(cmd.Context())
		if err != nil {
			return err
		}
		parsed, err := cat.ParseAll(cmd.Context(), parserConfig(), viper.GetInt("settings.workers"), nil)
		if err != nil {
			return err
		}

		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		log.Debug().Int64("Seed", seed).Msg("sampler seeded")
		s := engine.NewSampler(seed)

		for _, ts := range parsed {
			generated := s.Rows(ts, rows)
			if len(generated) < rows {
				log.Warn().
					Str("Table", ts.Name).
					Int("Target", rows).
					Int("Actual", len(generated)).
					Msg("unique constraints exhausted before target")
			}
			values := make([][]any, len(generated))
			for i, r := range generated {
				values[i] = engine.Values(ts, r)
			}
			report.RenderRows(os.Stdout, ts.Name, ts.Columns, values)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().IntVar(&rows, "rows", 5, "Number of rows to generate per table")
	sampleCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 picks one from the clock)")
	sampleCmd.Flags().StringSliceVarP(&tables, "tables", "t", []string{}, "Specific tables to sample (comma-separated)")
}
