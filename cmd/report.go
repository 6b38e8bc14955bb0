package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ademuri/streaming-stats/internal/analysis"
)

var reportLimit int
var reportCmd = &cobra.Command{
	Use:   "report [range]",
	Short: "Generates a complete listening report",
	Long:  `Combines the overview, lifetime stats, streaks, top lists and breakdowns into one YAML document.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := runReport(os.Stdout, args, time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().IntVarP(&reportLimit, "number", "n", 10, "number of top tracks and artists to include, 0 for all")
	viper.BindPFlag("report_limit", reportCmd.Flags().Lookup("number"))
}

func runReport(out io.Writer, args []string, now time.Time) error {
	config, err := queryConfigFromFlags(args)
	if err != nil {
		return err
	}

	// Filtering happens in GenerateReport so the metadata records it.
	events, err := loadEvents(QueryConfig{
		DbPath:   config.DbPath,
		Timezone: config.Timezone,
		Range:    analysis.LifetimeRange(),
	}, now)
	if err != nil {
		return err
	}

	limit := viper.GetInt("report_limit")
	if limit <= 0 {
		limit = analysis.NoLimit
	}

	report, err := analysis.GenerateReport(events, analysis.ReportConfig{
		Range:  config.Range,
		Search: config.Search,
		Limit:  limit,
	}, now)
	if err != nil {
		return fmt.Errorf("analyzing data: %w", err)
	}

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	err = encoder.Encode(report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	return encoder.Close()
}
