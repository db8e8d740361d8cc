//-------------------------------------------------------------------------
//
// Petshop Insights Dashboard
//
// Portions copyright (c) 2025 - 2026, Breno Aliotti
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for petshop-insights.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/config"
	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/dataset"
	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/logging"
	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/pkg/version"
)

var (
	// Global flags
	cfgFile       string
	csvPath       string
	postgresConn  string
	postgresTable string
	logLevel      string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "petshop-insights",
		Short: "Sales analytics for the petshop transaction log",
		Long: `petshop-insights loads a petshop sales transaction log, computes
descriptive KPIs and segment breakdowns, forecasts monthly revenue with an
inferred stock-quantity estimate, and scores customers by Recency, Frequency
and Monetary value.

Transactions are read from a CSV file or a PostgreSQL sales table. Each
command recomputes its pipeline from the cached source table; only the parse
of the raw source is memoized.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./petshop-insights.yaml)")
	rootCmd.PersistentFlags().StringVar(&csvPath, "source", "",
		"path to the sales CSV file")
	rootCmd.PersistentFlags().StringVar(&postgresConn, "postgres", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&postgresTable, "table", "",
		"PostgreSQL sales table name")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(rfmCmd)
	rootCmd.AddCommand(generateCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if csvPath != "" {
		cfg.Source.CSVPath = csvPath
	}
	if postgresConn != "" {
		cfg.Source.PostgresConn = postgresConn
	}
	if postgresTable != "" {
		cfg.Source.PostgresTable = postgresTable
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

// newLoader builds the configured source behind the process-wide dataset
// cache.
func newLoader() *dataset.Loader {
	var source dataset.Source
	if cfg.Source.PostgresConn != "" {
		source = dataset.NewPostgresSource(cfg.Source.PostgresConn, cfg.Source.PostgresTable)
	} else {
		opts := dataset.DefaultCSVOptions()
		opts.DateFormat = cfg.Source.DateFormat
		opts.Progress = true
		source = dataset.NewCSVSource(cfg.Source.CSVPath, opts)
	}
	cache := dataset.ProcessCache(cfg.Cache.MaxEntries,
		time.Duration(cfg.Cache.TTLMinutes)*time.Minute)
	return &dataset.Loader{Source: source, Cache: cache}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
