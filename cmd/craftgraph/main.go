// Package main provides the craftgraph binary: batch ingestion of artisan
// offering CSVs into the property graph.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/artisanalfutures/craftgraph/internal/config"
	"github.com/artisanalfutures/craftgraph/internal/graph"
	"github.com/artisanalfutures/craftgraph/internal/ingestion/csvsource"
	"github.com/artisanalfutures/craftgraph/internal/pipeline"
	"github.com/artisanalfutures/craftgraph/internal/platform/logger"
	"github.com/artisanalfutures/craftgraph/internal/platform/neo4jdb"
	"github.com/artisanalfutures/craftgraph/internal/platform/wordnet"
	"github.com/artisanalfutures/craftgraph/internal/resolve"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "craftgraph",
		Short: "Ingest artisan offering CSVs into the property graph",
		Long: `Craftgraph materializes tabular artisan offering records as a property
graph, canonicalizing free-text principles, processes and materials against
the WordNet lookup service so equivalent phrases converge on shared nodes.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file overriding environment settings")

	cmd.AddCommand(&cobra.Command{
		Use:   "load <csv>",
		Short: "Ingest a batch without clearing the graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, args[0], false)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset-and-load <csv>",
		Short: "Clear the graph, then ingest a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, args[0], true)
		},
	})
	return cmd
}

func run(ctx context.Context, configPath, csvPath string, reset bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	rows, err := csvsource.ReadFile(csvPath)
	if err != nil {
		return err
	}

	client, err := neo4jdb.New(log, cfg.Neo4j)
	if err != nil {
		return err
	}
	defer client.Close(context.Background())

	lexicon, err := wordnet.NewClient(log, cfg.Wordnet)
	if err != nil {
		return err
	}

	resolver, err := resolve.New(log, lexicon, resolve.Config{})
	if err != nil {
		return err
	}

	engine, err := graph.NewEngine(client, log)
	if err != nil {
		return err
	}

	loader, err := pipeline.NewLoader(engine, resolver, log)
	if err != nil {
		return err
	}

	var report pipeline.Report
	if reset {
		report, err = loader.ResetAndLoad(ctx, rows)
	} else {
		report, err = loader.Load(ctx, rows)
	}
	if err != nil {
		return err
	}

	log.Info("ingestion complete",
		"rows", report.Rows,
		"rows_failed", report.RowsFailed,
		"phrases_resolved", report.PhrasesResolved,
		"phrases_unresolved", report.PhrasesUnresolved,
		"lookup_failures", report.LookupFailures,
		"store_failures", report.StoreFailures,
	)
	return nil
}
