package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var searchCratesCmd = &cobra.Command{
	Use:   "search-crates <query>",
	Short: "Search crates.io for Rust crates",
	Example: `  rsdoc search-crates serde
  rsdoc search-crates "async http client"
  rsdoc search-crates --limit 5 tokio
  rsdoc search-crates --docs-rs tokio`,
	Args: cobra.ExactArgs(1),
	Run:  runSearchCrates,
}

var (
	searchCratesLimit  int
	searchCratesDocsRs bool
)

func init() {
	searchCratesCmd.Flags().IntVar(&searchCratesLimit, "limit", 20, "max results")
	searchCratesCmd.Flags().BoolVar(&searchCratesDocsRs, "docs-rs", false, "search docs.rs releases instead of crates.io")
}

func runSearchCrates(cmd *cobra.Command, args []string) {
	cfg := setup()
	client := newClient(cfg, slog.Default())
	ctx := context.Background()

	if searchCratesDocsRs {
		md, err := client.SearchDocsRs(ctx, args[0])
		if err != nil {
			slog.Error("search failed", "error", err)
			os.Exit(1)
		}
		fmt.Print(md)
		return
	}

	results, err := client.SearchCratesIO(ctx, args[0], searchCratesLimit)
	if err != nil {
		slog.Error("search failed", "error", err)
		os.Exit(1)
	}

	if len(results) == 0 {
		fmt.Println("no results")
		return
	}

	for _, r := range results {
		fmt.Printf("  %-30s %s  (%d downloads)\n", r.Name, r.MaxVersion, r.Downloads)
		if r.Description != "" {
			fmt.Printf("    %s\n", r.Description)
		}
	}
}
