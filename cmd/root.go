package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/jcdickinson/rsdoc/internal/config"
	"github.com/jcdickinson/rsdoc/internal/docs"
	"github.com/jcdickinson/rsdoc/internal/markdown"
	"github.com/spf13/cobra"
)

// version is reported to MCP clients.
const version = "0.1.0"

var debug bool

var (
	rootKind        docs.ItemKind
	rootVersion     string
	rootFrontMatter bool
)

var rootCmd = &cobra.Command{
	Use:   "rsdoc <path>",
	Short: "Fetch Rust documentation from docs.rs as Markdown",
	Long: `Resolve a Rust item path to its docs.rs page and print the page as Markdown.
When --kind is not given, the item type is looked up in the parent module's listing.`,
	Example: `  rsdoc serde::Serialize
  rsdoc --kind struct tokio::sync::Mutex
  rsdoc --version 1.0.210 serde::de::Deserializer
  rsdoc --front-matter std::collections::HashMap`,
	Args: cobra.ExactArgs(1),
	Run:  runRoot,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.Flags().Var(&rootKind, "kind", "item type token (struct, fn, trait, ...); inferred when omitted")
	rootCmd.Flags().StringVar(&rootVersion, "version", "", `crate version (default "latest")`)
	rootCmd.Flags().BoolVar(&rootFrontMatter, "front-matter", false, "prefix output with uri, kind and source")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(searchCratesCmd)
	rootCmd.AddCommand(kindsCmd)
	rootCmd.AddCommand(logsCmd)
}

// setup loads the configuration and installs a stderr logger at the
// configured level, or at debug level when --debug is set.
func setup() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	level := cfg.Log.Level
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return cfg
}

// newClient wires the HTTP fetcher and Markdown converter into a docs client.
func newClient(cfg *config.Config, logger *slog.Logger) *docs.Client {
	fetcher := docs.NewHTTPFetcher(
		docs.WithTimeout(cfg.Docs.Timeout),
		docs.WithUserAgent(cfg.Docs.UserAgent),
		docs.WithRateLimit(cfg.Docs.RequestsPerSecond),
	)
	return docs.NewClient(fetcher, markdown.NewConverter(),
		docs.WithBaseURL(cfg.Docs.BaseURL),
		docs.WithCratesIOURL(cfg.Docs.CratesIOURL),
		docs.WithLogger(logger),
	)
}

func runRoot(cmd *cobra.Command, args []string) {
	cfg := setup()
	client := newClient(cfg, slog.Default())

	id, err := docs.ParseIdentifier(args[0], "", rootVersion)
	if err != nil {
		slog.Error("invalid path", "path", args[0], "error", err)
		os.Exit(1)
	}
	id.Kind = rootKind

	page, err := client.Fetch(context.Background(), id)
	if err != nil {
		slog.Error("fetch failed", "path", args[0], "error", err)
		os.Exit(1)
	}

	fmt.Print(render(id, page, rootFrontMatter))
}

// render returns the page Markdown, optionally prefixed with front matter
// describing where it came from.
func render(id docs.Identifier, page *docs.Page, frontMatter bool) string {
	if !frontMatter {
		return page.Markdown
	}
	return markdown.AddFrontMatter(page.Markdown, map[string]string{
		"uri":    id.URI(),
		"kind":   page.Kind.String(),
		"source": page.URL,
	})
}
