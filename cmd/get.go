package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jcdickinson/rsdoc/internal/docs"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var getCmd = &cobra.Command{
	Use:   "get <uri>...",
	Short: "Read documentation items by URI",
	Long: `Read one or more documentation items. Each argument is an rsdoc:// URI, a bare
crate/version/path triple, or a docs.rs page URL. Pages are fetched concurrently
(bounded by docs.concurrency) and printed in argument order.`,
	Example: `  rsdoc get rsdoc://serde/latest/serde::Serialize
  rsdoc get rsdoc://tokio/1.38.0/tokio::spawn serde/latest/serde::Deserialize
  rsdoc get https://docs.rs/serde/latest/serde/trait.Serialize.html`,
	Args: cobra.MinimumNArgs(1),
	Run:  runGet,
}

var getFrontMatter bool

func init() {
	getCmd.Flags().BoolVar(&getFrontMatter, "front-matter", false, "prefix each page with uri, kind and source")
}

func runGet(cmd *cobra.Command, args []string) {
	cfg := setup()
	client := newClient(cfg, slog.Default())

	ids := make([]docs.Identifier, len(args))
	for i, arg := range args {
		id, err := docs.ParseURI(arg)
		if err != nil {
			slog.Error("invalid URI", "uri", arg, "error", err)
			os.Exit(1)
		}
		ids[i] = id
	}

	pages := make([]*docs.Page, len(ids))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(cfg.Docs.Concurrency)
	for i, id := range ids {
		g.Go(func() error {
			page, err := client.Fetch(ctx, id)
			if err != nil {
				return fmt.Errorf("%s: %w", args[i], err)
			}
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Error("get failed", "error", err)
		os.Exit(1)
	}

	for i, page := range pages {
		if i > 0 {
			fmt.Print("\n")
		}
		fmt.Print(render(ids[i], page, getFrontMatter))
	}
}
