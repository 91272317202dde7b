package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <crate>",
	Short: "Fetch a crate, module or item page by docs.rs file name",
	Long: `Fetch documentation from the latest docs.rs release without type inference.
The item path names the page file, e.g. "struct.Mutex" or "trait.Serialize".`,
	Example: `  rsdoc fetch serde
  rsdoc fetch tokio -m sync
  rsdoc fetch tokio -m sync -i struct.Mutex`,
	Args: cobra.ExactArgs(1),
	Run:  runFetch,
}

var (
	fetchModule   string
	fetchItemPath string
)

func init() {
	fetchCmd.Flags().StringVarP(&fetchModule, "module", "m", "", "module within the crate (a::b)")
	fetchCmd.Flags().StringVarP(&fetchItemPath, "item", "i", "", "item page, e.g. struct.Mutex")
}

func runFetch(cmd *cobra.Command, args []string) {
	cfg := setup()
	client := newClient(cfg, slog.Default())

	page, err := client.FetchCrateDocs(context.Background(), args[0], fetchModule, fetchItemPath)
	if err != nil {
		slog.Error("fetch failed", "crate", args[0], "error", err)
		os.Exit(1)
	}
	fmt.Print(page.Markdown)
}
