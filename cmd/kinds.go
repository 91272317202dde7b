package cmd

import (
	"fmt"

	"github.com/jcdickinson/rsdoc/internal/docs"
	"github.com/spf13/cobra"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the item type tokens accepted by --kind",
	Run: func(cmd *cobra.Command, args []string) {
		for _, k := range docs.AllItemKinds() {
			fmt.Println(k)
		}
	},
}
