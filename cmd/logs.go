package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"

	"github.com/jcdickinson/rsdoc/internal/config"
	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View the MCP server log file",
	Long:  `Show the tail of the log written by "rsdoc serve", or print its location with --path.`,
	Run:   runLogs,
}

var (
	logsFollow bool
	logsLines  int
	logsPath   bool
)

func init() {
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "follow log output")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 50, "number of lines to show")
	logsCmd.Flags().BoolVar(&logsPath, "path", false, "print the log file path and exit")
}

func runLogs(cmd *cobra.Command, args []string) {
	logPath := config.LogPath()
	if logsPath {
		fmt.Println(logPath)
		return
	}

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		fmt.Printf("no log file at %s (rsdoc serve has not run yet)\n", logPath)
		return
	}

	tailArgs := []string{"-n", strconv.Itoa(logsLines)}
	if logsFollow {
		tailArgs = append(tailArgs, "-f")
	}
	tailArgs = append(tailArgs, logPath)

	tail := exec.Command("tail", tailArgs...)
	tail.Stdout = os.Stdout
	tail.Stderr = os.Stderr
	if err := tail.Run(); err != nil {
		slog.Error("tail failed", "path", logPath, "error", err)
		os.Exit(1)
	}
}
