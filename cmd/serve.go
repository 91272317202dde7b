package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jcdickinson/rsdoc/internal/config"
	"github.com/jcdickinson/rsdoc/internal/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as MCP server over stdio",
	Long: `Serve the rustdoc, fetch_docs and search_crates tools and the rsdoc:// resource
over stdio. Logs go to the log file shown by "rsdoc logs".`,
	Run: runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// stdout carries the protocol, so logs go to a file.
	logPath := config.LogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		slog.Error("failed to create log directory", "error", err)
		os.Exit(1)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	level := cfg.Log.Level
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	server := mcp.NewServer(newClient(cfg, logger), version, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Run() }()

	logger.Info("serving", "base_url", cfg.Docs.BaseURL, "pid", os.Getpid())
	if err := waitForSignal(errCh); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("stopped")
}

func waitForSignal(errCh chan error) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		slog.Info("received signal", "signal", sig.String())
		return nil
	case err := <-errCh:
		return err
	}
}
