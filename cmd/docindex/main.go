// Command docindex crawls and indexes software documentation for retrieval
// by AI coding agents.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ksysoev/docindex/pkg/cmd"
)

// version and appName are injected at build time via -ldflags.
var (
	version = "dev"
	appName = "docindex"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cmd.InitCommand(cmd.BuildInfo{Version: version, AppName: appName})

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
