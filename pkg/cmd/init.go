package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// BuildInfo holds the build metadata injected at compile time.
type BuildInfo struct {
	Version string
	AppName string
}

type cmdFlags struct {
	version    string
	appName    string
	ConfigPath string `mapstructure:"config"`
	LogLevel   string `mapstructure:"log_level"`
	TextFormat bool   `mapstructure:"log_text"`
	Verbose    bool   `mapstructure:"verbose"`
	Silent     bool   `mapstructure:"silent"`
}

// InitCommand initializes the root command of the CLI application with its subcommands and flags.
func InitCommand(build BuildInfo) cobra.Command {
	flags := cmdFlags{
		version: build.Version,
		appName: build.AppName,
	}

	cmd := cobra.Command{
		Use:   flags.appName,
		Short: "Documentation indexer for AI coding agents",
		Long:  "docindex crawls library documentation, splits and embeds it, and indexes it in a hybrid vector/lexical store for agent retrieval.",
	}

	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&flags.TextFormat, "log-text", true, "log in text format, otherwise JSON")
	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "runtime/config.yml", "path to the configuration file")
	cmd.PersistentFlags().BoolVar(&flags.Verbose, "verbose", false, "force debug-level logging")
	cmd.PersistentFlags().BoolVar(&flags.Silent, "silent", false, "suppress all but error-level logging")

	for _, name := range []string{"log_level", "log_text", "verbose", "silent"} {
		if err := viper.BindEnv(name); err != nil {
			slog.Error("failed to bind env var", "name", name, "error", err)
		}
	}

	viper.AutomaticEnv()

	if err := viper.Unmarshal(&flags); err != nil {
		slog.Error("failed to unmarshal env vars", "error", err)
	}

	cmd.AddCommand(
		newScrapeCmd(&flags),
		newSearchCmd(&flags),
		newListCmd(&flags),
		newFindVersionCmd(&flags),
		newRemoveCmd(&flags),
		newFetchURLCmd(&flags),
	)

	return cmd
}
