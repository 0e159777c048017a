package cmd

import (
	"fmt"
	"log/slog"
	"os"
)

// initLogger configures the default slog logger from the CLI's global flags.
// --verbose forces debug level; --silent forces error level; otherwise
// --log-level is honored. --log-text selects a human-readable handler,
// otherwise structured JSON is used.
func initLogger(flags *cmdFlags) error {
	var level slog.Level

	switch {
	case flags.Silent:
		level = slog.LevelError
	case flags.Verbose:
		level = slog.LevelDebug
	default:
		if err := level.UnmarshalText([]byte(flags.LogLevel)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", flags.LogLevel, err)
		}
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if flags.TextFormat {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))

	return nil
}
