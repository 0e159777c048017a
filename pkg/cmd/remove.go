package cmd

import (
	"fmt"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/spf13/cobra"
)

// newRemoveCmd builds the `remove <library>` command (§6 CLI table).
func newRemoveCmd(flags *cmdFlags) *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "remove <library>",
		Short: "Remove indexed documentation for a library",
		Long:  "Delete every indexed document for a (library, version) pair.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, flags, args[0], version)
		},
	}

	cmd.Flags().StringVarP(&version, "version", "v", "", "library version (empty for unversioned)")

	return cmd
}

func runRemove(cmd *cobra.Command, flags *cmdFlags, library, version string) error {
	if err := initLogger(flags); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a, err := buildApp(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to build app: %w", err)
	}

	defer a.Close()

	if err := a.tools.Remove(cmd.Context(), core.Library{Name: library, Version: version}); err != nil {
		return fmt.Errorf("remove failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "removed %s@%s\n", library, version) //nolint:forbidigo // CLI output is intentional

	return nil
}
