package cmd

import (
	"fmt"

	"github.com/ksysoev/docindex/pkg/tools"
	"github.com/spf13/cobra"
)

// newFindVersionCmd builds the `find-version <library>` command (§6 CLI table).
func newFindVersionCmd(flags *cmdFlags) *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "find-version <library>",
		Short: "Resolve the best stored version for a library",
		Long:  "Resolve a library's best matching stored version against a target version query, using the same semver resolution table as search.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFindVersion(cmd, flags, args[0], version)
		},
	}

	cmd.Flags().StringVarP(&version, "version", "v", "", "target version (empty or \"latest\" resolves to the highest stable release)")

	return cmd
}

func runFindVersion(cmd *cobra.Command, flags *cmdFlags, library, version string) error {
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

	resp, err := a.tools.FindVersion(cmd.Context(), tools.FindVersionRequest{Library: library, TargetVersion: version})
	if err != nil {
		return fmt.Errorf("find-version failed: %w", err)
	}

	out := cmd.OutOrStdout()

	if resp.Found {
		fmt.Fprintf(out, "%s\n", resp.Version) //nolint:forbidigo // CLI output is intentional
	}

	if resp.Unversioned {
		fmt.Fprintln(out, "unversioned docs also available") //nolint:forbidigo // CLI output is intentional
	}

	return nil
}
