package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newListCmd builds the `list` command (§6 CLI table).
func newListCmd(flags *cmdFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List indexed libraries",
		Long:  "List every (library, versions) pair currently indexed in the store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, flags)
		},
	}
}

func runList(cmd *cobra.Command, flags *cmdFlags) error {
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

	libs, err := a.tools.ListLibraries(cmd.Context())
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	out := cmd.OutOrStdout()

	if len(libs) == 0 {
		fmt.Fprintln(out, "no libraries indexed") //nolint:forbidigo // CLI output is intentional
		return nil
	}

	for _, lib := range libs {
		versions := "unversioned"
		if len(lib.Versions) > 0 {
			versions = strings.Join(lib.Versions, ", ")
		}

		fmt.Fprintf(out, "%s\t%s\t%d docs\n", lib.Library, versions, lib.DocCount) //nolint:forbidigo // CLI output is intentional
	}

	return nil
}
