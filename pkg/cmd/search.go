package cmd

import (
	"fmt"

	"github.com/ksysoev/docindex/pkg/tools"
	"github.com/spf13/cobra"
)

type searchFlags struct {
	version    string
	limit      int
	exactMatch bool
}

// newSearchCmd builds the `search <library> <query>` command (§6 CLI table).
func newSearchCmd(flags *cmdFlags) *cobra.Command {
	sf := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search <library> <query>",
		Short: "Search indexed documentation",
		Long:  "Run a hybrid (vector + lexical) search against a library's indexed documentation and print expanded results.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, flags, sf, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&sf.version, "version", "v", "", "library version (defaults to latest)")
	cmd.Flags().IntVarP(&sf.limit, "limit", "l", 0, "maximum results to return (0 uses the tool default)")
	cmd.Flags().BoolVarP(&sf.exactMatch, "exact", "e", false, "require an exact version match")

	return cmd
}

func runSearch(cmd *cobra.Command, flags *cmdFlags, sf *searchFlags, library, query string) error {
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

	resp, err := a.tools.Search(cmd.Context(), tools.SearchRequest{
		Library:    library,
		Version:    sf.version,
		Query:      query,
		Limit:      sf.limit,
		ExactMatch: sf.exactMatch,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := cmd.OutOrStdout()

	label := resp.Version
	if resp.Unversioned {
		label = "unversioned"
	}

	fmt.Fprintf(out, "%s@%s — %d results\n", resp.Library, label, len(resp.Results)) //nolint:forbidigo // CLI output is intentional

	for i, r := range resp.Results {
		fmt.Fprintf(out, "\n%d. %s (score %.4f)\n%s\n", i+1, r.URL, r.Score, r.Content) //nolint:forbidigo // CLI output is intentional
	}

	return nil
}
