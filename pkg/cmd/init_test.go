package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand(t *testing.T) {
	cmd := InitCommand(BuildInfo{
		AppName: "app",
	})

	assert.Equal(t, "app", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	require.Len(t, cmd.Commands(), 6)

	subCmds := cmd.Commands()
	names := make([]string, 0, len(subCmds))

	for _, sub := range subCmds {
		names = append(names, sub.Name())
	}

	assert.Contains(t, names, "scrape")
	assert.Contains(t, names, "search")
	assert.Contains(t, names, "list")
	assert.Contains(t, names, "find-version")
	assert.Contains(t, names, "remove")
	assert.Contains(t, names, "fetch-url")

	assert.Equal(t, "info", cmd.PersistentFlags().Lookup("log-level").DefValue)
	assert.Equal(t, "true", cmd.PersistentFlags().Lookup("log-text").DefValue)
	assert.Equal(t, "runtime/config.yml", cmd.PersistentFlags().Lookup("config").DefValue)
	assert.Equal(t, "false", cmd.PersistentFlags().Lookup("verbose").DefValue)
	assert.Equal(t, "false", cmd.PersistentFlags().Lookup("silent").DefValue)
}
