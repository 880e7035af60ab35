package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRootCommand_RejectsUnknownFlags verifies that the root command
// rejects unknown flags instead of silently showing help
func TestRootCommand_RejectsUnknownFlags(t *testing.T) {
	_, _, err := execute(t, "", "--nonexistent-flag")
	require.Error(t, err, "Unknown flag should cause an error")
	assert.Contains(t, err.Error(), "unknown flag", "Error should mention unknown flag")
}

// TestRootCommand_RejectsSubcommandFlags tests that flags meant for
// subcommands (like --from) are rejected when passed to root command
func TestRootCommand_RejectsSubcommandFlags(t *testing.T) {
	_, _, err := execute(t, "", "--from", "2024-11-01")
	require.Error(t, err, "Subcommand flag passed to root should cause error")
	assert.Contains(t, err.Error(), "unknown flag: --from",
		"Error should indicate --from is unknown to root command")
}

func TestRootCommand_ShowsHelp(t *testing.T) {
	out, _, err := execute(t, "")
	require.NoError(t, err)
	assert.Contains(t, out, "fily menu")
	for _, name := range []string{"init", "menu", "available", "sales", "search", "profit", "render", "publish"} {
		assert.Contains(t, out, name)
	}
}

// TestRootCommand_AcceptsValidSubcommand tests that valid subcommands
// still work with strict flag parsing
func TestRootCommand_AcceptsValidSubcommand(t *testing.T) {
	testRoot := &cobra.Command{
		Use:   "fily",
		Short: "Test root command",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
	}

	subcommandExecuted := false
	subCmd := &cobra.Command{
		Use:   "available",
		Short: "Test subcommand",
		RunE: func(cmd *cobra.Command, args []string) error {
			subcommandExecuted = true
			return nil
		},
	}
	subCmd.Flags().StringP("output", "o", "default", "Output format")
	testRoot.AddCommand(subCmd)

	testRoot.SetArgs([]string{"available", "-o", "jsonl"})
	buf := new(bytes.Buffer)
	testRoot.SetOut(buf)
	testRoot.SetErr(buf)

	require.NoError(t, testRoot.Execute())
	assert.True(t, subcommandExecuted, "Subcommand should have been executed")
}

func TestSetVersionInfo(t *testing.T) {
	previous := rootCmd.Version
	t.Cleanup(func() { rootCmd.Version = previous })

	SetVersionInfo("1.2.0", "abc123", "2024-11-15")
	assert.Equal(t, "1.2.0 (commit: abc123, built: 2024-11-15)", rootCmd.Version)
}
