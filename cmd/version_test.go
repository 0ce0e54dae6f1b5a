package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	previous := rootCmd.Version
	defer SetVersion(previous)
	SetVersion("1.2.3")

	var out bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	assert.Equal(t, "kubectl-mcp-server version 1.2.3\n", out.String())
}

func TestRootCommandHasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"version", "self-update", "serve"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestSetVersion(t *testing.T) {
	previous := rootCmd.Version
	defer SetVersion(previous)

	SetVersion("9.9.9")
	require.Equal(t, "9.9.9", rootCmd.Version)
}
