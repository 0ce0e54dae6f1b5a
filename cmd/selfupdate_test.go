package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelfUpdateRefusesDevelopmentBuilds(t *testing.T) {
	previous := rootCmd.Version
	defer SetVersion(previous)

	for _, version := range []string{"", "dev"} {
		t.Run("version "+version, func(t *testing.T) {
			SetVersion(version)

			cmd := newSelfUpdateCmd()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			err := cmd.RunE(cmd, nil)
			assert.ErrorContains(t, err, "cannot self-update a development version")
		})
	}
}

func TestGithubRepoSlug(t *testing.T) {
	assert.Equal(t, "aadarshjain/kubectl-mcp-server", githubRepoSlug)
}
