package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/decompose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "decompose version "+decompose.Version+"\n", out.String())
}

func TestCommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	joined := strings.Join(names, ",")
	for _, want := range []string{"eval", "ask", "serve", "mcp", "version"} {
		assert.Contains(t, joined, want)
	}
}

func TestEvalCommand_RejectsUnknownDataset(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"eval", "tomi"})
	err := rootCmd.Execute()
	assert.ErrorContains(t, err, "unknown dataset")
}
