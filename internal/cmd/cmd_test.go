package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := NewRootCommand("ci-notifier")

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["send"])
	assert.True(t, names["version"])
}

func TestVersionCommand(t *testing.T) {
	root := NewRootCommand("ci-notifier")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "ci-notifier, version"))
}

func TestSendWithoutArgumentsThroughRoot(t *testing.T) {
	t.Setenv("NOTIFIER_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	root := NewRootCommand("ci-notifier")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"send"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "Incorrect number of arguments provided.  Aborting.\n", out.String())
}
