package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetVersion(t *testing.T) {
	defer SetVersion(version, commit, date)

	SetVersion("1.0.0", "abc123", "2026-01-01")
	assert.Equal(t, "1.0.0", version)
	assert.Equal(t, "abc123", commit)
	assert.Equal(t, "2026-01-01", date)
}

func TestVersionFlag(t *testing.T) {
	defer SetVersion(version, commit, date)
	SetVersion("1.2.3", "deadbeef", "2026-01-01")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "arcgallery 1.2.3")
	assert.Contains(t, out.String(), "commit: deadbeef")
}

func TestRootCommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"run", "layout", "replay"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
}

func TestLayoutCommand(t *testing.T) {
	path := writeManifest(t, testManifest)

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"layout", path, "--width", "1000"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "Holiday")
	assert.Contains(t, out.String(), "702.00")
	assert.Contains(t, out.String(), "Bridge")
}

func TestLayoutCommandMissingManifest(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"layout", "does-not-exist.toml"})
	assert.Error(t, root.ExecuteContext(context.Background()))
}

func TestRunNeedsManifest(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"run"})
	assert.Error(t, root.ExecuteContext(context.Background()))
}

func TestWindowTitle(t *testing.T) {
	assert.Equal(t, "Flag", windowTitle("Flag", "Manifest"))
	assert.Equal(t, "Manifest", windowTitle("", "Manifest"))
	assert.Equal(t, "arcgallery", windowTitle("", ""))
}
