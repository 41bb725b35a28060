package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/arcgallery/internal/manifest"
)

const testManifest = `
title = "Holiday"

[[items]]
image = "img/bridge.jpg"
caption = "Bridge"

[[items]]
image = "img/desk.jpg"
caption = "Desk"

[[items]]
image = "img/falls.jpg"
caption = "Falls"
`

// writeManifest writes body to a manifest file in a temp dir and returns its path.
func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gallery.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func loadManifest(t *testing.T) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Load(writeManifest(t, testManifest))
	require.NoError(t, err)
	return m
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
