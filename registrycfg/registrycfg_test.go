package registrycfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "providers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidManifest(t *testing.T) {
	path := writeManifest(t, `
plugins:
  - namespace: audio
    path: /usr/local/bin/mtl-audio
    args: ["--verbose"]
  - namespace: pdf
    path: /usr/local/bin/mtl-pdf
`)
	m, err := Load(path)
	require.NoError(t, err)
	require.Len(t, m.Plugins, 2)
	assert.Equal(t, "audio", m.Plugins[0].Namespace)
	assert.Equal(t, []string{"--verbose"}, m.Plugins[0].Args)
	assert.Equal(t, "pdf", m.Plugins[1].Namespace)
}

func TestLoadMissingNamespaceIsError(t *testing.T) {
	path := writeManifest(t, `
plugins:
  - path: /usr/local/bin/mtl-audio
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingPathIsError(t *testing.T) {
	path := writeManifest(t, `
plugins:
  - namespace: audio
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadNonexistentFileIsError(t *testing.T) {
	_, err := Load("/nonexistent/path/providers.yaml")
	require.Error(t, err)
}

func TestLoadMalformedYAMLIsError(t *testing.T) {
	path := writeManifest(t, "plugins: [this is not: valid: yaml")
	_, err := Load(path)
	require.Error(t, err)
}
