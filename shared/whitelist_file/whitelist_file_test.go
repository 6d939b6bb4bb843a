package whitelistfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "whitelist.txt")
	content := "# office\n203.0.113.0/24\n\n  198.51.100.7/32  \r\n# vpn\n192.0.2.10/32"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	entries, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"203.0.113.0/24", "198.51.100.7/32", "192.0.2.10/32"}, entries)
}

func TestLoadEmptyPath(t *testing.T) {
	entries, err := Load("")
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorContains(t, err, "failed to open whitelist file")
}
