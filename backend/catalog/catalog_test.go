// ABOUTME: Tests for catalog loading and validation
// ABOUTME: Covers embedded catalogs, file loading, and malformed documents

package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markalston/workflow-sizer/backend/models"
)

func TestBuiltinDefault(t *testing.T) {
	c, err := Builtin("default")
	require.NoError(t, err)

	assert.Equal(t, "default", c.Name())
	assert.Equal(t, []string{
		"2.6.0", "2.6.3", "2.7.0", "2.7.3", "2.8.0", "2.8.4", "2.9.0", "2.9.3", "3.0.0",
	}, c.IDs())

	entry, ok := c.Lookup("2.8.0")
	require.True(t, ok)
	assert.Equal(t, models.StatusRecommended, entry.Status)
	assert.Equal(t, "2024-01", entry.Released)
	assert.Equal(t, "3.8", entry.MinRuntime)

	beta, ok := c.Lookup("3.0.0")
	require.True(t, ok)
	assert.Equal(t, models.StatusBeta, beta.Status)
	assert.Equal(t, "3.10", beta.MinRuntime)
}

func TestBuiltinExtended(t *testing.T) {
	c, err := Builtin("extended")
	require.NoError(t, err)

	assert.Equal(t, 12, c.Len())
	entry, ok := c.Lookup("2.10.4")
	require.True(t, ok)
	assert.Equal(t, models.StatusLatest, entry.Status)
}

func TestBuiltinUnknown(t *testing.T) {
	_, err := Builtin("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownCatalog))
	assert.Contains(t, err.Error(), "default")
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"default", "extended"}, Names())
}

func TestDefaultDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { Default() })
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	doc := `entries:
  - version: "1.0.0"
    released: "2020-01"
    status: "stable"
    min_runtime: "3.6"
  - version: "1.1.0"
    released: "2020-06"
    status: "Recommended"
    min_runtime: "3.7"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, c.Name())
	assert.Equal(t, []string{"1.0.0", "1.1.0"}, c.IDs())

	entry, _ := c.Lookup("1.1.0")
	assert.Equal(t, models.StatusRecommended, entry.Status)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestResolvePrefersPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.yaml")
	doc := "name: one\nentries:\n  - version: \"9.9.9\"\n    status: \"beta\"\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := Resolve("extended", path)
	require.NoError(t, err)
	assert.Equal(t, "one", c.Name())

	c, err = Resolve("", "")
	require.NoError(t, err)
	assert.Equal(t, "default", c.Name())
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "empty",
			doc:     "name: empty\nentries: []\n",
			wantErr: "no entries",
		},
		{
			name:    "duplicate version",
			doc:     "entries:\n  - version: \"1.0\"\n    status: stable\n  - version: \"1.0\"\n    status: beta\n",
			wantErr: "duplicate version",
		},
		{
			name:    "unknown status",
			doc:     "entries:\n  - version: \"1.0\"\n    status: ancient\n",
			wantErr: "unknown lifecycle status",
		},
		{
			name:    "missing version",
			doc:     "entries:\n  - status: stable\n",
			wantErr: "version is required",
		},
		{
			name:    "unknown field",
			doc:     "entries:\n  - version: \"1.0\"\n    status: stable\n    python: \"3.8\"\n",
			wantErr: "field python not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("test", []byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCatalogEntriesReturnsCopy(t *testing.T) {
	c := Default()
	entries := c.Entries()
	entries[0].Version = "mutated"

	assert.Equal(t, "2.6.0", c.Entries()[0].Version)
}
