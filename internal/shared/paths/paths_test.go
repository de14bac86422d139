package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("WEBDESK_TEST_DIR", "/srv/webdesk")

	tests := []struct {
		in   string
		want string
	}{
		{"data/webdesk.db", "data/webdesk.db"},
		{"./data//x/../webdesk.db", "data/webdesk.db"},
		{"~/webdesk.db", filepath.Join(home, "webdesk.db")},
		{"$WEBDESK_TEST_DIR/db.sqlite", "/srv/webdesk/db.sqlite"},
		{":memory:", ":memory:"},
		{"file:test.db?cache=shared", "file:test.db?cache=shared"},
	}
	for _, tt := range tests {
		got, err := Expand(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err = Expand("  ")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestEnsureParent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "webdesk.db")

	require.NoError(t, EnsureParent(path))
	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.NoError(t, EnsureParent(InMemoryDSN))
	assert.NoError(t, EnsureParent("webdesk.db"))
}

func TestWithin(t *testing.T) {
	assert.True(t, Within("/srv/catalog", "/srv/catalog/apps.toml"))
	assert.True(t, Within("/srv/catalog", "/srv/catalog"))
	assert.False(t, Within("/srv/catalog", "/srv/catalog/../secret.toml"))
	assert.False(t, Within("/srv/catalog", "/srv/catalogue/apps.toml"))
	assert.True(t, Within("catalog", "catalog/..apps.toml"))
}
