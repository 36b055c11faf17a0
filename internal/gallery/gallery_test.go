package gallery

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "gallery.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RecordAndRecent(t *testing.T) {
	s := openTestStore(t)

	id1, err := s.Record("plot", "decay.yaml", "decay.pdf", "pdf", "ab12")
	require.NoError(t, err)
	require.NotEmpty(t, id1)

	id2, err := s.Record("hist", "", "hist.png", "png", "cd34")
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	entries, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "hist", entries[0].Kind)
	assert.Equal(t, "hist.png", entries[0].Output)
	assert.Equal(t, "png", entries[0].Format)
	assert.Equal(t, "cd34", entries[0].OutputSHA256)
	assert.Equal(t, "plot", entries[1].Kind)
	assert.Equal(t, "decay.yaml", entries[1].RecipePath)
	assert.Equal(t, "pdf", entries[1].Format)
	assert.Equal(t, "ab12", entries[1].OutputSHA256)
	assert.False(t, entries[0].RenderedAt.IsZero())
}

func TestStore_RecentLimit(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 5; i++ {
		_, err := s.Record("plot", "", "fig.pdf", "pdf", "")
		require.NoError(t, err)
	}

	entries, err := s.Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestStore_Count(t *testing.T) {
	s := openTestStore(t)

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = s.Record("heatmap", "", "m.svg", "svg", "")
	require.NoError(t, err)

	n, err = s.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "gallery.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Record("plot", "", "fig.pdf", "pdf", "")
	assert.NoError(t, err)
}
