package files

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiscovery(t *testing.T) {
	basePath := "/test/base"
	discovery := NewDiscovery(basePath)

	assert.NotNil(t, discovery)
	assert.Equal(t, basePath, discovery.basePath)
}

func TestListSources(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		dirs     []string
		expected []string
	}{
		{
			name:     "all extensions are listed",
			files:    []string{"closed-sales.csv", "notes.txt", "months-supply-updated.xlsx"},
			expected: []string{"closed-sales.csv", "months-supply-updated.xlsx", "notes.txt"},
		},
		{
			name:     "sorted by name",
			files:    []string{"rate-of-inflation.csv", "fed-funds-rate.csv", "population-growth.csv"},
			expected: []string{"fed-funds-rate.csv", "population-growth.csv", "rate-of-inflation.csv"},
		},
		{
			name:     "lock and hidden files ignored",
			files:    []string{"~$rates.xlsx", ".DS_Store", "rates.xlsx"},
			expected: []string{"rates.xlsx"},
		},
		{
			name:     "subdirectories ignored",
			files:    []string{"closed-sales.csv"},
			dirs:     []string{"archive"},
			expected: []string{"closed-sales.csv"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			groupDir := filepath.Join(tmpDir, "dependent-vars")
			require.NoError(t, os.MkdirAll(groupDir, 0755))

			for _, name := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(groupDir, name), []byte("date\n"), 0644))
			}
			for _, name := range tt.dirs {
				require.NoError(t, os.MkdirAll(filepath.Join(groupDir, name), 0755))
			}

			files, err := NewDiscovery(tmpDir).ListSources("dependent-vars")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, Names(files))
			for _, f := range files {
				assert.Equal(t, filepath.Join(groupDir, f.Name), f.Path)
				assert.Equal(t, int64(5), f.Size)
			}
		})
	}
}

func TestListSources_Errors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := NewDiscovery(t.TempDir()).ListSources("independent-vars")
		assert.ErrorIs(t, err, ErrDirectoryNotFound)
	})

	t.Run("empty directory", func(t *testing.T) {
		tmpDir := t.TempDir()
		_, err := NewDiscovery("").ListSources(tmpDir)
		assert.ErrorIs(t, err, ErrNoSources)
	})

	t.Run("only ignored entries", func(t *testing.T) {
		tmpDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "~$book.xlsx"), nil, 0644))
		_, err := NewDiscovery("").ListSources(tmpDir)
		assert.ErrorIs(t, err, ErrNoSources)
	})
}

// vanishedEntry is a directory entry whose file disappears before it is stat'ed
type vanishedEntry struct {
	name string
}

func (e vanishedEntry) Name() string               { return e.name }
func (e vanishedEntry) IsDir() bool                { return false }
func (e vanishedEntry) Type() fs.FileMode          { return 0 }
func (e vanishedEntry) Info() (fs.FileInfo, error) { return nil, fs.ErrNotExist }

func TestCollectSources_UnreadableEntry(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "closed-sales.csv"), []byte("date,closed_sales\n"), 0644))
	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)

	files, err := collectSources(tmpDir, entries)
	require.NoError(t, err)
	assert.Equal(t, []string{"closed-sales.csv"}, Names(files))

	entries = append(entries, vanishedEntry{name: "homes-for-sale.csv"})
	_, err = collectSources(tmpDir, entries)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "homes-for-sale.csv")

	hidden := []fs.DirEntry{vanishedEntry{name: ".DS_Store"}, vanishedEntry{name: "~$rates.xlsx"}}
	files, err = collectSources(tmpDir, hidden)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscovery_Resolve(t *testing.T) {
	d := NewDiscovery("/base")
	assert.Equal(t, filepath.Join("/base", "data"), d.resolve("data"))
	assert.Equal(t, "/abs/data", d.resolve("/abs/data"))
	assert.Equal(t, "data", NewDiscovery("").resolve("data"))
}
