package files

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "out.csv")

		err := WriteAtomic(path, func(w io.Writer) error {
			_, err := io.WriteString(w, "date\n2022-01-01\n")
			return err
		})
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "date\n2022-01-01\n", string(content))
	})

	t.Run("replaces existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		require.NoError(t, WriteAtomic(path, func(w io.Writer) error {
			_, err := io.WriteString(w, "new")
			return err
		}))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(content))
	})

	t.Run("failed write leaves nothing behind", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.csv")
		require.NoError(t, os.WriteFile(path, []byte("previous"), 0644))

		boom := errors.New("boom")
		err := WriteAtomic(path, func(w io.Writer) error {
			_, _ = io.WriteString(w, "partial")
			return boom
		})
		assert.ErrorIs(t, err, boom)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "previous", string(content))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}
