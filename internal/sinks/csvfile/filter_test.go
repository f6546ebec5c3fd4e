package csvfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestReadIDColumn(t *testing.T) {
	t.Run("collects trimmed non-empty identifiers", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "cmp.csv",
			"NCT_ID,note\nNCT001,first\n NCT002 ,second\n,blank\n")

		ids, err := ReadIDColumn(path, "NCT_ID")
		require.NoError(t, err)

		assert.Len(t, ids, 2)
		assert.Contains(t, ids, "NCT001")
		assert.Contains(t, ids, "NCT002")
	})

	t.Run("missing column is an error", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "cmp.csv", "id,note\nNCT001,x\n")

		_, err := ReadIDColumn(path, "NCT_ID")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "NCT_ID")
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := ReadIDColumn(filepath.Join(t.TempDir(), "nope.csv"), "NCT_ID")
		assert.Error(t, err)
	})
}

func TestFilterByID(t *testing.T) {
	const data = "nct_id,title\nNCT001,First\nNCT002,Second\nNCT003,Third\n"

	t.Run("keeps only matching rows and preserves the header", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "out.csv", data)

		kept, total, err := FilterByID(path, "nct_id", map[string]struct{}{
			"NCT001": {},
			"NCT003": {},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, kept)
		assert.Equal(t, 3, total)

		rows := readCSV(t, path)
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"nct_id", "title"}, rows[0])
		assert.Equal(t, "NCT001", rows[1][0])
		assert.Equal(t, "NCT003", rows[2][0])
	})

	t.Run("empty keep set leaves only the header", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "out.csv", data)

		kept, total, err := FilterByID(path, "nct_id", nil)
		require.NoError(t, err)
		assert.Equal(t, 0, kept)
		assert.Equal(t, 3, total)

		rows := readCSV(t, path)
		assert.Len(t, rows, 1)
	})
}
