package sink

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterDefaultFilename(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	w.now = func() time.Time {
		return time.Date(2024, 7, 15, 14, 30, 0, 0, time.UTC)
	}

	path, err := w.Write("category_spend", "", map[string]string{"hello": "world"})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "category_spend_20240715_143000.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "world", got["hello"])
}

func TestWriterExplicitFilename(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	path, err := w.Write("search", "supermarket_expenses.json", []int{1, 2, 3})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "supermarket_expenses.json"), path)
}

func TestWriterCreatesReportsDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	w := NewWriter(dir)

	_, err := w.Write("dashboard", "out.json", struct{}{})

	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "out.json"))
	assert.NoError(t, err)
}

func TestWriterIndentsOutput(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	path, err := w.Write("dashboard", "pretty.json", map[string]int{"a": 1})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"a\": 1")
}
