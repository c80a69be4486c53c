package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "user_settings.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeSettings(t, `{
		"user_currencies": ["USD", "EUR"],
		"user_stocks": ["AAPL", "AMZN"]
	}`)

	got := Load(path)

	assert.Equal(t, []string{"USD", "EUR"}, got.Currencies)
	assert.Equal(t, []string{"AAPL", "AMZN"}, got.Stocks)
}

func TestLoadMissingFile(t *testing.T) {
	got := Load(filepath.Join(t.TempDir(), "nope.json"))

	// Missing settings disable quotes instead of failing.
	assert.Empty(t, got.Currencies)
	assert.Empty(t, got.Stocks)
	assert.NotNil(t, got.Currencies)
	assert.NotNil(t, got.Stocks)
}

func TestLoadCorruptFile(t *testing.T) {
	path := writeSettings(t, `{"user_currencies": [`)

	got := Load(path)

	assert.Empty(t, got.Currencies)
	assert.Empty(t, got.Stocks)
}

func TestLoadPartialFile(t *testing.T) {
	path := writeSettings(t, `{"user_currencies": ["USD"]}`)

	got := Load(path)

	assert.Equal(t, []string{"USD"}, got.Currencies)
	assert.Empty(t, got.Stocks)
	assert.NotNil(t, got.Stocks)
}
