// Package sink writes report payloads as JSON files under a reports
// directory. Aggregators return plain data; callers compose them with the
// sink explicitly, so nothing intercepts return values on the way out.
package sink

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// filenameTimeFormat stamps default report filenames.
const filenameTimeFormat = "20060102_150405"

// Writer persists reports under a single directory.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter creates a report writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// Write marshals v as indented JSON into filename under the reports
// directory. An empty filename derives one from the report name and the
// current time, e.g. "category_spend_20240715_143000.json". The payload must
// already be JSON-safe: dates pre-formatted as strings and absent numerics
// as null. It returns the path written.
func (w *Writer) Write(name, filename string, v any) (string, error) {
	if err := os.MkdirAll(w.dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	if filename == "" {
		filename = fmt.Sprintf("%s_%s.json", name, w.now().Format(filenameTimeFormat))
	}
	path := filepath.Join(w.dir, filename)

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report %s: %w", name, err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", name, err)
	}

	slog.Info("Report saved", "report", name, "path", path)
	return path, nil
}
