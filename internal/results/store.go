// Package results persists analysis records and repairs the identity block of
// records written by earlier runs.
package results

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/complianceworks/fda483/constants"
	"github.com/complianceworks/fda483/internal/classify"
)

// Store reads and writes record files under a single output directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger}
}

func (s *Store) Dir() string { return s.dir }

// Path returns the record path for a source PDF name.
func (s *Store) Path(pdfName string) string {
	return filepath.Join(s.dir, constants.ResultFilename(pdfName))
}

// Write persists one analysis record for a source PDF.
func (s *Store) Write(pdfName string, res classify.Result) (string, error) {
	return s.WriteJSON(constants.ResultFilename(pdfName), res)
}

// WriteJSON persists v as indented JSON under the store directory, creating
// the directory on first use.
func (s *Store) WriteJSON(name string, v any) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", s.dir, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	s.logger.Debug("results.store.written", "path", path, "bytes", len(data))
	return path, nil
}

// List returns the record files in name order.
func (s *Store) List() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*"+constants.ResultSuffix))
	if err != nil {
		return nil, fmt.Errorf("list records in %s: %w", s.dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Exists reports whether a record already exists for a source PDF.
func (s *Store) Exists(pdfName string) bool {
	_, err := os.Stat(s.Path(pdfName))
	return err == nil
}

// ReadRecord decodes one record file into a generic document so fields this
// version does not model survive a rewrite.
func (s *Store) ReadRecord(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read record %s: %w", path, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse record %s: %w", path, err)
	}
	return doc, nil
}
