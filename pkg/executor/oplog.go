package executor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sdejongh/tidynorris/pkg/models"
)

// OperationLog records every applied filesystem mutation. It is
// append-only from the caller's perspective but persisted as one JSON
// document rewritten in full, atomically, on each append. A crash
// mid-write can lose the newest entry but never corrupts earlier ones.
type OperationLog struct {
	path    string
	entries []models.OperationLogEntry
}

// NewOperationLog creates an empty log that will persist at path
func NewOperationLog(path string) *OperationLog {
	return &OperationLog{path: path}
}

// LoadOperationLog reads an existing log document from path.
// A missing file yields an empty log.
func LoadOperationLog(path string) (*OperationLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewOperationLog(path), nil
		}
		return nil, fmt.Errorf("failed to read operation log: %w", err)
	}

	var entries []models.OperationLogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse operation log: %w", err)
	}

	return &OperationLog{path: path, entries: entries}, nil
}

// Append adds an entry and rewrites the persisted document
func (l *OperationLog) Append(entry models.OperationLogEntry) error {
	l.entries = append(l.entries, entry)
	return l.flush()
}

// Entries returns a copy of all recorded entries
func (l *OperationLog) Entries() []models.OperationLogEntry {
	out := make([]models.OperationLogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries
func (l *OperationLog) Len() int {
	return len(l.entries)
}

// Path returns the log file location
func (l *OperationLog) Path() string {
	return l.path
}

// flush rewrites the whole document atomically via temp file + rename
func (l *OperationLog) flush() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal operation log: %w", err)
	}

	tmpPath := l.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write operation log: %w", err)
	}

	if err := os.Rename(tmpPath, l.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize operation log: %w", err)
	}

	return nil
}
