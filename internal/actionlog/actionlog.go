// Package actionlog appends an audit record for every destructive action.
package actionlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/stalefind/stalefind/internal/platform"
)

// maxLoggedItems caps the per-entry item list so the log stays readable
// after large batches.
const maxLoggedItems = 20

// Entry is one audit record, written as a single JSON line.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Count     int       `json:"count"`
	TotalSize int64     `json:"total_size"`
	Items     []string  `json:"items"`
	Truncated bool      `json:"truncated,omitempty"`
}

// Logger appends entries to a JSONL file under the platform log directory.
type Logger struct {
	path string
}

// NewLogger creates a logger writing to actions.jsonl in the platform
// log directory.
func NewLogger() (*Logger, error) {
	info, err := platform.GetInfo()
	if err != nil {
		return nil, err
	}
	return &Logger{path: filepath.Join(info.LogDir, "actions.jsonl")}, nil
}

// NewLoggerAt creates a logger writing to an explicit path.
func NewLoggerAt(path string) *Logger {
	return &Logger{path: path}
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.path
}

// Record appends one entry. Items beyond the cap are dropped and the entry
// marked truncated.
func (l *Logger) Record(action string, items []string, totalSize int64) error {
	entry := Entry{
		Timestamp: time.Now(),
		Action:    action,
		Count:     len(items),
		TotalSize: totalSize,
		Items:     items,
	}
	if len(entry.Items) > maxLoggedItems {
		entry.Items = entry.Items[:maxLoggedItems]
		entry.Truncated = true
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open action log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}
	data = append(data, '\n')

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write action log: %w", err)
	}
	return nil
}
