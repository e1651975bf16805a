// Package scan implements the concurrent scan-and-filter pipeline: candidate
// discovery through the OS content index, per-path metadata resolution,
// safety/exclusion/age/size filtering, and incremental result emission with
// cooperative cancellation.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TypeGroup is the coarse semantic classification of a file.
type TypeGroup string

const (
	GroupImage   TypeGroup = "image"
	GroupVideo   TypeGroup = "video"
	GroupArchive TypeGroup = "archive"
	GroupOther   TypeGroup = "other"
)

// Config describes a single scan invocation. It is immutable once handed
// to the controller; a new scan takes a new Config.
type Config struct {
	Roots           []string
	MinAgeDays      int
	MinSizeBytes    int64
	ExcludePaths    []string
	IgnoreDevPreset bool
}

// Validate rejects configurations that must never reach the pipeline.
// Validation failures surface to the caller; nothing else in the pipeline
// does.
func (c Config) Validate() error {
	if len(c.Roots) == 0 {
		return fmt.Errorf("at least one scan root is required")
	}
	for _, root := range c.Roots {
		info, err := os.Stat(root)
		if err != nil {
			return fmt.Errorf("scan root %s: %w", root, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("scan root %s is not a directory", root)
		}
	}
	if c.MinAgeDays < 0 {
		return fmt.Errorf("min age days must be >= 0, got %d", c.MinAgeDays)
	}
	if c.MinSizeBytes < 0 {
		return fmt.Errorf("min size bytes must be >= 0, got %d", c.MinSizeBytes)
	}
	return nil
}

// FileItem is one qualifying file. It is built by the metadata resolver
// after a path survives the safety and exclusion gates, and never mutated
// afterwards.
type FileItem struct {
	Path           string
	DisplayName    string
	SizeBytes      int64
	LastUsedAt     time.Time // zero when the OS has no last-used record
	LastModifiedAt time.Time
	ContentType    string
	TypeGroup      TypeGroup
}

// LastUsedOrModified returns the timestamp used for age filtering:
// the last-used time when known, the modification time otherwise.
func (it FileItem) LastUsedOrModified() time.Time {
	if !it.LastUsedAt.IsZero() {
		return it.LastUsedAt
	}
	return it.LastModifiedAt
}

// Ext returns the lower-cased extension of the item's path.
func (it FileItem) Ext() string {
	return lowerExt(it.Path)
}

func lowerExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
