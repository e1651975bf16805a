package scan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stalefind/stalefind/internal/testutil"
)

func TestConfigValidate(t *testing.T) {
	f := testutil.NewFixture(t)
	file := f.CreateFreshFile("Downloads/file.txt", 1)

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Roots: []string{f.DownloadsDir}}, false},
		{"valid_multiple_roots", Config{Roots: []string{f.DownloadsDir, f.DocumentsDir}}, false},
		{"no_roots", Config{}, true},
		{"missing_root", Config{Roots: []string{f.Path("nope")}}, true},
		{"root_is_file", Config{Roots: []string{file}}, true},
		{"negative_age", Config{Roots: []string{f.DownloadsDir}, MinAgeDays: -1}, true},
		{"negative_size", Config{Roots: []string{f.DownloadsDir}, MinSizeBytes: -1}, true},
		{"zero_thresholds", Config{Roots: []string{f.DownloadsDir}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLastUsedOrModified(t *testing.T) {
	used := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	modified := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	withUsed := FileItem{LastUsedAt: used, LastModifiedAt: modified}
	assert.Equal(t, used, withUsed.LastUsedOrModified())

	withoutUsed := FileItem{LastModifiedAt: modified}
	assert.Equal(t, modified, withoutUsed.LastUsedOrModified())
}

func TestExt(t *testing.T) {
	assert.Equal(t, ".zip", FileItem{Path: "/d/Archive.ZIP"}.Ext())
	assert.Equal(t, "", FileItem{Path: "/d/README"}.Ext())
}
