package scan

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Spotlight attribute names used by the resolver.
const (
	attrFSSize      = "kMDItemFSSize"
	attrLastUsed    = "kMDItemLastUsedDate"
	attrContentType = "kMDItemContentType"
)

// DefaultContentType is used when the OS has no content-type record.
const DefaultContentType = "public.data"

const (
	mdlsTimeout   = 5 * time.Second
	metaCacheSize = 4096
)

// SkipReason tags why a candidate was dropped during metadata resolution.
// Per-item faults are reported through these, never as errors.
type SkipReason string

const (
	SkipNone       SkipReason = ""
	SkipStatFailed SkipReason = "stat-failed"
)

// Resolution is the tagged outcome of resolving one path: either an item
// or a skip reason. Skips keep the pipeline flowing; they are never fatal.
type Resolution struct {
	Item   *FileItem
	Reason SkipReason
}

// OK reports whether the resolution produced an item.
func (r Resolution) OK() bool {
	return r.Item != nil
}

func skip(reason SkipReason) Resolution {
	return Resolution{Reason: reason}
}

// AttrQuerier answers single-attribute metadata queries against the OS
// metadata service. The second return value is false when the service has
// no value for the attribute.
type AttrQuerier interface {
	Value(path, name string) (string, bool)
}

// SpotlightQuerier queries attributes through mdls. Every invocation is
// self-contained: a failed or timed-out call reads as "no value".
type SpotlightQuerier struct{}

// Value runs mdls -raw for a single attribute.
func (SpotlightQuerier) Value(path, name string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), mdlsTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "mdls", "-raw", "-name", name, path)
	out, err := cmd.Output()
	if err != nil {
		return "", false
	}

	value := strings.TrimSpace(string(out))
	if value == "" || value == "(null)" {
		return "", false
	}
	return value, true
}

// NoopQuerier reports no value for every attribute, forcing the resolver
// onto its filesystem fallbacks. Used when Spotlight tools are missing.
type NoopQuerier struct{}

func (NoopQuerier) Value(string, string) (string, bool) { return "", false }

// cachedMeta holds spotlight-derived attributes for an unchanged file so
// rescans skip the mdls subprocess calls.
type cachedMeta struct {
	modTime     time.Time
	sizeBytes   int64
	hasSize     bool
	lastUsed    time.Time
	contentType string
}

// Resolver builds FileItems from paths that survived the safety gates.
type Resolver struct {
	attrs AttrQuerier
	cache *lru.Cache[string, cachedMeta]
}

// NewResolver creates a Resolver backed by the given attribute querier.
func NewResolver(attrs AttrQuerier) *Resolver {
	cache, _ := lru.New[string, cachedMeta](metaCacheSize)
	return &Resolver{attrs: attrs, cache: cache}
}

// Resolve resolves size, timestamps and content type for path. Any failure
// (file vanished mid-scan, permission error, malformed metadata) returns a
// Skip resolution rather than an error.
func (r *Resolver) Resolve(path string) Resolution {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return skip(SkipStatFailed)
	}
	modTime := info.ModTime().In(time.Local)

	meta, ok := r.cache.Get(path)
	if !ok || !meta.modTime.Equal(modTime) {
		meta = r.queryMeta(path, modTime)
		r.cache.Add(path, meta)
	}

	size := info.Size()
	if meta.hasSize {
		size = meta.sizeBytes
	}

	item := &FileItem{
		Path:           path,
		DisplayName:    filepath.Base(path),
		SizeBytes:      size,
		LastUsedAt:     meta.lastUsed,
		LastModifiedAt: modTime,
		ContentType:    meta.contentType,
	}
	item.TypeGroup = InferGroup(path, item.ContentType)
	return Resolution{Item: item}
}

func (r *Resolver) queryMeta(path string, modTime time.Time) cachedMeta {
	meta := cachedMeta{modTime: modTime, contentType: DefaultContentType}

	if raw, ok := r.attrs.Value(path, attrFSSize); ok {
		if size, err := strconv.ParseInt(raw, 10, 64); err == nil && size >= 0 {
			meta.sizeBytes = size
			meta.hasSize = true
		}
	}

	if raw, ok := r.attrs.Value(path, attrLastUsed); ok {
		if used, ok := parseSpotlightTime(raw); ok {
			meta.lastUsed = used.In(time.Local)
		}
	}

	if raw, ok := r.attrs.Value(path, attrContentType); ok {
		meta.contentType = strings.ToLower(raw)
	}

	return meta
}

// spotlightTimeLayouts covers the date formats mdls emits in raw mode.
var spotlightTimeLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	time.RFC3339,
	"2006-01-02T15:04:05-07:00",
	"2006-01-02 15:04:05",
}

func parseSpotlightTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range spotlightTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
