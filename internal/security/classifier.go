// Package security decides which discovered paths may never be offered
// for cleanup. All checks here are pure path classification; nothing in
// this package touches file contents.
package security

import (
	"path/filepath"
	"strings"
)

// Protected system prefixes. Paths under these are never candidates,
// regardless of configuration.
var protectedPrefixes = []string{
	"/System",
	"/Library",
	"/Applications",
	"/usr",
	"/bin",
	"/sbin",
	"/opt",
}

// Bundle-style suffixes. A path with any component ending in one of these
// sits inside an opaque bundle that must be treated as a unit.
var bundleSuffixes = []string{
	".app",
	".framework",
	".photoslibrary",
	".aplibrary",
	".appbundle",
	".kext",
}

// Classifier classifies candidate paths against the unconditional safety
// gates and the optional developer-artifact catalogue.
type Classifier struct {
	prefixes []string
	suffixes []string
	devNames map[string]struct{}
}

// NewClassifier creates a Classifier with the default protected prefixes,
// bundle suffixes and dev-artifact catalogue.
func NewClassifier() *Classifier {
	return &Classifier{
		prefixes: protectedPrefixes,
		suffixes: bundleSuffixes,
		devNames: DefaultDevIgnoreNames(),
	}
}

// ShouldSkip reports whether path must never be considered for cleanup:
// under a protected system prefix, inside a bundle, or containing a
// hidden dot-component. These gates apply regardless of configuration.
func (c *Classifier) ShouldSkip(path string) bool {
	for _, prefix := range c.prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}

	for _, part := range splitComponents(path) {
		for _, suffix := range c.suffixes {
			if strings.HasSuffix(part, suffix) {
				return true
			}
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}

	return false
}

// ShouldSkipDev reports whether any path component exactly matches a name
// in the dev-artifact catalogue. Only consulted when the dev-ignore preset
// is enabled.
func (c *Classifier) ShouldSkipDev(path string) bool {
	for _, part := range splitComponents(path) {
		if _, ok := c.devNames[part]; ok {
			return true
		}
	}
	return false
}

// IsExcluded reports whether path is equal to or nested under any of the
// exclude roots. Both sides are resolved through symlinks before the
// containment check; when resolution fails (path may have vanished
// mid-scan) a directory-boundary-aware string comparison is used instead.
func (c *Classifier) IsExcluded(path string, excludeRoots []string) bool {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		resolved = filepath.Clean(path)
	}

	for _, root := range excludeRoots {
		resolvedRoot, err := filepath.EvalSymlinks(root)
		if err != nil {
			resolvedRoot = filepath.Clean(root)
		}
		if contains(resolvedRoot, resolved) || contains(filepath.Clean(root), filepath.Clean(path)) {
			return true
		}
	}
	return false
}

// contains reports whether candidate equals base or lives under it.
// "/a/b" does not contain "/a/bc/file".
func contains(base, candidate string) bool {
	if base == "" {
		return false
	}
	if candidate == base {
		return true
	}
	return strings.HasPrefix(candidate, strings.TrimSuffix(base, "/")+"/")
}

func splitComponents(path string) []string {
	return strings.FieldsFunc(filepath.ToSlash(path), func(r rune) bool {
		return r == '/'
	})
}
