package scan

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/stalefind/stalefind/internal/platform"
)

// contentTypeTrees are the UTI trees a scan asks the content index for.
// Together they cover images, movies, archives, PDFs and generic documents.
var contentTypeTrees = []string{
	"public.image",
	"public.movie",
	"public.archive",
	"com.adobe.pdf",
	"public.content",
}

const discoverGrace = 500 * time.Millisecond

// Source produces candidate paths under a root. Implementations own the
// returned channel and close it when discovery finishes or ctx is done.
type Source interface {
	Discover(ctx context.Context, root string) <-chan string
}

// NewSource returns the platform's best available discovery source:
// the content index when Spotlight tooling is present, a filesystem
// walk otherwise.
func NewSource() Source {
	if platform.HasSpotlight() {
		return &SpotlightSource{}
	}
	return &WalkSource{}
}

// SpotlightSource discovers candidates through mdfind, streaming paths as
// the index emits them.
type SpotlightSource struct{}

// spotlightQuery builds the ORed content-type-tree predicate for mdfind.
func spotlightQuery() string {
	terms := make([]string, len(contentTypeTrees))
	for i, tree := range contentTypeTrees {
		terms[i] = fmt.Sprintf("kMDItemContentTypeTree == '%s'", tree)
	}
	return strings.Join(terms, " || ")
}

// Discover launches mdfind scoped to root and yields one path per line.
// On cancellation the subprocess gets SIGTERM and a short grace period
// before being killed.
func (s *SpotlightSource) Discover(ctx context.Context, root string) <-chan string {
	out := make(chan string)

	go func() {
		defer close(out)

		cmd := exec.CommandContext(ctx, "mdfind", "-onlyin", root, spotlightQuery())
		cmd.Cancel = func() error {
			return cmd.Process.Signal(syscall.SIGTERM)
		}
		cmd.WaitDelay = discoverGrace

		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return
		}
		if err := cmd.Start(); err != nil {
			return
		}
		defer cmd.Wait()

		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			path := strings.TrimSpace(scanner.Text())
			if path == "" {
				continue
			}
			// The index can lag deletions; only yield paths that still exist.
			if _, err := os.Lstat(path); err != nil {
				continue
			}
			select {
			case out <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// WalkSource discovers candidates by walking the filesystem. Used on
// platforms without a content index; extension-based classification
// downstream takes over from content-type tags.
type WalkSource struct{}

// Discover walks root depth-first, yielding regular files. Unreadable
// directories are skipped, not fatal.
func (s *WalkSource) Discover(ctx context.Context, root string) <-chan string {
	out := make(chan string)

	go func() {
		defer close(out)

		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if ctx.Err() != nil {
				return filepath.SkipAll
			}
			if err != nil {
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			select {
			case out <- path:
			case <-ctx.Done():
				return filepath.SkipAll
			}
			return nil
		})
	}()

	return out
}
