package scan

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stalefind/stalefind/internal/security"
	"github.com/stalefind/stalefind/internal/testutil"
)

// fakeSource replays a fixed path list per root.
type fakeSource struct {
	byRoot map[string][]string
}

func (s *fakeSource) Discover(ctx context.Context, root string) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		for _, path := range s.byRoot[root] {
			select {
			case out <- path:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// blockingSource emits the same path until cancelled.
type blockingSource struct {
	path string
}

func (s *blockingSource) Discover(ctx context.Context, root string) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		for {
			select {
			case out <- s.path:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

type collected struct {
	mu    sync.Mutex
	items []*FileItem
}

func (c *collected) add(item *FileItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

func (c *collected) paths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item.Path)
	}
	return out
}

func newTestController(source Source) *Controller {
	return NewController(source, NewResolver(&fakeQuerier{}), security.NewClassifier(), nil)
}

func runToCompletion(t *testing.T, ctrl *Controller, cfg Config) *collected {
	t.Helper()

	got := &collected{}
	done := make(chan struct{})
	_, err := ctrl.Start(cfg, got.add, func() { close(done) })
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("scan did not finish")
	}
	return got
}

func TestPipelineFiltersEndToEnd(t *testing.T) {
	f := testutil.NewFixture(t)

	photo := f.CreateStaleFile("Downloads/photo.png", 100)
	archive := f.CreateStaleFile("Downloads/archive.zip", 5000)
	pdf := f.CreateStaleFile("Documents/report.pdf", 50)
	tinyText := f.CreateStaleFile("Downloads/notes.txt", 10)
	fresh := f.CreateFreshFile("Downloads/new-video.mp4", 9000)
	excluded := f.CreateStaleFile("Documents/Work/contract.pdf", 900)
	hidden := f.CreateStaleFile("Downloads/.DS_Store", 900)
	dev := f.CreateStaleFile("repo/node_modules/lodash/big.blob", 9000)

	source := &fakeSource{byRoot: map[string][]string{
		f.DownloadsDir: {photo, archive, tinyText, fresh, hidden},
		f.DocumentsDir: {pdf, excluded},
		f.ProjectDir:   {dev},
	}}

	cfg := Config{
		Roots:           []string{f.DownloadsDir, f.DocumentsDir, f.ProjectDir},
		MinAgeDays:      365,
		MinSizeBytes:    1000,
		ExcludePaths:    []string{f.ExcludedDir},
		IgnoreDevPreset: true,
	}

	got := runToCompletion(t, newTestController(source), cfg)
	paths := got.paths()

	assert.Contains(t, paths, photo, "stale image is size-exempt")
	assert.Contains(t, paths, archive, "stale archive over threshold")
	assert.Contains(t, paths, pdf, "stale pdf is size-exempt")
	assert.NotContains(t, paths, tinyText, "small generic file below threshold")
	assert.NotContains(t, paths, fresh, "recently modified file")
	assert.NotContains(t, paths, excluded, "under an exclude root")
	assert.NotContains(t, paths, hidden, "hidden dot-file")
	assert.NotContains(t, paths, dev, "dev artifact with preset on")
	assert.Len(t, paths, 3)
}

func TestPipelineDevPresetOff(t *testing.T) {
	f := testutil.NewFixture(t)
	dev := f.CreateStaleFile("repo/node_modules/lodash/big.blob", 9000)

	source := &fakeSource{byRoot: map[string][]string{
		f.ProjectDir: {dev},
	}}

	cfg := Config{
		Roots:        []string{f.ProjectDir},
		MinAgeDays:   365,
		MinSizeBytes: 1000,
	}

	got := runToCompletion(t, newTestController(source), cfg)
	assert.Contains(t, got.paths(), dev, "dev artifacts included when preset is off")
}

func TestPipelineAgeBoundary(t *testing.T) {
	f := testutil.NewFixture(t)

	older := f.CreateFileWithAge("Downloads/older.zip", make([]byte, 5000), 40*24*time.Hour)
	newer := f.CreateFileWithAge("Downloads/newer.zip", make([]byte, 5000), 20*24*time.Hour)

	source := &fakeSource{byRoot: map[string][]string{
		f.DownloadsDir: {older, newer},
	}}

	cfg := Config{
		Roots:        []string{f.DownloadsDir},
		MinAgeDays:   30,
		MinSizeBytes: 0,
	}

	got := runToCompletion(t, newTestController(source), cfg)
	paths := got.paths()
	assert.Contains(t, paths, older)
	assert.NotContains(t, paths, newer)
}

func TestPipelineZeroThresholds(t *testing.T) {
	f := testutil.NewFixture(t)
	file := f.CreateFreshFile("Downloads/anything.txt", 1)

	source := &fakeSource{byRoot: map[string][]string{
		f.DownloadsDir: {file},
	}}

	cfg := Config{Roots: []string{f.DownloadsDir}}

	got := runToCompletion(t, newTestController(source), cfg)
	assert.Contains(t, got.paths(), file, "zero thresholds include everything")
}

func TestStartValidationError(t *testing.T) {
	ctrl := newTestController(&fakeSource{})

	doneCalled := false
	_, err := ctrl.Start(Config{}, nil, func() { doneCalled = true })
	assert.Error(t, err)
	assert.False(t, doneCalled, "done callback must not fire on validation failure")
	assert.False(t, ctrl.IsRunning())
}

func TestDoneFiresExactlyOnceOnEmptyScan(t *testing.T) {
	f := testutil.NewFixture(t)

	source := &fakeSource{byRoot: map[string][]string{}}
	ctrl := newTestController(source)

	var doneCount atomic.Int32
	done := make(chan struct{})
	_, err := ctrl.Start(Config{Roots: []string{f.DownloadsDir}}, nil, func() {
		doneCount.Add(1)
		close(done)
	})
	require.NoError(t, err)

	<-done
	ctrl.Stop() // stop after completion must not re-fire done
	assert.Equal(t, int32(1), doneCount.Load())
}

func TestStopCancelsPromptly(t *testing.T) {
	f := testutil.NewFixture(t)
	path := f.CreateStaleFile("Downloads/loop.zip", 5000)

	ctrl := newTestController(&blockingSource{path: path})

	var doneCount atomic.Int32
	_, err := ctrl.Start(Config{Roots: []string{f.DownloadsDir}, MinAgeDays: 1}, nil, func() {
		doneCount.Add(1)
	})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	require.True(t, ctrl.IsRunning())

	stopped := make(chan struct{})
	go func() {
		ctrl.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}

	assert.False(t, ctrl.IsRunning())
	assert.Equal(t, int32(1), doneCount.Load())
}

func TestRestartStopsPreviousScan(t *testing.T) {
	f := testutil.NewFixture(t)
	path := f.CreateStaleFile("Downloads/loop.zip", 5000)

	ctrl := newTestController(&blockingSource{path: path})
	cfg := Config{Roots: []string{f.DownloadsDir}, MinAgeDays: 1}

	var firstDone, secondDone atomic.Int32
	id1, err := ctrl.Start(cfg, nil, func() { firstDone.Add(1) })
	require.NoError(t, err)

	done2 := make(chan struct{})
	id2, err := ctrl.Start(cfg, nil, func() {
		secondDone.Add(1)
		close(done2)
	})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2, "each scan gets its own id")

	// The first pipeline was stopped and its done callback has fired.
	assert.Equal(t, int32(1), firstDone.Load())

	ctrl.Stop()
	<-done2
	assert.Equal(t, int32(1), secondDone.Load())
}
