package scan

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stalefind/stalefind/internal/progress"
	"github.com/stalefind/stalefind/internal/security"
)

// pathQueueSize bounds the producer/consumer hand-off so discovery cannot
// outrun metadata resolution without back-pressure.
const pathQueueSize = 1000

// ItemFunc receives each qualifying item as soon as it is resolved.
type ItemFunc func(item *FileItem)

// DoneFunc runs exactly once per scan, whether it completed, was stopped,
// or found nothing.
type DoneFunc func()

// Controller owns scan lifecycle: it starts pipelines, serializes
// restarts and guarantees the done callback fires exactly once per scan.
// At most one pipeline runs at a time.
type Controller struct {
	source     Source
	resolver   *Resolver
	classifier *security.Classifier
	reporter   *progress.Reporter

	mu     sync.Mutex
	active *pipeline
}

// NewController wires a controller from its collaborators. A nil reporter
// disables progress publication.
func NewController(source Source, resolver *Resolver, classifier *security.Classifier, reporter *progress.Reporter) *Controller {
	return &Controller{
		source:     source,
		resolver:   resolver,
		classifier: classifier,
		reporter:   reporter,
	}
}

// Start validates cfg and launches a new scan, stopping and waiting out
// any scan already in flight first. Validation errors are returned before
// anything is torn down or started; per-item faults during the scan are
// skips, not errors.
func (c *Controller) Start(cfg Config, onItem ItemFunc, onDone DoneFunc) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil {
		c.active.stop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &pipeline{
		id:         uuid.NewString(),
		cfg:        cfg,
		source:     c.source,
		resolver:   c.resolver,
		classifier: c.classifier,
		reporter:   c.reporter,
		ctx:        ctx,
		cancel:     cancel,
		onItem:     onItem,
		onDone:     onDone,
		finished:   make(chan struct{}),
	}
	c.active = p
	go p.run()
	return p.id, nil
}

// Stop cancels the active scan, if any, and waits for its pipeline to
// drain. Safe to call when nothing is running.
func (c *Controller) Stop() {
	c.mu.Lock()
	p := c.active
	c.mu.Unlock()

	if p != nil {
		p.stop()
	}
}

// IsRunning reports whether a scan is currently in flight.
func (c *Controller) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != nil && !c.active.done()
}

// pipeline is one scan execution: a producer streaming discovered paths
// through the safety gates into a bounded queue, and a consumer resolving
// metadata and applying the age and size filters.
type pipeline struct {
	id         string
	cfg        Config
	source     Source
	resolver   *Resolver
	classifier *security.Classifier
	reporter   *progress.Reporter

	ctx    context.Context
	cancel context.CancelFunc

	onItem ItemFunc
	onDone DoneFunc

	doneOnce sync.Once
	finished chan struct{}
}

func (p *pipeline) run() {
	defer close(p.finished)
	defer p.cancel()
	defer p.doneOnce.Do(func() {
		if p.onDone != nil {
			p.onDone()
		}
	})

	start := time.Now()
	cutoff := start.AddDate(0, 0, -p.cfg.MinAgeDays)

	paths := make(chan string, pathQueueSize)
	go p.produce(paths)

	itemsFound := 0
	skipCount := 0
	var totalSize int64

	for path := range paths {
		if p.ctx.Err() != nil {
			break
		}
		res := p.resolver.Resolve(path)
		if !res.OK() {
			skipCount++
			continue
		}
		item := res.Item

		if item.LastUsedOrModified().After(cutoff) {
			continue
		}
		if !p.sizeQualifies(item) {
			continue
		}

		itemsFound++
		totalSize += item.SizeBytes
		if p.onItem != nil {
			p.onItem(item)
		}
		p.publish(progress.PhaseScanning, item.Path, itemsFound, skipCount, totalSize, start)
	}

	phase := progress.PhaseComplete
	if p.ctx.Err() != nil {
		phase = progress.PhaseStopped
	}
	p.publish(phase, "", itemsFound, skipCount, totalSize, start)
}

// produce streams candidates from every root through the unconditional
// safety gates into the bounded queue. Closing the queue is the only
// completion signal the consumer gets.
func (p *pipeline) produce(paths chan<- string) {
	defer close(paths)

	for _, root := range p.cfg.Roots {
		if p.ctx.Err() != nil {
			return
		}
		for path := range p.source.Discover(p.ctx, root) {
			if p.classifier.ShouldSkip(path) {
				continue
			}
			if p.cfg.IgnoreDevPreset && p.classifier.ShouldSkipDev(path) {
				continue
			}
			if p.classifier.IsExcluded(path, p.cfg.ExcludePaths) {
				continue
			}
			select {
			case paths <- path:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// sizeQualifies applies the size threshold. Images and PDFs are exempt:
// small stale photos and documents are still worth surfacing.
func (p *pipeline) sizeQualifies(item *FileItem) bool {
	if item.TypeGroup == GroupImage || IsPDF(item.Path, item.ContentType) {
		return true
	}
	return item.SizeBytes >= p.cfg.MinSizeBytes
}

func (p *pipeline) publish(phase progress.Phase, current string, found, skipped int, size int64, start time.Time) {
	if p.reporter == nil {
		return
	}
	p.reporter.Update(&progress.ScanProgress{
		ScanID:      p.id,
		Phase:       phase,
		CurrentPath: current,
		ItemsFound:  found,
		SkipCount:   skipped,
		TotalSize:   size,
		StartTime:   start,
	})
}

// stop cancels the pipeline and waits for run to return.
func (p *pipeline) stop() {
	p.cancel()
	<-p.finished
}

func (p *pipeline) done() bool {
	select {
	case <-p.finished:
		return true
	default:
		return false
	}
}
