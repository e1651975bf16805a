package progress

import (
	"fmt"
	"sync"
	"time"

	"github.com/stalefind/stalefind/pkg/utils"
)

// Phase represents the current phase of a scan
type Phase string

const (
	PhaseScanning Phase = "scanning"
	PhaseComplete Phase = "complete"
	PhaseStopped  Phase = "stopped"
)

// ScanProgress represents progress of a running scan
type ScanProgress struct {
	ScanID      string
	Phase       Phase
	Root        string
	CurrentPath string
	ItemsFound  int
	SkipCount   int
	TotalSize   int64
	StartTime   time.Time
}

// Reporter provides thread-safe scan progress reporting
type Reporter struct {
	current   *ScanProgress
	mu        sync.RWMutex
	listeners []chan *ScanProgress
}

// NewReporter creates a new progress reporter
func NewReporter() *Reporter {
	return &Reporter{
		listeners: make([]chan *ScanProgress, 0),
	}
}

// Subscribe returns a channel that receives progress updates
func (r *Reporter) Subscribe() <-chan *ScanProgress {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan *ScanProgress, 10)
	r.listeners = append(r.listeners, ch)
	return ch
}

// Unsubscribe closes and removes a listener channel
func (r *Reporter) Unsubscribe(ch <-chan *ScanProgress) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, listener := range r.listeners {
		if listener == ch {
			close(listener)
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// Update publishes a progress snapshot and notifies listeners
func (r *Reporter) Update(update *ScanProgress) {
	r.mu.Lock()
	r.current = update
	listeners := make([]chan *ScanProgress, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	// Notify all listeners (non-blocking)
	for _, listener := range listeners {
		select {
		case listener <- update:
		default:
			// Skip if channel is full
		}
	}
}

// Current returns the latest progress snapshot
func (r *Reporter) Current() *ScanProgress {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// FormatScanProgress returns a human-readable scan progress string
func FormatScanProgress(p *ScanProgress) string {
	if p == nil {
		return "Initializing..."
	}

	elapsed := time.Since(p.StartTime)

	switch p.Phase {
	case PhaseScanning:
		return fmt.Sprintf("Scanning %s... Found %d files (%s) [%s]",
			p.Root,
			p.ItemsFound,
			utils.FormatBytes(p.TotalSize),
			FormatDuration(elapsed))
	case PhaseComplete:
		return fmt.Sprintf("Scan complete: %d files (%s) in %s",
			p.ItemsFound,
			utils.FormatBytes(p.TotalSize),
			FormatDuration(elapsed))
	case PhaseStopped:
		return fmt.Sprintf("Scan stopped after %d files (%s)",
			p.ItemsFound,
			utils.FormatBytes(p.TotalSize))
	default:
		return "Scanning..."
	}
}

// FormatDuration formats duration in human-readable format
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)

	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
