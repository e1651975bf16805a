// Package results aggregates scan output and serves filtered views of it.
// Type-group toggles are applied at read time over the full result set, so
// flipping a toggle never requires a rescan.
package results

import (
	"sort"
	"sync"

	"github.com/stalefind/stalefind/internal/scan"
)

// Collector accumulates items from a running scan. Add is safe to call
// from pipeline goroutines while Snapshot is read elsewhere.
type Collector struct {
	mu       sync.RWMutex
	items    []*scan.FileItem
	disabled map[scan.TypeGroup]bool
}

// NewCollector creates an empty collector with every type group visible.
func NewCollector() *Collector {
	return &Collector{
		disabled: make(map[scan.TypeGroup]bool),
	}
}

// Reset drops all collected items. Toggles survive a reset so view
// preferences carry across scans.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Add appends one item. Intended as the pipeline's item callback.
func (c *Collector) Add(item *scan.FileItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// SetGroupVisible shows or hides a type group in snapshots. The underlying
// items are retained either way.
func (c *Collector) SetGroupVisible(group scan.TypeGroup, visible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled[group] = !visible
}

// GroupVisible reports whether a type group is currently shown.
func (c *Collector) GroupVisible(group scan.TypeGroup) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.disabled[group]
}

// Snapshot returns the visible items, largest first. The returned slice is
// owned by the caller.
func (c *Collector) Snapshot() []*scan.FileItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*scan.FileItem, 0, len(c.items))
	for _, item := range c.items {
		if c.disabled[item.TypeGroup] {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SizeBytes > out[j].SizeBytes
	})
	return out
}

// All returns every collected item regardless of toggles, in arrival order.
func (c *Collector) All() []*scan.FileItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*scan.FileItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of collected items, visible or not.
func (c *Collector) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// TotalSize sums the sizes of the visible items.
func (c *Collector) TotalSize() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var total int64
	for _, item := range c.items {
		if c.disabled[item.TypeGroup] {
			continue
		}
		total += item.SizeBytes
	}
	return total
}

// GroupCounts returns per-group item counts over all collected items.
func (c *Collector) GroupCounts() map[scan.TypeGroup]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	counts := make(map[scan.TypeGroup]int)
	for _, item := range c.items {
		counts[item.TypeGroup]++
	}
	return counts
}
