package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stalefind/stalefind/internal/actionlog"
	"github.com/stalefind/stalefind/internal/results"
	"github.com/stalefind/stalefind/internal/scan"
	"github.com/stalefind/stalefind/internal/trash"
	"github.com/stalefind/stalefind/internal/ui/styles"
	"github.com/stalefind/stalefind/pkg/utils"
)

const visibleRows = 15

// ResultsViewModel shows collected items with group toggles and actions
type ResultsViewModel struct {
	collector *results.Collector
	actions   *actionlog.Logger

	items    []*scan.FileItem
	cursor   int
	offset   int
	selected map[string]bool
	status   string
}

// NewResultsViewModel creates a new results view model
func NewResultsViewModel(collector *results.Collector, actions *actionlog.Logger) *ResultsViewModel {
	return &ResultsViewModel{
		collector: collector,
		actions:   actions,
		selected:  make(map[string]bool),
	}
}

// Refresh re-reads the visible items from the collector
func (m *ResultsViewModel) Refresh() {
	m.items = m.collector.Snapshot()
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

// Update handles messages
func (m *ResultsViewModel) Update(msg tea.Msg) (*ResultsViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
				if m.cursor >= m.offset+visibleRows {
					m.offset = m.cursor - visibleRows + 1
				}
			}
		case " ":
			if item := m.current(); item != nil {
				m.selected[item.Path] = !m.selected[item.Path]
			}
		case "1":
			m.toggleGroup(scan.GroupImage)
		case "2":
			m.toggleGroup(scan.GroupVideo)
		case "3":
			m.toggleGroup(scan.GroupArchive)
		case "4":
			m.toggleGroup(scan.GroupOther)
		case "r":
			if item := m.current(); item != nil {
				if err := trash.Reveal(item.Path); err != nil {
					m.status = fmt.Sprintf("reveal failed: %v", err)
				}
			}
		case "p":
			if item := m.current(); item != nil {
				if err := trash.QuickLook(item.Path); err != nil {
					m.status = fmt.Sprintf("preview failed: %v", err)
				}
			}
		case "o":
			if err := trash.OpenTrash(); err != nil {
				m.status = fmt.Sprintf("open trash failed: %v", err)
			}
		case "x":
			m.trashSelected()
		}
	}
	return m, nil
}

func (m *ResultsViewModel) current() *scan.FileItem {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return m.items[m.cursor]
}

func (m *ResultsViewModel) toggleGroup(group scan.TypeGroup) {
	m.collector.SetGroupVisible(group, !m.collector.GroupVisible(group))
	m.Refresh()
}

func (m *ResultsViewModel) trashSelected() {
	var paths []string
	var size int64
	for _, item := range m.items {
		if m.selected[item.Path] {
			paths = append(paths, item.Path)
			size += item.SizeBytes
		}
	}
	if len(paths) == 0 {
		m.status = "nothing selected"
		return
	}

	mover, err := trash.NewMover()
	if err != nil {
		m.status = fmt.Sprintf("trash unavailable: %v", err)
		return
	}

	res := mover.Move(paths)
	if m.actions != nil && len(res.Trashed) > 0 {
		m.actions.Record("trash", res.Trashed, res.Freed)
	}

	for _, path := range res.Trashed {
		delete(m.selected, path)
	}
	m.status = fmt.Sprintf("moved %d files to trash (%s freed)",
		len(res.Trashed), utils.FormatBytes(res.Freed))
	if len(res.Failed) > 0 {
		m.status += fmt.Sprintf(", %d failed", len(res.Failed))
	}

	kept := m.collector.All()
	m.collector.Reset()
	for _, item := range kept {
		if !contains(res.Trashed, item.Path) {
			m.collector.Add(item)
		}
	}
	m.Refresh()
}

func contains(paths []string, path string) bool {
	for _, p := range paths {
		if p == path {
			return true
		}
	}
	return false
}

// View renders the results view
func (m *ResultsViewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("📋 Stale Files"))
	b.WriteString("\n")

	b.WriteString(m.groupToggleLine())
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(styles.DimStyle.Render("No stale files found."))
		b.WriteString("\n")
	}

	end := m.offset + visibleRows
	if end > len(m.items) {
		end = len(m.items)
	}
	for i := m.offset; i < end; i++ {
		item := m.items[i]

		cursor := "  "
		if i == m.cursor {
			cursor = styles.SelectedStyle.Render("▸ ")
		}

		box := styles.UncheckedBox()
		if m.selected[item.Path] {
			box = styles.CheckedBox()
		}

		line := fmt.Sprintf("%s%s %s %s %s",
			cursor,
			box,
			styles.FileSizeStyle.Render(fmt.Sprintf("%10s", utils.FormatBytes(item.SizeBytes))),
			styles.GroupStyle.Render(fmt.Sprintf("%-7s", item.TypeGroup)),
			styles.FilePathStyle.Render(truncatePath(item.Path, 70)))
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.BoldStyle.Render(fmt.Sprintf("Total: %d files, %s",
		len(m.items), utils.FormatBytes(m.collector.TotalSize()))))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(styles.SubtitleStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("↑/↓ move · space select · 1-4 toggle groups · x trash · r reveal · p preview · o open trash · q quit"))

	return b.String()
}

func (m *ResultsViewModel) groupToggleLine() string {
	counts := m.collector.GroupCounts()
	parts := make([]string, 0, 4)
	labels := []struct {
		key   string
		group scan.TypeGroup
	}{
		{"1", scan.GroupImage},
		{"2", scan.GroupVideo},
		{"3", scan.GroupArchive},
		{"4", scan.GroupOther},
	}
	for _, l := range labels {
		label := fmt.Sprintf("[%s] %s (%d)", l.key, l.group, counts[l.group])
		if m.collector.GroupVisible(l.group) {
			parts = append(parts, styles.SubtitleStyle.Render(label))
		} else {
			parts = append(parts, styles.DimStyle.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}
