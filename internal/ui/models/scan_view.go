package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stalefind/stalefind/internal/progress"
	"github.com/stalefind/stalefind/internal/ui/styles"
	"github.com/stalefind/stalefind/pkg/utils"
)

// ScanViewModel handles the scanning progress view
type ScanViewModel struct {
	spinner   spinner.Model
	progress  *progress.ScanProgress
	startTime time.Time
	err       error
}

// NewScanViewModel creates a new scan view model
func NewScanViewModel() *ScanViewModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	return &ScanViewModel{
		spinner:   s,
		startTime: time.Now(),
	}
}

// Init initializes the scan view
func (m *ScanViewModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// SetProgress records the latest pipeline snapshot
func (m *ScanViewModel) SetProgress(p *progress.ScanProgress) {
	m.progress = p
}

// SetError records a startup failure for display
func (m *ScanViewModel) SetError(err error) {
	m.err = err
}

// Update handles messages
func (m *ScanViewModel) Update(msg tea.Msg) (*ScanViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the scan view
func (m *ScanViewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("🔍 Scanning for stale files"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("✗ %v", m.err)))
		b.WriteString("\n\n")
		b.WriteString(styles.HelpStyle.Render("Press ctrl+c to exit"))
		return b.String()
	}

	b.WriteString(m.spinner.View())
	b.WriteString(" Scanning... ")
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("(%s)", time.Since(m.startTime).Round(time.Second))))
	b.WriteString("\n\n")

	if m.progress != nil {
		if m.progress.CurrentPath != "" {
			b.WriteString(styles.DimStyle.Render("Current: "))
			b.WriteString(styles.FilePathStyle.Render(truncatePath(m.progress.CurrentPath, 60)))
			b.WriteString("\n\n")
		}

		b.WriteString(styles.BoldStyle.Render(fmt.Sprintf("Found: %d files, %s",
			m.progress.ItemsFound,
			utils.FormatBytes(m.progress.TotalSize))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("Press ctrl+c to cancel"))

	return b.String()
}

// Helper function to truncate paths
func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}
