// Package models holds the bubbletea models for the interactive mode.
package models

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stalefind/stalefind/internal/actionlog"
	"github.com/stalefind/stalefind/internal/progress"
	"github.com/stalefind/stalefind/internal/results"
	"github.com/stalefind/stalefind/internal/scan"
)

// AppState tracks which view is active
type AppState int

const (
	StateScanning AppState = iota
	StateResults
)

// ScanProgressMsg carries a progress snapshot into the UI
type ScanProgressMsg struct {
	Progress *progress.ScanProgress
}

// ScanCompleteMsg is sent when the pipeline's done callback fires
type ScanCompleteMsg struct{}

// App is the top-level model: it runs the scan view until the pipeline
// finishes, then hands over to the results view.
type App struct {
	state      AppState
	controller *scan.Controller
	collector  *results.Collector
	reporter   *progress.Reporter
	cfg        scan.Config

	scanView    *ScanViewModel
	resultsView *ResultsViewModel

	events chan tea.Msg
	sub    <-chan *progress.ScanProgress
}

// NewApp creates the top-level model
func NewApp(controller *scan.Controller, collector *results.Collector, reporter *progress.Reporter, cfg scan.Config, actions *actionlog.Logger) *App {
	return &App{
		state:       StateScanning,
		controller:  controller,
		collector:   collector,
		reporter:    reporter,
		cfg:         cfg,
		scanView:    NewScanViewModel(),
		resultsView: NewResultsViewModel(collector, actions),
		events:      make(chan tea.Msg, 64),
	}
}

// Init starts the scan and begins pumping pipeline events into the UI
func (m *App) Init() tea.Cmd {
	m.sub = m.reporter.Subscribe()
	go func() {
		for p := range m.sub {
			select {
			case m.events <- ScanProgressMsg{Progress: p}:
			default:
				// Drop stale snapshots rather than stall the pipeline
			}
		}
	}()

	m.collector.Reset()
	_, err := m.controller.Start(m.cfg,
		m.collector.Add,
		func() { m.events <- ScanCompleteMsg{} },
	)
	if err != nil {
		m.scanView.SetError(err)
	}

	return tea.Batch(m.scanView.Init(), m.waitForEvent)
}

// waitForEvent delivers the next pipeline event as a bubbletea message
func (m *App) waitForEvent() tea.Msg {
	return <-m.events
}

// Update handles messages
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.controller.Stop()
			m.reporter.Unsubscribe(m.sub)
			return m, tea.Quit
		case "q":
			if m.state == StateResults {
				m.reporter.Unsubscribe(m.sub)
				return m, tea.Quit
			}
		}

	case ScanProgressMsg:
		m.scanView.SetProgress(msg.Progress)
		return m, m.waitForEvent

	case ScanCompleteMsg:
		m.state = StateResults
		m.resultsView.Refresh()
		return m, nil
	}

	switch m.state {
	case StateScanning:
		var cmd tea.Cmd
		m.scanView, cmd = m.scanView.Update(msg)
		return m, cmd
	case StateResults:
		var cmd tea.Cmd
		m.resultsView, cmd = m.resultsView.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the active view
func (m *App) View() string {
	switch m.state {
	case StateScanning:
		return m.scanView.View()
	case StateResults:
		return m.resultsView.View()
	}
	return ""
}
