// Package tui is the terminal dashboard: live vitals on top, the
// recommendation history below, driven by the session store's update
// channel.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandevgo/pulseboard/internal/core"
	"github.com/sandevgo/pulseboard/internal/render"
	"github.com/sandevgo/pulseboard/internal/service/session"
)

// StatsSource reports the monitor counters shown in the header.
type StatsSource func() core.SessionStats

type storeUpdatedMsg struct{}

type statsTickMsg time.Time

// Model is the dashboard state. Bubbletea copies it on every Update,
// so all fields must stay cheap to copy.
type Model struct {
	store     *session.Store
	stats     StatsSource
	exportDir string

	projection render.Projection
	signature  string
	live       core.SessionStats

	scroll       int
	width        int
	height       int
	confirmClear bool
	notice       string

	keys keyMap
	help help.Model
}

func newModel(store *session.Store, stats StatsSource, exportDir string) Model {
	m := Model{
		store:     store,
		stats:     stats,
		exportDir: exportDir,
		keys:      defaultKeyMap(),
		help:      help.New(),
	}
	m.projection = store.Projection()
	m.signature = m.projection.Signature()
	m.live = stats()
	return m
}

// Run drives the dashboard until the user quits or ctx is canceled.
func Run(ctx context.Context, store *session.Store, stats StatsSource, exportDir string) error {
	p := tea.NewProgram(newModel(store, stats, exportDir),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// waitForUpdate blocks on the store's coalescing update channel. Armed
// once at Init and re-armed after every received signal, so exactly one
// reader is outstanding at a time.
func waitForUpdate(updates <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-updates
		return storeUpdatedMsg{}
	}
}

func statsTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return statsTickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.store.Updates()), statsTick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case storeUpdatedMsg:
		m = m.refreshProjection()
		return m, waitForUpdate(m.store.Updates())
	case statsTickMsg:
		m.live = m.stats()
		return m, statsTick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// refreshProjection rebuilds the view only when the display-relevant
// state actually changed. Fresh entries in the filtered view snap the
// scroll back to the top so they are visible immediately.
func (m Model) refreshProjection() Model {
	p := m.store.Projection()
	sig := p.Signature()
	if sig == m.signature {
		return m
	}
	m.projection = p
	m.signature = sig
	if p.HasNew {
		m.scroll = 0
	}
	m.scroll = clamp(m.scroll, max(len(p.Items)-1, 0))
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A pending clear prompt eats the next key press whatever it is.
	if m.confirmClear {
		m.confirmClear = false
		if msg.String() == "y" {
			removed := m.store.Count()
			m.store.Clear()
			m.notice = fmt.Sprintf("Removed %d recommendation(s)", removed)
			m = m.refreshProjection()
		} else {
			m.notice = "Clear cancelled"
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.scroll = clamp(m.scroll+1, max(len(m.projection.Items)-1, 0))
	case key.Matches(msg, m.keys.Up):
		m.scroll = clamp(m.scroll-1, max(len(m.projection.Items)-1, 0))
	case key.Matches(msg, m.keys.NextFilter):
		m.store.CycleFilter()
		m.scroll = 0
		m = m.refreshProjection()
	case key.Matches(msg, m.keys.PrevFilter):
		m.store.CycleFilterBack()
		m.scroll = 0
		m = m.refreshProjection()
	case key.Matches(msg, m.keys.Export):
		m.notice = m.exportToFile()
	case key.Matches(msg, m.keys.Clear):
		if m.projection.Total == 0 {
			m.notice = "History is already empty"
			return m, nil
		}
		m.confirmClear = true
	}

	return m, nil
}

func (m Model) exportToFile() string {
	artifact, ok := m.store.Export()
	if !ok {
		return "Nothing to export"
	}
	name := "recommendations-" + time.Now().Format("20060102-150405") + ".txt"
	path := filepath.Join(m.exportDir, name)
	if err := os.WriteFile(path, []byte(artifact), 0o644); err != nil {
		return "Export failed: " + err.Error()
	}
	return "Exported to " + path
}
