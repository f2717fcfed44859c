package tui

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandevgo/pulseboard/internal/core"
	"github.com/sandevgo/pulseboard/internal/render"
	"github.com/sandevgo/pulseboard/internal/service/session"
)

const (
	walkAdvisory     = "I recommend taking a short walk outside every morning."
	waterAdvisory    = "I suggest drinking more water during the afternoon."
	meditateAdvisory = "You should meditate for ten minutes before bed."
)

func testStats() core.SessionStats {
	return core.SessionStats{Connected: true, Frames: 12, FacesDetected: 9, AdviceSeen: 2}
}

func newTestModel(t *testing.T, advisories ...string) Model {
	t.Helper()
	store := session.NewStore()
	t.Cleanup(store.Close)
	for _, advice := range advisories {
		if got := store.Ingest(advice); len(got) == 0 {
			t.Fatalf("Ingest(%q) stored nothing", advice)
		}
	}
	return newModel(store, testStats, t.TempDir())
}

func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return next
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ClearConfirmFlow(t *testing.T) {
	m := newTestModel(t, walkAdvisory)

	m = press(t, m, keyRunes("c"))
	if !m.confirmClear {
		t.Fatal("pressing c should arm the clear prompt")
	}
	if got := m.store.Count(); got != 1 {
		t.Fatalf("store.Count() = %d before confirmation, want 1", got)
	}

	m = press(t, m, keyRunes("x"))
	if m.confirmClear {
		t.Fatal("any non-y key should cancel the clear prompt")
	}
	if m.notice != "Clear cancelled" {
		t.Fatalf("notice = %q, want %q", m.notice, "Clear cancelled")
	}
	if got := m.store.Count(); got != 1 {
		t.Fatalf("store.Count() = %d after cancel, want 1", got)
	}

	m = press(t, m, keyRunes("c"))
	m = press(t, m, keyRunes("y"))
	if got := m.store.Count(); got != 0 {
		t.Fatalf("store.Count() = %d after confirmation, want 0", got)
	}
	if m.projection.Total != 0 {
		t.Fatalf("projection.Total = %d after confirmation, want 0", m.projection.Total)
	}
	if want := "Removed 1 recommendation(s)"; m.notice != want {
		t.Fatalf("notice = %q, want %q", m.notice, want)
	}
}

func TestModel_ClearOnEmptyHistory(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, keyRunes("c"))
	if m.confirmClear {
		t.Fatal("clear prompt should not arm on an empty history")
	}
	if want := "History is already empty"; m.notice != want {
		t.Fatalf("notice = %q, want %q", m.notice, want)
	}
}

func TestModel_FilterCycleKeys(t *testing.T) {
	m := newTestModel(t, walkAdvisory)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.projection.Filter; got != "Relaxation" {
		t.Fatalf("filter after tab = %q, want %q", got, "Relaxation")
	}
	if got := len(m.projection.Items); got != 0 {
		t.Fatalf("len(Items) under Relaxation = %d, want 0", got)
	}
	if got := m.store.Filter(); got != "Relaxation" {
		t.Fatalf("store.Filter() = %q, want %q", got, "Relaxation")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := m.projection.Filter; got != render.FilterAll {
		t.Fatalf("filter after shift+tab = %q, want unfiltered", got)
	}
	if got := len(m.projection.Items); got != 1 {
		t.Fatalf("len(Items) unfiltered = %d, want 1", got)
	}
}

func TestModel_ExportWritesFile(t *testing.T) {
	store := session.NewStore()
	t.Cleanup(store.Close)
	if got := store.Ingest(walkAdvisory); len(got) == 0 {
		t.Fatal("Ingest stored nothing")
	}
	dir := t.TempDir()
	m := newModel(store, testStats, dir)

	m = press(t, m, keyRunes("e"))
	if !strings.HasPrefix(m.notice, "Exported to ") {
		t.Fatalf("notice = %q, want an export confirmation", m.notice)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "recommendations-") || !strings.HasSuffix(name, ".txt") {
		t.Fatalf("export file name = %q, want recommendations-*.txt", name)
	}

	data, err := os.ReadFile(dir + string(os.PathSeparator) + name)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	artifact := string(data)
	if !strings.Contains(artifact, "[Exercise]") {
		t.Fatalf("artifact missing category tag:\n%s", artifact)
	}
	if !strings.Contains(artifact, "Taking a short walk outside every morning") {
		t.Fatalf("artifact missing entry text:\n%s", artifact)
	}
}

func TestModel_ExportEmptyHistory(t *testing.T) {
	store := session.NewStore()
	t.Cleanup(store.Close)
	dir := t.TempDir()
	m := newModel(store, testStats, dir)

	m = press(t, m, keyRunes("e"))
	if want := "Nothing to export"; m.notice != want {
		t.Fatalf("notice = %q, want %q", m.notice, want)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("len(entries) = %d, want 0", len(entries))
	}
}

func TestModel_StoreUpdateRebuildsProjection(t *testing.T) {
	m := newTestModel(t, walkAdvisory, waterAdvisory)
	m.scroll = 1
	before := m.signature

	if got := m.store.Ingest(meditateAdvisory); len(got) == 0 {
		t.Fatal("Ingest stored nothing")
	}

	updated, cmd := m.Update(storeUpdatedMsg{})
	m = updated.(Model)
	if m.signature == before {
		t.Fatal("signature should change after a new entry")
	}
	if got := m.projection.Total; got != 3 {
		t.Fatalf("projection.Total = %d, want 3", got)
	}
	if got := m.projection.Items[0].Text; got != "Meditate for ten minutes before bed" {
		t.Fatalf("Items[0].Text = %q, newest entry should lead", got)
	}
	if m.scroll != 0 {
		t.Fatalf("scroll = %d, want 0 after fresh entries arrive", m.scroll)
	}
	if cmd == nil {
		t.Fatal("update handler must re-arm the store watcher")
	}
}

func TestModel_StoreUpdateSkipsWhenUnchanged(t *testing.T) {
	m := newTestModel(t, walkAdvisory, waterAdvisory)
	m.scroll = 1
	before := m.signature

	updated, _ := m.Update(storeUpdatedMsg{})
	m = updated.(Model)
	if m.signature != before {
		t.Fatal("signature should be stable without store changes")
	}
	if m.scroll != 1 {
		t.Fatalf("scroll = %d, want 1 when nothing changed", m.scroll)
	}
}

func TestModel_ScrollKeysClamp(t *testing.T) {
	m := newTestModel(t, walkAdvisory, waterAdvisory)

	m = press(t, m, keyRunes("j"))
	if m.scroll != 1 {
		t.Fatalf("scroll after j = %d, want 1", m.scroll)
	}
	m = press(t, m, keyRunes("j"))
	if m.scroll != 1 {
		t.Fatalf("scroll after second j = %d, want 1 (clamped)", m.scroll)
	}
	m = press(t, m, keyRunes("k"))
	m = press(t, m, keyRunes("k"))
	if m.scroll != 0 {
		t.Fatalf("scroll after k k = %d, want 0 (clamped)", m.scroll)
	}
}

func TestModel_QuitKey(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("cmd() = %T, want tea.QuitMsg", cmd())
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, walkAdvisory)
	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.View()
	for _, want := range []string{
		"Pulseboard",
		"frames 12",
		"waiting for vitals",
		"recommendations (1 of 1)",
		"[Exercise]",
		"Taking a short walk outside every morning",
		"NEW",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "disconnected") {
		t.Error("view should show the stream as connected")
	}
}

func TestModel_ViewVitalsAndConfirm(t *testing.T) {
	store := session.NewStore()
	t.Cleanup(store.Close)
	if got := store.Ingest(walkAdvisory); len(got) == 0 {
		t.Fatal("Ingest stored nothing")
	}

	stats := func() core.SessionStats {
		return core.SessionStats{
			Connected: false,
			LastDiagnosis: &core.Diagnosis{
				HealthStatus: "stressed",
				HeartRate:    88,
				StressLevel:  0.7,
				FatigueRisk:  "medium",
				Alerts:       []string{"elevated heart rate"},
			},
		}
	}
	m := newModel(store, stats, t.TempDir())
	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = press(t, m, keyRunes("c"))

	view := m.View()
	for _, want := range []string{
		"disconnected",
		"status stressed",
		"88 bpm",
		"stress 0.7",
		"fatigue medium",
		"elevated heart rate",
		"Remove all 1 recommendation(s)?",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		cursor    int
		size      int
		wantStart int
		wantEnd   int
	}{
		{name: "empty_list", total: 0, cursor: 0, size: 5, wantStart: 0, wantEnd: 0},
		{name: "fits_entirely", total: 3, cursor: 2, size: 8, wantStart: 0, wantEnd: 3},
		{name: "centers_on_cursor", total: 25, cursor: 12, size: 5, wantStart: 10, wantEnd: 15},
		{name: "pins_to_start", total: 25, cursor: 0, size: 5, wantStart: 0, wantEnd: 5},
		{name: "pins_to_end", total: 25, cursor: 24, size: 5, wantStart: 20, wantEnd: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := visibleRange(tt.total, tt.cursor, tt.size)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Fatalf("visibleRange(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.total, tt.cursor, tt.size, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
