package ui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openwaqf/wird/internal/catalog"
	"github.com/openwaqf/wird/internal/config"
	"github.com/openwaqf/wird/internal/haptics"
	"github.com/openwaqf/wird/internal/progress"
	"github.com/openwaqf/wird/internal/store"
)

func newFocusFixture(t *testing.T, repeat int) (FocusModel, *progress.Store, catalog.Item) {
	t.Helper()
	kv, err := store.OpenAt(filepath.Join(t.TempDir(), "wird.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	ps := progress.New(kv, progress.WithClock(func() time.Time { return now }))
	it := catalog.Item{
		ID:        "morning-dhikr",
		Repeat:    repeat,
		Category:  catalog.CategoryList{"morning"},
		Arabic:    "سبحان الله",
		Reference: "Ref",
	}
	m := NewFocus(ps, "morning", it, []catalog.Item{it}, haptics.Detect(false), config.Default())
	return m, ps, it
}

func pressEnter(m FocusModel) FocusModel {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(FocusModel)
}

func TestFocusIgnoresInputBeforeReady(t *testing.T) {
	m, ps, it := newFocusFixture(t, 3)
	m = pressEnter(m)
	if got := ps.CounterFor("morning", it); got.Current != 0 {
		t.Fatalf("count before ready = %d", got.Current)
	}

	updated, _ := m.Update(readyMsg{})
	m = updated.(FocusModel)
	m = pressEnter(m)
	if got := ps.CounterFor("morning", it); got.Current != 1 {
		t.Fatalf("count after ready = %d", got.Current)
	}
	if !m.popping {
		t.Fatal("counter did not pop")
	}
}

func TestFocusCountsToCompletionAndCloses(t *testing.T) {
	m, ps, it := newFocusFixture(t, 3)
	updated, _ := m.Update(readyMsg{})
	m = updated.(FocusModel)

	for i := 0; i < 3; i++ {
		m = pressEnter(m)
	}
	if !m.counter.Done() {
		t.Fatalf("counter = %d/%d", m.counter.Current, m.counter.Target)
	}
	if !m.closing {
		t.Fatal("view not closing after completion")
	}
	// the sole morning item finished, so the whole category did too
	if !m.catDone {
		t.Fatal("category completion not reflected")
	}
	if !strings.Contains(m.View(), "Category complete") {
		t.Fatal("completion banner missing")
	}

	// counting past completion is inert
	m = pressEnter(m)
	if got := ps.CounterFor("morning", it); got.Current != 3 {
		t.Fatalf("count after close = %d", got.Current)
	}
}

func TestFocusPersistsEveryCount(t *testing.T) {
	m, ps, it := newFocusFixture(t, 7)
	updated, _ := m.Update(readyMsg{})
	m = updated.(FocusModel)

	m = pressEnter(m)
	m = pressEnter(m)
	if got := ps.CounterFor("morning", it); got.Current != 2 {
		t.Fatalf("persisted count = %d", got.Current)
	}
	if m.closing {
		t.Fatal("closing before target")
	}
}
