// Package ui holds the focus-mode counting view: one item, a big counter
// and a progress bar. It drives the same counting state machine as the
// inline card path, so both stay numerically consistent.
package ui

import (
	"fmt"
	"time"

	pbar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/openwaqf/wird/internal/catalog"
	"github.com/openwaqf/wird/internal/config"
	"github.com/openwaqf/wird/internal/haptics"
	"github.com/openwaqf/wird/internal/progress"
)

type readyMsg struct{}
type popEndMsg struct{}
type closeMsg struct{}

type FocusModel struct {
	store      *progress.Store
	item       catalog.Item
	categoryID string
	items      []catalog.Item // the category's items, for the completion check
	counter    progress.Counter
	bar        pbar.Model
	engine     haptics.Engine
	cfg        config.Config
	theme      Theme
	width      int
	ready      bool
	popping    bool
	closing    bool
	catDone    bool
	err        error
}

func NewFocus(store *progress.Store, category string, item catalog.Item, items []catalog.Item, engine haptics.Engine, cfg config.Config) FocusModel {
	bar := pbar.New(pbar.WithDefaultGradient())
	bar.Width = 40
	return FocusModel{
		store:      store,
		item:       item,
		categoryID: category,
		items:      items,
		counter:    store.CounterFor(category, item),
		bar:        bar,
		engine:     engine,
		cfg:        cfg,
		theme:      DefaultTheme,
	}
}

// Init holds input for the render delay, matching the card fade-in.
func (m FocusModel) Init() tea.Cmd {
	return tea.Tick(m.cfg.RenderDelay(), func(time.Time) tea.Msg { return readyMsg{} })
}

func (m FocusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if w := msg.Width - 8; w > 10 {
			m.bar.Width = w
		}
		return m, nil

	case readyMsg:
		m.ready = true
		return m, nil

	case popEndMsg:
		m.popping = false
		return m, nil

	case closeMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ", "enter":
			if m.closing || !m.ready {
				return m, nil
			}
			done, err := m.store.Increment(&m.counter, m.items)
			if err != nil {
				m.err = err
				return m, tea.Quit
			}
			haptics.ForCounter(m.engine, m.counter.Current, m.counter.Target)
			m.popping = true
			cmds := []tea.Cmd{
				tea.Tick(m.cfg.CounterPop(), func(time.Time) tea.Msg { return popEndMsg{} }),
			}
			if done {
				m.closing = true
				m.catDone = m.store.DayState().CategoriesDone[m.categoryID]
				// a category completion stays up for its pulse
				// duration before the view closes
				delay := m.cfg.FocusClose()
				if m.catDone {
					delay = m.cfg.CategoryPulse()
				}
				cmds = append(cmds, tea.Tick(delay, func(time.Time) tea.Msg { return closeMsg{} }))
			}
			return m, tea.Batch(cmds...)
		}
	}
	return m, nil
}

func (m FocusModel) View() string {
	if !m.ready {
		return ""
	}
	t := m.theme

	var body string
	if m.item.PreText != "" {
		body += t.PreText.Render(m.item.PreText) + "\n"
	}
	body += t.Arabic.Render(m.item.Arabic) + "\n\n"

	counterStyle := t.Counter
	if m.popping {
		counterStyle = counterStyle.Reverse(true)
	}
	counter := counterStyle.Render(fmt.Sprintf("%d", m.counter.Current)) +
		t.Target.Render(fmt.Sprintf(" / %d", m.counter.Target))
	body += counter + "\n"
	body += m.bar.ViewAs(m.counter.Percent()/100) + "\n\n"

	switch {
	case m.closing && m.catDone:
		body += t.Success.Render("Category complete") + "\n"
	case m.closing:
		body += t.Success.Render("Complete") + "\n"
	default:
		body += t.Hint.Render("space/enter to count · q to close") + "\n"
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		t.Title.Render(m.item.Reference),
		t.Border.Render(body),
	)
	return view + "\n"
}

// Err reports a persistence failure that ended the session early.
func (m FocusModel) Err() error { return m.err }

// RunFocus opens the focus view and blocks until it closes.
func RunFocus(m FocusModel) error {
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(FocusModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
