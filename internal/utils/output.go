package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// OutputFormat represents different output formats
type OutputFormat string

const (
	FormatDefault OutputFormat = "default"
	FormatJSON    OutputFormat = "json"
	FormatCompact OutputFormat = "compact"
	FormatQuiet   OutputFormat = "quiet"
)

type RenderConfig struct {
	Format OutputFormat
	Color  bool
}

func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{Format: FormatDefault, Color: true}
}

// Card is one item's presentation row.
type Card struct {
	ID              string  `json:"id"`
	Arabic          string  `json:"arabic"`
	Transliteration string  `json:"transliteration,omitempty"`
	Translation     string  `json:"translation,omitempty"`
	Reference       string  `json:"reference"`
	PreText         string  `json:"pre_text,omitempty"`
	Current         int     `json:"current"`
	Target          int     `json:"target"`
	Percent         float64 `json:"percent"`
	Done            bool    `json:"done"`
	Favorite        bool    `json:"favorite"`
}

// CategoryView is a rendered category page.
type CategoryView struct {
	Category     string `json:"category"`
	Title        string `json:"title"`
	Cards        []Card `json:"cards"`
	Completed    int    `json:"completed"`
	Total        int    `json:"total"`
	CategoryDone bool   `json:"category_done"`
	AllDone      bool   `json:"all_done"`
	EmptyMessage string `json:"empty_message,omitempty"`
}

// SummaryRow is one category's line in the daily summary.
type SummaryRow struct {
	Category  string `json:"category"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Done      bool   `json:"done"`
}

type Summary struct {
	Day     string       `json:"day"`
	Rows    []SummaryRow `json:"rows"`
	Streak  int          `json:"streak"`
	AllDone bool         `json:"all_done"`
}

type Renderer struct {
	config *RenderConfig
	styles rendererStyles
}

type rendererStyles struct {
	Title    lipgloss.Style
	Done     lipgloss.Style
	Pending  lipgloss.Style
	Counter  lipgloss.Style
	Meta     lipgloss.Style
	BarFill  lipgloss.Style
	BarEmpty lipgloss.Style
	Reward   lipgloss.Style
}

func NewRenderer(config *RenderConfig) *Renderer {
	if config == nil {
		config = DefaultRenderConfig()
	}
	r := &Renderer{config: config}
	if config.Color {
		r.styles = rendererStyles{
			Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
			Done:     lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
			Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F2CDCD")),
			Counter:  lipgloss.NewStyle().Bold(true),
			Meta:     lipgloss.NewStyle().Faint(true),
			BarFill:  lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
			BarEmpty: lipgloss.NewStyle().Faint(true),
			Reward:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9E2AF")),
		}
	}
	return r
}

const barWidth = 20

func (r *Renderer) bar(percent float64) string {
	filled := int(percent / 100 * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	fill := strings.Repeat("█", filled)
	rest := strings.Repeat("░", barWidth-filled)
	return r.styles.BarFill.Render(fill) + r.styles.BarEmpty.Render(rest)
}

// RenderCategory renders a category page in the configured format.
func (r *Renderer) RenderCategory(v CategoryView) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b) + "\n", nil
	case FormatQuiet:
		return fmt.Sprintf("%d/%d\n", v.Completed, v.Total), nil
	case FormatCompact:
		var sb strings.Builder
		for _, c := range v.Cards {
			mark := " "
			if c.Done {
				mark = "✓"
			}
			fmt.Fprintf(&sb, "%s %-24s %d/%d\n", mark, c.ID, c.Current, c.Target)
		}
		return sb.String(), nil
	}

	var sb strings.Builder
	title := fmt.Sprintf("%s (%d/%d)", v.Title, v.Completed, v.Total)
	if v.CategoryDone {
		title += " ✓"
	}
	sb.WriteString(r.styles.Title.Render(title) + "\n\n")

	if len(v.Cards) == 0 {
		sb.WriteString(r.styles.Meta.Render(v.EmptyMessage) + "\n")
		return sb.String(), nil
	}

	for _, c := range v.Cards {
		style := r.styles.Pending
		if c.Done {
			style = r.styles.Done
		}
		heart := ""
		if c.Favorite {
			heart = " ♥"
		}
		if c.PreText != "" {
			sb.WriteString(r.styles.Meta.Render(c.PreText) + "\n")
		}
		sb.WriteString(style.Render(c.Arabic) + "\n")
		if c.Transliteration != "" {
			sb.WriteString(r.styles.Meta.Render(c.Transliteration) + "\n")
		}
		if c.Translation != "" {
			sb.WriteString(r.styles.Meta.Render(c.Translation) + "\n")
		}
		counter := r.styles.Counter.Render(fmt.Sprintf("%d/%d", c.Current, c.Target))
		sb.WriteString(fmt.Sprintf("%s %s  %s%s  %s\n\n",
			r.bar(c.Percent), counter, c.ID, heart, r.styles.Meta.Render(c.Reference)))
	}
	if v.AllDone {
		sb.WriteString(r.styles.Reward.Render("All categories complete for today") + "\n")
	}
	return sb.String(), nil
}

// RenderSummary renders the daily summary in the configured format.
func (r *Renderer) RenderSummary(s Summary) (string, error) {
	if r.config.Format == FormatJSON {
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b) + "\n", nil
	}

	var sb strings.Builder
	sb.WriteString(r.styles.Title.Render("Today ("+s.Day+")") + "\n")
	for _, row := range s.Rows {
		mark := " "
		if row.Done {
			mark = "✓"
		}
		fmt.Fprintf(&sb, "  %s %-10s %2d/%2d\n", mark, row.Category, row.Completed, row.Total)
	}
	fmt.Fprintf(&sb, "  streak: %d day(s)\n", s.Streak)
	if s.AllDone {
		sb.WriteString(r.styles.Reward.Render("  All four categories done, well done!") + "\n")
	}
	return sb.String(), nil
}
