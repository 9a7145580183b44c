package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-sales-dashboard/components/salesdash"
)

type styles struct {
	app          lipgloss.Style
	title        lipgloss.Style
	muted        lipgloss.Style
	card         lipgloss.Style
	focusedCard  lipgloss.Style
	sidebar      lipgloss.Style
	selected     lipgloss.Style
	up           lipgloss.Style
	down         lipgloss.Style
	onTarget     lipgloss.Style
	belowTarget  lipgloss.Style
	toast        lipgloss.Style
	toastSuccess lipgloss.Style
	errorLine    lipgloss.Style

	accent  string
	success string
	warning string
}

// newStyles maps the theme tokens shared with the HTML page onto lipgloss styles.
func newStyles(theme salesdash.Theme) styles {
	tokens := salesdash.Palette(theme).Tokens
	color := func(name string) lipgloss.Color { return lipgloss.Color(tokens[name]) }

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color("border")).
		Background(color("surface")).
		Foreground(color("text")).
		Padding(0, 1)

	return styles{
		app:          lipgloss.NewStyle().Background(color("background")).Foreground(color("text")),
		title:        lipgloss.NewStyle().Bold(true).Foreground(color("text")),
		muted:        lipgloss.NewStyle().Foreground(color("text-muted")),
		card:         card,
		focusedCard:  card.BorderForeground(color("accent")),
		sidebar:      card.Width(24),
		selected:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(color("accent")).Padding(0, 1),
		up:           lipgloss.NewStyle().Foreground(color("success")),
		down:         lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
		onTarget:     lipgloss.NewStyle().Foreground(color("success")),
		belowTarget:  lipgloss.NewStyle().Foreground(color("warning")),
		toast:        card.Width(40),
		toastSuccess: card.Width(40).BorderForeground(lipgloss.Color("#4ade80")).Foreground(lipgloss.Color("#166534")).Background(lipgloss.Color("#dcfce7")),
		errorLine:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),

		accent:  tokens["accent"],
		success: tokens["success"],
		warning: tokens["warning"],
	}
}
