package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-sales-dashboard/components/salesdash"
)

const (
	defaultWidth = 120
	chartHeight  = 10
	barWidth     = 24
)

// View renders the dashboard.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	view := m.session.View()
	st := newStyles(salesdash.Theme(view.Theme))

	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	focus, _ := m.focused()

	mainWidth := width
	var sidebar string
	if view.Sidebar.Visible {
		sidebar = m.renderSidebar(view, st, focus)
		mainWidth -= lipgloss.Width(sidebar)
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(view, st),
		renderCards(view, st, focus),
		renderTrend(view, st, mainWidth-4),
		lipgloss.JoinHorizontal(lipgloss.Top,
			renderProducts(view, st),
			renderTeam(view, st, focus),
		),
		renderInsights(view, st, focus),
	)

	body := main
	if sidebar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	}

	sections := []string{body}
	if toasts := renderToasts(view, st); toasts != "" {
		sections = append(sections, toasts)
	}
	if m.lastErr != nil {
		sections = append(sections, st.errorLine.Render(m.lastErr.Error()))
	}
	sections = append(sections, m.help.ShortHelpView(m.keys.shortHelp()), m.help.ShortHelpView(m.keys.fullHelp()))
	return st.app.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderHeader(view salesdash.DashboardView, st styles) string {
	status := view.RefreshLabel
	if view.IsLoading {
		status = m.spinner.View() + " " + status
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		st.title.Render(view.Title)+"  "+st.muted.Render(view.Brand),
		st.muted.Render("Welcome back! Last updated "+view.LastUpdated),
		status,
	)
}

func (m *Model) renderSidebar(view salesdash.DashboardView, st styles, focus focusItem) string {
	var b strings.Builder
	b.WriteString(st.title.Render(view.Brand) + "\n\n")
	for _, nav := range view.Navigation {
		label := nav.Label
		if focus.Kind == focusNav && focus.Name == nav.Label {
			label = "> " + label
		}
		if nav.Active {
			label = st.selected.Render(label)
		}
		b.WriteString(label + "\n")
	}
	b.WriteString("\n" + st.muted.Render("Filters") + "\n")
	fmt.Fprintf(&b, "Date Range  %s\n", view.Filters.DateRange)
	fmt.Fprintf(&b, "Region      %s\n", view.Filters.Region)
	fmt.Fprintf(&b, "Category    %s\n", view.Filters.Category)
	apply := view.ApplyLabel
	if view.FiltersApplied {
		apply = st.onTarget.Render(apply)
	}
	b.WriteString("\n[" + apply + "]")

	style := st.sidebar
	if view.Sidebar.Overlay {
		style = style.BorderForeground(lipgloss.Color(st.accent))
	}
	return style.Render(b.String())
}

func renderCards(view salesdash.DashboardView, st styles, focus focusItem) string {
	cards := make([]string, 0, len(view.Cards))
	for _, card := range view.Cards {
		change := st.down.Render(card.Change)
		if card.TrendUp {
			change = st.up.Render(card.Change)
		}
		lines := []string{st.muted.Render(card.Name), st.title.Render(card.Value), change}
		style := st.card
		if focus.Kind == focusCard && focus.Name == card.Name {
			style = st.focusedCard
			lines = append(lines, st.muted.Render(card.BreakdownTitle))
			for _, item := range card.Breakdown {
				lines = append(lines, fmt.Sprintf("%s  %s", item.Label, item.Value))
			}
			if card.ActionLabel != "" {
				lines = append(lines, "[a] "+card.ActionLabel)
			}
		}
		cards = append(cards, style.Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func renderTrend(view salesdash.DashboardView, st styles, width int) string {
	tabs := make([]string, 0, len(view.Tabs))
	for _, tab := range view.Tabs {
		if tab.Selected {
			tabs = append(tabs, st.selected.Render(tab.Label))
			continue
		}
		tabs = append(tabs, " "+tab.Label+" ")
	}
	header := st.title.Render("Revenue Trends") + "  " + strings.Join(tabs, " ")
	return st.card.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Foreground(lipgloss.Color(view.ActiveTabColor)).Render(trendChart(view.Series, width)),
		st.muted.Render(periodAxis(view.Series)),
	))
}

// trendChart draws the active tab's series as a braille line chart.
func trendChart(series []salesdash.SeriesPointView, width int) string {
	if len(series) < 2 {
		return ""
	}
	if width < 20 {
		width = 20
	}
	maxY := 0.0
	for _, point := range series {
		if point.Value > maxY {
			maxY = point.Value
		}
	}
	if maxY == 0 {
		maxY = 1
	}
	chart := linechart.New(width, chartHeight, 0, float64(len(series)-1), 0, maxY*1.1)
	chart.Clear()
	for i := 0; i < len(series)-1; i++ {
		chart.DrawBrailleLine(
			canvas.Float64Point{X: float64(i), Y: series[i].Value},
			canvas.Float64Point{X: float64(i + 1), Y: series[i+1].Value},
		)
	}
	chart.DrawXYAxisAndLabel()
	return chart.View()
}

func periodAxis(series []salesdash.SeriesPointView) string {
	periods := make([]string, 0, len(series))
	for _, point := range series {
		periods = append(periods, point.Period)
	}
	return strings.Join(periods, "  ")
}

func renderProducts(view salesdash.DashboardView, st styles) string {
	lines := []string{st.title.Render("Product Performance")}
	for _, product := range view.Products {
		bar := progressBar(st.accent).ViewAs(float64(salesdash.ProgressWidth(product.Sales, product.Target)) / 100)
		lines = append(lines, fmt.Sprintf("%-10s %s %3d%%", product.Name, bar, product.Percent))
	}
	return st.card.Render(strings.Join(lines, "\n"))
}

func renderTeam(view salesdash.DashboardView, st styles, focus focusItem) string {
	lines := []string{st.title.Render("Team Performance")}
	for _, member := range view.Team {
		name := fmt.Sprintf("%s %s", member.Avatar, member.Name)
		if focus.Kind == focusMember && focus.Name == member.Name {
			name = "> " + name
		}
		marker := st.onTarget.Render("●")
		if member.Warning {
			marker = st.belowTarget.Render("●")
		}
		target := st.belowTarget.Render(member.TargetLabel)
		fill := st.accent
		if member.OnTarget {
			target = st.onTarget.Render(member.TargetLabel)
			fill = st.success
		}
		lines = append(lines,
			fmt.Sprintf("%s %s  %s", name, marker, st.muted.Render(fmt.Sprintf("%d new leads", member.Leads))),
			fmt.Sprintf("%s  %s", member.SalesLabel, target),
			progressBar(fill).ViewAs(float64(member.BarWidth)/100),
		)
	}
	return st.card.Render(strings.Join(lines, "\n"))
}

func renderInsights(view salesdash.DashboardView, st styles, focus focusItem) string {
	lines := []string{st.title.Render("AI Insights") + "  " + st.muted.Render("Updated 5m ago")}
	for _, insight := range view.Insights {
		title := insight.Title
		if focus.Kind == focusInsight && focus.Name == insight.Title {
			title = "> " + title
		}
		lines = append(lines, st.title.Render(title), st.muted.Render(insight.Body))
	}
	return st.card.Render(strings.Join(lines, "\n"))
}

func renderToasts(view salesdash.DashboardView, st styles) string {
	if len(view.Toasts) == 0 {
		return ""
	}
	toasts := make([]string, 0, len(view.Toasts))
	for _, toast := range view.Toasts {
		style := st.toast
		if toast.Success {
			style = st.toastSuccess
		}
		toasts = append(toasts, style.Render(toast.Title+"\n"+toast.Description))
	}
	return lipgloss.JoinVertical(lipgloss.Right, toasts...)
}

func progressBar(fill string) progress.Model {
	return progress.New(
		progress.WithSolidFill(fill),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
}
