package tui

import (
	"fmt"

	"github.com/goliatone/go-sales-dashboard/components/salesdash"
)

type focusKind string

const (
	focusNav     focusKind = "nav"
	focusCard    focusKind = "card"
	focusMember  focusKind = "member"
	focusInsight focusKind = "insight"
)

// focusItem is one selectable entry, in render order.
type focusItem struct {
	Kind   focusKind
	Name   string
	Action salesdash.CardAction
}

func focusItems(view salesdash.DashboardView) []focusItem {
	var items []focusItem
	if view.Sidebar.Visible {
		for _, nav := range view.Navigation {
			items = append(items, focusItem{Kind: focusNav, Name: nav.Label})
		}
	}
	for _, card := range view.Cards {
		items = append(items, focusItem{
			Kind: focusCard,
			Name: card.Name,
			Action: salesdash.CardAction{
				Kind:   card.ActionKind,
				Label:  card.ActionLabel,
				Target: card.ActionTarget,
			},
		})
	}
	for _, member := range view.Team {
		items = append(items, focusItem{Kind: focusMember, Name: member.Name})
	}
	for _, insight := range view.Insights {
		items = append(items, focusItem{Kind: focusInsight, Name: insight.Title})
	}
	return items
}

func (m *Model) moveFocus(delta int) {
	items := focusItems(m.session.View())
	if len(items) == 0 {
		m.focus = 0
		return
	}
	m.focus = (m.focus + delta + len(items)) % len(items)
}

func (m *Model) focused() (focusItem, bool) {
	items := focusItems(m.session.View())
	if len(items) == 0 {
		return focusItem{}, false
	}
	if m.focus >= len(items) {
		m.focus = len(items) - 1
	}
	return items[m.focus], true
}

func (m *Model) openFocused() error {
	item, ok := m.focused()
	if !ok {
		return nil
	}
	switch item.Kind {
	case focusNav:
		return m.session.Controller.Navigate(m.ctx, item.Name)
	case focusCard:
		m.session.Dispatcher.ViewMetricDetails(m.ctx, item.Name)
	case focusMember:
		m.session.Dispatcher.ViewTeamMemberDetails(m.ctx, item.Name)
	case focusInsight:
		m.session.Dispatcher.ViewInsightDetails(m.ctx, item.Name)
	}
	return nil
}

// runFocusedAction runs the secondary action of the focused metric card.
func (m *Model) runFocusedAction() error {
	item, ok := m.focused()
	if !ok || item.Kind != focusCard {
		return nil
	}
	switch item.Action.Kind {
	case salesdash.CardActionAlert:
		m.session.Dispatcher.CreateAlert(m.ctx, item.Action.Target, "")
	case salesdash.CardActionReport:
		m.session.Dispatcher.DownloadReport(m.ctx, item.Action.Target)
	case salesdash.CardActionNavigate:
		return m.session.Controller.Navigate(m.ctx, item.Action.Target)
	case "":
		return nil
	default:
		return fmt.Errorf("tui: unknown card action %q", item.Action.Kind)
	}
	return nil
}
