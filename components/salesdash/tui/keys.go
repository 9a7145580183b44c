package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Theme     key.Binding
	Sidebar   key.Binding
	Tabs      key.Binding
	DateRange key.Binding
	Region    key.Binding
	Category  key.Binding
	Apply     key.Binding
	Refresh   key.Binding
	Export    key.Binding
	Share     key.Binding
	Insights  key.Binding
	Report    key.Binding
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	Action    key.Binding
	Dismiss   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Sidebar:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sidebar")),
		Tabs:      key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "tab")),
		DateRange: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "date range")),
		Region:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "region")),
		Category:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		Apply:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "apply filters")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Export:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Share:     key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "share")),
		Insights:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insights")),
		Report:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "report")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Action:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "card action")),
		Dismiss:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
	}
}

func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Theme, k.Sidebar, k.Tabs, k.Apply, k.Refresh, k.Export, k.Share, k.Open, k.Quit}
}

func (k keyMap) fullHelp() []key.Binding {
	return []key.Binding{
		k.DateRange, k.Region, k.Category, k.Insights, k.Report, k.Up, k.Down, k.Action, k.Dismiss,
	}
}
