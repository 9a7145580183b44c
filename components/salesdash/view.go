package salesdash

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Page identity.
const (
	DashboardTitle = "Sales Dashboard"
	BrandName      = "SalesSync"
)

// NavigationRoutes lists the sidebar entries in display order.
var NavigationRoutes = []string{"Dashboard", "Products", "Team", "Regional Sales", "Reports", "Forecasts"}

// DashboardView is the render model shared by the HTML page, the JSON state
// endpoint and the terminal UI. Every field is precomputed so templates only
// print values and test plain booleans.
type DashboardView struct {
	Title       string `json:"title"`
	Brand       string `json:"brand"`
	LastUpdated string `json:"last_updated,omitempty"`

	Theme      string `json:"theme"`
	IsDark     bool   `json:"is_dark"`
	ThemeNext  string `json:"theme_next"`
	ThemeStyle string `json:"-"`

	Sidebar SidebarView `json:"sidebar"`

	ActiveTab      string       `json:"active_tab"`
	ActiveTabTitle string       `json:"active_tab_title"`
	ActiveTabColor string       `json:"active_tab_color"`
	Tabs           []OptionView `json:"tabs"`

	Filters        FiltersView `json:"filters"`
	IsLoading      bool        `json:"is_loading"`
	FiltersApplied bool        `json:"filters_applied"`
	ApplyLabel     string      `json:"apply_label"`
	RefreshLabel   string      `json:"refresh_label"`

	Cards      []CardView         `json:"cards"`
	Series     []SeriesPointView  `json:"series"`
	Products   []ProductView      `json:"products"`
	Team       []TeamRowView      `json:"team"`
	Insights   []InsightView      `json:"insights"`
	Navigation []NavItemView      `json:"navigation"`
	Toasts     []NotificationView `json:"notifications"`
	Charts     ChartsView         `json:"-"`
}

// SidebarView describes how the sidebar is drawn.
type SidebarView struct {
	Mode    string `json:"mode"`
	Open    bool   `json:"open"`
	Visible bool   `json:"visible"`
	Overlay bool   `json:"overlay"`
}

// OptionView is one selectable option.
type OptionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// FiltersView carries the option lists of the three filter selects.
type FiltersView struct {
	DateRange  string       `json:"date_range"`
	Region     string       `json:"region"`
	Category   string       `json:"category"`
	DateRanges []OptionView `json:"date_ranges"`
	Regions    []OptionView `json:"regions"`
	Categories []OptionView `json:"categories"`
}

// CardView is a rendered metric card.
type CardView struct {
	Name           string          `json:"name"`
	Value          string          `json:"value"`
	Change         string          `json:"change"`
	TrendUp        bool            `json:"trend_up"`
	BreakdownTitle string          `json:"breakdown_title"`
	Breakdown      []BreakdownItem `json:"breakdown"`
	ActionKind     string          `json:"action_kind"`
	ActionLabel    string          `json:"action_label"`
	ActionTarget   string          `json:"action_target"`
}

// SeriesPointView is one point of the active-tab area chart.
type SeriesPointView struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// ProductView is one product bar.
type ProductView struct {
	Name    string  `json:"name"`
	Sales   float64 `json:"sales"`
	Target  float64 `json:"target"`
	Percent int     `json:"percent"`
}

// TeamRowView is one team member row with its computed progress bar.
type TeamRowView struct {
	Name        string `json:"name"`
	Avatar      string `json:"avatar"`
	Status      string `json:"status"`
	Warning     bool   `json:"warning"`
	Leads       int    `json:"leads"`
	SalesLabel  string `json:"sales_label"`
	Percent     int    `json:"percent"`
	BarWidth    int    `json:"bar_width"`
	OnTarget    bool   `json:"on_target"`
	TargetLabel string `json:"target_label"`
}

// InsightView is one insight tile.
type InsightView struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Kind   string `json:"kind"`
	Accent string `json:"accent"`
}

// NavItemView is a sidebar navigation entry.
type NavItemView struct {
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// NotificationView is a visible toast.
type NotificationView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Success     bool   `json:"success"`
	DurationMs  int64  `json:"duration_ms"`
}

// NewNotificationView converts a notification for rendering.
func NewNotificationView(n Notification) NotificationView {
	return NotificationView{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		Success:     n.Style == StyleSuccess,
		DurationMs:  n.DurationMillis(),
	}
}

// ChartsView holds pre-rendered chart markup.
type ChartsView struct {
	Trend    string
	Products string
}

var tabColors = map[Tab]string{
	TabRevenue: "#3b82f6",
	TabUnits:   "#10b981",
	TabProfit:  "#a855f7",
}

var insightAccents = map[InsightKind]string{
	InsightRecommendation: "blue",
	InsightAlert:          "amber",
	InsightOpportunity:    "green",
	InsightRecognition:    "purple",
}

// TabColor is the accent of a tab's chart.
func TabColor(tab Tab) string {
	if color, ok := tabColors[tab]; ok {
		return color
	}
	return tabColors[TabRevenue]
}

// BuildView composes the render model from the state and dataset.
func BuildView(state ViewState, ds Dataset, viewport Viewport, notifications []Notification) DashboardView {
	viewport = normalizeViewport(viewport)
	mode := SidebarModeFor(viewport)
	printer := message.NewPrinter(language.English)

	view := DashboardView{
		Title:      DashboardTitle,
		Brand:      BrandName,
		Theme:      string(state.Theme),
		IsDark:     state.Theme == ThemeDark,
		ThemeNext:  string(state.Theme.Toggle()),
		ThemeStyle: Palette(state.Theme).CSSVariablesInline(),
		Sidebar: SidebarView{
			Mode:    string(mode),
			Open:    state.SidebarOpen,
			Visible: SidebarVisible(state, viewport),
			Overlay: mode == SidebarOverlay,
		},
		ActiveTab:      string(state.ActiveTab),
		ActiveTabTitle: state.ActiveTab.Title(),
		ActiveTabColor: TabColor(state.ActiveTab),
		IsLoading:      state.IsLoading,
		FiltersApplied: state.FiltersApplied,
		ApplyLabel:     ApplyFiltersLabel(state),
		RefreshLabel:   RefreshLabel(state),
		Filters: FiltersView{
			DateRange:  string(state.DateRange),
			Region:     string(state.Region),
			Category:   string(state.Category),
			DateRanges: options(DateRanges(), state.DateRange),
			Regions:    options(Regions(), state.Region),
			Categories: options(Categories(), state.Category),
		},
	}

	for _, tab := range Tabs() {
		view.Tabs = append(view.Tabs, OptionView{
			Value:    string(tab),
			Label:    tab.Title(),
			Selected: tab == state.ActiveTab,
		})
	}

	for _, card := range ds.Cards {
		view.Cards = append(view.Cards, CardView{
			Name:           card.Name,
			Value:          card.Value,
			Change:         card.Change,
			TrendUp:        card.Trend != TrendDown,
			BreakdownTitle: card.BreakdownTitle,
			Breakdown:      append([]BreakdownItem(nil), card.Breakdown...),
			ActionKind:     card.Action.Kind,
			ActionLabel:    card.Action.Label,
			ActionTarget:   card.Action.Target,
		})
	}

	for _, point := range ds.Series {
		view.Series = append(view.Series, SeriesPointView{
			Period: point.Period,
			Value:  point.Value(state.ActiveTab),
		})
	}

	for _, product := range ds.Products {
		view.Products = append(view.Products, ProductView{
			Name:    product.Name,
			Sales:   product.Sales,
			Target:  product.Target,
			Percent: TargetPercent(product.Sales, product.Target),
		})
	}

	for _, member := range ds.Team {
		view.Team = append(view.Team, TeamRowView{
			Name:        member.Name,
			Avatar:      member.Avatar,
			Status:      string(member.Status),
			Warning:     member.Status == MemberWarning,
			Leads:       int(member.Leads),
			SalesLabel:  printer.Sprintf("$%d", int64(member.Sales)),
			Percent:     member.TargetPercent(),
			BarWidth:    member.ProgressWidth(),
			OnTarget:    member.OnTarget(),
			TargetLabel: printer.Sprintf("%d%% of target", member.TargetPercent()),
		})
	}

	for _, insight := range ds.Insights {
		accent, ok := insightAccents[insight.Kind]
		if !ok {
			accent = "blue"
		}
		view.Insights = append(view.Insights, InsightView{
			Title:  insight.Title,
			Body:   insight.Body,
			Kind:   string(insight.Kind),
			Accent: accent,
		})
	}

	for i, route := range NavigationRoutes {
		view.Navigation = append(view.Navigation, NavItemView{Label: route, Active: i == 0})
	}

	for _, n := range notifications {
		view.Toasts = append(view.Toasts, NewNotificationView(n))
	}

	return view
}

func options[T ~string](values []T, selected T) []OptionView {
	out := make([]OptionView, 0, len(values))
	for _, v := range values {
		out = append(out, OptionView{Value: string(v), Label: string(v), Selected: v == selected})
	}
	return out
}
