package salesdash

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildViewDefaults(t *testing.T) {
	view := BuildView(InitialViewState(false), SampleDataset(), nil, nil)

	assert.Equal(t, DashboardTitle, view.Title)
	assert.Equal(t, BrandName, view.Brand)
	assert.Equal(t, "light", view.Theme)
	assert.Equal(t, "dark", view.ThemeNext)
	assert.False(t, view.IsDark)
	assert.Contains(t, view.ThemeStyle, "--background: #f9fafb;")
	assert.Equal(t, "Apply Filters", view.ApplyLabel)
	assert.Equal(t, "Refresh", view.RefreshLabel)

	assert.Equal(t, SidebarView{Mode: "permanent", Visible: true}, view.Sidebar)

	require.Len(t, view.Tabs, 3)
	assert.True(t, view.Tabs[0].Selected)
	assert.Equal(t, "Units Sold", view.Tabs[1].Label)
	assert.Equal(t, "Revenue", view.ActiveTabTitle)

	assert.Equal(t, "Last 30 days", view.Filters.DateRange)
	require.Len(t, view.Filters.Regions, 4)
	assert.True(t, view.Filters.Regions[0].Selected)

	require.Len(t, view.Navigation, len(NavigationRoutes))
	assert.True(t, view.Navigation[0].Active)
	assert.False(t, view.Navigation[1].Active)
}

func TestBuildViewTeamRows(t *testing.T) {
	view := BuildView(InitialViewState(false), SampleDataset(), nil, nil)
	require.Len(t, view.Team, 4)

	alice := view.Team[0]
	assert.Equal(t, "$56,000", alice.SalesLabel)
	assert.Equal(t, 93, alice.Percent)
	assert.Equal(t, 93, alice.BarWidth)
	assert.Equal(t, "93% of target", alice.TargetLabel)
	assert.False(t, alice.OnTarget)
	assert.Equal(t, 45, alice.Leads)

	bob := view.Team[1]
	assert.Equal(t, 103, bob.Percent)
	assert.Equal(t, 100, bob.BarWidth)
	assert.True(t, bob.OnTarget)

	charlie := view.Team[2]
	assert.True(t, charlie.Warning)
	assert.Equal(t, "warning", charlie.Status)
}

func TestBuildViewFollowsActiveTab(t *testing.T) {
	state := InitialViewState(true)
	state.ActiveTab = TabProfit
	view := BuildView(state, SampleDataset(), nil, nil)

	assert.Equal(t, "profit", view.ActiveTab)
	assert.Equal(t, TabColor(TabProfit), view.ActiveTabColor)
	require.Len(t, view.Series, 7)
	assert.Equal(t, 2400.0, view.Series[0].Value)
	assert.Equal(t, SeriesPointView{Period: "Mar", Value: 9800}, view.Series[2])
	assert.Contains(t, view.ThemeStyle, "--background: #111827;")
}

func TestBuildViewNarrowSidebar(t *testing.T) {
	state := InitialViewState(false)
	view := BuildView(state, SampleDataset(), StaticViewport(true), nil)
	assert.Equal(t, SidebarView{Mode: "overlay", Overlay: true}, view.Sidebar)

	state.SidebarOpen = true
	view = BuildView(state, SampleDataset(), StaticViewport(true), nil)
	assert.True(t, view.Sidebar.Visible)
	assert.True(t, view.Sidebar.Open)
}

func TestBuildViewCardsProductsAndInsights(t *testing.T) {
	view := BuildView(InitialViewState(false), SampleDataset(), nil, []Notification{
		{ID: "n1", Title: "Data Exported", Duration: 3 * time.Second, Style: StyleSuccess},
	})

	require.Len(t, view.Cards, 3)
	assert.True(t, view.Cards[0].TrendUp)
	assert.False(t, view.Cards[2].TrendUp)
	assert.Equal(t, CardActionAlert, view.Cards[0].ActionKind)
	assert.Equal(t, "Deal Size", view.Cards[1].ActionTarget)

	require.Len(t, view.Products, 5)
	assert.Equal(t, 80, view.Products[0].Percent)
	assert.Equal(t, 100, view.Products[2].Percent)

	require.Len(t, view.Insights, 4)
	assert.Equal(t, "blue", view.Insights[0].Accent)
	assert.Equal(t, "amber", view.Insights[1].Accent)
	assert.Equal(t, "green", view.Insights[2].Accent)
	assert.Equal(t, "purple", view.Insights[3].Accent)

	require.Len(t, view.Toasts, 1)
	assert.Equal(t, NotificationView{ID: "n1", Title: "Data Exported", Success: true, DurationMs: 3000}, view.Toasts[0])
}

func TestBuildViewLoadingLabels(t *testing.T) {
	state := InitialViewState(false)
	state.IsLoading = true
	view := BuildView(state, SampleDataset(), nil, nil)
	assert.Equal(t, "Applying...", view.ApplyLabel)
	assert.Equal(t, "Refreshing...", view.RefreshLabel)
}
