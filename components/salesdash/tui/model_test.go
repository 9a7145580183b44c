package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-sales-dashboard/components/salesdash"
)

type harness struct {
	sched   *salesdash.ManualScheduler
	session *salesdash.Session
	model   *Model
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	sched := salesdash.NewManualScheduler(time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC))
	manager := salesdash.NewSessionManager(salesdash.SessionManagerOptions{Scheduler: sched})
	session := manager.Create(context.Background(), salesdash.SessionOptions{})
	model := New(Options{Session: session})
	t.Cleanup(func() {
		model.Close()
		manager.CloseAll()
	})
	return &harness{sched: sched, session: session, model: model}
}

func runes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func (h *harness) send(msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = h.model.Update(msg)
	}
	return cmd
}

func (h *harness) titles() []string {
	var out []string
	for _, n := range h.session.Notifications.Active() {
		out = append(out, n.Title)
	}
	return out
}

func TestKeysDriveViewState(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, salesdash.ThemeLight, h.session.State().Theme)

	h.send(runes('t'))
	assert.Equal(t, salesdash.ThemeDark, h.session.State().Theme)
	assert.Contains(t, h.titles(), "Dark Mode Activated")

	h.send(runes('2'))
	assert.Equal(t, salesdash.TabUnits, h.session.State().ActiveTab)
	h.send(runes('3'))
	assert.Equal(t, salesdash.TabProfit, h.session.State().ActiveTab)
	h.send(runes('1'))
	assert.Equal(t, salesdash.TabRevenue, h.session.State().ActiveTab)

	h.send(runes('s'))
	assert.True(t, h.session.State().SidebarOpen)
}

func TestFilterKeysCycleOptions(t *testing.T) {
	h := newHarness(t)

	h.send(runes('d'), runes('g'), runes('c'))
	state := h.session.State()
	assert.Equal(t, salesdash.DateRangeLastQuarter, state.DateRange)
	assert.Equal(t, salesdash.RegionNorthAmerica, state.Region)
	assert.Equal(t, salesdash.CategoryElectronics, state.Category)

	h.send(runes('d'), runes('d'), runes('d'))
	assert.Equal(t, salesdash.DateRangeLast30Days, h.session.State().DateRange)
	assert.NoError(t, h.model.Err())
}

func TestApplyFiltersKeyShowsLoading(t *testing.T) {
	h := newHarness(t)

	h.send(runes('f'))
	assert.True(t, h.session.State().IsLoading)
	assert.Contains(t, h.model.View(), "Applying...")
	assert.Contains(t, h.titles(), "Filters Applied")

	h.sched.Advance(salesdash.ApplyFiltersResetDelay)
	state := h.session.State()
	assert.False(t, state.IsLoading)
	assert.True(t, state.FiltersApplied)
	assert.Contains(t, h.model.View(), "Filters Applied ✓")
}

func TestRefreshKeyEmitsCompletion(t *testing.T) {
	h := newHarness(t)

	h.send(runes('r'))
	assert.True(t, h.session.State().IsLoading)
	assert.Contains(t, h.model.View(), "Refreshing...")

	h.sched.Advance(salesdash.RefreshResetDelay)
	assert.False(t, h.session.State().IsLoading)
	assert.Contains(t, h.titles(), "Dashboard Updated")
}

func TestActionKeys(t *testing.T) {
	cases := []struct {
		key   rune
		title string
	}{
		{'e', "Export Started"},
		{'h', "Share Dashboard"},
		{'i', "AI Insights"},
		{'p', "Generating Revenue Trends Report"},
	}
	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			h := newHarness(t)
			h.send(runes(tc.key))
			assert.Contains(t, h.titles(), tc.title)
		})
	}
}

func TestFocusOpensDetails(t *testing.T) {
	h := newHarness(t)
	// Narrow terminals hide the closed sidebar, so focus starts on the first card.
	h.send(tea.WindowSizeMsg{Width: 80, Height: 40})

	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, h.titles(), "Total Revenue Details")

	h.send(runes('a'))
	assert.Contains(t, h.titles(), "Alert Created")

	// Three cards precede the team rows.
	h.send(runes('j'), runes('j'), runes('j'), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, h.titles(), "Team Member: Alice")

	h.send(runes('k'), runes('k'), runes('a'))
	assert.Contains(t, h.titles(), "Generating Deal Size Report")
}

func TestFocusWrapsToInsights(t *testing.T) {
	h := newHarness(t)
	h.send(tea.WindowSizeMsg{Width: 80, Height: 40})

	h.send(runes('k'), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, h.titles(), "Insight: Performance Recognition")
}

func TestSidebarFollowsTerminalWidth(t *testing.T) {
	h := newHarness(t)

	h.send(tea.WindowSizeMsg{Width: 160, Height: 50})
	assert.Equal(t, salesdash.SidebarPermanent, h.session.Controller.SidebarPresentation())
	assert.Contains(t, h.model.View(), "Regional Sales")

	h.send(tea.WindowSizeMsg{Width: 80, Height: 50})
	assert.Equal(t, salesdash.SidebarOverlay, h.session.Controller.SidebarPresentation())
	assert.NotContains(t, h.model.View(), "Regional Sales")

	h.send(runes('s'))
	assert.Contains(t, h.model.View(), "Regional Sales")
}

func TestViewRendersDashboard(t *testing.T) {
	h := newHarness(t)
	h.send(tea.WindowSizeMsg{Width: 160, Height: 50})

	out := h.model.View()
	for _, want := range []string{
		"Sales Dashboard",
		"Total Revenue",
		"Revenue Trends",
		"Product Performance",
		"Product A",
		"Alice",
		"93% of target",
		"103% of target",
		"AI Insights",
		"Last updated 3/7/2025",
	} {
		assert.Contains(t, out, want)
	}

	h.send(runes('e'))
	assert.Contains(t, h.model.View(), "Export Started")

	h.send(runes('x'))
	assert.Empty(t, h.session.Notifications.Active())
}

func TestSessionMessagesRelisten(t *testing.T) {
	h := newHarness(t)

	cmd := h.send(NotificationMsg(salesdash.Notification{Title: "x"}))
	assert.NotNil(t, cmd)
	cmd = h.send(StateMsg(h.session.State()))
	assert.NotNil(t, cmd)
}

func TestGestureErrorsAreKept(t *testing.T) {
	h := newHarness(t)
	h.session.Close()

	h.send(runes('t'))
	assert.ErrorIs(t, h.model.Err(), salesdash.ErrSessionClosed)
	assert.Contains(t, h.model.View(), salesdash.ErrSessionClosed.Error())
}

func TestQuitStopsListeners(t *testing.T) {
	h := newHarness(t)

	cmd := h.send(runes('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, h.model.View())
	assert.Nil(t, h.send(redrawMsg(time.Now())))
}
