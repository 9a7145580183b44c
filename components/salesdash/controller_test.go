package salesdash

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type controllerHarness struct {
	ctrl  *ViewController
	rec   *Recorder
	sched *ManualScheduler
}

func newControllerHarness(t *testing.T, opts ControllerOptions) controllerHarness {
	t.Helper()
	rec := &Recorder{}
	sched := NewManualScheduler(time.Time{})
	opts.Notifier = rec
	opts.Scheduler = sched
	ctrl := NewViewController(opts)
	t.Cleanup(ctrl.Close)
	return controllerHarness{ctrl: ctrl, rec: rec, sched: sched}
}

func TestControllerStartupIsSilentAndFollowsPreference(t *testing.T) {
	h := newControllerHarness(t, ControllerOptions{PrefersDark: true})

	state := h.ctrl.State()
	assert.Equal(t, ThemeDark, state.Theme)
	assert.Equal(t, TabRevenue, state.ActiveTab)
	assert.Equal(t, DefaultFilters(), state.Filters())
	assert.False(t, state.IsLoading)
	assert.Empty(t, h.rec.Notifications())

	view := BuildView(state, SampleDataset(), nil, nil)
	assert.True(t, view.IsDark)
	assert.Equal(t, "dark", view.Theme)
}

func TestControllerToggleThemeTwiceRestoresAndNotifiesEachTime(t *testing.T) {
	h := newControllerHarness(t, ControllerOptions{})
	ctx := context.Background()

	state, err := h.ctrl.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, state.Theme)
	require.Len(t, h.rec.Notifications(), 1)
	first := h.rec.Notifications()[0]
	assert.Equal(t, "Dark Mode Activated", first.Title)
	assert.Equal(t, "The dashboard theme has been switched to dark mode", first.Description)
	assert.Equal(t, 2*time.Second, first.Duration)

	state, err = h.ctrl.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, state.Theme)
	require.Len(t, h.rec.Notifications(), 2)
	assert.Equal(t, "Light Mode Activated", h.rec.Notifications()[1].Title)
	assert.Equal(t, "The dashboard theme has been switched to light mode", h.rec.Notifications()[1].Description)
}

func TestControllerToggleSidebarIsSilent(t *testing.T) {
	h := newControllerHarness(t, ControllerOptions{Viewport: StaticViewport(true)})

	state, err := h.ctrl.ToggleSidebar(context.Background())
	require.NoError(t, err)
	assert.True(t, state.SidebarOpen)
	assert.Equal(t, SidebarOverlay, h.ctrl.SidebarPresentation())
	assert.Empty(t, h.rec.Notifications())

	h.ctrl.SetViewport(WidthViewport{Width: 1280})
	assert.Equal(t, SidebarPermanent, h.ctrl.SidebarPresentation())
}

func TestControllerSetActiveTab(t *testing.T) {
	h := newControllerHarness(t, ControllerOptions{})
	ctx := context.Background()

	state, err := h.ctrl.SetActiveTab(ctx, "units")
	require.NoError(t, err)
	assert.Equal(t, TabUnits, state.ActiveTab)
	require.Len(t, h.rec.Notifications(), 1)
	assert.Equal(t, "Viewing units data", h.rec.Notifications()[0].Title)
	assert.Equal(t, "Switched to units visualization", h.rec.Notifications()[0].Description)
	assert.Equal(t, 2*time.Second, h.rec.Notifications()[0].Duration)

	_, err = h.ctrl.SetActiveTab(ctx, "units")
	require.NoError(t, err)
	assert.Len(t, h.rec.Notifications(), 1, "re-selecting the active tab is silent")
}

func TestControllerRejectsUnknownTab(t *testing.T) {
	h := newControllerHarness(t, ControllerOptions{})

	state, err := h.ctrl.SetActiveTab(context.Background(), "margin")
	require.ErrorIs(t, err, ErrInvalidTab)
	assert.Equal(t, TabRevenue, state.ActiveTab)
	assert.Empty(t, h.rec.Notifications())
}

func TestControllerSetFiltersValidatesAndStaysSilent(t *testing.T) {
	h := newControllerHarness(t, ControllerOptions{})
	ctx := context.Background()

	state, err := h.ctrl.SetFilters(ctx, Filters{Region: RegionEurope})
	require.NoError(t, err)
	assert.Equal(t, RegionEurope, state.Region)
	assert.Equal(t, DateRangeLast30Days, state.DateRange)

	_, err = h.ctrl.SetFilters(ctx, Filters{Category: "Furniture"})
	require.ErrorIs(t, err, ErrInvalidFilter)
	assert.Equal(t, CategoryAll, h.ctrl.State().Category)
	assert.Empty(t, h.rec.Notifications())
}

func TestControllerApplyFiltersScenario(t *testing.T) {
	h := newControllerHarness(t, ControllerOptions{})

	started, err := h.ctrl.ApplyFilters(context.Background())
	require.NoError(t, err)
	require.True(t, started)
	assert.True(t, h.ctrl.State().IsLoading)
	assert.Equal(t, "Applying...", ApplyFiltersLabel(h.ctrl.State()))
	require.Equal(t, []string{"Filters Applied"}, h.rec.Titles())

	h.sched.Advance(999 * time.Millisecond)
	assert.True(t, h.ctrl.State().IsLoading)

	h.sched.Advance(time.Millisecond)
	state := h.ctrl.State()
	assert.False(t, state.IsLoading)
	assert.True(t, state.FiltersApplied)
	assert.Equal(t, "Filters Applied ✓", ApplyFiltersLabel(state))
	assert.Len(t, h.rec.Notifications(), 1)
}

func TestControllerApplyFiltersFailureLeavesFlagUnset(t *testing.T) {
	h := newControllerHarness(t, ControllerOptions{Backend: &failingBackend{err: assert.AnError}})

	_, err := h.ctrl.ApplyFilters(context.Background())
	require.NoError(t, err)
	h.sched.Advance(ApplyFiltersResetDelay)
	assert.False(t, h.ctrl.State().IsLoading)
	assert.False(t, h.ctrl.State().FiltersApplied)
	assert.Equal(t, "Apply Filters", ApplyFiltersLabel(h.ctrl.State()))
}

func TestControllerAppliedMarkerSurvivesFilterChanges(t *testing.T) {
	h := newControllerHarness(t, ControllerOptions{})
	ctx := context.Background()

	_, _ = h.ctrl.ApplyFilters(ctx)
	h.sched.Advance(ApplyFiltersResetDelay)
	require.True(t, h.ctrl.State().FiltersApplied)

	state, err := h.ctrl.SetFilters(ctx, Filters{Region: RegionEurope})
	require.NoError(t, err)
	assert.Equal(t, RegionEurope, state.Region)
	assert.True(t, state.FiltersApplied)
	assert.Equal(t, "Filters Applied ✓", ApplyFiltersLabel(state))
}

func TestControllerRefreshScenario(t *testing.T) {
	h := newControllerHarness(t, ControllerOptions{})

	started, err := h.ctrl.Refresh(context.Background())
	require.NoError(t, err)
	require.True(t, started)
	assert.True(t, h.ctrl.State().IsLoading)
	assert.Equal(t, "Refreshing...", RefreshLabel(h.ctrl.State()))
	assert.Equal(t, []string{"Refreshing Dashboard"}, h.rec.Titles())
	assert.Equal(t, 1, h.ctrl.Pending())
	assert.Equal(t, 1, h.ctrl.Dispatcher().Pending())

	h.sched.Advance(1499 * time.Millisecond)
	assert.True(t, h.ctrl.State().IsLoading)
	assert.Len(t, h.rec.Notifications(), 1)

	h.sched.Advance(time.Millisecond)
	assert.False(t, h.ctrl.State().IsLoading)
	assert.Equal(t, []string{"Refreshing Dashboard", "Dashboard Updated"}, h.rec.Titles())
	assert.Equal(t, "Refresh", RefreshLabel(h.ctrl.State()))
	assert.False(t, h.ctrl.State().FiltersApplied)
}

func TestControllerUnifiedRefreshClearsWithUpdate(t *testing.T) {
	h := newControllerHarness(t, ControllerOptions{UnifiedRefresh: true})

	_, err := h.ctrl.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, h.ctrl.Pending(), "no independent controller timer")

	h.sched.Advance(RefreshResetDelay - time.Millisecond)
	assert.True(t, h.ctrl.State().IsLoading)

	h.sched.Advance(time.Millisecond)
	assert.False(t, h.ctrl.State().IsLoading)
	assert.Equal(t, []string{"Refreshing Dashboard", "Dashboard Updated"}, h.rec.Titles())
}

func TestControllerIgnoresGesturesWhileLoading(t *testing.T) {
	h := newControllerHarness(t, ControllerOptions{})
	ctx := context.Background()

	_, _ = h.ctrl.Refresh(ctx)
	started, err := h.ctrl.ApplyFilters(ctx)
	require.NoError(t, err)
	assert.False(t, started)
	started, err = h.ctrl.Refresh(ctx)
	require.NoError(t, err)
	assert.False(t, started)
	assert.Equal(t, []string{"Refreshing Dashboard"}, h.rec.Titles())
}

func TestControllerNavigate(t *testing.T) {
	h := newControllerHarness(t, ControllerOptions{})
	require.NoError(t, h.ctrl.Navigate(context.Background(), "Forecasts"))
	assert.Equal(t, []string{"Navigating to Forecasts"}, h.rec.Titles())
}

func TestControllerCloseCancelsPendingResets(t *testing.T) {
	h := newControllerHarness(t, ControllerOptions{})
	ctx := context.Background()

	_, _ = h.ctrl.Refresh(ctx)
	h.ctrl.Close()
	h.sched.Advance(5 * time.Second)

	assert.True(t, h.ctrl.State().IsLoading, "stale reset must not run after teardown")
	assert.Equal(t, []string{"Refreshing Dashboard"}, h.rec.Titles())

	_, err := h.ctrl.ToggleTheme(ctx)
	assert.ErrorIs(t, err, ErrSessionClosed)
	_, err = h.ctrl.ApplyFilters(ctx)
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestControllerSubscribeStreamsStates(t *testing.T) {
	h := newControllerHarness(t, ControllerOptions{})
	states, cancel := h.ctrl.Subscribe()
	defer cancel()

	_, _ = h.ctrl.ToggleSidebar(context.Background())
	select {
	case state := <-states:
		assert.True(t, state.SidebarOpen)
	default:
		t.Fatal("expected a state snapshot")
	}
}
