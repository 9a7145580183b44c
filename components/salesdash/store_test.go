package salesdash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce(t *testing.T) {
	base := InitialViewState(false)

	cases := []struct {
		name   string
		state  ViewState
		action Action
		check  func(t *testing.T, got ViewState)
	}{
		{
			name:   "toggle theme",
			state:  base,
			action: ToggleThemeAction{},
			check:  func(t *testing.T, got ViewState) { assert.Equal(t, ThemeDark, got.Theme) },
		},
		{
			name:   "set theme ignores unknown values",
			state:  base,
			action: SetThemeAction{Theme: "sepia"},
			check:  func(t *testing.T, got ViewState) { assert.Equal(t, ThemeLight, got.Theme) },
		},
		{
			name:   "toggle sidebar",
			state:  base,
			action: ToggleSidebarAction{},
			check:  func(t *testing.T, got ViewState) { assert.True(t, got.SidebarOpen) },
		},
		{
			name:   "set tab",
			state:  base,
			action: SetTabAction{Tab: TabProfit},
			check:  func(t *testing.T, got ViewState) { assert.Equal(t, TabProfit, got.ActiveTab) },
		},
		{
			name:   "set tab ignores unknown tabs",
			state:  base,
			action: SetTabAction{Tab: "margin"},
			check:  func(t *testing.T, got ViewState) { assert.Equal(t, TabRevenue, got.ActiveTab) },
		},
		{
			name: "changed filters keep the applied marker",
			state: func() ViewState {
				s := base
				s.FiltersApplied = true
				return s
			}(),
			action: SetFiltersAction{Filters: Filters{Region: RegionAsiaPacific}},
			check: func(t *testing.T, got ViewState) {
				assert.Equal(t, RegionAsiaPacific, got.Region)
				assert.Equal(t, DateRangeLast30Days, got.DateRange)
				assert.True(t, got.FiltersApplied)
			},
		},
		{
			name:   "loading started",
			state:  base,
			action: LoadingStartedAction{},
			check:  func(t *testing.T, got ViewState) { assert.True(t, got.IsLoading) },
		},
		{
			name: "refresh finish keeps a previous apply",
			state: func() ViewState {
				s := base
				s.IsLoading = true
				s.FiltersApplied = true
				return s
			}(),
			action: LoadingFinishedAction{},
			check: func(t *testing.T, got ViewState) {
				assert.False(t, got.IsLoading)
				assert.True(t, got.FiltersApplied)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, Reduce(tc.state, tc.action))
		})
	}
}

func TestReduceLeavesInputUntouched(t *testing.T) {
	state := InitialViewState(false)
	_ = Reduce(state, ToggleThemeAction{})
	assert.Equal(t, ThemeLight, state.Theme)
}

func TestActionName(t *testing.T) {
	assert.Equal(t, "theme.toggle", ActionName(ToggleThemeAction{}))
	assert.Equal(t, "loading.finish", ActionName(LoadingFinishedAction{}))
	assert.Empty(t, ActionName(nil))
}

func TestStoreDispatchBroadcasts(t *testing.T) {
	store := NewStore(InitialViewState(true))
	states, cancel := store.Subscribe()

	got := store.Dispatch(ToggleThemeAction{})
	assert.Equal(t, ThemeLight, got.Theme)
	assert.Equal(t, got, store.State())
	require.Len(t, states, 1)
	assert.Equal(t, got, <-states)

	cancel()
	_, open := <-states
	assert.False(t, open)
}

func TestStoreCloseFreezesState(t *testing.T) {
	store := NewStore(InitialViewState(false))
	states, _ := store.Subscribe()
	store.Close()
	store.Close()

	assert.True(t, store.Closed())
	got := store.Dispatch(ToggleSidebarAction{})
	assert.False(t, got.SidebarOpen)
	_, open := <-states
	assert.False(t, open)

	late, _ := store.Subscribe()
	_, open = <-late
	assert.False(t, open)
}
