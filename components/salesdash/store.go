package salesdash

import "sync"

// Action is a state transition request handled by Reduce.
type Action interface {
	actionName() string
}

// ToggleThemeAction flips between light and dark.
type ToggleThemeAction struct{}

// SetThemeAction forces a theme.
type SetThemeAction struct{ Theme Theme }

// ToggleSidebarAction flips the sidebar visibility.
type ToggleSidebarAction struct{}

// SetTabAction selects the trend chart metric.
type SetTabAction struct{ Tab Tab }

// SetFiltersAction stores new filter selections and clears the applied marker.
type SetFiltersAction struct{ Filters Filters }

// LoadingStartedAction marks a filter apply or refresh in flight.
type LoadingStartedAction struct{}

// LoadingFinishedAction clears the loading flag. FiltersApplied is recorded
// only when set; a refresh never clears a previous apply.
type LoadingFinishedAction struct{ FiltersApplied bool }

func (ToggleThemeAction) actionName() string     { return "theme.toggle" }
func (SetThemeAction) actionName() string        { return "theme.set" }
func (ToggleSidebarAction) actionName() string   { return "sidebar.toggle" }
func (SetTabAction) actionName() string          { return "tab.set" }
func (SetFiltersAction) actionName() string      { return "filters.set" }
func (LoadingStartedAction) actionName() string  { return "loading.start" }
func (LoadingFinishedAction) actionName() string { return "loading.finish" }

// ActionName returns the stable name of an action, used for logs and telemetry.
func ActionName(a Action) string {
	if a == nil {
		return ""
	}
	return a.actionName()
}

// Reduce returns the state that results from applying action to state.
// Unknown actions leave the state unchanged.
func Reduce(state ViewState, action Action) ViewState {
	switch a := action.(type) {
	case ToggleThemeAction:
		state.Theme = state.Theme.Toggle()
	case SetThemeAction:
		if a.Theme == ThemeLight || a.Theme == ThemeDark {
			state.Theme = a.Theme
		}
	case ToggleSidebarAction:
		state.SidebarOpen = !state.SidebarOpen
	case SetTabAction:
		if _, err := ParseTab(string(a.Tab)); err == nil {
			state.ActiveTab = a.Tab
		}
	case SetFiltersAction:
		next := state.Filters().Merge(a.Filters)
		state.DateRange = next.DateRange
		state.Region = next.Region
		state.Category = next.Category
	case LoadingStartedAction:
		state.IsLoading = true
	case LoadingFinishedAction:
		state.IsLoading = false
		if a.FiltersApplied {
			state.FiltersApplied = true
		}
	}
	return state
}

// Store owns a ViewState and serialises every change through Reduce.
type Store struct {
	mu     sync.RWMutex
	state  ViewState
	subs   map[int]chan ViewState
	next   int
	closed bool
}

// NewStore creates a store holding initial.
func NewStore(initial ViewState) *Store {
	return &Store{
		state: initial,
		subs:  make(map[int]chan ViewState),
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() ViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch reduces action into the state and broadcasts the result. A closed
// store ignores dispatches and returns the last state.
func (s *Store) Dispatch(action Action) ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.state
	}
	s.state = Reduce(s.state, action)
	for _, ch := range s.subs {
		select {
		case ch <- s.state:
		default:
		}
	}
	return s.state
}

// Subscribe returns a channel of state snapshots and a cancel func.
func (s *Store) Subscribe() (<-chan ViewState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan ViewState, 8)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.next
	s.next++
	s.subs[id] = ch
	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Closed reports whether Close was called.
func (s *Store) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Close detaches every subscriber and freezes the state.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
