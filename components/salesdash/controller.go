package salesdash

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Loading resets.
const (
	ApplyFiltersResetDelay = 1000 * time.Millisecond
	RefreshResetDelay      = 1500 * time.Millisecond
)

// ControllerOptions configures a ViewController.
type ControllerOptions struct {
	// Store holds the view state. A new store seeded from PrefersDark is
	// created when nil.
	Store *Store
	// Dispatcher runs the actions. When nil the controller builds and owns one.
	Dispatcher  *Dispatcher
	Notifier    Notifier
	Viewport    Viewport
	Scheduler   Scheduler
	Backend     Backend
	Telemetry   Telemetry
	Logger      *zerolog.Logger
	PrefersDark bool
	// UnifiedRefresh clears the loading flag in the same task that emits
	// "Dashboard Updated" instead of on an independent timer.
	UnifiedRefresh bool
}

// ViewController reacts to user gestures by reducing the view state and
// invoking the dispatcher.
type ViewController struct {
	mu             sync.Mutex
	store          *Store
	dispatcher     *Dispatcher
	ownsDispatcher bool
	notifier       Notifier
	viewport       Viewport
	tasks          *TaskGroup
	telemetry      Telemetry
	logger         zerolog.Logger
	unifiedRefresh bool
	closed         bool
}

// NewViewController builds a controller. Startup is silent: no notification
// is emitted.
func NewViewController(opts ControllerOptions) *ViewController {
	store := opts.Store
	if store == nil {
		store = NewStore(InitialViewState(opts.PrefersDark))
	}
	notifier := normalizeNotifier(opts.Notifier)
	dispatcher := opts.Dispatcher
	owns := false
	if dispatcher == nil {
		dispatcher = NewDispatcher(DispatcherOptions{
			Notifier:  notifier,
			Scheduler: opts.Scheduler,
			Backend:   opts.Backend,
			Telemetry: opts.Telemetry,
			Logger:    opts.Logger,
			Filters:   func() Filters { return store.State().Filters() },
		})
		owns = true
	}
	return &ViewController{
		store:          store,
		dispatcher:     dispatcher,
		ownsDispatcher: owns,
		notifier:       notifier,
		viewport:       normalizeViewport(opts.Viewport),
		tasks:          NewTaskGroup(opts.Scheduler),
		telemetry:      normalizeTelemetry(opts.Telemetry),
		logger:         componentLogger(opts.Logger, "controller"),
		unifiedRefresh: opts.UnifiedRefresh,
	}
}

// State returns the current view state.
func (c *ViewController) State() ViewState {
	return c.store.State()
}

// Store exposes the underlying store.
func (c *ViewController) Store() *Store {
	return c.store
}

// Dispatcher exposes the action dispatcher.
func (c *ViewController) Dispatcher() *Dispatcher {
	return c.dispatcher
}

// Subscribe streams state snapshots after every change.
func (c *ViewController) Subscribe() (<-chan ViewState, func()) {
	return c.store.Subscribe()
}

// Viewport returns the current viewport classification.
func (c *ViewController) Viewport() Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

// SetViewport replaces the viewport, e.g. after a resize.
func (c *ViewController) SetViewport(v Viewport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport = normalizeViewport(v)
}

// SidebarPresentation reports overlay on narrow viewports and permanent otherwise.
func (c *ViewController) SidebarPresentation() SidebarMode {
	return SidebarModeFor(c.Viewport())
}

// ToggleTheme flips the theme and announces the new mode.
func (c *ViewController) ToggleTheme(ctx context.Context) (ViewState, error) {
	if err := c.ensureOpen(); err != nil {
		return c.State(), err
	}
	state := c.store.Dispatch(ToggleThemeAction{})
	mode := string(state.Theme)
	c.notify(ctx, Notification{
		Title:       fmt.Sprintf("%s Mode Activated", state.Theme.Label()),
		Description: fmt.Sprintf("The dashboard theme has been switched to %s mode", mode),
		Duration:    ShortNotificationDuration,
	})
	c.telemetry.Record(ctx, "salesdash.theme.toggle", map[string]any{"theme": mode})
	c.logger.Debug().Str("theme", mode).Msg("theme toggled")
	return state, nil
}

// ToggleSidebar flips the sidebar. The flag only changes what is shown on
// narrow viewports; wide layouts keep the sidebar permanently.
func (c *ViewController) ToggleSidebar(ctx context.Context) (ViewState, error) {
	if err := c.ensureOpen(); err != nil {
		return c.State(), err
	}
	state := c.store.Dispatch(ToggleSidebarAction{})
	c.telemetry.Record(ctx, "salesdash.sidebar.toggle", map[string]any{
		"open": state.SidebarOpen,
		"mode": string(c.SidebarPresentation()),
	})
	return state, nil
}

// SetActiveTab selects revenue, units or profit. Other values return
// ErrInvalidTab and leave the state untouched. Re-selecting the active tab is
// silent.
func (c *ViewController) SetActiveTab(ctx context.Context, value string) (ViewState, error) {
	if err := c.ensureOpen(); err != nil {
		return c.State(), err
	}
	tab, err := ParseTab(value)
	if err != nil {
		return c.State(), err
	}
	if c.State().ActiveTab == tab {
		return c.State(), nil
	}
	state := c.store.Dispatch(SetTabAction{Tab: tab})
	c.notify(ctx, Notification{
		Title:       fmt.Sprintf("Viewing %s data", tab),
		Description: fmt.Sprintf("Switched to %s visualization", tab),
		Duration:    ShortNotificationDuration,
	})
	c.telemetry.Record(ctx, "salesdash.tab.set", map[string]any{"tab": string(tab)})
	return state, nil
}

// SetFilters merges the non-empty selections into the state. The merged
// selections must all be known options.
func (c *ViewController) SetFilters(ctx context.Context, filters Filters) (ViewState, error) {
	if err := c.ensureOpen(); err != nil {
		return c.State(), err
	}
	merged := c.State().Filters().Merge(filters)
	if err := merged.Validate(); err != nil {
		return c.State(), err
	}
	state := c.store.Dispatch(SetFiltersAction{Filters: merged})
	c.telemetry.Record(ctx, "salesdash.filters.set", map[string]any{
		"date_range": string(merged.DateRange),
		"region":     string(merged.Region),
		"category":   string(merged.Category),
	})
	return state, nil
}

// ApplyFilters marks the state loading, runs the dispatcher's filter action
// and clears the flag after ApplyFiltersResetDelay, recording FiltersApplied
// when the action succeeded. It reports false when a load is already running.
func (c *ViewController) ApplyFilters(ctx context.Context) (bool, error) {
	if !c.beginLoading() {
		if c.isClosed() {
			return false, ErrSessionClosed
		}
		return false, nil
	}
	ok := c.dispatcher.ApplyFilters(ctx, c.State().Filters())
	c.tasks.After(ApplyFiltersResetDelay, func() {
		c.store.Dispatch(LoadingFinishedAction{FiltersApplied: ok})
	})
	return true, nil
}

// Refresh marks the state loading and runs the dispatcher's refresh. The
// loading flag is cleared after RefreshResetDelay on the controller's own
// timer, or together with the completion notification in unified mode.
func (c *ViewController) Refresh(ctx context.Context) (bool, error) {
	if !c.beginLoading() {
		if c.isClosed() {
			return false, ErrSessionClosed
		}
		return false, nil
	}
	finish := func() { c.store.Dispatch(LoadingFinishedAction{}) }
	if c.unifiedRefresh {
		c.dispatcher.RefreshDashboardThen(ctx, finish)
		return true, nil
	}
	c.dispatcher.RefreshDashboard(ctx)
	c.tasks.After(RefreshResetDelay, finish)
	return true, nil
}

// Navigate announces a navigation to one of the sidebar routes.
func (c *ViewController) Navigate(ctx context.Context, route string) error {
	if err := c.ensureOpen(); err != nil {
		return err
	}
	c.dispatcher.Navigate(ctx, route)
	return nil
}

// Pending returns the number of loading resets not yet applied.
func (c *ViewController) Pending() int {
	return c.tasks.Pending()
}

// Close cancels pending loading resets and, when owned, the dispatcher's
// delayed notifications.
func (c *ViewController) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.tasks.Close()
	if c.ownsDispatcher {
		c.dispatcher.Close()
	}
}

func (c *ViewController) beginLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.store.State().IsLoading {
		return false
	}
	c.store.Dispatch(LoadingStartedAction{})
	return true
}

func (c *ViewController) ensureOpen() error {
	if c.isClosed() {
		return ErrSessionClosed
	}
	return nil
}

func (c *ViewController) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *ViewController) notify(ctx context.Context, n Notification) {
	if err := c.notifier.Notify(ctx, n); err != nil {
		c.logger.Warn().Err(err).Str("title", n.Title).Msg("notification dropped")
	}
}
