package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-sales-dashboard/components/salesdash"
)

// NarrowColumns is the terminal width below which the sidebar becomes an overlay.
const NarrowColumns = 100

const redrawInterval = 250 * time.Millisecond

// Options configures a Model.
type Options struct {
	Session *salesdash.Session
	Context context.Context
	Logger  *zerolog.Logger
}

// NotificationMsg carries a toast emitted by the session.
type NotificationMsg salesdash.Notification

// StateMsg carries a view state snapshot.
type StateMsg salesdash.ViewState

type redrawMsg time.Time

// Model is the terminal rendition of a dashboard session.
type Model struct {
	ctx     context.Context
	session *salesdash.Session
	logger  zerolog.Logger

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	notes        <-chan salesdash.Notification
	cancelNotes  func()
	states       <-chan salesdash.ViewState
	cancelStates func()

	focus    int
	width    int
	height   int
	quitting bool
	lastErr  error
}

// New wires a model to a live session.
func New(opts Options) *Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("component", "tui").Logger()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := &Model{
		ctx:     ctx,
		session: opts.Session,
		logger:  logger,
		spinner: s,
		help:    help.New(),
		keys:    defaultKeyMap(),
	}
	m.notes, m.cancelNotes = opts.Session.Notifications.Subscribe()
	m.states, m.cancelStates = opts.Session.Controller.Subscribe()
	return m
}

// Init starts the spinner and the session listeners.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForNotification(m.notes),
		waitForState(m.states),
		redrawCmd(),
	)
}

func waitForNotification(ch <-chan salesdash.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return NotificationMsg(n)
	}
}

func waitForState(ch <-chan salesdash.ViewState) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return nil
		}
		return StateMsg(state)
	}
}

func redrawCmd() tea.Cmd {
	return tea.Tick(redrawInterval, func(t time.Time) tea.Msg {
		return redrawMsg(t)
	})
}

// Update routes terminal events to the session.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.session.Controller.SetViewport(salesdash.WidthViewport{Width: msg.Width, Breakpoint: NarrowColumns})
		return m, nil

	case NotificationMsg:
		return m, waitForNotification(m.notes)

	case StateMsg:
		return m, waitForState(m.states)

	case redrawMsg:
		if m.quitting {
			return m, nil
		}
		return m, redrawCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	controller := m.session.Controller
	dispatcher := m.session.Dispatcher
	state := controller.State()

	var err error
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Theme):
		_, err = controller.ToggleTheme(m.ctx)
	case key.Matches(msg, m.keys.Sidebar):
		_, err = controller.ToggleSidebar(m.ctx)
	case key.Matches(msg, m.keys.Tabs):
		_, err = controller.SetActiveTab(m.ctx, string(tabForKey(msg.String())))
	case key.Matches(msg, m.keys.DateRange):
		_, err = controller.SetFilters(m.ctx, salesdash.Filters{DateRange: next(salesdash.DateRanges(), state.DateRange)})
	case key.Matches(msg, m.keys.Region):
		_, err = controller.SetFilters(m.ctx, salesdash.Filters{Region: next(salesdash.Regions(), state.Region)})
	case key.Matches(msg, m.keys.Category):
		_, err = controller.SetFilters(m.ctx, salesdash.Filters{Category: next(salesdash.Categories(), state.Category)})
	case key.Matches(msg, m.keys.Apply):
		_, err = controller.ApplyFilters(m.ctx)
	case key.Matches(msg, m.keys.Refresh):
		_, err = controller.Refresh(m.ctx)
	case key.Matches(msg, m.keys.Export):
		dispatcher.ExportData(m.ctx)
	case key.Matches(msg, m.keys.Share):
		dispatcher.ShareDashboard(m.ctx)
	case key.Matches(msg, m.keys.Insights):
		dispatcher.ViewAllInsights(m.ctx)
	case key.Matches(msg, m.keys.Report):
		dispatcher.DownloadReport(m.ctx, "Revenue Trends")
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Open):
		err = m.openFocused()
	case key.Matches(msg, m.keys.Action):
		err = m.runFocusedAction()
	case key.Matches(msg, m.keys.Dismiss):
		for _, n := range m.session.Notifications.Active() {
			m.session.Notifications.Dismiss(n.ID)
		}
	}

	m.lastErr = err
	if err != nil {
		m.logger.Warn().Err(err).Str("key", msg.String()).Msg("gesture rejected")
	}
	return m, nil
}

// Close stops the session listeners. The session itself is owned by the caller.
func (m *Model) Close() {
	if m.quitting {
		return
	}
	m.quitting = true
	m.cancelNotes()
	m.cancelStates()
}

// Err returns the error of the last rejected gesture.
func (m *Model) Err() error {
	return m.lastErr
}

func tabForKey(key string) salesdash.Tab {
	switch key {
	case "2":
		return salesdash.TabUnits
	case "3":
		return salesdash.TabProfit
	default:
		return salesdash.TabRevenue
	}
}

func next[T comparable](values []T, current T) T {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
