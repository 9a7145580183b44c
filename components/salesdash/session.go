package salesdash

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-sales-dashboard/pkg/activity"
)

var (
	// ErrSessionNotFound is returned for unknown session ids.
	ErrSessionNotFound = errors.New("salesdash: session not found")
	// ErrSessionClosed is returned when a gesture reaches a torn-down session.
	ErrSessionClosed = errors.New("salesdash: session closed")
)

// Session bundles everything one viewer interacts with. Closing it cancels
// every pending delayed notification and loading reset.
type Session struct {
	ID            string
	CreatedAt     time.Time
	Store         *Store
	Controller    *ViewController
	Dispatcher    *Dispatcher
	Notifications *NotificationCenter

	mu       sync.RWMutex
	dataset  Dataset
	once     sync.Once
	lastSeen atomic.Int64
}

// LastSeen returns when the session was last looked up.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// State returns the session's view state.
func (s *Session) State() ViewState {
	return s.Store.State()
}

// Dataset returns the data the session renders.
func (s *Session) Dataset() Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset.Clone()
}

// View composes the render model for the session's current state.
func (s *Session) View() DashboardView {
	view := BuildView(s.State(), s.Dataset(), s.Controller.Viewport(), s.Notifications.Active())
	view.LastUpdated = s.CreatedAt.Format("1/2/2006")
	return view
}

// Close tears the session down. It is safe to call more than once.
func (s *Session) Close() {
	s.once.Do(func() {
		s.Controller.Close()
		s.Dispatcher.Close()
		s.Notifications.Close()
		s.Store.Close()
	})
}

// SessionManagerOptions configures a SessionManager.
type SessionManagerOptions struct {
	Scheduler      Scheduler
	Backend        Backend
	Telemetry      Telemetry
	Activity       *activity.Emitter
	Logger         *zerolog.Logger
	PrefersDark    bool
	UnifiedRefresh bool
	// IdleTTL closes sessions not looked up for this long. Zero keeps
	// sessions until they are closed explicitly.
	IdleTTL time.Duration
}

// minSweepInterval bounds how often idle sessions are swept.
const minSweepInterval = time.Second

// SessionOptions overrides manager defaults for one session.
type SessionOptions struct {
	PrefersDark *bool
	Viewport    Viewport
	ActorID     string
}

// SessionManager keeps the live sessions in memory.
type SessionManager struct {
	opts      SessionManagerOptions
	scheduler Scheduler
	backend   Backend
	logger    zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
	janitor  *TaskGroup
}

// NewSessionManager builds a manager with safe defaults. With an IdleTTL it
// sweeps idle sessions on the scheduler until CloseAll.
func NewSessionManager(opts SessionManagerOptions) *SessionManager {
	scheduler := normalizeScheduler(opts.Scheduler)
	m := &SessionManager{
		opts:      opts,
		scheduler: scheduler,
		backend:   normalizeBackend(opts.Backend),
		logger:    componentLogger(opts.Logger, "sessions"),
		sessions:  make(map[string]*Session),
		janitor:   NewTaskGroup(scheduler),
	}
	if opts.IdleTTL > 0 {
		m.scheduleSweep()
	}
	return m
}

func (m *SessionManager) sweepInterval() time.Duration {
	return max(m.opts.IdleTTL/2, minSweepInterval)
}

func (m *SessionManager) scheduleSweep() {
	m.janitor.After(m.sweepInterval(), func() {
		m.SweepIdle()
		m.scheduleSweep()
	})
}

// SweepIdle closes every session idle for longer than IdleTTL and returns
// how many were closed.
func (m *SessionManager) SweepIdle() int {
	if m.opts.IdleTTL <= 0 {
		return 0
	}
	now := m.scheduler.Now()
	var idle []*Session
	m.mu.Lock()
	for id, session := range m.sessions {
		if now.Sub(session.LastSeen()) > m.opts.IdleTTL {
			idle = append(idle, session)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()
	for _, session := range idle {
		session.Close()
	}
	if len(idle) > 0 {
		m.logger.Debug().Int("count", len(idle)).Dur("idle_ttl", m.opts.IdleTTL).Msg("idle sessions closed")
	}
	return len(idle)
}

// Create starts a new session and loads its dataset through the backend.
func (m *SessionManager) Create(ctx context.Context, opts SessionOptions) *Session {
	prefersDark := m.opts.PrefersDark
	if opts.PrefersDark != nil {
		prefersDark = *opts.PrefersDark
	}
	id := uuid.NewString()
	actor := opts.ActorID
	if actor == "" {
		actor = id
	}

	store := NewStore(InitialViewState(prefersDark))
	center := NewNotificationCenter(m.scheduler)
	dispatcher := NewDispatcher(DispatcherOptions{
		Notifier:  center,
		Scheduler: m.scheduler,
		Backend:   m.backend,
		Telemetry: m.opts.Telemetry,
		Activity:  m.opts.Activity,
		Logger:    m.opts.Logger,
		ActorID:   actor,
		Filters:   func() Filters { return store.State().Filters() },
	})
	controller := NewViewController(ControllerOptions{
		Store:          store,
		Dispatcher:     dispatcher,
		Notifier:       center,
		Viewport:       opts.Viewport,
		Scheduler:      m.scheduler,
		Telemetry:      m.opts.Telemetry,
		Logger:         m.opts.Logger,
		UnifiedRefresh: m.opts.UnifiedRefresh,
	})

	dataset, err := LoadDataset(ctx, m.backend, store.State().Filters())
	if err != nil {
		m.logger.Warn().Err(err).Str("session", id).Msg("falling back to sample dataset")
	}

	session := &Session{
		ID:            id,
		CreatedAt:     m.scheduler.Now(),
		Store:         store,
		Controller:    controller,
		Dispatcher:    dispatcher,
		Notifications: center,
		dataset:       dataset,
	}
	session.touch(session.CreatedAt)

	m.mu.Lock()
	m.sessions[id] = session
	m.mu.Unlock()

	m.logger.Debug().Str("session", id).Str("theme", string(store.State().Theme)).Msg("session created")
	return session
}

// Get returns a live session and marks it as seen.
func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.touch(m.scheduler.Now())
	return session, nil
}

// Close tears down and forgets a session.
func (m *SessionManager) Close(id string) error {
	m.mu.Lock()
	session, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	session.Close()
	m.logger.Debug().Str("session", id).Msg("session closed")
	return nil
}

// CloseAll tears down every session and stops the idle sweep.
func (m *SessionManager) CloseAll() {
	m.janitor.Close()
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	for _, session := range sessions {
		session.Close()
	}
	if len(sessions) > 0 {
		m.logger.Info().Int("count", len(sessions)).Msg("sessions closed")
	}
}

// IDs returns the live session ids in sorted order.
func (m *SessionManager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
