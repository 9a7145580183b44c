package salesdash

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending deferred callback.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the call stopped it.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
	Now() time.Time
}

type systemScheduler struct{}

// SystemScheduler schedules callbacks on the runtime timer.
func SystemScheduler() Scheduler {
	return systemScheduler{}
}

func (systemScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

func (systemScheduler) Now() time.Time {
	return time.Now()
}

func normalizeScheduler(s Scheduler) Scheduler {
	if s == nil {
		return SystemScheduler()
	}
	return s
}

// TaskGroup ties deferred callbacks to the lifetime of an owner. Callbacks
// run one at a time and Close waits for a running one, so none runs after
// Close returns. A callback must not close its own group.
type TaskGroup struct {
	scheduler Scheduler
	run       sync.Mutex
	mu        sync.Mutex
	tasks     map[uint64]Timer
	next      uint64
	closed    bool
}

// NewTaskGroup builds a task group on top of the given scheduler.
func NewTaskGroup(scheduler Scheduler) *TaskGroup {
	return &TaskGroup{
		scheduler: normalizeScheduler(scheduler),
		tasks:     make(map[uint64]Timer),
	}
}

// After schedules fn to run after d. It returns false when the group is closed.
func (g *TaskGroup) After(d time.Duration, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false
	}
	id := g.next
	g.next++
	g.tasks[id] = g.scheduler.AfterFunc(d, func() {
		g.run.Lock()
		defer g.run.Unlock()
		g.mu.Lock()
		_, pending := g.tasks[id]
		delete(g.tasks, id)
		closed := g.closed
		g.mu.Unlock()
		if !pending || closed {
			return
		}
		fn()
	})
	return true
}

// Pending returns the number of tasks that have not fired yet.
func (g *TaskGroup) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.tasks)
}

// Close cancels all pending tasks. It is safe to call more than once.
func (g *TaskGroup) Close() {
	g.run.Lock()
	defer g.run.Unlock()
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.closed = true
	for id, timer := range g.tasks {
		timer.Stop()
		delete(g.tasks, id)
	}
}

// ManualScheduler is a deterministic Scheduler whose clock only moves when
// Advance is called. Useful for tests and demos.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
	seq    uint64
}

type manualTimer struct {
	owner   *ManualScheduler
	due     time.Time
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

// NewManualScheduler starts the manual clock at start (or a fixed date when zero).
func NewManualScheduler(start time.Time) *ManualScheduler {
	if start.IsZero() {
		start = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	}
	return &ManualScheduler{now: start}
}

// AfterFunc registers fn to run once the clock reaches now+d.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTimer{owner: s, due: s.now.Add(d), seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Now returns the manual clock time.
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Advance moves the clock forward and fires due callbacks in due-time order.
// Callbacks run on the calling goroutine, outside the scheduler lock.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()
	for {
		s.mu.Lock()
		next := s.nextDue(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.due
		next.fired = true
		s.mu.Unlock()
		next.fn()
	}
}

// Pending returns the number of timers that neither fired nor were stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, t := range s.timers {
		if !t.fired && !t.stopped {
			count++
		}
	}
	return count
}

func (s *ManualScheduler) nextDue(limit time.Time) *manualTimer {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.fired && !t.stopped {
			live = append(live, t)
		}
	}
	s.timers = live
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].due.Equal(s.timers[j].due) {
			return s.timers[i].seq < s.timers[j].seq
		}
		return s.timers[i].due.Before(s.timers[j].due)
	})
	if len(s.timers) == 0 || s.timers[0].due.After(limit) {
		return nil
	}
	return s.timers[0]
}

func (t *manualTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
