package salesdash

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// NotificationStyle is the visual hint of a toast.
type NotificationStyle string

const (
	StyleDefault NotificationStyle = "default"
	StyleSuccess NotificationStyle = "success"
)

// Notification is a transient, auto-dismissing banner.
type Notification struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Duration    time.Duration     `json:"duration"`
	Style       NotificationStyle `json:"style"`
	CreatedAt   time.Time         `json:"created_at"`
}

// DurationMillis returns the display duration in milliseconds.
func (n Notification) DurationMillis() int64 {
	return n.Duration.Milliseconds()
}

// Notifier displays notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(ctx context.Context, n Notification) error

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, Notification) error { return nil }

func normalizeNotifier(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}

// NotificationCenter keeps the currently visible toasts and fans every new one
// out to subscribers. Toasts are dismissed once their duration has elapsed.
type NotificationCenter struct {
	mu        sync.RWMutex
	active    []Notification
	subs      map[int]chan Notification
	next      int
	scheduler Scheduler
	tasks     *TaskGroup
	closed    bool
}

// NewNotificationCenter builds a notification center driven by scheduler.
func NewNotificationCenter(scheduler Scheduler) *NotificationCenter {
	scheduler = normalizeScheduler(scheduler)
	return &NotificationCenter{
		subs:      make(map[int]chan Notification),
		scheduler: scheduler,
		tasks:     NewTaskGroup(scheduler),
	}
}

// Notify stores the notification, schedules its dismissal and broadcasts it.
func (c *NotificationCenter) Notify(_ context.Context, n Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = c.scheduler.Now()
	}
	if n.Style == "" {
		n.Style = StyleDefault
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.active = append(c.active, n)
	for _, ch := range c.subs {
		select {
		case ch <- n:
		default:
		}
	}
	c.mu.Unlock()

	if n.Duration > 0 {
		id := n.ID
		c.tasks.After(n.Duration, func() { c.Dismiss(id) })
	}
	return nil
}

// Dismiss removes a toast before (or when) it expires.
func (c *NotificationCenter) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.active {
		if n.ID == id {
			c.active = append(c.active[:i], c.active[i+1:]...)
			return true
		}
	}
	return false
}

// Active returns the visible toasts, oldest first.
func (c *NotificationCenter) Active() []Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Notification(nil), c.active...)
}

// Subscribe returns a channel receiving every new notification and a cancel func.
func (c *NotificationCenter) Subscribe() (<-chan Notification, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan Notification, 16)
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	id := c.next
	c.next++
	c.subs[id] = ch
	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Close cancels pending dismissals and closes every subscription.
func (c *NotificationCenter) Close() {
	c.tasks.Close()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}

// Recorder is a Notifier that keeps every notification it receives.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// Notify records n.
func (r *Recorder) Notify(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
	return nil
}

// Notifications returns a copy of the recorded notifications.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Titles returns the recorded titles in order.
func (r *Recorder) Titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	titles := make([]string, len(r.items))
	for i, n := range r.items {
		titles[i] = n.Title
	}
	return titles
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}
