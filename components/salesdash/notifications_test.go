package salesdash

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationCenterDismissesAfterDuration(t *testing.T) {
	sched := NewManualScheduler(time.Time{})
	center := NewNotificationCenter(sched)
	defer center.Close()

	require.NoError(t, center.Notify(context.Background(), Notification{Title: "short", Duration: 2 * time.Second}))
	require.NoError(t, center.Notify(context.Background(), Notification{Title: "long", Duration: 3 * time.Second}))

	active := center.Active()
	require.Len(t, active, 2)
	assert.NotEmpty(t, active[0].ID)
	assert.Equal(t, StyleDefault, active[0].Style)
	assert.Equal(t, sched.Now(), active[0].CreatedAt)

	sched.Advance(2 * time.Second)
	require.Len(t, center.Active(), 1)
	assert.Equal(t, "long", center.Active()[0].Title)

	sched.Advance(time.Second)
	assert.Empty(t, center.Active())
}

func TestNotificationCenterDismiss(t *testing.T) {
	center := NewNotificationCenter(NewManualScheduler(time.Time{}))
	defer center.Close()

	require.NoError(t, center.Notify(context.Background(), Notification{ID: "n1", Title: "sticky"}))
	assert.True(t, center.Dismiss("n1"))
	assert.False(t, center.Dismiss("n1"))
	assert.Empty(t, center.Active())
}

func TestNotificationCenterSubscribe(t *testing.T) {
	center := NewNotificationCenter(NewManualScheduler(time.Time{}))
	updates, cancel := center.Subscribe()

	require.NoError(t, center.Notify(context.Background(), Notification{Title: "Data Exported", Style: StyleSuccess}))
	select {
	case n := <-updates:
		assert.Equal(t, "Data Exported", n.Title)
		assert.Equal(t, StyleSuccess, n.Style)
	default:
		t.Fatal("expected a notification")
	}

	cancel()
	_, open := <-updates
	assert.False(t, open)
	center.Close()
}

func TestNotificationCenterClose(t *testing.T) {
	sched := NewManualScheduler(time.Time{})
	center := NewNotificationCenter(sched)
	updates, _ := center.Subscribe()

	require.NoError(t, center.Notify(context.Background(), Notification{Title: "pending", Duration: time.Second}))
	center.Close()
	center.Close()

	assert.Zero(t, sched.Pending())
	<-updates
	_, open := <-updates
	assert.False(t, open)

	require.NoError(t, center.Notify(context.Background(), Notification{Title: "late"}))
	assert.Len(t, center.Active(), 1)
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	_ = rec.Notify(context.Background(), Notification{Title: "a"})
	_ = rec.Notify(context.Background(), Notification{Title: "b"})
	assert.Equal(t, []string{"a", "b"}, rec.Titles())

	rec.Reset()
	assert.Empty(t, rec.Notifications())
}

func TestNotificationView(t *testing.T) {
	view := NewNotificationView(Notification{
		ID:       "x",
		Title:    "Report Downloaded",
		Duration: 3 * time.Second,
		Style:    StyleSuccess,
	})
	assert.True(t, view.Success)
	assert.Equal(t, int64(3000), view.DurationMs)
}
