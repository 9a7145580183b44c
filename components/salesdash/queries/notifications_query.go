package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-sales-dashboard/components/salesdash"
)

// NotificationsInput identifies the session whose toasts are listed.
type NotificationsInput struct {
	SessionID string
}

// NotificationsQuery lists the visible toasts of a session, oldest first.
type NotificationsQuery struct {
	sessions sessionResolver
}

// NewNotificationsQuery builds the query.
func NewNotificationsQuery(sessions sessionResolver) *NotificationsQuery {
	return &NotificationsQuery{sessions: sessions}
}

var _ gocommand.Querier[NotificationsInput, []salesdash.NotificationView] = (*NotificationsQuery)(nil)

// Query returns the active notifications.
func (q *NotificationsQuery) Query(_ context.Context, input NotificationsInput) ([]salesdash.NotificationView, error) {
	session, err := lookup(q.sessions, input.SessionID)
	if err != nil {
		return nil, err
	}
	active := session.Notifications.Active()
	out := make([]salesdash.NotificationView, 0, len(active))
	for _, n := range active {
		out = append(out, salesdash.NewNotificationView(n))
	}
	return out, nil
}
