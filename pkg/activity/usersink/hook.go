// Package usersink forwards dashboard activity into a go-users activity sink.
package usersink

import (
	"context"
	"strings"

	"github.com/goliatone/go-sales-dashboard/pkg/activity"
	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Sink persists go-users activity records.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook adapts a Sink into an activity.Hook.
type Hook struct {
	Sink Sink
}

var _ activity.Hook = Hook{}

// Notify maps evt into an ActivityRecord. Identifiers that are not UUIDs are
// kept in the record data instead of being dropped.
func (h Hook) Notify(ctx context.Context, evt activity.Event) error {
	if h.Sink == nil {
		return nil
	}
	evt = activity.NormalizeEvent(evt)
	if evt.Verb == "" {
		return nil
	}

	data := make(map[string]any, len(evt.Metadata)+4)
	for k, v := range evt.Metadata {
		data[k] = v
	}
	if evt.DefinitionCode != "" {
		data["definition_code"] = evt.DefinitionCode
	}
	if len(evt.Recipients) > 0 {
		data["recipients"] = evt.Recipients
	}

	record := types.ActivityRecord{
		ActorID:    parseID(evt.ActorID, "actor_ref", data),
		UserID:     parseID(evt.UserID, "user_ref", data),
		TenantID:   parseID(evt.TenantID, "tenant_ref", data),
		Verb:       evt.Verb,
		ObjectType: evt.ObjectType,
		ObjectID:   evt.ObjectID,
		Channel:    evt.Channel,
		Data:       data,
		OccurredAt: evt.OccurredAt,
	}
	return h.Sink.Log(ctx, record)
}

func parseID(value, fallbackKey string, data map[string]any) uuid.UUID {
	value = strings.TrimSpace(value)
	if value == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		data[fallbackKey] = value
		return uuid.Nil
	}
	return id
}
