package activity

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHooksNotifyFiltersEvents(t *testing.T) {
	cases := []struct {
		name  string
		event Event
		want  int
	}{
		{name: "alert", event: Event{Verb: " salesdash.alert.create ", ObjectType: " alert ", ObjectID: " revenue "}, want: 1},
		{name: "missing verb", event: Event{ObjectType: "alert"}, want: 0},
		{name: "missing object type", event: Event{Verb: "salesdash.export"}, want: 0},
		{name: "blank fields", event: Event{Verb: "  ", ObjectType: "  "}, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			capture := &CaptureHook{}
			if err := (Hooks{capture}).Notify(context.Background(), tc.event); err != nil {
				t.Fatalf("notify: %v", err)
			}
			got := capture.Snapshot()
			if len(got) != tc.want {
				t.Fatalf("expected %d events, got %d", tc.want, len(got))
			}
			if tc.want == 1 && (got[0].Verb != "salesdash.alert.create" || got[0].ObjectID != "revenue") {
				t.Fatalf("expected trimmed identifiers, got %+v", got[0])
			}
		})
	}
}

func TestNormalizeEventIsolatesCaller(t *testing.T) {
	original := Event{
		Verb:       "salesdash.report.download",
		ObjectType: "report",
		Recipients: []string{"ops@example.com"},
		Metadata:   map[string]any{"type": "Quarterly"},
	}

	normalized := NormalizeEvent(original)
	normalized.Metadata["type"] = "Monthly"
	normalized.Recipients[0] = "sales@example.com"

	if original.Metadata["type"] != "Quarterly" {
		t.Fatalf("metadata shared with caller: %v", original.Metadata)
	}
	if original.Recipients[0] != "ops@example.com" {
		t.Fatalf("recipients shared with caller: %v", original.Recipients)
	}
}

func TestNormalizeEventTimestamps(t *testing.T) {
	stamped := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)
	if got := NormalizeEvent(Event{OccurredAt: stamped}).OccurredAt; !got.Equal(stamped) {
		t.Fatalf("expected %v kept, got %v", stamped, got)
	}
	if NormalizeEvent(Event{}).OccurredAt.IsZero() {
		t.Fatalf("expected occurred_at default")
	}
}

func TestHooksNotifyJoinsErrors(t *testing.T) {
	boom := errors.New("sink down")
	capture := &CaptureHook{}
	hooks := Hooks{
		HookFunc(func(context.Context, Event) error { return boom }),
		nil,
		capture,
	}
	err := hooks.Notify(context.Background(), Event{Verb: "salesdash.share", ObjectType: "dashboard"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(capture.Snapshot()) != 1 {
		t.Fatalf("expected later hooks to run after a failure")
	}
}

func TestHooksNotifyEmpty(t *testing.T) {
	if err := (Hooks{}).Notify(context.Background(), Event{Verb: "v", ObjectType: "o"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
