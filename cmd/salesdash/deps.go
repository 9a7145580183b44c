package main

import (
	"context"
	"io"
	"time"

	"github.com/goliatone/go-users/pkg/types"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-sales-dashboard/components/salesdash"
	"github.com/goliatone/go-sales-dashboard/pkg/activity"
	"github.com/goliatone/go-sales-dashboard/pkg/activity/usersink"
	"github.com/goliatone/go-sales-dashboard/pkg/backend"
)

// app holds the dependencies shared by the serve and tui commands.
type app struct {
	logger   zerolog.Logger
	backend  salesdash.Backend
	memory   *backend.MemoryBackend
	sessions *salesdash.SessionManager
}

func newApp(g *Globals, logOut io.Writer, shareURL string, scheduler salesdash.Scheduler, idleTTL time.Duration) (*app, error) {
	logger := newLogger(g.LogLevel, g.LogFormat, logOut)

	a := &app{logger: logger}
	switch {
	case g.BackendURL != "":
		client, err := backend.NewHTTPClient(backend.HTTPConfig{BaseURL: g.BackendURL, APIKey: g.BackendKey})
		if err != nil {
			return nil, err
		}
		a.backend = client
		logger.Info().Str("url", g.BackendURL).Msg("using remote sales backend")
	default:
		ds := salesdash.SampleDataset()
		if g.DatasetFile != "" {
			loaded, err := salesdash.ReadDataset(g.DatasetFile)
			if err != nil {
				return nil, err
			}
			ds = loaded
			logger.Info().Str("file", g.DatasetFile).Msg("dataset loaded")
		}
		a.memory = backend.NewMemoryBackend(ds, shareURL)
		a.backend = a.memory
	}

	var emitter *activity.Emitter
	if g.Activity {
		emitter = activity.NewEmitter(
			activity.Hooks{usersink.Hook{Sink: logSink{logger: logger}}},
			activity.Config{Enabled: true},
		)
	}

	a.sessions = salesdash.NewSessionManager(salesdash.SessionManagerOptions{
		Scheduler:      scheduler,
		Backend:        a.backend,
		Telemetry:      salesdash.ZerologTelemetry{Logger: logger},
		Activity:       emitter,
		Logger:         &logger,
		PrefersDark:    g.PrefersDark,
		UnifiedRefresh: g.UnifiedRefresh,
		IdleTTL:        idleTTL,
	})
	return a, nil
}

// close tears every session down and reports what the in-memory backend saw.
func (a *app) close() {
	a.sessions.CloseAll()
	if a.memory == nil {
		return
	}
	rec := a.memory.Recorded()
	a.logger.Info().
		Int("filters", len(rec.Filters)).
		Int("exports", len(rec.Exports)).
		Int("alerts", len(rec.Alerts)).
		Int("reports", len(rec.Reports)).
		Int("shares", rec.Shares).
		Msg("backend activity")
}

// logSink writes go-users activity records to the log.
type logSink struct {
	logger zerolog.Logger
}

func (s logSink) Log(_ context.Context, record types.ActivityRecord) error {
	s.logger.Info().
		Str("verb", record.Verb).
		Str("object_type", record.ObjectType).
		Str("object_id", record.ObjectID).
		Str("channel", record.Channel).
		Fields(record.Data).
		Time("occurred_at", record.OccurredAt).
		Msg("activity")
	return nil
}

var _ usersink.Sink = logSink{}
