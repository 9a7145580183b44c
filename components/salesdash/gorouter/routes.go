package gorouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-sales-dashboard/components/salesdash"
	"github.com/goliatone/go-sales-dashboard/components/salesdash/commands"
	"github.com/goliatone/go-sales-dashboard/components/salesdash/httpapi"
	"github.com/goliatone/go-sales-dashboard/components/salesdash/queries"
)

// DefaultBasePath is where the session API is mounted when Config.BasePath is empty.
const DefaultBasePath = "/api"

// Sessions lists, creates and tears down live sessions.
type Sessions interface {
	httpapi.Sessions
	IDs() []string
	Len() int
}

// Config wires go-router with the dashboard commands and queries.
type Config[T any] struct {
	Router   router.Router[T]
	Sessions Sessions
	API      httpapi.Executor
	BasePath string
}

// Context is the part of router.Context the handlers rely on.
type Context interface {
	Context() context.Context
	Param(name string, defaultValue ...string) string
	Body() []byte
	JSON(code int, v any) error
}

// Handler serves one route.
type Handler func(Context) error

// Handlers exposes the route handlers so they can be mounted or tested
// without a server.
type Handlers struct {
	sessions Sessions
	api      httpapi.Executor
}

// NewHandlers builds the handlers.
func NewHandlers(sessions Sessions, api httpapi.Executor) *Handlers {
	return &Handlers{sessions: sessions, api: api}
}

// Register mounts the session API (JSON over REST) on a go-router router.
func Register[T any](cfg Config[T]) (*Handlers, error) {
	if cfg.Router == nil {
		return nil, errors.New("gorouter: router is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("gorouter: sessions are required")
	}
	if cfg.API == nil {
		return nil, errors.New("gorouter: api executor is required")
	}
	base := cfg.BasePath
	if base == "" {
		base = DefaultBasePath
	}
	h := NewHandlers(cfg.Sessions, cfg.API)

	cfg.Router.Get("/healthz", wrap(h.Health))

	group := cfg.Router.Group(base)
	group.Get("/sessions", wrap(h.List))
	group.Post("/sessions", wrap(h.Create))
	group.Get("/sessions/:id", wrap(h.State))
	group.Delete("/sessions/:id", wrap(h.Close))
	group.Get("/sessions/:id/notifications", wrap(h.Notifications))
	group.Post("/sessions/:id/tab/:tab", wrap(h.SetTab))
	group.Post("/sessions/:id/:gesture", wrap(h.Gesture))
	return h, nil
}

func wrap(h Handler) router.HandlerFunc {
	return router.WrapHandler(func(ctx router.Context) error {
		return h(ctx)
	})
}

// Health reports liveness and the number of live sessions.
func (h *Handlers) Health(ctx Context) error {
	return ctx.JSON(http.StatusOK, map[string]any{"status": "ok", "sessions": h.sessions.Len()})
}

// List returns the live session ids.
func (h *Handlers) List(ctx Context) error {
	return ctx.JSON(http.StatusOK, map[string]any{"sessions": h.sessions.IDs()})
}

type createRequest struct {
	PrefersDark *bool `json:"prefers_dark"`
	Width       int   `json:"width"`
}

// Create starts a session. The optional body carries the colour preference
// and the viewport width.
func (h *Handlers) Create(ctx Context) error {
	var req createRequest
	if body := ctx.Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
	}
	session := h.sessions.Create(ctx.Context(), salesdash.SessionOptions{
		PrefersDark: req.PrefersDark,
		Viewport:    salesdash.WidthViewport{Width: req.Width},
	})
	return ctx.JSON(http.StatusCreated, map[string]any{
		"id":    session.ID,
		"state": session.State(),
	})
}

// State returns the session's render model.
func (h *Handlers) State(ctx Context) error {
	view, err := h.api.View(ctx.Context(), queries.ViewInput{SessionID: param(ctx, "id")})
	if err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// Close tears a session down.
func (h *Handlers) Close(ctx Context) error {
	if err := h.sessions.Close(param(ctx, "id")); err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	return ctx.JSON(http.StatusOK, map[string]string{"status": "closed"})
}

// Notifications returns the visible toasts.
func (h *Handlers) Notifications(ctx Context) error {
	toasts, err := h.api.Notifications(ctx.Context(), queries.NotificationsInput{SessionID: param(ctx, "id")})
	if err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	return ctx.JSON(http.StatusOK, map[string]any{"notifications": toasts})
}

// SetTab selects the chart tab.
func (h *Handlers) SetTab(ctx Context) error {
	err := h.api.SetTab(ctx.Context(), commands.SetTabInput{
		SessionID: param(ctx, "id"),
		Tab:       param(ctx, "tab"),
	})
	return h.respond(ctx, err)
}

type gestureRequest struct {
	Filters   salesdash.Filters `json:"filters"`
	Type      string            `json:"type"`
	Metric    string            `json:"metric"`
	Condition string            `json:"condition"`
	Kind      string            `json:"kind"`
	Name      string            `json:"name"`
	Route     string            `json:"route"`
}

// Gesture runs one named gesture. Gestures that need arguments read them
// from the JSON body.
func (h *Handlers) Gesture(ctx Context) error {
	id := param(ctx, "id")
	var req gestureRequest
	if body := ctx.Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
	}
	in := commands.SessionInput{SessionID: id}
	c := ctx.Context()

	var err error
	switch gesture := param(ctx, "gesture"); gesture {
	case "theme":
		err = h.api.ToggleTheme(c, in)
	case "sidebar":
		err = h.api.ToggleSidebar(c, in)
	case "filters":
		err = h.api.SetFilters(c, commands.SetFiltersInput{SessionID: id, Filters: req.Filters})
	case "apply":
		err = h.api.ApplyFilters(c, in)
	case "refresh":
		err = h.api.Refresh(c, in)
	case "export":
		err = h.api.ExportData(c, in)
	case "share":
		err = h.api.ShareDashboard(c, in)
	case "report":
		err = h.api.DownloadReport(c, commands.DownloadReportInput{SessionID: id, Type: req.Type})
	case "alert":
		err = h.api.CreateAlert(c, commands.CreateAlertInput{SessionID: id, Metric: req.Metric, Condition: req.Condition})
	case "details":
		err = h.api.ViewDetails(c, commands.ViewDetailsInput{SessionID: id, Kind: commands.DetailKind(req.Kind), Name: req.Name})
	case "navigate":
		err = h.api.Navigate(c, commands.NavigateInput{SessionID: id, Route: req.Route})
	default:
		return respondError(ctx, http.StatusNotFound, errors.New("gorouter: unknown gesture "+gesture))
	}
	return h.respond(ctx, err)
}

func (h *Handlers) respond(ctx Context, err error) error {
	if err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	view, err := h.api.View(ctx.Context(), queries.ViewInput{SessionID: param(ctx, "id")})
	if err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	return ctx.JSON(http.StatusOK, view)
}

func respondError(ctx Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func param(ctx Context, name string) string {
	raw := ctx.Param(name)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
