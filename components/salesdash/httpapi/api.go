package httpapi

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/goliatone/go-sales-dashboard/components/salesdash"
	"github.com/goliatone/go-sales-dashboard/components/salesdash/commands"
	"github.com/goliatone/go-sales-dashboard/components/salesdash/queries"
)

const (
	localSession     = "salesdash.session"
	streamKeepAlive  = 15 * time.Second
	sessionCookieTTL = 24 * time.Hour
)

// Sessions is the session registry the transport needs.
// *salesdash.SessionManager satisfies it.
type Sessions interface {
	Create(ctx context.Context, opts salesdash.SessionOptions) *salesdash.Session
	Get(id string) (*salesdash.Session, error)
	Close(id string) error
}

// Config wires the dashboard routes.
type Config struct {
	Sessions   Sessions
	Executor   Executor
	Page       *salesdash.Page
	BasePath   string
	CookieName string
	Logger     *zerolog.Logger
}

// Handlers serves the dashboard over HTTP.
type Handlers struct {
	sessions Sessions
	exec     Executor
	page     *salesdash.Page
	cookie   string
	logger   zerolog.Logger
}

// Register mounts the dashboard routes (HTML, JSON actions, SSE and
// WebSocket notifications) under cfg.BasePath.
func Register(r fiber.Router, cfg Config) (*Handlers, error) {
	if r == nil {
		return nil, errors.New("httpapi: router is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("httpapi: sessions are required")
	}
	if cfg.Executor == nil {
		return nil, errors.New("httpapi: executor is required")
	}
	base := strings.TrimRight(cfg.BasePath, "/")
	if cfg.BasePath == "" {
		base = DefaultBasePath
	}
	h := &Handlers{
		sessions: cfg.Sessions,
		exec:     cfg.Executor,
		page:     cfg.Page,
		cookie:   cfg.CookieName,
		logger:   zerolog.Nop(),
	}
	if h.cookie == "" {
		h.cookie = DefaultCookieName
	}
	if cfg.Logger != nil {
		h.logger = cfg.Logger.With().Str("component", "httpapi").Logger()
	}

	group := r.Group(base)
	group.Get("/", h.HandlePage)
	group.Get("/state", h.HandleState)
	group.Delete("/session", h.HandleCloseSession)

	group.Post("/theme", h.sessionAction(h.exec.ToggleTheme))
	group.Post("/sidebar", h.sessionAction(h.exec.ToggleSidebar))
	group.Post("/filters/apply", h.sessionAction(h.exec.ApplyFilters))
	group.Post("/refresh", h.sessionAction(h.exec.Refresh))
	group.Post("/export", h.sessionAction(h.exec.ExportData))
	group.Post("/share", h.sessionAction(h.exec.ShareDashboard))
	group.Post("/tab/:tab", h.HandleSetTab)
	group.Put("/filters", h.HandleSetFilters)
	group.Post("/reports/:type", h.HandleDownloadReport)
	group.Post("/alerts", h.HandleCreateAlert)
	group.Post("/metrics/:name", h.detailsAction(commands.DetailMetric))
	group.Post("/team/:name", h.detailsAction(commands.DetailTeamMember))
	group.Post("/insights", h.detailsAction(commands.DetailAllInsights))
	group.Post("/insights/:name", h.detailsAction(commands.DetailInsight))
	group.Post("/navigate/:route", h.HandleNavigate)

	group.Get("/notifications", h.HandleNotifications)
	group.Get("/notifications/stream", h.HandleNotificationStream)
	group.Use("/ws", h.upgradeWebSocket)
	group.Get("/ws", websocket.New(h.serveWebSocket))

	return h, nil
}

// HandlePage renders the HTML dashboard, starting a session on first visit.
func (h *Handlers) HandlePage(c *fiber.Ctx) error {
	if h.page == nil {
		return respondError(c, fiber.StatusNotFound, errors.New("httpapi: html page is not configured"))
	}
	session, err := h.session(c)
	if err != nil {
		session = h.sessions.Create(c.UserContext(), salesdash.SessionOptions{
			PrefersDark: ResolvePrefersDark(c),
			Viewport:    ResolveViewport(c),
		})
		h.setCookie(c, session.ID)
		h.logger.Debug().Str("session", session.ID).Msg("session started")
	} else {
		session.Controller.SetViewport(ResolveViewport(c))
	}
	var buf bytes.Buffer
	if err := h.page.Render(&buf, session); err != nil {
		h.logger.Error().Err(err).Str("session", session.ID).Msg("render dashboard")
		return respondError(c, fiber.StatusInternalServerError, err)
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// HandleState returns the JSON view of the session.
func (h *Handlers) HandleState(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return h.fail(c, err)
	}
	return h.respondView(c, session.ID)
}

// HandleCloseSession tears the session down and clears the cookie.
func (h *Handlers) HandleCloseSession(c *fiber.Ctx) error {
	id := h.sessionID(c)
	if err := h.sessions.Close(id); err != nil {
		return h.fail(c, err)
	}
	c.ClearCookie(h.cookie)
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleSetTab selects the trend tab from the :tab parameter.
func (h *Handlers) HandleSetTab(c *fiber.Ctx) error {
	id := h.sessionID(c)
	input := commands.SetTabInput{SessionID: id, Tab: param(c, "tab")}
	if err := h.exec.SetTab(c.UserContext(), input); err != nil {
		return h.fail(c, err)
	}
	return h.respondView(c, id)
}

// HandleSetFilters merges the JSON body {date_range, region, category}.
func (h *Handlers) HandleSetFilters(c *fiber.Ctx) error {
	var filters salesdash.Filters
	if err := c.BodyParser(&filters); err != nil {
		return respondError(c, fiber.StatusBadRequest, err)
	}
	id := h.sessionID(c)
	if err := h.exec.SetFilters(c.UserContext(), commands.SetFiltersInput{SessionID: id, Filters: filters}); err != nil {
		return h.fail(c, err)
	}
	return h.respondView(c, id)
}

// HandleDownloadReport prepares the report named by :type.
func (h *Handlers) HandleDownloadReport(c *fiber.Ctx) error {
	id := h.sessionID(c)
	input := commands.DownloadReportInput{SessionID: id, Type: param(c, "type")}
	if err := h.exec.DownloadReport(c.UserContext(), input); err != nil {
		return h.fail(c, err)
	}
	return h.respondView(c, id)
}

type alertPayload struct {
	Metric    string `json:"metric"`
	Condition string `json:"condition"`
}

// HandleCreateAlert creates an alert from the JSON body {metric, condition}.
func (h *Handlers) HandleCreateAlert(c *fiber.Ctx) error {
	var payload alertPayload
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, err)
	}
	id := h.sessionID(c)
	input := commands.CreateAlertInput{SessionID: id, Metric: payload.Metric, Condition: payload.Condition}
	if err := h.exec.CreateAlert(c.UserContext(), input); err != nil {
		return h.fail(c, err)
	}
	return h.respondView(c, id)
}

// HandleNavigate announces navigation to :route.
func (h *Handlers) HandleNavigate(c *fiber.Ctx) error {
	id := h.sessionID(c)
	if err := h.exec.Navigate(c.UserContext(), commands.NavigateInput{SessionID: id, Route: param(c, "route")}); err != nil {
		return h.fail(c, err)
	}
	return h.respondView(c, id)
}

// HandleNotifications lists the visible toasts.
func (h *Handlers) HandleNotifications(c *fiber.Ctx) error {
	items, err := h.exec.Notifications(c.UserContext(), queries.NotificationsInput{SessionID: h.sessionID(c)})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"notifications": items})
}

// HandleNotificationStream pushes every new toast as a server-sent event
// until the client disconnects or the session closes.
func (h *Handlers) HandleNotificationStream(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return h.fail(c, err)
	}
	updates, cancel := session.Notifications.Subscribe()
	logger := h.logger.With().Str("session", session.ID).Logger()

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		ticker := time.NewTicker(streamKeepAlive)
		defer ticker.Stop()

		fmt.Fprint(w, ": connected\n\n")
		if err := w.Flush(); err != nil {
			return
		}
		for {
			select {
			case n, ok := <-updates:
				if !ok {
					return
				}
				payload, err := json.Marshal(salesdash.NewNotificationView(n))
				if err != nil {
					logger.Warn().Err(err).Msg("encode notification")
					continue
				}
				fmt.Fprintf(w, "data: %s\n\n", payload)
			case <-ticker.C:
				fmt.Fprint(w, ": keep-alive\n\n")
			}
			if err := w.Flush(); err != nil {
				logger.Debug().Err(err).Msg("notification stream closed")
				return
			}
		}
	}))
	return nil
}

func (h *Handlers) upgradeWebSocket(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	session, err := h.session(c)
	if err != nil {
		return h.fail(c, err)
	}
	c.Locals(localSession, session)
	return c.Next()
}

func (h *Handlers) serveWebSocket(conn *websocket.Conn) {
	session, ok := conn.Locals(localSession).(*salesdash.Session)
	if !ok {
		_ = conn.Close()
		return
	}
	updates, cancel := session.Notifications.Subscribe()
	defer cancel()

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for n := range updates {
		if err := conn.WriteJSON(salesdash.NewNotificationView(n)); err != nil {
			h.logger.Debug().Err(err).Str("session", session.ID).Msg("websocket closed")
			return
		}
	}
}

func (h *Handlers) sessionAction(fn func(context.Context, commands.SessionInput) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := h.sessionID(c)
		if err := fn(c.UserContext(), commands.SessionInput{SessionID: id}); err != nil {
			return h.fail(c, err)
		}
		return h.respondView(c, id)
	}
}

func (h *Handlers) detailsAction(kind commands.DetailKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := h.sessionID(c)
		input := commands.ViewDetailsInput{SessionID: id, Kind: kind, Name: param(c, "name")}
		if err := h.exec.ViewDetails(c.UserContext(), input); err != nil {
			return h.fail(c, err)
		}
		return h.respondView(c, id)
	}
}

func (h *Handlers) respondView(c *fiber.Ctx, id string) error {
	view, err := h.exec.View(c.UserContext(), queries.ViewInput{SessionID: id})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(view)
}

func (h *Handlers) sessionID(c *fiber.Ctx) string {
	if id := strings.TrimSpace(c.Get(SessionHeader)); id != "" {
		return id
	}
	return strings.TrimSpace(c.Cookies(h.cookie))
}

func (h *Handlers) session(c *fiber.Ctx) (*salesdash.Session, error) {
	id := h.sessionID(c)
	if id == "" {
		return nil, salesdash.ErrSessionNotFound
	}
	return h.sessions.Get(id)
}

func (h *Handlers) setCookie(c *fiber.Ctx, id string) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie,
		Value:    id,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(sessionCookieTTL),
	})
}

func (h *Handlers) fail(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return respondError(c, status, err)
}

// StatusFor maps domain errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, salesdash.ErrInvalidTab),
		errors.Is(err, salesdash.ErrInvalidFilter),
		errors.Is(err, commands.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, salesdash.ErrSessionNotFound),
		errors.Is(err, salesdash.ErrSessionClosed),
		errors.Is(err, commands.ErrSessionRequired),
		errors.Is(err, queries.ErrSessionRequired):
		return fiber.StatusNotFound
	case errors.Is(err, ErrUnavailable):
		return fiber.StatusNotImplemented
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func param(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	if decoded, err := url.QueryUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
