package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-sales-dashboard/components/salesdash"
	"github.com/goliatone/go-sales-dashboard/components/salesdash/commands"
	"github.com/goliatone/go-sales-dashboard/components/salesdash/gorouter"
	"github.com/goliatone/go-sales-dashboard/components/salesdash/httpapi"
	"github.com/goliatone/go-sales-dashboard/components/salesdash/queries"
)

const shutdownTimeout = 5 * time.Second

type serveCmd struct {
	Addr       string        `default:":8080" env:"SALESDASH_ADDR" help:"Listen address of the dashboard."`
	AdminAddr  string        `name:"admin-addr" env:"SALESDASH_ADMIN_ADDR" help:"Listen address of the JSON session API. Disabled when empty."`
	BasePath   string        `name:"base-path" default:"/dashboard" env:"SALESDASH_BASE_PATH" help:"Path the dashboard is mounted under."`
	CookieName string        `name:"cookie-name" default:"salesdash_session" env:"SALESDASH_COOKIE" help:"Session cookie name."`
	AssetsHost string        `name:"assets-host" env:"SALESDASH_ASSETS_HOST" help:"Host serving the ECharts scripts (defaults to the public CDN)."`
	ChartTTL   time.Duration `name:"chart-ttl" default:"5m" env:"SALESDASH_CHART_TTL" help:"How long rendered charts are cached."`
	SessionTTL time.Duration `name:"session-ttl" default:"24h" env:"SALESDASH_SESSION_TTL" help:"Close sessions idle for this long (0 keeps them until deleted)."`
}

func (cmd *serveCmd) Run(g *Globals) error {
	a, err := newApp(g, nil, cmd.BasePath, salesdash.SystemScheduler(), cmd.SessionTTL)
	if err != nil {
		return err
	}
	defer a.close()

	renderer, err := salesdash.NewTemplateRenderer()
	if err != nil {
		return err
	}
	chartOpts := []salesdash.ChartRendererOption{
		salesdash.WithRenderCache(salesdash.NewChartCache(cmd.ChartTTL)),
	}
	if cmd.AssetsHost != "" {
		chartOpts = append(chartOpts, salesdash.WithAssetsHost(cmd.AssetsHost))
	}
	charts := salesdash.NewChartRenderer(chartOpts...)
	page, err := salesdash.NewPage(salesdash.PageOptions{
		Renderer: renderer,
		Charts:   charts,
		BasePath: cmd.BasePath,
	})
	if err != nil {
		return err
	}

	telemetry := salesdash.ZerologTelemetry{Logger: a.logger}
	exec := httpapi.NewCommandExecutor(
		commands.NewSet(a.sessions, telemetry),
		queries.NewViewQuery(a.sessions, charts),
		queries.NewNotificationsQuery(a.sessions),
	)

	server := fiber.New(fiber.Config{
		AppName:               "salesdash",
		DisableStartupMessage: true,
	})
	server.Use(recover.New())
	server.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(cmd.BasePath)
	})
	if _, err := httpapi.Register(server, httpapi.Config{
		Sessions:   a.sessions,
		Executor:   exec,
		Page:       page,
		BasePath:   cmd.BasePath,
		CookieName: cmd.CookieName,
		Logger:     &a.logger,
	}); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 2)
	go func() {
		a.logger.Info().Str("addr", cmd.Addr).Str("path", cmd.BasePath).Msg("dashboard listening")
		errs <- server.Listen(cmd.Addr)
	}()

	var admin router.Server[*fiber.App]
	if cmd.AdminAddr != "" {
		admin = router.NewFiberAdapter()
		if _, err := gorouter.Register(gorouter.Config[*fiber.App]{
			Router:   admin.Router(),
			Sessions: a.sessions,
			API:      exec,
		}); err != nil {
			return err
		}
		go func() {
			a.logger.Info().Str("addr", cmd.AdminAddr).Str("path", gorouter.DefaultBasePath).Msg("session api listening")
			errs <- admin.Serve(cmd.AdminAddr)
		}()
	}

	select {
	case <-ctx.Done():
		a.logger.Info().Msg("shutting down")
	case err := <-errs:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return shutdown(shutdownCtx, server, admin)
}

// shutdown stops the dashboard and, when running, the session API server.
func shutdown(ctx context.Context, server *fiber.App, admin router.Server[*fiber.App]) error {
	var errs []error
	if admin != nil {
		if err := admin.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("session api: %w", err))
		}
	}
	if err := server.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("dashboard: %w", err))
	}
	return errors.Join(errs...)
}
