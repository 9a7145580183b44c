package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gocommand "github.com/goliatone/go-command"
)

// ErrInvalidInput is returned when an action is missing a required argument.
var ErrInvalidInput = errors.New("commands: invalid input")

// ExportDataCommand starts a data export.
type ExportDataCommand struct {
	sessions  SessionResolver
	telemetry Telemetry
}

// NewExportDataCommand creates the command.
func NewExportDataCommand(sessions SessionResolver, telemetry Telemetry) *ExportDataCommand {
	return &ExportDataCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SessionInput] = (*ExportDataCommand)(nil)

// Execute delegates to the session dispatcher.
func (c *ExportDataCommand) Execute(ctx context.Context, msg SessionInput) error {
	session, err := resolve(c.sessions, msg.SessionID)
	if err != nil {
		return err
	}
	session.Dispatcher.ExportData(ctx)
	c.telemetry.Record(ctx, "salesdash.command.export", map[string]any{"session_id": session.ID})
	return nil
}

// ShareDashboardCommand announces the share link.
type ShareDashboardCommand struct {
	sessions  SessionResolver
	telemetry Telemetry
}

// NewShareDashboardCommand creates the command.
func NewShareDashboardCommand(sessions SessionResolver, telemetry Telemetry) *ShareDashboardCommand {
	return &ShareDashboardCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SessionInput] = (*ShareDashboardCommand)(nil)

// Execute delegates to the session dispatcher.
func (c *ShareDashboardCommand) Execute(ctx context.Context, msg SessionInput) error {
	session, err := resolve(c.sessions, msg.SessionID)
	if err != nil {
		return err
	}
	session.Dispatcher.ShareDashboard(ctx)
	c.telemetry.Record(ctx, "salesdash.command.share", map[string]any{"session_id": session.ID})
	return nil
}

// DownloadReportInput names the report to prepare, e.g. "Deal Size".
type DownloadReportInput struct {
	SessionID string `json:"session_id"`
	Type      string `json:"type"`
}

// DownloadReportCommand prepares a report download.
type DownloadReportCommand struct {
	sessions  SessionResolver
	telemetry Telemetry
}

// NewDownloadReportCommand creates the command.
func NewDownloadReportCommand(sessions SessionResolver, telemetry Telemetry) *DownloadReportCommand {
	return &DownloadReportCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DownloadReportInput] = (*DownloadReportCommand)(nil)

// Execute requires a report type and delegates to the dispatcher.
func (c *DownloadReportCommand) Execute(ctx context.Context, msg DownloadReportInput) error {
	reportType := strings.TrimSpace(msg.Type)
	if reportType == "" {
		return fmt.Errorf("%w: report type is required", ErrInvalidInput)
	}
	session, err := resolve(c.sessions, msg.SessionID)
	if err != nil {
		return err
	}
	session.Dispatcher.DownloadReport(ctx, reportType)
	c.telemetry.Record(ctx, "salesdash.command.report_download", map[string]any{
		"session_id": session.ID,
		"type":       reportType,
	})
	return nil
}

// CreateAlertInput describes an alert. An empty condition uses the default.
type CreateAlertInput struct {
	SessionID string `json:"session_id"`
	Metric    string `json:"metric"`
	Condition string `json:"condition"`
}

// CreateAlertCommand registers an alert on a metric.
type CreateAlertCommand struct {
	sessions  SessionResolver
	telemetry Telemetry
}

// NewCreateAlertCommand creates the command.
func NewCreateAlertCommand(sessions SessionResolver, telemetry Telemetry) *CreateAlertCommand {
	return &CreateAlertCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreateAlertInput] = (*CreateAlertCommand)(nil)

// Execute requires a metric and delegates to the dispatcher.
func (c *CreateAlertCommand) Execute(ctx context.Context, msg CreateAlertInput) error {
	metric := strings.TrimSpace(msg.Metric)
	if metric == "" {
		return fmt.Errorf("%w: alert metric is required", ErrInvalidInput)
	}
	session, err := resolve(c.sessions, msg.SessionID)
	if err != nil {
		return err
	}
	session.Dispatcher.CreateAlert(ctx, metric, msg.Condition)
	c.telemetry.Record(ctx, "salesdash.command.alert_create", map[string]any{
		"session_id": session.ID,
		"metric":     metric,
	})
	return nil
}

// DetailKind selects what ViewDetailsCommand opens.
type DetailKind string

const (
	DetailMetric      DetailKind = "metric"
	DetailTeamMember  DetailKind = "team"
	DetailInsight     DetailKind = "insight"
	DetailAllInsights DetailKind = "insights"
)

// ViewDetailsInput targets a metric card, team member, insight or the insight list.
type ViewDetailsInput struct {
	SessionID string     `json:"session_id"`
	Kind      DetailKind `json:"kind"`
	Name      string     `json:"name"`
}

// ViewDetailsCommand opens a detail view.
type ViewDetailsCommand struct {
	sessions  SessionResolver
	telemetry Telemetry
}

// NewViewDetailsCommand creates the command.
func NewViewDetailsCommand(sessions SessionResolver, telemetry Telemetry) *ViewDetailsCommand {
	return &ViewDetailsCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ViewDetailsInput] = (*ViewDetailsCommand)(nil)

// Execute routes to the matching dispatcher operation. Every kind except
// DetailAllInsights requires a name.
func (c *ViewDetailsCommand) Execute(ctx context.Context, msg ViewDetailsInput) error {
	name := strings.TrimSpace(msg.Name)
	switch msg.Kind {
	case DetailMetric, DetailTeamMember, DetailInsight:
		if name == "" {
			return fmt.Errorf("%w: %s name is required", ErrInvalidInput, msg.Kind)
		}
	case DetailAllInsights:
	default:
		return fmt.Errorf("%w: unknown detail kind %q", ErrInvalidInput, msg.Kind)
	}
	session, err := resolve(c.sessions, msg.SessionID)
	if err != nil {
		return err
	}
	switch msg.Kind {
	case DetailMetric:
		session.Dispatcher.ViewMetricDetails(ctx, name)
	case DetailTeamMember:
		session.Dispatcher.ViewTeamMemberDetails(ctx, name)
	case DetailInsight:
		session.Dispatcher.ViewInsightDetails(ctx, name)
	case DetailAllInsights:
		session.Dispatcher.ViewAllInsights(ctx)
	}
	c.telemetry.Record(ctx, "salesdash.command.details_view", map[string]any{
		"session_id": session.ID,
		"kind":       string(msg.Kind),
		"name":       name,
	})
	return nil
}

// NavigateInput names a sidebar route.
type NavigateInput struct {
	SessionID string `json:"session_id"`
	Route     string `json:"route"`
}

// NavigateCommand announces a navigation.
type NavigateCommand struct {
	sessions  SessionResolver
	telemetry Telemetry
}

// NewNavigateCommand creates the command.
func NewNavigateCommand(sessions SessionResolver, telemetry Telemetry) *NavigateCommand {
	return &NavigateCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[NavigateInput] = (*NavigateCommand)(nil)

// Execute requires a route and delegates to the controller.
func (c *NavigateCommand) Execute(ctx context.Context, msg NavigateInput) error {
	route := strings.TrimSpace(msg.Route)
	if route == "" {
		return fmt.Errorf("%w: route is required", ErrInvalidInput)
	}
	session, err := resolve(c.sessions, msg.SessionID)
	if err != nil {
		return err
	}
	if err := session.Controller.Navigate(ctx, route); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "salesdash.command.navigate", map[string]any{
		"session_id": session.ID,
		"route":      route,
	})
	return nil
}
