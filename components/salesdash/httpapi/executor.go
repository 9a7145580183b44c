package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-sales-dashboard/components/salesdash"
	"github.com/goliatone/go-sales-dashboard/components/salesdash/commands"
	"github.com/goliatone/go-sales-dashboard/components/salesdash/queries"
)

// ErrUnavailable is returned when the executor has no handler for an operation.
var ErrUnavailable = errors.New("httpapi: operation not configured")

// Executor exposes the dashboard commands and queries to transports.
type Executor interface {
	ToggleTheme(ctx context.Context, input commands.SessionInput) error
	ToggleSidebar(ctx context.Context, input commands.SessionInput) error
	SetTab(ctx context.Context, input commands.SetTabInput) error
	SetFilters(ctx context.Context, input commands.SetFiltersInput) error
	ApplyFilters(ctx context.Context, input commands.SessionInput) error
	Refresh(ctx context.Context, input commands.SessionInput) error
	ExportData(ctx context.Context, input commands.SessionInput) error
	ShareDashboard(ctx context.Context, input commands.SessionInput) error
	DownloadReport(ctx context.Context, input commands.DownloadReportInput) error
	CreateAlert(ctx context.Context, input commands.CreateAlertInput) error
	ViewDetails(ctx context.Context, input commands.ViewDetailsInput) error
	Navigate(ctx context.Context, input commands.NavigateInput) error
	View(ctx context.Context, input queries.ViewInput) (salesdash.DashboardView, error)
	Notifications(ctx context.Context, input queries.NotificationsInput) ([]salesdash.NotificationView, error)
}

// CommandExecutor adapts go-command commanders and queriers to Executor.
type CommandExecutor struct {
	ToggleThemeCommander    gocommand.Commander[commands.SessionInput]
	ToggleSidebarCommander  gocommand.Commander[commands.SessionInput]
	SetTabCommander         gocommand.Commander[commands.SetTabInput]
	SetFiltersCommander     gocommand.Commander[commands.SetFiltersInput]
	ApplyFiltersCommander   gocommand.Commander[commands.SessionInput]
	RefreshCommander        gocommand.Commander[commands.SessionInput]
	ExportDataCommander     gocommand.Commander[commands.SessionInput]
	ShareDashboardCommander gocommand.Commander[commands.SessionInput]
	DownloadReportCommander gocommand.Commander[commands.DownloadReportInput]
	CreateAlertCommander    gocommand.Commander[commands.CreateAlertInput]
	ViewDetailsCommander    gocommand.Commander[commands.ViewDetailsInput]
	NavigateCommander       gocommand.Commander[commands.NavigateInput]
	ViewQuerier             gocommand.Querier[queries.ViewInput, salesdash.DashboardView]
	NotificationsQuerier    gocommand.Querier[queries.NotificationsInput, []salesdash.NotificationView]
}

// NewCommandExecutor wires a command set and the two queries.
func NewCommandExecutor(set commands.Set, view *queries.ViewQuery, notifications *queries.NotificationsQuery) *CommandExecutor {
	exec := &CommandExecutor{
		ToggleThemeCommander:    set.ToggleTheme,
		ToggleSidebarCommander:  set.ToggleSidebar,
		SetTabCommander:         set.SetTab,
		SetFiltersCommander:     set.SetFilters,
		ApplyFiltersCommander:   set.ApplyFilters,
		RefreshCommander:        set.Refresh,
		ExportDataCommander:     set.ExportData,
		ShareDashboardCommander: set.ShareDashboard,
		DownloadReportCommander: set.DownloadReport,
		CreateAlertCommander:    set.CreateAlert,
		ViewDetailsCommander:    set.ViewDetails,
		NavigateCommander:       set.Navigate,
	}
	if view != nil {
		exec.ViewQuerier = view
	}
	if notifications != nil {
		exec.NotificationsQuerier = notifications
	}
	return exec
}

var _ Executor = (*CommandExecutor)(nil)

func run[T any](ctx context.Context, cmd gocommand.Commander[T], msg T) error {
	if cmd == nil {
		return ErrUnavailable
	}
	return cmd.Execute(ctx, msg)
}

func (e *CommandExecutor) ToggleTheme(ctx context.Context, input commands.SessionInput) error {
	return run(ctx, e.ToggleThemeCommander, input)
}

func (e *CommandExecutor) ToggleSidebar(ctx context.Context, input commands.SessionInput) error {
	return run(ctx, e.ToggleSidebarCommander, input)
}

func (e *CommandExecutor) SetTab(ctx context.Context, input commands.SetTabInput) error {
	return run(ctx, e.SetTabCommander, input)
}

func (e *CommandExecutor) SetFilters(ctx context.Context, input commands.SetFiltersInput) error {
	return run(ctx, e.SetFiltersCommander, input)
}

func (e *CommandExecutor) ApplyFilters(ctx context.Context, input commands.SessionInput) error {
	return run(ctx, e.ApplyFiltersCommander, input)
}

func (e *CommandExecutor) Refresh(ctx context.Context, input commands.SessionInput) error {
	return run(ctx, e.RefreshCommander, input)
}

func (e *CommandExecutor) ExportData(ctx context.Context, input commands.SessionInput) error {
	return run(ctx, e.ExportDataCommander, input)
}

func (e *CommandExecutor) ShareDashboard(ctx context.Context, input commands.SessionInput) error {
	return run(ctx, e.ShareDashboardCommander, input)
}

func (e *CommandExecutor) DownloadReport(ctx context.Context, input commands.DownloadReportInput) error {
	return run(ctx, e.DownloadReportCommander, input)
}

func (e *CommandExecutor) CreateAlert(ctx context.Context, input commands.CreateAlertInput) error {
	return run(ctx, e.CreateAlertCommander, input)
}

func (e *CommandExecutor) ViewDetails(ctx context.Context, input commands.ViewDetailsInput) error {
	return run(ctx, e.ViewDetailsCommander, input)
}

func (e *CommandExecutor) Navigate(ctx context.Context, input commands.NavigateInput) error {
	return run(ctx, e.NavigateCommander, input)
}

func (e *CommandExecutor) View(ctx context.Context, input queries.ViewInput) (salesdash.DashboardView, error) {
	if e.ViewQuerier == nil {
		return salesdash.DashboardView{}, ErrUnavailable
	}
	return e.ViewQuerier.Query(ctx, input)
}

func (e *CommandExecutor) Notifications(ctx context.Context, input queries.NotificationsInput) ([]salesdash.NotificationView, error) {
	if e.NotificationsQuerier == nil {
		return nil, ErrUnavailable
	}
	return e.NotificationsQuerier.Query(ctx, input)
}
