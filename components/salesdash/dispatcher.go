package salesdash

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ettle/strcase"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-sales-dashboard/pkg/activity"
)

// Notification timings.
const (
	DefaultNotificationDuration = 3 * time.Second
	ShortNotificationDuration   = 2 * time.Second

	ExportCompleteDelay = 2000 * time.Millisecond
	RefreshDoneDelay    = 1500 * time.Millisecond
	ReportReadyDelay    = 2500 * time.Millisecond
)

// DefaultAlertCondition is used when an alert is created from a metric card.
const DefaultAlertCondition = "drops below target"

// DispatcherOptions configures a Dispatcher.
type DispatcherOptions struct {
	Notifier  Notifier
	Scheduler Scheduler
	Backend   Backend
	Telemetry Telemetry
	Activity  *activity.Emitter
	Logger    *zerolog.Logger
	// ActorID identifies who triggered the actions in activity events.
	ActorID string
	// Filters returns the selections used for exports and reports.
	Filters func() Filters
}

// Dispatcher turns user intents into notifications. Every operation is total:
// backend and notifier failures are logged, never returned.
type Dispatcher struct {
	notifier  Notifier
	tasks     *TaskGroup
	backend   Backend
	telemetry Telemetry
	activity  *activity.Emitter
	logger    zerolog.Logger
	actorID   string
	filters   func() Filters
}

// NewDispatcher builds a dispatcher with safe defaults for every missing option.
func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	filters := opts.Filters
	if filters == nil {
		filters = DefaultFilters
	}
	return &Dispatcher{
		notifier:  normalizeNotifier(opts.Notifier),
		tasks:     NewTaskGroup(opts.Scheduler),
		backend:   normalizeBackend(opts.Backend),
		telemetry: normalizeTelemetry(opts.Telemetry),
		activity:  opts.Activity,
		logger:    componentLogger(opts.Logger, "dispatcher"),
		actorID:   opts.ActorID,
		filters:   filters,
	}
}

// ExportData starts a CSV export and reports completion after ExportCompleteDelay.
func (d *Dispatcher) ExportData(ctx context.Context) {
	req := ExportRequest{Format: "csv", Filters: d.filters()}
	if err := d.backend.ExportData(ctx, req); err != nil {
		d.logger.Error().Err(err).Str("format", req.Format).Msg("export failed")
	}
	d.notify(ctx, Notification{
		Title:       "Export Started",
		Description: "Your dashboard data is being exported to CSV",
		Duration:    DefaultNotificationDuration,
	})
	d.later(ctx, ExportCompleteDelay, Notification{
		Title:       "Export Complete",
		Description: "Dashboard data has been exported successfully",
		Duration:    DefaultNotificationDuration,
		Style:       StyleSuccess,
	})
	d.record(ctx, "export", "dashboard", req.Format, map[string]any{"format": req.Format})
}

// ShareDashboard obtains a share link and announces it was copied.
func (d *Dispatcher) ShareDashboard(ctx context.Context) {
	link, err := d.backend.ShareLink(ctx)
	if err != nil {
		d.logger.Error().Err(err).Msg("share link failed")
	}
	d.notify(ctx, Notification{
		Title:       "Share Dashboard",
		Description: "Dashboard link has been copied to clipboard",
		Duration:    DefaultNotificationDuration,
	})
	d.record(ctx, "share", "dashboard", "", map[string]any{"link": link})
}

// ApplyFilters forwards the selections to the backend. It reports false only
// when the backend rejected them.
func (d *Dispatcher) ApplyFilters(ctx context.Context, filters Filters) bool {
	ok := true
	if err := d.backend.ApplyFilters(ctx, filters); err != nil {
		d.logger.Error().Err(err).
			Str("date_range", string(filters.DateRange)).
			Str("region", string(filters.Region)).
			Str("category", string(filters.Category)).
			Msg("apply filters failed")
		ok = false
	}
	d.notify(ctx, Notification{
		Title:       "Filters Applied",
		Description: "Dashboard data has been updated with your filters",
		Duration:    DefaultNotificationDuration,
	})
	d.record(ctx, "filters.apply", "filters", "", map[string]any{
		"date_range": string(filters.DateRange),
		"region":     string(filters.Region),
		"category":   string(filters.Category),
		"success":    ok,
	})
	return ok
}

// ViewMetricDetails announces the detail view of a metric card.
func (d *Dispatcher) ViewMetricDetails(ctx context.Context, name string) {
	d.notify(ctx, Notification{
		Title:       fmt.Sprintf("%s Details", name),
		Description: fmt.Sprintf("Viewing detailed information for %s", name),
		Duration:    DefaultNotificationDuration,
	})
	d.record(ctx, "metric.view", "metric", slug(name), map[string]any{"name": name})
}

// ViewTeamMemberDetails announces the detail view of a team member.
func (d *Dispatcher) ViewTeamMemberDetails(ctx context.Context, name string) {
	d.notify(ctx, Notification{
		Title:       fmt.Sprintf("Team Member: %s", name),
		Description: fmt.Sprintf("Viewing detailed performance for %s", name),
		Duration:    DefaultNotificationDuration,
	})
	d.record(ctx, "team.view", "team_member", slug(name), map[string]any{"name": name})
}

// ViewAllInsights announces the insights overview.
func (d *Dispatcher) ViewAllInsights(ctx context.Context) {
	d.notify(ctx, Notification{
		Title:       "AI Insights",
		Description: "Loading all available insights",
		Duration:    DefaultNotificationDuration,
	})
	d.record(ctx, "insights.view", "insight", "", nil)
}

// ViewInsightDetails announces the detail view of one insight.
func (d *Dispatcher) ViewInsightDetails(ctx context.Context, title string) {
	d.notify(ctx, Notification{
		Title:       fmt.Sprintf("Insight: %s", title),
		Description: "Loading detailed information for this insight",
		Duration:    DefaultNotificationDuration,
	})
	d.record(ctx, "insight.view", "insight", slug(title), map[string]any{"title": title})
}

// RefreshDashboard announces a refresh and its completion after RefreshDoneDelay.
func (d *Dispatcher) RefreshDashboard(ctx context.Context) {
	d.refresh(ctx, nil)
}

// RefreshDashboardThen behaves like RefreshDashboard and runs done in the same
// task that emits the completion notification.
func (d *Dispatcher) RefreshDashboardThen(ctx context.Context, done func()) {
	d.refresh(ctx, done)
}

func (d *Dispatcher) refresh(ctx context.Context, done func()) {
	if _, err := d.backend.FetchMetrics(ctx, d.filters()); err != nil {
		d.logger.Error().Err(err).Msg("refresh fetch failed")
	}
	d.notify(ctx, Notification{
		Title:       "Refreshing Dashboard",
		Description: "Fetching the latest data from the server",
		Duration:    ShortNotificationDuration,
	})
	updated := Notification{
		Title:       "Dashboard Updated",
		Description: "Dashboard has been refreshed with the latest data",
		Duration:    DefaultNotificationDuration,
		Style:       StyleSuccess,
	}
	bg := context.WithoutCancel(ctx)
	d.tasks.After(RefreshDoneDelay, func() {
		d.notify(bg, updated)
		if done != nil {
			done()
		}
	})
	d.record(ctx, "refresh", "dashboard", "", nil)
}

// DownloadReport prepares a report of the given type and reports it ready
// after ReportReadyDelay.
func (d *Dispatcher) DownloadReport(ctx context.Context, reportType string) {
	req := ReportRequest{Type: reportType, Key: strcase.ToKebab(reportType)}
	if err := d.backend.GenerateReport(ctx, req); err != nil {
		d.logger.Error().Err(err).Str("report", req.Key).Msg("report generation failed")
	}
	d.notify(ctx, Notification{
		Title:       fmt.Sprintf("Generating %s Report", reportType),
		Description: "Your report is being prepared for download",
		Duration:    DefaultNotificationDuration,
	})
	d.later(ctx, ReportReadyDelay, Notification{
		Title:       "Report Ready",
		Description: fmt.Sprintf("Your %s report has been downloaded", reportType),
		Duration:    DefaultNotificationDuration,
		Style:       StyleSuccess,
	})
	d.record(ctx, "report.download", "report", req.Key, map[string]any{"type": reportType})
}

// CreateAlert registers an alert rule for metric. An empty condition falls
// back to DefaultAlertCondition.
func (d *Dispatcher) CreateAlert(ctx context.Context, metric, condition string) {
	if strings.TrimSpace(condition) == "" {
		condition = DefaultAlertCondition
	}
	rule := AlertRule{Metric: metric, Condition: condition}
	if err := d.backend.SetAlert(ctx, rule); err != nil {
		d.logger.Error().Err(err).Str("metric", metric).Msg("create alert failed")
	}
	d.notify(ctx, Notification{
		Title:       "Alert Created",
		Description: fmt.Sprintf("You'll be notified when %s %s", metric, condition),
		Duration:    DefaultNotificationDuration,
		Style:       StyleSuccess,
	})
	d.record(ctx, "alert.create", "alert", slug(metric), map[string]any{
		"metric":    metric,
		"condition": condition,
	})
}

// Navigate announces a navigation to route. No page change happens.
func (d *Dispatcher) Navigate(ctx context.Context, route string) {
	d.notify(ctx, Notification{
		Title:       fmt.Sprintf("Navigating to %s", route),
		Description: fmt.Sprintf("Loading %s page...", route),
		Duration:    ShortNotificationDuration,
	})
	d.record(ctx, "navigate", "route", slug(route), map[string]any{"route": route})
}

// Notify emits an arbitrary notification through the dispatcher's notifier.
func (d *Dispatcher) Notify(ctx context.Context, n Notification) {
	d.notify(ctx, n)
}

// Pending returns the number of delayed notifications not yet emitted.
func (d *Dispatcher) Pending() int {
	return d.tasks.Pending()
}

// Close cancels every delayed notification.
func (d *Dispatcher) Close() {
	d.tasks.Close()
}

func (d *Dispatcher) notify(ctx context.Context, n Notification) {
	if err := d.notifier.Notify(ctx, n); err != nil {
		d.logger.Warn().Err(err).Str("title", n.Title).Msg("notification dropped")
	}
}

func (d *Dispatcher) later(ctx context.Context, delay time.Duration, n Notification) {
	bg := context.WithoutCancel(ctx)
	d.tasks.After(delay, func() { d.notify(bg, n) })
}

func (d *Dispatcher) record(ctx context.Context, action, objectType, objectID string, meta map[string]any) {
	event := "salesdash.action." + strings.ReplaceAll(action, ".", "_")
	payload := map[string]any{"object_type": objectType}
	if objectID != "" {
		payload["object_id"] = objectID
	}
	for k, v := range meta {
		payload[k] = v
	}
	d.telemetry.Record(ctx, event, payload)

	if d.activity == nil {
		return
	}
	err := d.activity.Emit(ctx, activity.Event{
		Verb:       "salesdash." + action,
		ActorID:    d.actorID,
		ObjectType: objectType,
		ObjectID:   objectID,
		Metadata:   meta,
	})
	if err != nil {
		d.logger.Warn().Err(err).Str("verb", "salesdash."+action).Msg("activity hook failed")
	}
}

func slug(value string) string {
	return strcase.ToSnake(strings.TrimSpace(value))
}
