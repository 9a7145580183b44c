package queries

import (
	"context"
	"errors"
	"strings"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-sales-dashboard/components/salesdash"
)

// ErrSessionRequired is returned when a query carries no session id.
var ErrSessionRequired = errors.New("queries: session id required")

type sessionResolver interface {
	Get(id string) (*salesdash.Session, error)
}

// ViewInput identifies the session to render. WithCharts adds the rendered
// chart markup to the view.
type ViewInput struct {
	SessionID  string
	WithCharts bool
}

// ViewQuery resolves the render model of a session.
type ViewQuery struct {
	sessions sessionResolver
	charts   *salesdash.ChartRenderer
}

// NewViewQuery builds the query. charts may be nil when chart markup is never requested.
func NewViewQuery(sessions sessionResolver, charts *salesdash.ChartRenderer) *ViewQuery {
	return &ViewQuery{sessions: sessions, charts: charts}
}

var _ gocommand.Querier[ViewInput, salesdash.DashboardView] = (*ViewQuery)(nil)

// Query builds the view for the session.
func (q *ViewQuery) Query(_ context.Context, input ViewInput) (salesdash.DashboardView, error) {
	session, err := lookup(q.sessions, input.SessionID)
	if err != nil {
		return salesdash.DashboardView{}, err
	}
	view := session.View()
	if input.WithCharts && q.charts != nil {
		charts, err := q.charts.Render(session.State(), session.Dataset())
		if err != nil {
			return salesdash.DashboardView{}, err
		}
		view.Charts = charts
	}
	return view, nil
}

func lookup(sessions sessionResolver, id string) (*salesdash.Session, error) {
	if sessions == nil {
		return nil, errors.New("queries: session resolver is required")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrSessionRequired
	}
	return sessions.Get(id)
}
