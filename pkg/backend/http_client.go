package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-sales-dashboard/components/salesdash"
)

// HTTPConfig configures the HTTP sales backend.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to a remote sales service via REST endpoints.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ salesdash.Backend = (*HTTPClient)(nil)

// NewHTTPClient builds a backend that forwards every dashboard action to a
// live service.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// FetchMetrics loads the dashboard dataset for the given filters.
func (c *HTTPClient) FetchMetrics(ctx context.Context, filters salesdash.Filters) (salesdash.Dataset, error) {
	var resp metricsResponse
	if err := c.do(ctx, http.MethodPost, "/metrics/query", filtersRequest(filters), &resp); err != nil {
		return salesdash.Dataset{}, err
	}
	ds := resp.toDataset()
	if err := salesdash.ValidateDataset(ds); err != nil {
		return salesdash.Dataset{}, fmt.Errorf("backend: invalid metrics response: %w", err)
	}
	return ds, nil
}

// ApplyFilters forwards the filter selection.
func (c *HTTPClient) ApplyFilters(ctx context.Context, filters salesdash.Filters) error {
	return c.do(ctx, http.MethodPost, "/filters/apply", filtersRequest(filters), nil)
}

// ExportData requests an export of the current dashboard.
func (c *HTTPClient) ExportData(ctx context.Context, req salesdash.ExportRequest) error {
	return c.do(ctx, http.MethodPost, "/exports", exportRequest{
		Format:  req.Format,
		Filters: filtersRequest(req.Filters),
	}, nil)
}

// ShareLink asks the service for a shareable dashboard link.
func (c *HTTPClient) ShareLink(ctx context.Context) (string, error) {
	var resp shareResponse
	if err := c.do(ctx, http.MethodPost, "/share", struct{}{}, &resp); err != nil {
		return "", err
	}
	if resp.URL == "" {
		return "", fmt.Errorf("backend: share response missing url")
	}
	return resp.URL, nil
}

// SetAlert registers an alert rule.
func (c *HTTPClient) SetAlert(ctx context.Context, rule salesdash.AlertRule) error {
	return c.do(ctx, http.MethodPost, "/alerts", alertRequest{Metric: rule.Metric, Condition: rule.Condition}, nil)
}

// GenerateReport requests a downloadable report.
func (c *HTTPClient) GenerateReport(ctx context.Context, req salesdash.ReportRequest) error {
	return c.do(ctx, http.MethodPost, "/reports/"+req.Key, reportRequest{Type: req.Type}, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("backend: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return &RemoteError{Status: resp.StatusCode, Body: strings.TrimSpace(buf.String())}
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("backend: decode response: %w", err)
	}
	return nil
}

// RemoteError is a non-2xx answer from the service.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("backend: remote error %d: %s", e.Status, e.Body)
}

type filtersPayload struct {
	DateRange string `json:"date_range"`
	Region    string `json:"region"`
	Category  string `json:"category"`
}

func filtersRequest(f salesdash.Filters) filtersPayload {
	return filtersPayload{
		DateRange: string(f.DateRange),
		Region:    string(f.Region),
		Category:  string(f.Category),
	}
}

type exportRequest struct {
	Format  string         `json:"format"`
	Filters filtersPayload `json:"filters"`
}

type alertRequest struct {
	Metric    string `json:"metric"`
	Condition string `json:"condition"`
}

type reportRequest struct {
	Type string `json:"type"`
}

type shareResponse struct {
	URL string `json:"url"`
}

type seriesPoint struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
	Units   float64 `json:"units"`
	Profit  float64 `json:"profit"`
}

type productRow struct {
	Name   string  `json:"name"`
	Sales  float64 `json:"sales"`
	Target float64 `json:"target"`
}

type memberRow struct {
	Name   string  `json:"name"`
	Sales  float64 `json:"sales"`
	Leads  float64 `json:"leads"`
	Target float64 `json:"target"`
	Avatar string  `json:"avatar"`
	Status string  `json:"status"`
}

type metricsResponse struct {
	Series   []seriesPoint          `json:"series"`
	Products []productRow           `json:"products"`
	Team     []memberRow            `json:"team"`
	Cards    []salesdash.MetricCard `json:"cards"`
	Insights []salesdash.Insight    `json:"insights"`
}

// toDataset maps the wire rows; cards and insights fall back to the built-in
// copy when the service does not send them.
func (r metricsResponse) toDataset() salesdash.Dataset {
	sample := salesdash.SampleDataset()
	ds := salesdash.Dataset{
		Series:   make([]salesdash.TimeSeriesPoint, len(r.Series)),
		Products: make([]salesdash.ProductRecord, len(r.Products)),
		Team:     make([]salesdash.TeamMemberRecord, len(r.Team)),
		Cards:    r.Cards,
		Insights: r.Insights,
	}
	for i, point := range r.Series {
		ds.Series[i] = salesdash.TimeSeriesPoint{
			Period:  point.Period,
			Revenue: point.Revenue,
			Units:   point.Units,
			Profit:  point.Profit,
		}
	}
	for i, product := range r.Products {
		ds.Products[i] = salesdash.ProductRecord{Name: product.Name, Sales: product.Sales, Target: product.Target}
	}
	for i, member := range r.Team {
		status := salesdash.MemberStatus(member.Status)
		if status == "" {
			status = salesdash.MemberActive
		}
		ds.Team[i] = salesdash.TeamMemberRecord{
			Name:   member.Name,
			Sales:  member.Sales,
			Leads:  member.Leads,
			Target: member.Target,
			Avatar: member.Avatar,
			Status: status,
		}
	}
	if len(ds.Cards) == 0 {
		ds.Cards = sample.Cards
	}
	if len(ds.Insights) == 0 {
		ds.Insights = sample.Insights
	}
	return ds
}
