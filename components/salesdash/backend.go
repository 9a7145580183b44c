package salesdash

import (
	"context"
	"fmt"
)

// ExportRequest describes a dashboard export.
type ExportRequest struct {
	Format  string  `json:"format"`
	Filters Filters `json:"filters"`
}

// ReportRequest describes a downloadable report.
type ReportRequest struct {
	Type string `json:"type"`
	Key  string `json:"key"`
}

// AlertRule is a metric alert as created from a metric card.
type AlertRule struct {
	Metric    string `json:"metric"`
	Condition string `json:"condition"`
}

// Backend is the data/action capability set behind the dashboard. The default
// StaticBackend serves sample data; a real service can be swapped in without
// touching the controller or dispatcher.
type Backend interface {
	FetchMetrics(ctx context.Context, filters Filters) (Dataset, error)
	ApplyFilters(ctx context.Context, filters Filters) error
	ExportData(ctx context.Context, req ExportRequest) error
	ShareLink(ctx context.Context) (string, error)
	SetAlert(ctx context.Context, rule AlertRule) error
	GenerateReport(ctx context.Context, req ReportRequest) error
}

// StaticBackend serves a fixed dataset and accepts every action.
type StaticBackend struct {
	Dataset  Dataset
	ShareURL string
}

// NewStaticBackend returns a backend over the sample dataset.
func NewStaticBackend() *StaticBackend {
	return &StaticBackend{Dataset: SampleDataset()}
}

// FetchMetrics returns a copy of the configured dataset, ignoring filters.
func (b *StaticBackend) FetchMetrics(context.Context, Filters) (Dataset, error) {
	if len(b.Dataset.Series) == 0 {
		return SampleDataset(), nil
	}
	return b.Dataset.Clone(), nil
}

// ApplyFilters always succeeds.
func (b *StaticBackend) ApplyFilters(context.Context, Filters) error { return nil }

// ExportData always succeeds.
func (b *StaticBackend) ExportData(context.Context, ExportRequest) error { return nil }

// ShareLink returns the configured share URL.
func (b *StaticBackend) ShareLink(context.Context) (string, error) {
	if b.ShareURL == "" {
		return "/dashboard", nil
	}
	return b.ShareURL, nil
}

// SetAlert accepts the rule without storing it.
func (b *StaticBackend) SetAlert(context.Context, AlertRule) error { return nil }

// GenerateReport always succeeds.
func (b *StaticBackend) GenerateReport(context.Context, ReportRequest) error { return nil }

func normalizeBackend(b Backend) Backend {
	if b == nil {
		return NewStaticBackend()
	}
	return b
}

// LoadDataset fetches the dataset through backend and falls back to the sample
// data when the backend fails or returns nothing to plot.
func LoadDataset(ctx context.Context, backend Backend, filters Filters) (Dataset, error) {
	backend = normalizeBackend(backend)
	ds, err := backend.FetchMetrics(ctx, filters)
	if err != nil {
		return SampleDataset(), fmt.Errorf("salesdash: fetch metrics: %w", err)
	}
	if len(ds.Series) == 0 && len(ds.Products) == 0 && len(ds.Team) == 0 {
		return SampleDataset(), nil
	}
	return ds, nil
}
