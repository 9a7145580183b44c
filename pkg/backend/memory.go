package backend

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-sales-dashboard/components/salesdash"
)

// Recorded is a snapshot of what a MemoryBackend received.
type Recorded struct {
	Filters []salesdash.Filters
	Exports []salesdash.ExportRequest
	Alerts  []salesdash.AlertRule
	Reports []salesdash.ReportRequest
	Shares  int
}

// MemoryBackend serves a fixed dataset and keeps every action it receives in
// memory. It is the default backend for local runs and demos.
type MemoryBackend struct {
	dataset  salesdash.Dataset
	shareURL string

	mu       sync.RWMutex
	recorded Recorded
}

var _ salesdash.Backend = (*MemoryBackend)(nil)

// NewMemoryBackend builds a backend over ds. An empty dataset falls back to
// the built-in sample data.
func NewMemoryBackend(ds salesdash.Dataset, shareURL string) *MemoryBackend {
	if len(ds.Series) == 0 {
		ds = salesdash.SampleDataset()
	}
	return &MemoryBackend{dataset: ds.Clone(), shareURL: shareURL}
}

// FetchMetrics returns a copy of the configured dataset ignoring filters.
func (b *MemoryBackend) FetchMetrics(context.Context, salesdash.Filters) (salesdash.Dataset, error) {
	return b.dataset.Clone(), nil
}

// ApplyFilters records the selection.
func (b *MemoryBackend) ApplyFilters(_ context.Context, filters salesdash.Filters) error {
	if err := filters.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.recorded.Filters = append(b.recorded.Filters, filters)
	return nil
}

// ExportData records the export request.
func (b *MemoryBackend) ExportData(_ context.Context, req salesdash.ExportRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.recorded.Exports = append(b.recorded.Exports, req)
	return nil
}

// ShareLink returns the configured link.
func (b *MemoryBackend) ShareLink(context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.recorded.Shares++
	if b.shareURL == "" {
		return "", fmt.Errorf("backend: share url not configured")
	}
	return b.shareURL, nil
}

// SetAlert records the rule.
func (b *MemoryBackend) SetAlert(_ context.Context, rule salesdash.AlertRule) error {
	if rule.Metric == "" {
		return fmt.Errorf("backend: alert metric is required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.recorded.Alerts = append(b.recorded.Alerts, rule)
	return nil
}

// GenerateReport records the report request.
func (b *MemoryBackend) GenerateReport(_ context.Context, req salesdash.ReportRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.recorded.Reports = append(b.recorded.Reports, req)
	return nil
}

// Recorded returns a copy of every action received so far.
func (b *MemoryBackend) Recorded() Recorded {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Recorded{
		Filters: append([]salesdash.Filters(nil), b.recorded.Filters...),
		Exports: append([]salesdash.ExportRequest(nil), b.recorded.Exports...),
		Alerts:  append([]salesdash.AlertRule(nil), b.recorded.Alerts...),
		Reports: append([]salesdash.ReportRequest(nil), b.recorded.Reports...),
		Shares:  b.recorded.Shares,
	}
}
