package salesdash

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticBackendDefaults(t *testing.T) {
	backend := NewStaticBackend()
	ctx := context.Background()

	ds, err := backend.FetchMetrics(ctx, DefaultFilters())
	require.NoError(t, err)
	assert.Equal(t, SampleDataset(), ds)

	link, err := backend.ShareLink(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/dashboard", link)

	assert.NoError(t, backend.ApplyFilters(ctx, DefaultFilters()))
	assert.NoError(t, backend.ExportData(ctx, ExportRequest{Format: "csv"}))
	assert.NoError(t, backend.SetAlert(ctx, AlertRule{Metric: "Revenue"}))
	assert.NoError(t, backend.GenerateReport(ctx, ReportRequest{Type: "Deal Size"}))
}

func TestStaticBackendFetchReturnsCopies(t *testing.T) {
	backend := &StaticBackend{Dataset: SampleDataset(), ShareURL: "https://example.com/d/1"}
	ds, err := backend.FetchMetrics(context.Background(), DefaultFilters())
	require.NoError(t, err)
	ds.Products[0].Sales = 0
	assert.Equal(t, 4000.0, backend.Dataset.Products[0].Sales)

	link, err := backend.ShareLink(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/d/1", link)
}

func TestLoadDataset(t *testing.T) {
	ds, err := LoadDataset(context.Background(), nil, DefaultFilters())
	require.NoError(t, err)
	assert.Len(t, ds.Team, 4)

	ds, err = LoadDataset(context.Background(), &errorBackend{}, DefaultFilters())
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, SampleDataset(), ds)
}
