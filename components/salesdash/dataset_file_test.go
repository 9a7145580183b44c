package salesdash

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalDataset = `
series:
  - {period: Q1, revenue: 100, profit: 40, units: 10}
  - {period: Q2, revenue: 120, profit: 50, units: 12}
products:
  - {name: Widget, sales: 90, target: 100}
team:
  - {name: Erin, sales: 110, leads: 3, target: 100, avatar: E, status: active}
`

func TestDecodeDatasetFillsCardsAndInsights(t *testing.T) {
	ds, err := DecodeDataset(strings.NewReader(minimalDataset))
	require.NoError(t, err)

	assert.Len(t, ds.Series, 2)
	assert.Equal(t, "Widget", ds.Products[0].Name)
	assert.Equal(t, 110, ds.Team[0].TargetPercent())
	assert.Equal(t, SampleDataset().Cards, ds.Cards)
	assert.Equal(t, SampleDataset().Insights, ds.Insights)
}

func TestDecodeDatasetRejectsUnknownFields(t *testing.T) {
	_, err := DecodeDataset(strings.NewReader(minimalDataset + "extra: true\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse dataset")
}

func TestDecodeDatasetRejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"zero target": `
series: [{period: Q1, revenue: 1, profit: 1, units: 1}]
products: [{name: Widget, sales: 1, target: 0}]
team: [{name: Erin, sales: 1, leads: 1, target: 1, status: active}]
`,
		"unknown status": `
series: [{period: Q1, revenue: 1, profit: 1, units: 1}]
products: [{name: Widget, sales: 1, target: 1}]
team: [{name: Erin, sales: 1, leads: 1, target: 1, status: idle}]
`,
		"no series": `
series: []
products: [{name: Widget, sales: 1, target: 1}]
team: [{name: Erin, sales: 1, leads: 1, target: 1, status: active}]
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeDataset(strings.NewReader(doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed validation")
		})
	}
}

func TestDecodeDatasetEmpty(t *testing.T) {
	_, err := DecodeDataset(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestEncodeAndReadDataset(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeDataset(&buf, SampleDataset()))
	assert.Contains(t, buf.String(), "period: Jan")

	path := filepath.Join(t.TempDir(), "dataset.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	ds, err := ReadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, SampleDataset(), ds)
}

func TestReadDatasetMissingFile(t *testing.T) {
	_, err := ReadDataset(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
