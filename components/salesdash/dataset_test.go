package salesdash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamTargetPercent(t *testing.T) {
	team := SampleDataset().Team
	require.Len(t, team, 4)

	expected := map[string]struct {
		percent int
		width   int
		on      bool
	}{
		"Alice":   {93, 93, false},
		"Bob":     {103, 100, true},
		"Charlie": {96, 96, false},
		"Diana":   {103, 100, true},
	}
	for _, member := range team {
		want, ok := expected[member.Name]
		require.True(t, ok, member.Name)
		assert.Equal(t, want.percent, member.TargetPercent(), member.Name)
		assert.Equal(t, want.width, member.ProgressWidth(), member.Name)
		assert.Equal(t, want.on, member.OnTarget(), member.Name)
	}
}

func TestTargetPercentEdges(t *testing.T) {
	assert.Equal(t, 0, TargetPercent(100, 0))
	assert.Equal(t, 0, TargetPercent(100, -5))
	assert.Equal(t, 100, TargetPercent(2000, 2000))
	assert.Equal(t, 250, TargetPercent(5000, 2000))
	assert.Equal(t, 100, ProgressWidth(5000, 2000))
	assert.Equal(t, 0, ProgressWidth(-10, 100))
}

func TestSampleDatasetShape(t *testing.T) {
	ds := SampleDataset()
	assert.Len(t, ds.Series, 7)
	assert.Len(t, ds.Products, 5)
	assert.Len(t, ds.Cards, 3)
	assert.Len(t, ds.Insights, 4)
	assert.Equal(t, "Jan", ds.Series[0].Period)
	assert.Equal(t, "Jul", ds.Series[6].Period)
	assert.Equal(t, 9800.0, ds.Series[2].Value(TabProfit))
	assert.Equal(t, 290.0, ds.Series[2].Value(TabUnits))
	assert.Equal(t, 2000.0, ds.Series[2].Value(TabRevenue))
	require.NoError(t, ValidateDataset(ds))
}

func TestDatasetCloneIsDeep(t *testing.T) {
	ds := SampleDataset()
	clone := ds.Clone()

	clone.Team[0].Sales = 1
	clone.Cards[0].Breakdown[0].Value = "changed"

	assert.Equal(t, 56000.0, ds.Team[0].Sales)
	assert.Equal(t, "$142,500", ds.Cards[0].Breakdown[0].Value)
}
