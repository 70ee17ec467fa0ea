package barlist

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSummary_CustomMetricBypassesAggregation(t *testing.T) {
	custom := &CustomMetric{Value: 42, Label: "Total Users"}

	tests := []struct {
		name    string
		records []Record
		columns []ColumnSpec
	}{
		{name: "with data", records: []Record{rec("a", 10)}, columns: mainOnly()},
		{name: "no columns", records: nil, columns: nil},
		{name: "bar columns only", records: nil, columns: []ColumnSpec{{Name: "x", Bar: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeSummary(tt.records, tt.columns, custom)
			require.NoError(t, err)
			assert.Equal(t, []SummaryMetric{{Value: 42, Display: "42", Label: "Total Users"}}, got)
		})
	}
}

func TestComputeSummary_TotalsPerDataColumn(t *testing.T) {
	cols := []ColumnSpec{
		{Name: "Model", Key: "value", Bar: true},
		{Name: "Calls", Key: "calls", Main: true},
		{Name: "Cost USD", Key: "cost", Render: FormatterFunc(func(v any) (string, error) {
			return fmt.Sprintf("$%.2f", v), nil
		})},
	}
	records := []Record{
		{Values: map[string]any{"value": "gpt", "calls": 3, "cost": 0.5}},
		{Values: map[string]any{"value": "claude", "calls": 0, "cost": 1.25}},
		{Values: map[string]any{"value": "other", "calls": "oops"}},
	}

	got, err := ComputeSummary(records, cols, nil)
	require.NoError(t, err)
	assert.Equal(t, []SummaryMetric{
		{Value: 3, Display: "3", Label: "calls"},
		{Value: 1.75, Display: "$1.75", Label: "cost usd"},
	}, got)
}

func TestComputeSummary_EmptyRecordsAreZero(t *testing.T) {
	got, err := ComputeSummary(nil, mainOnly(), nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].Value)
	assert.Equal(t, "0", got[0].Display)
}

func TestComputeSummary_FormatterPanicFallsBack(t *testing.T) {
	cols := []ColumnSpec{{Name: "Calls", Key: "m", Render: FormatterFunc(func(any) (string, error) {
		panic("nope")
	})}}
	got, err := ComputeSummary([]Record{rec("a", 2), rec("b", 3)}, cols, nil)
	require.NoError(t, err)
	assert.Equal(t, "5", got[0].Display)
}

func TestComputeSummary_NoDataColumns(t *testing.T) {
	_, err := ComputeSummary(nil, []ColumnSpec{{Name: "Model", Bar: true}}, nil)
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestChart_Compute(t *testing.T) {
	chart := Chart{Title: "Models", Columns: mainOnly(), Limit: 1}
	res, err := chart.Compute([]Record{rec("a", 1), rec("b", 3)})
	require.NoError(t, err)
	assert.Equal(t, "Models", res.Title)
	assert.Equal(t, 4.0, res.Summary[0].Value)
	require.Len(t, res.Ranking.Rows, 1)
	assert.Equal(t, "b", res.Ranking.Rows[0].Label)
	assert.Equal(t, 1, res.Ranking.Hidden)
}
