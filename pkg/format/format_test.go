package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llmonitor/barlist/pkg/barlist"
)

func TestFormatters(t *testing.T) {
	tests := []struct {
		name string
		fn   func(any) (string, error)
		in   any
		want string
	}{
		{"number int", Number, 1234567, "1,234,567"},
		{"number float", Number, 1234.5, "1,234.50"},
		{"compact small", Compact, 12, "12"},
		{"compact fraction", Compact, 0.5, "0.5"},
		{"compact thousands", Compact, 1234, "1.2K"},
		{"compact millions", Compact, 3_400_000, "3.4M"},
		{"cost under a dollar", Cost, 0.0123, "$0.0123"},
		{"cost above a dollar", Cost, 12.345, "$12.35"},
		{"cost zero", Cost, 0, "$0.00"},
		{"cost negative", Cost, -2.5, "-$2.50"},
		{"percent", Percent, 0.256, "25.6%"},
		{"duration", Duration, 1200, "1.2s"},
		{"raw", Raw, "gpt-4o", "gpt-4o"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatters_RejectNonNumbers(t *testing.T) {
	for _, fn := range []func(any) (string, error){Number, Compact, Cost, Percent, Duration} {
		_, err := fn("many")
		assert.Error(t, err)
	}
}

func TestLookup(t *testing.T) {
	f, err := Lookup(" Cost ")
	require.NoError(t, err)
	got, err := f.Format(2)
	require.NoError(t, err)
	assert.Equal(t, "$2.00", got)

	f, err = Lookup("")
	require.NoError(t, err)
	assert.Nil(t, f)

	_, err = Lookup("sparkles")
	assert.ErrorContains(t, err, "unknown formatter")
}

func TestFormatterFallbackThroughCore(t *testing.T) {
	cost, err := Lookup("cost")
	require.NoError(t, err)
	cols := []barlist.ColumnSpec{
		{Name: "Model", Key: "value", Bar: true},
		{Name: "Calls", Key: "calls", Main: true},
		{Name: "Cost", Key: "cost", Render: cost},
	}
	records := []barlist.Record{{Values: map[string]any{"value": "a", "calls": 1, "cost": "free"}}}

	r, err := barlist.ComputeRankedRows(records, cols, 5)
	require.NoError(t, err)
	require.Len(t, r.Rows[0].Cells, 1)
	assert.Equal(t, "free", r.Rows[0].Cells[0].Display)
	assert.Error(t, r.Rows[0].Cells[0].Err)
}
