package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llmonitor/barlist/pkg/pattern"
)

func samplePatterns() []pattern.Pattern {
	return []pattern.Pattern{
		&pattern.Summary{
			Label: "Models",
			Metrics: []pattern.SummaryItem{
				{Label: "calls", Value: "75", Raw: 75},
			},
		},
		&pattern.BarList{
			MetricName: "Calls",
			Headers:    []string{"Model", "Calls"},
			Total:      "75",
			TotalCount: 5,
			Items: []pattern.BarListItem{
				{Rank: 1, Name: "alpha", Metric: "50", Value: 50, Share: 0.5},
				{Rank: 2, Name: "beta", Metric: "25", Value: 25, Share: 0.25},
			},
		},
	}
}

func lineContaining(t *testing.T, out, needle string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, needle) {
			return line
		}
	}
	t.Fatalf("no line containing %q in:\n%s", needle, out)
	return ""
}

func TestTerminal_RenderBarList(t *testing.T) {
	out := NewTerminal(MonoTheme(), 80).Render(samplePatterns())

	assert.Contains(t, out, "Models")
	assert.Contains(t, out, "75 calls")

	header := lineContaining(t, out, "Model ")
	assert.Contains(t, header, "Calls")

	alpha := lineContaining(t, out, "alpha")
	assert.Equal(t, 20, strings.Count(alpha, "#"), "half of a 40-cell bar")
	assert.Equal(t, 20, strings.Count(alpha, "."))

	beta := lineContaining(t, out, "beta")
	assert.Equal(t, 10, strings.Count(beta, "#"))

	assert.Contains(t, out, "+3 more (top 2 of 5)")
}

func TestTerminal_RenderSegments(t *testing.T) {
	patterns := []pattern.Pattern{&pattern.BarList{
		Headers: []string{"Model", "Calls"},
		Items: []pattern.BarListItem{{
			Rank: 1, Name: "alpha", Metric: "8", Share: 0.5,
			Segments: []pattern.BarSegment{
				{Share: 0.25, Color: "green"},
				{Share: 0.125, Color: "red"},
			},
		}},
		TotalCount: 1,
	}}
	out := NewTerminal(MonoTheme(), 80).Render(patterns)
	row := lineContaining(t, out, "alpha")
	assert.Equal(t, 15, strings.Count(row, "#"), "segments replace the plain fill")
	assert.NotContains(t, out, "more")
}

func TestTerminal_EmptyAndError(t *testing.T) {
	out := NewTerminal(MonoTheme(), 80).Render([]pattern.Pattern{
		&pattern.BarList{Headers: []string{"Model", "Calls"}},
		&pattern.Error{Label: "Users", Message: "no column to rank by"},
	})
	assert.Contains(t, out, "No data.")
	assert.Contains(t, out, "x Users: no column to rank by")
}

func TestCellsFor(t *testing.T) {
	assert.Equal(t, 0, cellsFor(0, 40))
	assert.Equal(t, 1, cellsFor(0.001, 40), "tiny shares stay visible")
	assert.Equal(t, 40, cellsFor(1, 40))
	assert.Equal(t, 40, cellsFor(1.5, 40))
	assert.Equal(t, 0, cellsFor(0.5, 0))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "日本  ", padRight("日本", 6), "wide runes count as two cells")
	assert.Equal(t, "  42", padLeft("42", 4))
}

func TestLLM_Render(t *testing.T) {
	out := NewLLM().Render(samplePatterns())
	assert.Contains(t, out, "Models\n")
	assert.Contains(t, out, "calls: 75")
	assert.Contains(t, out, "1. alpha calls=50 (50.0%)")
	assert.Contains(t, out, "2. beta calls=25 (25.0%)")
	assert.Contains(t, out, "... 3 more")
	assert.NotContains(t, out, "\x1b[")
}

func TestLLM_RenderCellsAndSegments(t *testing.T) {
	out := NewLLM().Render([]pattern.Pattern{&pattern.BarList{
		MetricName: "Cost",
		Headers:    []string{"Model", "Cost", "Calls"},
		Items: []pattern.BarListItem{{
			Rank: 1, Name: "gpt", Metric: "$1.00", Share: 1,
			Cells:    []string{"12"},
			Segments: []pattern.BarSegment{{Share: 0.5, Color: "red", Tooltip: "errors"}, {Share: 0.5, Color: "green"}},
		}},
		TotalCount: 1,
	}})
	assert.Contains(t, out, "1. gpt cost=$1.00 (100.0%) calls=12 [errors 50.0%, green 50.0%]")
}

func TestJSON_Render(t *testing.T) {
	patterns := append(samplePatterns(), &pattern.Error{Label: "Broken", Message: "no non-bar column"})
	out := NewJSON().Render(patterns)

	var decoded struct {
		Version     string `json:"version"`
		GeneratedBy string `json:"generated_by"`
		Charts      []struct {
			Title   string          `json:"title"`
			Summary json.RawMessage `json:"summary"`
			BarList json.RawMessage `json:"bar_list"`
			Error   string          `json:"error"`
		} `json:"charts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, SchemaVersion, decoded.Version)
	assert.True(t, strings.HasPrefix(decoded.GeneratedBy, "barlist "))
	require.Len(t, decoded.Charts, 2)

	models := decoded.Charts[0]
	assert.Equal(t, "Models", models.Title)
	assert.Contains(t, string(models.Summary), `"calls"`)
	assert.Contains(t, string(models.BarList), `"share": 0.5`)
	assert.Empty(t, models.Error)

	broken := decoded.Charts[1]
	assert.Equal(t, "Broken", broken.Title)
	assert.Equal(t, "no non-bar column", broken.Error)
	assert.Nil(t, broken.BarList)
}

func TestJSON_RenderEmpty(t *testing.T) {
	assert.Contains(t, NewJSON().Render(nil), `"charts": []`)
}

func TestTable_Render(t *testing.T) {
	out := NewTable().Render(samplePatterns())
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "+3 more")
}

func TestNew(t *testing.T) {
	for _, mode := range Modes {
		r, err := New(mode, MonoTheme(), 80)
		require.NoError(t, err, mode)
		assert.NotNil(t, r)
	}
	_, err := New("html", MonoTheme(), 80)
	assert.Error(t, err)
}

func TestThemeByName(t *testing.T) {
	assert.Equal(t, "orca", ThemeByName("orca").Name)
	assert.Equal(t, "mono", ThemeByName("mono").Name)
	assert.Equal(t, "default", ThemeByName("neon").Name)
	assert.Nil(t, MonoTheme().Palette)
}
