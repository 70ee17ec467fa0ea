package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/llmonitor/barlist/internal/version"
	"github.com/llmonitor/barlist/pkg/pattern"
)

// SchemaVersion is bumped whenever the JSON document changes shape.
const SchemaVersion = "2"

// JSON renders patterns as one document with a chart object per computed chart.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

type jsonDocument struct {
	Version     string      `json:"version"`
	GeneratedBy string      `json:"generated_by"`
	Charts      []jsonChart `json:"charts"`
}

type jsonChart struct {
	Title   string           `json:"title,omitempty"`
	Summary *pattern.Summary `json:"summary,omitempty"`
	BarList *pattern.BarList `json:"bar_list,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// Render groups patterns into charts: a Summary or Error starts a chart and
// the BarList that follows belongs to it.
func (j *JSON) Render(patterns []pattern.Pattern) string {
	doc := jsonDocument{
		Version:     SchemaVersion,
		GeneratedBy: "barlist " + version.Version,
		Charts:      groupCharts(patterns),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Sprintf("{\"error\": %q}\n", err.Error())
	}
	return buf.String()
}

func groupCharts(patterns []pattern.Pattern) []jsonChart {
	charts := make([]jsonChart, 0, len(patterns))
	for _, p := range patterns {
		switch v := p.(type) {
		case *pattern.Summary:
			charts = append(charts, jsonChart{Title: v.Label, Summary: v})
		case *pattern.BarList:
			if n := len(charts); n > 0 && charts[n-1].BarList == nil && charts[n-1].Error == "" {
				charts[n-1].BarList = v
				continue
			}
			charts = append(charts, jsonChart{Title: v.Label, BarList: v})
		case *pattern.Error:
			charts = append(charts, jsonChart{Title: v.Label, Error: v.Message})
		}
	}
	return charts
}
