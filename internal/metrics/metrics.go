// Package metrics reads column/row metrics reports (eval scores, usage
// rollups) and turns them into bar list records.
package metrics

import (
	"encoding/json"
	"errors"

	"github.com/llmonitor/barlist/pkg/barlist"
)

// Report represents a generic metrics report.
type Report struct {
	Scope   string   `json:"scope"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Row is a single named row of metric values.
type Row struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	N      int       `json:"n,omitempty"`
}

// Parse decodes metrics JSON into a Report.
func Parse(data []byte) (*Report, error) {
	if len(data) == 0 {
		return nil, errors.New("metrics: empty input")
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	if r.Columns == nil {
		return nil, errors.New("metrics: report has no columns")
	}
	return &r, nil
}

// Records converts each row into a record keyed by column name. The row name
// is stored under barlist.DefaultLabelKey and the sample count under "n".
// Missing trailing values are left out rather than zero-filled.
func (r *Report) Records() []barlist.Record {
	out := make([]barlist.Record, 0, len(r.Rows))
	for _, row := range r.Rows {
		values := make(map[string]any, len(r.Columns)+2)
		values[barlist.DefaultLabelKey] = row.Name
		if row.N > 0 {
			values["n"] = row.N
		}
		for i, col := range r.Columns {
			if i < len(row.Values) {
				values[col] = row.Values[i]
			}
		}
		out = append(out, barlist.Record{Values: values})
	}
	return out
}
