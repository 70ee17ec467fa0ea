// Package barlist computes ranked, proportion-normalized bar lists from
// labeled numeric records.
//
// A bar list answers "which records contribute most to this metric": records
// are ranked by a main column, capped to the top N, and each surviving row
// carries its share of the total across all input records. Summary metrics
// (per-column totals, or a single caller-supplied headline) sit above the list.
//
// All computation is pure. Inputs are never mutated and no state survives
// between calls, so a single Chart may be evaluated from many goroutines.
package barlist

// DefaultLimit is the number of ranked rows kept when the limit is zero or
// negative. There is no way to ask for zero rows.
const DefaultLimit = 5

// DefaultLabelKey is the record key displayed next to a bar when the bar
// column does not name one.
const DefaultLabelKey = "value"

// Record is one input row: column key to value, plus an optional breakdown of
// its bar into coloured segments.
type Record struct {
	Values   map[string]any
	Segments []BarSegment
}

// Get returns the value stored under key, or nil.
func (r Record) Get(key string) any {
	if r.Values == nil {
		return nil
	}
	return r.Values[key]
}

// BarSegment is a sub-division of one record's bar.
type BarSegment struct {
	Count   float64 `json:"count" yaml:"count"`
	Color   string  `json:"color" yaml:"color"`
	Tooltip string  `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
}

// ColumnSpec describes one column of the bar list.
type ColumnSpec struct {
	Key  string
	Name string
	// Main marks the column used for ranking and proportions.
	Main bool
	// Bar marks the column rendered as the bar itself. Bar columns are
	// excluded from summaries and cells.
	Bar bool
	// Render formats raw values for display. Nil means raw display.
	Render Formatter
}

// Formatter turns a raw cell value into display text.
type Formatter interface {
	Format(v any) (string, error)
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(v any) (string, error)

// Format calls f(v).
func (f FormatterFunc) Format(v any) (string, error) { return f(v) }

// CustomMetric replaces computed summary totals with one headline value.
type CustomMetric struct {
	Value float64 `json:"value" yaml:"value"`
	Label string  `json:"label" yaml:"label"`
}

// SummaryMetric is one headline value shown above the list.
type SummaryMetric struct {
	Value   float64 `json:"value"`
	Display string  `json:"display"`
	Label   string  `json:"label"`
}

// Ranking is the render-ready result of ComputeRankedRows.
type Ranking struct {
	Main      ColumnSpec `json:"-"`
	MainKey   string     `json:"main_key"`
	MainTotal float64    `json:"main_total"`
	// TotalDisplay is MainTotal through the main column formatter.
	TotalDisplay string `json:"total_display"`
	// Eligible counts records with a positive main value.
	Eligible int `json:"eligible"`
	// Hidden counts eligible records cut by the limit.
	Hidden  int         `json:"hidden"`
	Headers []string    `json:"headers"`
	Rows    []RankedRow `json:"rows"`
}

// RankedRow is one displayed record with its normalized share.
type RankedRow struct {
	// Index is the record's position in the caller's input.
	Index          int            `json:"index"`
	Record         Record         `json:"-"`
	Label          string         `json:"label"`
	MainValue      float64        `json:"main_value"`
	MainDisplay    string         `json:"main_display"`
	MainProportion float64        `json:"main_proportion"`
	Segments       []SegmentShare `json:"segments,omitempty"`
	Cells          []Cell         `json:"cells,omitempty"`
}

// SegmentShare is a BarSegment normalized against the main total.
type SegmentShare struct {
	Proportion float64 `json:"proportion"`
	Color      string  `json:"color"`
	Tooltip    string  `json:"tooltip,omitempty"`
}

// Cell is the display value of one non-main, non-bar column in a row.
type Cell struct {
	Key     string `json:"key"`
	Display string `json:"display"`
	// Err is set when the column formatter failed and Display fell back to
	// the raw value.
	Err error `json:"-"`
}
