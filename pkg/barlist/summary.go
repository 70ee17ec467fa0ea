package barlist

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ComputeSummary returns the headline metrics shown above a bar list.
//
// With a custom metric the result is that single metric and no aggregation
// happens. Otherwise there is one metric per non-bar column, in declaration
// order, holding the column total over all records and the lowercased column
// name as its label.
func ComputeSummary(records []Record, columns []ColumnSpec, custom *CustomMetric) ([]SummaryMetric, error) {
	if custom != nil {
		return []SummaryMetric{{
			Value:   custom.Value,
			Display: RawString(custom.Value),
			Label:   custom.Label,
		}}, nil
	}

	cols := dataColumns(columns)
	if len(cols) == 0 {
		return nil, &ConfigurationError{Reason: "no non-bar column to summarize"}
	}

	// cases.Caser is stateful; one per call keeps ComputeSummary goroutine-safe.
	lower := cases.Lower(language.Und)
	metrics := make([]SummaryMetric, 0, len(cols))
	for _, c := range cols {
		total := sumColumn(records, c.Key)
		display, _ := formatValue(c, total)
		metrics = append(metrics, SummaryMetric{
			Value:   total,
			Display: display,
			Label:   lower.String(c.Name),
		})
	}
	return metrics, nil
}
