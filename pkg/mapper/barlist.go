// Package mapper converts computed bar lists into visualization patterns.
package mapper

import (
	"github.com/llmonitor/barlist/pkg/barlist"
	"github.com/llmonitor/barlist/pkg/pattern"
)

// FromResult converts one computed chart into a Summary and a BarList.
func FromResult(chart barlist.Chart, res *barlist.Result) []pattern.Pattern {
	summary := &pattern.Summary{
		Label:   chart.Title,
		Metrics: make([]pattern.SummaryItem, 0, len(res.Summary)),
	}
	for _, m := range res.Summary {
		summary.Metrics = append(summary.Metrics, pattern.SummaryItem{
			Label: m.Label,
			Value: m.Display,
			Raw:   m.Value,
		})
	}

	r := res.Ranking
	list := &pattern.BarList{
		MetricName: r.Main.Name,
		Headers:    headers(chart.Columns, r.MainKey),
		Total:      r.TotalDisplay,
		Items:      make([]pattern.BarListItem, 0, len(r.Rows)),
		TotalCount: r.Eligible,
	}
	for i, row := range r.Rows {
		item := pattern.BarListItem{
			Rank:   i + 1,
			Name:   row.Label,
			Metric: row.MainDisplay,
			Value:  row.MainValue,
			Share:  row.MainProportion,
		}
		for _, s := range row.Segments {
			item.Segments = append(item.Segments, pattern.BarSegment{
				Share:   s.Proportion,
				Color:   s.Color,
				Tooltip: s.Tooltip,
			})
		}
		for _, c := range row.Cells {
			item.Cells = append(item.Cells, c.Display)
		}
		list.Items = append(list.Items, item)
	}
	return []pattern.Pattern{summary, list}
}

// FromError reports a chart that failed to compute.
func FromError(title string, err error) pattern.Pattern {
	return &pattern.Error{Label: title, Message: err.Error()}
}

// headers orders column names the way rows are laid out: bar label, main
// value, then the remaining data columns in declaration order.
func headers(columns []barlist.ColumnSpec, mainKey string) []string {
	barName := ""
	mainName := ""
	var rest []string
	mainSeen := false
	for _, c := range columns {
		switch {
		case c.Bar:
			if barName == "" {
				barName = c.Name
			}
		case !mainSeen && c.Key == mainKey && c.Key != "":
			mainName = c.Name
			mainSeen = true
		default:
			rest = append(rest, c.Name)
		}
	}
	return append([]string{barName, mainName}, rest...)
}
