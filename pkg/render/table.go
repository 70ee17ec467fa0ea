package render

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/llmonitor/barlist/pkg/pattern"
)

// Table renders each bar list as a plain text table with a share column in
// place of the bar.
type Table struct{}

// NewTable creates a table renderer.
func NewTable() *Table {
	return &Table{}
}

// Render formats all patterns as tables.
func (r *Table) Render(patterns []pattern.Pattern) string {
	var sb strings.Builder
	for _, p := range patterns {
		switch v := p.(type) {
		case *pattern.Summary:
			if v.Label != "" {
				sb.WriteString(v.Label + "\n")
			}
			for _, m := range v.Metrics {
				fmt.Fprintf(&sb, "  %s %s\n", m.Value, m.Label)
			}
		case *pattern.BarList:
			r.renderBarList(&sb, v)
		case *pattern.Error:
			fmt.Fprintf(&sb, "error: %s\n", v.Message)
		}
	}
	return sb.String()
}

func (r *Table) renderBarList(sb *strings.Builder, b *pattern.BarList) {
	header := []string{"#"}
	header = append(header, b.Headers...)
	header = append(header, "Share")
	if header[1] == "" {
		header[1] = "Name"
	}

	table := tablewriter.NewWriter(sb)
	table.Header(header)
	for _, item := range b.Items {
		row := []string{fmt.Sprint(item.Rank), item.Name, item.Metric}
		row = append(row, item.Cells...)
		row = append(row, fmt.Sprintf("%.1f%%", item.Share*100))
		if err := table.Append(row); err != nil {
			fmt.Fprintf(sb, "error: %v\n", err)
			return
		}
	}
	if err := table.Render(); err != nil {
		fmt.Fprintf(sb, "error: %v\n", err)
		return
	}
	if h := b.Hidden(); h > 0 {
		fmt.Fprintf(sb, "+%d more\n", h)
	}
}
