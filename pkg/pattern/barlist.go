package pattern

// BarList represents a ranked list of items, each drawn as a bar sized by its
// share of the total.
type BarList struct {
	Label      string        `json:"label,omitempty"`
	MetricName string        `json:"metric"` // main column name, e.g. "Cost"
	Headers    []string      `json:"headers"`
	Total      string        `json:"total"` // formatted main total
	Items      []BarListItem `json:"items"`
	TotalCount int           `json:"total_count"` // eligible items before the limit
}

// Hidden is the number of eligible items not shown.
func (b *BarList) Hidden() int {
	if h := b.TotalCount - len(b.Items); h > 0 {
		return h
	}
	return 0
}

// BarListItem is a single ranked entry.
type BarListItem struct {
	Rank     int          `json:"rank"`
	Name     string       `json:"name"`   // bar label
	Metric   string       `json:"metric"` // formatted main value
	Value    float64      `json:"value"`
	Share    float64      `json:"share"` // 0..1 of the total
	Segments []BarSegment `json:"segments,omitempty"`
	Cells    []string     `json:"cells,omitempty"` // remaining columns, formatted
}

// BarSegment is a coloured slice of an item's bar.
type BarSegment struct {
	Share   float64 `json:"share"`
	Color   string  `json:"color"`
	Tooltip string  `json:"tooltip,omitempty"`
}

func (b *BarList) Type() PatternType { return PatternTypeBarList }
