package barlist

// Chart bundles everything needed to compute one bar list.
type Chart struct {
	Title   string
	Columns []ColumnSpec
	Limit   int
	Custom  *CustomMetric
}

// Result is a computed chart.
type Result struct {
	Title   string          `json:"title"`
	Summary []SummaryMetric `json:"summary"`
	Ranking *Ranking        `json:"ranking"`
}

// Compute runs ComputeSummary and ComputeRankedRows over records.
func (c Chart) Compute(records []Record) (*Result, error) {
	ranking, err := ComputeRankedRows(records, c.Columns, c.Limit)
	if err != nil {
		return nil, err
	}
	summary, err := ComputeSummary(records, c.Columns, c.Custom)
	if err != nil {
		return nil, err
	}
	return &Result{Title: c.Title, Summary: summary, Ranking: ranking}, nil
}
