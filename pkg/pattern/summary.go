package pattern

// Summary represents the headline numbers above a bar list.
type Summary struct {
	Label   string        `json:"label,omitempty"`
	Metrics []SummaryItem `json:"metrics"`
}

// SummaryItem is a single headline metric.
type SummaryItem struct {
	Label string  `json:"label"` // e.g., "calls", "cost"
	Value string  `json:"value"` // formatted value
	Raw   float64 `json:"raw"`
}

func (s *Summary) Type() PatternType { return PatternTypeSummary }
