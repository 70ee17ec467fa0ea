package barlist

// ident names a column in error messages.
func (c ColumnSpec) ident() string {
	if c.Key != "" {
		return c.Key
	}
	return c.Name
}

// MainColumn selects the column that drives ranking: the first non-bar column
// flagged Main, or the first non-bar column when none is flagged. It returns
// the column and its index in columns.
func MainColumn(columns []ColumnSpec) (ColumnSpec, int, error) {
	idx := -1
	for i, c := range columns {
		if c.Bar {
			continue
		}
		if c.Main {
			idx = i
			break
		}
		if idx < 0 {
			idx = i
		}
	}
	if idx < 0 {
		return ColumnSpec{}, -1, &ConfigurationError{Reason: "no non-bar column to rank by"}
	}
	main := columns[idx]
	if main.Key == "" {
		return ColumnSpec{}, -1, &ConfigurationError{Column: main.Name, Reason: "main column has no key"}
	}
	return main, idx, nil
}

// labelKey is the record key shown beside each bar.
func labelKey(columns []ColumnSpec) string {
	for _, c := range columns {
		if c.Bar && c.Key != "" {
			return c.Key
		}
	}
	return DefaultLabelKey
}

func dataColumns(columns []ColumnSpec) []ColumnSpec {
	out := make([]ColumnSpec, 0, len(columns))
	for _, c := range columns {
		if !c.Bar {
			out = append(out, c)
		}
	}
	return out
}
