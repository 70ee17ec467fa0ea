package barlist

import (
	"cmp"
	"slices"
)

type candidate struct {
	index int
	value float64
}

// ComputeRankedRows ranks records by the main column and keeps the top limit
// rows with their share of the main total. A limit <= 0 means DefaultLimit,
// not "no rows".
//
// The main total covers every input record, so proportions stay relative to
// the whole collection even when rows are filtered out or hidden. Records
// whose main value is missing or not positive are never displayed. Ties keep
// their input order. records is not modified.
func ComputeRankedRows(records []Record, columns []ColumnSpec, limit int) (*Ranking, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	main, mainIdx, err := MainColumn(columns)
	if err != nil {
		return nil, err
	}

	var total float64
	cands := make([]candidate, 0, len(records))
	for i, r := range records {
		v, ok := Number(r.Get(main.Key))
		if !ok {
			continue
		}
		total += v
		if v > 0 {
			cands = append(cands, candidate{index: i, value: v})
		}
	}

	slices.SortStableFunc(cands, func(a, b candidate) int {
		return cmp.Compare(b.value, a.value)
	})

	eligible := len(cands)
	if len(cands) > limit {
		cands = cands[:limit]
	}

	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Name
	}

	totalDisplay, _ := formatValue(main, total)
	ranking := &Ranking{
		Main:         main,
		MainKey:      main.Key,
		MainTotal:    total,
		TotalDisplay: totalDisplay,
		Eligible:     eligible,
		Hidden:       eligible - len(cands),
		Headers:      headers,
		Rows:         make([]RankedRow, 0, len(cands)),
	}

	lk := labelKey(columns)
	for _, c := range cands {
		rec := records[c.index]
		mainDisplay, _ := formatValue(main, rec.Get(main.Key))
		ranking.Rows = append(ranking.Rows, RankedRow{
			Index:          c.index,
			Record:         rec,
			Label:          RawString(rec.Get(lk)),
			MainValue:      c.value,
			MainDisplay:    mainDisplay,
			MainProportion: share(c.value, total),
			Segments:       segmentShares(rec.Segments, total),
			Cells:          rowCells(rec, columns, mainIdx),
		})
	}
	return ranking, nil
}

// segmentShares normalizes segments against total. The cumulative share of a
// row never exceeds 1.
func segmentShares(segments []BarSegment, total float64) []SegmentShare {
	if len(segments) == 0 {
		return nil
	}
	out := make([]SegmentShare, 0, len(segments))
	remaining := 1.0
	for _, s := range segments {
		p := share(s.Count, total)
		if p > remaining {
			p = remaining
		}
		remaining -= p
		out = append(out, SegmentShare{Proportion: p, Color: s.Color, Tooltip: s.Tooltip})
	}
	return out
}

func rowCells(rec Record, columns []ColumnSpec, mainIdx int) []Cell {
	var cells []Cell
	for i, c := range columns {
		if c.Bar || i == mainIdx {
			continue
		}
		display, err := formatValue(c, rec.Get(c.Key))
		cells = append(cells, Cell{Key: c.Key, Display: display, Err: err})
	}
	return cells
}
