// Package report computes every configured chart over one batch of records.
package report

import (
	"errors"

	"k8s.io/klog/v2"

	"github.com/llmonitor/barlist/internal/config"
	"github.com/llmonitor/barlist/pkg/barlist"
	"github.com/llmonitor/barlist/pkg/mapper"
	"github.com/llmonitor/barlist/pkg/pattern"
)

// Build computes each chart and maps it to patterns. A chart that fails is
// reported as an error pattern rather than aborting the others. It returns
// the number of failed charts.
func Build(cfg *config.ResolvedConfig, records []barlist.Record) ([]pattern.Pattern, int) {
	patterns := make([]pattern.Pattern, 0, len(cfg.Charts)*2)
	failed := 0
	for _, c := range cfg.Charts {
		c = c.Infer(records)
		ps, err := buildOne(c, cfg.LimitFor(c), records)
		if err != nil {
			failed++
			klog.ErrorS(err, "chart failed", "chart", c.Title)
			patterns = append(patterns, mapper.FromError(c.Title, err))
			continue
		}
		patterns = append(patterns, ps...)
	}
	return patterns, failed
}

func buildOne(c config.Chart, limit int, records []barlist.Record) ([]pattern.Pattern, error) {
	chart, err := c.Build(limit)
	if err != nil {
		return nil, err
	}
	res, err := chart.Compute(records)
	if err != nil {
		return nil, err
	}
	logCellErrors(chart.Title, res.Ranking)
	return mapper.FromResult(chart, res), nil
}

// logCellErrors reports each failing column formatter once per chart.
func logCellErrors(title string, r *barlist.Ranking) {
	seen := map[string]bool{}
	for _, row := range r.Rows {
		for _, cell := range row.Cells {
			if cell.Err == nil || seen[cell.Key] {
				continue
			}
			seen[cell.Key] = true
			var cfgErr *barlist.ConfigurationError
			if errors.As(cell.Err, &cfgErr) {
				klog.V(1).InfoS("formatter fell back to raw value", "chart", title, "column", cfgErr.Column, "err", cfgErr.Err)
			}
		}
	}
}
