package render

import (
	"fmt"
	"strings"

	"github.com/llmonitor/barlist/pkg/pattern"
)

// LLM renders patterns as terse plain text for AI consumption.
// Zero ANSI codes, one line per row, shares as percentages.
type LLM struct{}

// NewLLM creates an LLM renderer.
func NewLLM() *LLM {
	return &LLM{}
}

// Render formats all patterns for LLM consumption.
func (l *LLM) Render(patterns []pattern.Pattern) string {
	var sb strings.Builder
	for _, p := range patterns {
		switch v := p.(type) {
		case *pattern.Summary:
			l.renderSummary(&sb, v)
		case *pattern.BarList:
			l.renderBarList(&sb, v)
		case *pattern.Error:
			if v.Label != "" {
				sb.WriteString("ERROR " + v.Label + ": " + v.Message + "\n")
			} else {
				sb.WriteString("ERROR " + v.Message + "\n")
			}
		}
	}
	return sb.String()
}

func (l *LLM) renderSummary(sb *strings.Builder, s *pattern.Summary) {
	if s.Label != "" {
		sb.WriteString(s.Label + "\n")
	}
	parts := make([]string, 0, len(s.Metrics))
	for _, m := range s.Metrics {
		parts = append(parts, m.Label+": "+m.Value)
	}
	if len(parts) > 0 {
		sb.WriteString(strings.Join(parts, ", ") + "\n")
	}
}

func (l *LLM) renderBarList(sb *strings.Builder, b *pattern.BarList) {
	if len(b.Items) == 0 {
		sb.WriteString("  no data\n")
		return
	}
	var extra []string
	if len(b.Headers) > 2 {
		extra = b.Headers[2:]
	}
	for _, item := range b.Items {
		fmt.Fprintf(sb, "  %d. %s %s=%s (%.1f%%)", item.Rank, item.Name, strings.ToLower(b.MetricName), item.Metric, item.Share*100)
		for i, c := range item.Cells {
			name := fmt.Sprintf("col%d", i+1)
			if i < len(extra) {
				name = strings.ToLower(extra[i])
			}
			sb.WriteString(" " + name + "=" + c)
		}
		if len(item.Segments) > 0 {
			segs := make([]string, 0, len(item.Segments))
			for _, s := range item.Segments {
				name := s.Tooltip
				if name == "" {
					name = s.Color
				}
				segs = append(segs, fmt.Sprintf("%s %.1f%%", name, s.Share*100))
			}
			sb.WriteString(" [" + strings.Join(segs, ", ") + "]")
		}
		sb.WriteString("\n")
	}
	if h := b.Hidden(); h > 0 {
		fmt.Fprintf(sb, "  ... %d more\n", h)
	}
}
