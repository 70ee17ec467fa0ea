package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/llmonitor/barlist/pkg/pattern"
)

// Bar width bounds in terminal cells.
const (
	minBarWidth = 10
	maxBarWidth = 40
	maxLabel    = 40
)

// Terminal renders patterns as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats all patterns for terminal display.
func (t *Terminal) Render(patterns []pattern.Pattern) string {
	var sections []string
	for _, p := range patterns {
		s := t.renderOne(p)
		if s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n")
}

func (t *Terminal) renderOne(p pattern.Pattern) string {
	switch v := p.(type) {
	case *pattern.Summary:
		return t.renderSummary(v)
	case *pattern.BarList:
		return t.renderBarList(v)
	case *pattern.Error:
		return t.renderError(v)
	default:
		return ""
	}
}

func (t *Terminal) renderSummary(s *pattern.Summary) string {
	var sb strings.Builder
	if s.Label != "" {
		sb.WriteString(t.theme.Bold.Render(s.Label))
		sb.WriteString("\n")
	}
	if len(s.Metrics) == 0 {
		return sb.String()
	}
	parts := make([]string, 0, len(s.Metrics))
	for _, m := range s.Metrics {
		parts = append(parts, t.theme.Bold.Render(m.Value)+" "+t.theme.Muted.Render(m.Label))
	}
	sb.WriteString("  ")
	sb.WriteString(strings.Join(parts, "   "))
	sb.WriteString("\n")
	return sb.String()
}

func (t *Terminal) renderError(e *pattern.Error) string {
	line := t.theme.Icons.Fail + " "
	if e.Label != "" {
		line += e.Label + ": "
	}
	return t.theme.Error.Render(line+e.Message) + "\n"
}

// columnWidths measures label, metric and cell columns, headers included.
func columnWidths(l *pattern.BarList) (label, metric int, cells []int) {
	header := func(i int) string {
		if i < len(l.Headers) {
			return l.Headers[i]
		}
		return ""
	}
	metric = runewidth.StringWidth(header(1))
	for _, item := range l.Items {
		label = max(label, runewidth.StringWidth(item.Name))
		metric = max(metric, runewidth.StringWidth(item.Metric))
		for i, c := range item.Cells {
			if i >= len(cells) {
				cells = append(cells, runewidth.StringWidth(header(i+2)))
			}
			cells[i] = max(cells[i], runewidth.StringWidth(c))
		}
	}
	return min(label, maxLabel), metric, cells
}

func (t *Terminal) barWidth(label, metric int, cells []int) int {
	used := 2 + label + 2 + metric
	for _, c := range cells {
		used += 2 + c
	}
	w := t.width - used - 1
	return min(max(w, minBarWidth), maxBarWidth)
}

func (t *Terminal) renderBarList(l *pattern.BarList) string {
	if len(l.Items) == 0 {
		return "  " + t.theme.Muted.Render("No data.") + "\n"
	}
	var sb strings.Builder

	labelW, metricW, cellW := columnWidths(l)
	barW := t.barWidth(labelW, metricW, cellW)

	if len(l.Headers) > 0 {
		cols := []string{padRight(l.Headers[0], barW+1+labelW)}
		if len(l.Headers) > 1 {
			cols = append(cols, padLeft(l.Headers[1], metricW))
		}
		for i, w := range cellW {
			if i+2 < len(l.Headers) {
				cols = append(cols, padLeft(l.Headers[i+2], w))
			}
		}
		sb.WriteString("  ")
		sb.WriteString(t.theme.Muted.Render(strings.Join(cols, "  ")))
		sb.WriteString("\n")
	}

	for _, item := range l.Items {
		sb.WriteString("  ")
		sb.WriteString(t.drawBar(item, barW))
		sb.WriteString(" ")
		sb.WriteString(t.theme.Primary.Render(padRight(truncate(item.Name, labelW), labelW)))
		sb.WriteString("  ")
		sb.WriteString(t.theme.Warning.Render(padLeft(item.Metric, metricW)))
		for i, c := range item.Cells {
			w := 0
			if i < len(cellW) {
				w = cellW[i]
			}
			sb.WriteString("  ")
			sb.WriteString(padLeft(c, w))
		}
		sb.WriteString("\n")
	}

	if hidden := l.Hidden(); hidden > 0 {
		sb.WriteString("  ")
		sb.WriteString(t.theme.Muted.Render(fmt.Sprintf("+%d more (top %d of %d)", hidden, len(l.Items), l.TotalCount)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// drawBar renders one bar width cells wide. Segments, when present, replace
// the plain fill.
func (t *Terminal) drawBar(item pattern.BarListItem, width int) string {
	var sb strings.Builder
	used := 0
	if len(item.Segments) > 0 {
		for _, s := range item.Segments {
			n := min(cellsFor(s.Share, width), width-used)
			if n <= 0 {
				continue
			}
			sb.WriteString(t.theme.segmentStyle(s.Color).Render(strings.Repeat(t.theme.Icons.Fill, n)))
			used += n
		}
	} else {
		used = cellsFor(item.Share, width)
		sb.WriteString(t.theme.Bar.Render(strings.Repeat(t.theme.Icons.Fill, used)))
	}
	if rest := width - used; rest > 0 {
		sb.WriteString(t.theme.Track.Render(strings.Repeat(t.theme.Icons.Empty, rest)))
	}
	return sb.String()
}

// cellsFor converts a 0..1 share to a cell count. Any positive share gets at
// least one cell.
func cellsFor(share float64, width int) int {
	if share <= 0 || width <= 0 {
		return 0
	}
	n := int(math.Round(share * float64(width)))
	if n < 1 {
		n = 1
	}
	return min(n, width)
}

func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}
