// Package format provides the named cell formatters a bar list column can
// reference from configuration (render: cost, render: compact, ...).
package format

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/llmonitor/barlist/pkg/barlist"
)

var registry = map[string]barlist.Formatter{
	"raw":      barlist.FormatterFunc(Raw),
	"number":   barlist.FormatterFunc(Number),
	"compact":  barlist.FormatterFunc(Compact),
	"cost":     barlist.FormatterFunc(Cost),
	"percent":  barlist.FormatterFunc(Percent),
	"duration": barlist.FormatterFunc(Duration),
}

// Lookup returns the formatter registered under name. The empty name means
// no formatter.
func Lookup(name string) (barlist.Formatter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, nil
	}
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown formatter %q (expected one of %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names lists registered formatter names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Raw renders v unformatted.
func Raw(v any) (string, error) {
	return barlist.RawString(v), nil
}

func number(v any) (float64, error) {
	f, ok := barlist.Number(v)
	if !ok {
		return 0, fmt.Errorf("not a number: %v", v)
	}
	return f, nil
}

// Number renders v with English digit grouping: 1,234,567 or 1,234.50.
func Number(v any) (string, error) {
	f, err := number(v)
	if err != nil {
		return "", err
	}
	p := message.NewPrinter(language.English)
	if f == float64(int64(f)) {
		return p.Sprintf("%d", int64(f)), nil
	}
	return p.Sprintf("%.2f", f), nil
}

// Compact renders v as 12, 1.2K or 3.4M.
func Compact(v any) (string, error) {
	f, err := number(v)
	if err != nil {
		return "", err
	}
	abs := f
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", f/1_000_000_000), nil
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", f/1_000_000), nil
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", f/1_000), nil
	case f == float64(int64(f)):
		return fmt.Sprintf("%d", int64(f)), nil
	default:
		return fmt.Sprintf("%.1f", f), nil
	}
}

var oneDollar = decimal.NewFromInt(1)

// Cost renders v as US dollars: four decimals under a dollar, two above.
func Cost(v any) (string, error) {
	f, err := number(v)
	if err != nil {
		return "", err
	}
	d := decimal.NewFromFloat(f)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	places := int32(2)
	if d.LessThan(oneDollar) && !d.IsZero() {
		places = 4
	}
	return sign + "$" + d.StringFixed(places), nil
}

// Percent renders a 0..1 ratio as a percentage with one decimal.
func Percent(v any) (string, error) {
	f, err := number(v)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%.1f%%", f*100), nil
}

// Duration renders a millisecond count as a Go duration.
func Duration(v any) (string, error) {
	f, err := number(v)
	if err != nil {
		return "", err
	}
	d := time.Duration(f * float64(time.Millisecond))
	return d.Round(time.Millisecond).String(), nil
}
