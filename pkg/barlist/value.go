package barlist

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number coerces v to a float64. Integers, floats, json.Number and numeric
// strings are numbers; NaN, infinities and everything else are not.
func Number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// RawString renders v without any column formatting.
func RawString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// sumColumn adds up the numeric values under key. Non-numeric values count as 0.
func sumColumn(records []Record, key string) float64 {
	var total float64
	for _, r := range records {
		if v, ok := Number(r.Get(key)); ok {
			total += v
		}
	}
	return total
}

// share returns part/total clamped to [0, 1], or 0 when total is not positive.
func share(part, total float64) float64 {
	if total <= 0 || part <= 0 {
		return 0
	}
	p := part / total
	if p > 1 {
		return 1
	}
	return p
}

// formatValue applies the column formatter, falling back to the raw value
// when it returns an error or panics.
func formatValue(col ColumnSpec, v any) (display string, err error) {
	if col.Render == nil {
		return RawString(v), nil
	}
	defer func() {
		if r := recover(); r != nil {
			display = RawString(v)
			err = &ConfigurationError{Column: col.ident(), Reason: "formatter panicked", Err: fmt.Errorf("%v", r)}
		}
	}()
	s, ferr := col.Render.Format(v)
	if ferr != nil {
		return RawString(v), &ConfigurationError{Column: col.ident(), Reason: "formatter failed", Err: ferr}
	}
	return s, nil
}
