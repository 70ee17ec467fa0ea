// Package source loads bar list records from files, stdin, or HTTP endpoints.
package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/llmonitor/barlist/internal/detect"
	"github.com/llmonitor/barlist/internal/metrics"
	"github.com/llmonitor/barlist/pkg/barlist"
)

// Keys holding a record's bar breakdown. barSections is the name the
// dashboard API uses.
var segmentKeys = []string{"barSections", "bar_sections"}

// Keys a single wrapping object may use to hold the record list.
var wrapperKeys = []string{"records", "data"}

// Batch is one load of records.
type Batch struct {
	Records []barlist.Record
	Format  detect.Format
	// Skipped counts malformed JSONL lines.
	Skipped int
}

// Decode parses data in the given format. Unknown means sniff.
func Decode(format detect.Format, data []byte) (Batch, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Batch{}, errors.New("no input")
	}
	if format == detect.Unknown {
		format = detect.Sniff(data)
	}
	b := Batch{Format: format}
	var err error
	switch format {
	case detect.JSONArray:
		b.Records, err = decodeJSONArray(data)
	case detect.JSONLines:
		b.Records, b.Skipped, err = decodeJSONLines(data)
	case detect.MetricsReport:
		var r *metrics.Report
		r, err = metrics.Parse(data)
		if err == nil {
			b.Records = r.Records()
		}
	case detect.YAML:
		b.Records, err = decodeYAML(data)
	default:
		return b, errors.New("unrecognized input format (expected JSON array, JSON lines, metrics report, or YAML)")
	}
	if err != nil {
		return b, fmt.Errorf("parsing %s: %w", format, err)
	}
	return b, nil
}

// decodeJSONArray reads one JSON document: an array of records, an envelope,
// or a single record object.
func decodeJSONArray(data []byte) ([]barlist.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	switch v := raw.(type) {
	case []any:
		return toRecords(v)
	case map[string]any:
		if list, ok := unwrap(v); ok {
			return toRecords(list)
		}
		rec, err := toRecord(v)
		if err != nil {
			return nil, err
		}
		return []barlist.Record{rec}, nil
	default:
		return nil, fmt.Errorf("expected an array or object, got %T", raw)
	}
}

func decodeJSONLines(data []byte) ([]barlist.Record, int, error) {
	var (
		out     []barlist.Record
		skipped int
	)
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(line))
		dec.UseNumber()
		var obj map[string]any
		if err := dec.Decode(&obj); err != nil {
			skipped++
			continue
		}
		if list, ok := unwrap(obj); ok {
			recs, err := toRecords(list)
			if err != nil {
				return nil, skipped, err
			}
			out = append(out, recs...)
			continue
		}
		rec, err := toRecord(obj)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, skipped, err
	}
	return out, skipped, nil
}

func decodeYAML(data []byte) ([]barlist.Record, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	switch v := raw.(type) {
	case []any:
		return toRecords(v)
	case map[string]any:
		if list, ok := unwrap(v); ok {
			return toRecords(list)
		}
		rec, err := toRecord(v)
		if err != nil {
			return nil, err
		}
		return []barlist.Record{rec}, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("expected a list of records, got %T", raw)
	}
}

// unwrap returns the record list of a {"records": [...]} or {"data": [...]}
// envelope with no other keys.
func unwrap(obj map[string]any) ([]any, bool) {
	if len(obj) != 1 {
		return nil, false
	}
	for _, k := range wrapperKeys {
		if list, ok := obj[k].([]any); ok {
			return list, true
		}
	}
	return nil, false
}

func toRecords(raw []any) ([]barlist.Record, error) {
	out := make([]barlist.Record, 0, len(raw))
	for i, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d: expected an object, got %T", i, item)
		}
		rec, err := toRecord(obj)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func toRecord(obj map[string]any) (barlist.Record, error) {
	rec := barlist.Record{Values: make(map[string]any, len(obj))}
	for k, v := range obj {
		if isSegmentKey(k) {
			segs, err := toSegments(v)
			if err != nil {
				return barlist.Record{}, fmt.Errorf("%s: %w", k, err)
			}
			rec.Segments = segs
			continue
		}
		rec.Values[k] = v
	}
	return rec, nil
}

func isSegmentKey(k string) bool {
	for _, s := range segmentKeys {
		if k == s {
			return true
		}
	}
	return false
}

func toSegments(v any) ([]barlist.BarSegment, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
	segs := make([]barlist.BarSegment, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("segment %d: expected an object, got %T", i, item)
		}
		count, _ := barlist.Number(m["count"])
		segs = append(segs, barlist.BarSegment{
			Count:   count,
			Color:   barlist.RawString(m["color"]),
			Tooltip: barlist.RawString(m["tooltip"]),
		})
	}
	return segs, nil
}
