// Package detect sniffs input to determine the record format.
package detect

import (
	"bytes"
	"encoding/json"
	"regexp"
)

// Format represents a recognized input format.
type Format int

const (
	Unknown       Format = iota
	JSONArray            // [ {...}, {...} ], or one indented JSON document
	JSONLines            // one JSON object per line
	MetricsReport        // {"columns": [...], "rows": [...]}
	YAML                 // list of mappings, or a mapping with a records key
)

func (f Format) String() string {
	switch f {
	case JSONArray:
		return "json"
	case JSONLines:
		return "jsonl"
	case MetricsReport:
		return "metrics"
	case YAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Parse maps a user-supplied format name to a Format. Unrecognized names
// return Unknown.
func Parse(name string) Format {
	switch name {
	case "json":
		return JSONArray
	case "jsonl", "ndjson":
		return JSONLines
	case "metrics":
		return MetricsReport
	case "yaml", "yml":
		return YAML
	default:
		return Unknown
	}
}

var yamlKeyLine = regexp.MustCompile(`^[A-Za-z_][\w-]*:(\s|$)`)

// Sniff examines input to determine its format.
func Sniff(data []byte) Format {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return Unknown
	}

	switch data[0] {
	case '[':
		if json.Valid(bytes.TrimSpace(data)) {
			return JSONArray
		}
		return Unknown
	case '{':
		if isMetricsReport(data) {
			return MetricsReport
		}
		if json.Valid(firstLine(data)) {
			return JSONLines
		}
		// A pretty-printed object spans lines but is one document.
		if json.Valid(bytes.TrimSpace(data)) {
			return JSONArray
		}
		return Unknown
	}

	if bytes.HasPrefix(data, []byte("---")) || bytes.HasPrefix(data, []byte("- ")) || bytes.HasPrefix(data, []byte("-\n")) {
		return YAML
	}
	if yamlKeyLine.Match(firstLine(data)) {
		return YAML
	}
	return Unknown
}

func isMetricsReport(data []byte) bool {
	var probe struct {
		Columns []json.RawMessage `json:"columns"`
		Rows    []json.RawMessage `json:"rows"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.Columns != nil && probe.Rows != nil
}

func firstLine(data []byte) []byte {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return bytes.TrimSpace(data[:i])
	}
	return bytes.TrimSpace(data)
}
