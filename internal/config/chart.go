package config

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/llmonitor/barlist/pkg/barlist"
	"github.com/llmonitor/barlist/pkg/format"
)

// labelKeys are tried in order when inferring which key labels a bar.
var labelKeys = []string{barlist.DefaultLabelKey, "name", "model", "label"}

// WithMain returns a copy of c whose main column is key. Columns are copied;
// a column for key is appended when none exists.
func (c Chart) WithMain(key string) Chart {
	if len(c.Columns) == 0 {
		c.mainHint = key
		return c
	}
	cols := make([]Column, len(c.Columns))
	copy(cols, c.Columns)
	found := false
	for i := range cols {
		cols[i].Main = false
		if !cols[i].Bar && cols[i].Key == key && !found {
			cols[i].Main = true
			found = true
		}
	}
	if !found {
		cols = append(cols, Column{Name: title(key), Key: key, Main: true})
	}
	c.Columns = cols
	return c
}

// Build converts the chart into a barlist.Chart, resolving formatter names.
// Columns must already be set; see Infer.
func (c Chart) Build(limit int) (barlist.Chart, error) {
	if len(c.Columns) == 0 {
		return barlist.Chart{}, fmt.Errorf("chart %q has no columns", c.Title)
	}
	specs := make([]barlist.ColumnSpec, 0, len(c.Columns))
	for _, col := range c.Columns {
		f, err := format.Lookup(col.Render)
		if err != nil {
			return barlist.Chart{}, &barlist.ConfigurationError{Column: col.Name, Reason: "bad render", Err: err}
		}
		specs = append(specs, barlist.ColumnSpec{
			Key:    col.Key,
			Name:   col.Name,
			Main:   col.Main,
			Bar:    col.Bar,
			Render: f,
		})
	}
	return barlist.Chart{
		Title:   c.Title,
		Columns: specs,
		Limit:   limit,
		Custom:  c.CustomMetric,
	}, nil
}

// Infer fills in columns from the records when the chart declares none: a bar
// column on the first label-like string key, then every numeric key in sorted
// order. Numeric strings count as numeric outside the label keys. The first
// numeric key ranks unless --main named one, which is always kept.
func (c Chart) Infer(records []barlist.Record) Chart {
	if len(c.Columns) > 0 {
		return c
	}
	strKeys := map[string]bool{}
	numKeys := map[string]bool{}
	for _, r := range records {
		for k, v := range r.Values {
			_, isStr := v.(string)
			if _, ok := barlist.Number(v); ok && (!isStr || !slices.Contains(labelKeys, k)) {
				numKeys[k] = true
				continue
			}
			if isStr {
				strKeys[k] = true
			}
		}
	}

	label := ""
	for _, k := range labelKeys {
		if strKeys[k] {
			label = k
			break
		}
	}
	if label == "" {
		label = barlist.DefaultLabelKey
	}
	cols := []Column{{Name: title(label), Key: label, Bar: true}}

	keys := make([]string, 0, len(numKeys))
	for k := range numKeys {
		if k != label {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	hinted := false
	for _, k := range keys {
		main := k == c.mainHint
		hinted = hinted || main
		cols = append(cols, Column{Name: title(k), Key: k, Main: main})
	}
	if c.mainHint != "" && !hinted {
		cols = append(cols, Column{Name: title(c.mainHint), Key: c.mainHint, Main: true})
	}
	c.Columns = cols
	c.mainHint = ""
	return c
}

// title turns a record key into a column heading: total_cost -> Total Cost.
func title(key string) string {
	words := strings.NewReplacer("_", " ", "-", " ").Replace(key)
	return cases.Title(language.English).String(words)
}
