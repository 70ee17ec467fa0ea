package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps user and environment config out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"BARLIST_THEME", "BARLIST_FORMAT", "BARLIST_LIMIT", "BARLIST_TOKEN", "NO_COLOR"} {
		t.Setenv(k, "")
	}
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_StdinLLM(t *testing.T) {
	isolate(t)
	code, out, errOut := runCLI(t, `[{"value":"gpt-4o","calls":10},{"value":"claude","calls":30}]`)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "calls: 40")
	assert.Contains(t, out, "1. claude calls=30 (75.0%)")
	assert.Contains(t, out, "2. gpt-4o calls=10 (25.0%)")
}

func TestRun_FileAndMain(t *testing.T) {
	isolate(t)
	code, out, errOut := runCLI(t, "", "--main", "cost", "--title", "Spend", filepath.Join("testdata", "usage.json"))
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Spend")
	first := strings.Index(out, "gpt-4o")
	second := strings.Index(out, "claude")
	require.True(t, first >= 0 && second >= 0)
	assert.Less(t, first, second, "gpt-4o has the larger cost")
	assert.NotContains(t, out, "mistral", "zero-valued rows are not ranked")
}

func TestRun_JSONFormat(t *testing.T) {
	isolate(t)
	code, out, _ := runCLI(t, "", "--format", "json", filepath.Join("testdata", "usage.json"))
	require.Equal(t, 0, code)
	assert.Contains(t, out, `"generated_by": "barlist dev"`)
	assert.Contains(t, out, `"bar_list": {`)
}

func TestRun_TableFormat(t *testing.T) {
	isolate(t)
	code, out, _ := runCLI(t, "", "--format", "table", "--limit", "1", filepath.Join("testdata", "usage.json"))
	require.Equal(t, 0, code)
	assert.Contains(t, out, "claude")
	assert.NotContains(t, out, "gpt-4o")
}

func TestRun_ChartFailureExitsOne(t *testing.T) {
	isolate(t)
	code, out, _ := runCLI(t, "", "--config", filepath.Join("testdata", "failing.yaml"), filepath.Join("testdata", "usage.json"))
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "ERROR Summary only")
	assert.Contains(t, out, "$1.25", "the healthy chart still renders")
}

func TestRun_URL(t *testing.T) {
	isolate(t)
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"value":"a","calls":3},{"value":"b","calls":1}]}`))
	}))
	defer srv.Close()

	code, out, errOut := runCLI(t, "", "--url", srv.URL, "--token", "s3cret")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "Bearer s3cret", auth)
	assert.Contains(t, out, "1. a calls=3")
}

func TestRun_UsageErrors(t *testing.T) {
	isolate(t)
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"empty stdin", "", nil, "no input"},
		{"unknown format", "[]", []string{"--format", "xml"}, "unknown format"},
		{"unknown theme", "[]", []string{"--theme", "neon"}, "unknown theme"},
		{"unknown input", "[]", []string{"--input", "csv"}, "unknown input format"},
		{"two files", "", []string{"a.json", "b.json"}, "at most one input file"},
		{"bad flag", "", []string{"--nope"}, "flag provided but not defined"},
		{"bad limit", "[]", []string{"--limit", "0"}, "--limit"},
		{"missing file", "", []string{filepath.Join("testdata", "missing.json")}, "missing.json"},
		{"unparseable", "<xml/>", nil, "unrecognized input format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, tt.stdin, tt.args...)
			assert.Equal(t, 2, code)
			assert.Contains(t, errOut, tt.want)
		})
	}
}

func TestRun_UsageErrorPrintsFlags(t *testing.T) {
	isolate(t)
	code, _, errOut := runCLI(t, "", "a.json", "b.json")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "-main")

	code, _, errOut = runCLI(t, "", "--url", "http://127.0.0.1:1", "--retries", "0", "--timeout", "50ms")
	assert.Equal(t, 2, code)
	assert.NotContains(t, errOut, "-main", "load failures are not usage mistakes")
}

func TestRun_IndentedEnvelopeFromURL(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{\n  \"data\": [\n    {\"value\": \"a\", \"cost\": \"2.5\"},\n    {\"value\": \"b\", \"cost\": \"7.5\"}\n  ]\n}\n"))
	}))
	defer srv.Close()

	code, out, errOut := runCLI(t, "", "--url", srv.URL, "--main", "cost")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "1. b cost=7.5 (75.0%)")
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCLI(t, "", "version")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "barlist dev"))
}

func TestRunWatch_NeedsPollableSource(t *testing.T) {
	isolate(t)
	code, _, errOut := runCLI(t, "", "watch")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "needs a file or --url")
}

func TestRunWatch_RequiresTerminal(t *testing.T) {
	isolate(t)
	code, _, errOut := runCLI(t, "", "watch", filepath.Join("testdata", "usage.json"))
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "not a terminal")
}
