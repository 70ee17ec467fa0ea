// barlist ranks labeled numeric records and renders them as a "top N by
// metric" bar list.
//
// Usage:
//
//	barlist usage.jsonl
//	curl -s https://api.example.com/usage | barlist --main cost
//	barlist --url https://api.example.com/usage --token $TOKEN --format table
//	barlist watch --url https://api.example.com/usage --interval 10s
//
// Accepted inputs: a JSON array of objects, JSON lines, YAML, or a metrics
// report ({"columns": [...], "rows": [...]}).
//
// Output modes (auto-detected):
//
//	terminal  styled bars (default when TTY)
//	llm       terse plain text for AI consumption (default when piped)
//	json      structured JSON for automation
//	table     bordered ASCII table
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"time"

	"golang.org/x/term"
	"k8s.io/klog/v2"

	"github.com/llmonitor/barlist/internal/config"
	"github.com/llmonitor/barlist/internal/detect"
	"github.com/llmonitor/barlist/internal/report"
	"github.com/llmonitor/barlist/internal/source"
	"github.com/llmonitor/barlist/internal/version"
	"github.com/llmonitor/barlist/pkg/barlist"
	"github.com/llmonitor/barlist/pkg/pattern"
	"github.com/llmonitor/barlist/pkg/render"
	"github.com/llmonitor/barlist/pkg/watch"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// errUsage marks argument mistakes; the flag usage is printed after them.
var errUsage = errors.New("usage")

type options struct {
	flags       config.CliFlags
	url         string
	token       string
	inputFormat string
	timeout     time.Duration
	retries     int
	interval    time.Duration
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	defer klog.Flush()

	// Check for subcommands before flag parsing
	if len(args) > 0 {
		switch args[0] {
		case "version":
			fmt.Fprintf(stdout, "barlist %s (commit %s, built %s)\n", version.Version, version.CommitHash, version.BuildDate)
			return 0
		case "watch":
			return runWatch(args[1:], stdin, stdout, stderr)
		}
	}

	fs, opts := newFlagSet("barlist", stderr, false)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	markSet(fs, &opts.flags)

	cfg, err := config.Resolve(opts.flags)
	if err != nil {
		fmt.Fprintf(stderr, "barlist: %v\n", err)
		return 2
	}
	klog.V(1).InfoS("resolved config", "settings", cfg.Describe())

	r, err := selectRenderer(resolveFormat(cfg.Format, stdout), cfg, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "barlist: %v\n", err)
		return 2
	}

	src, err := openSource(opts, fs.Args(), stdin, true)
	if err != nil {
		fmt.Fprintf(stderr, "barlist: %v\n", err)
		if errors.Is(err, errUsage) {
			fs.Usage()
		}
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	batch, err := src.Load(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "barlist: %s: %v\n", src.Name(), err)
		return 2
	}
	if batch.Skipped > 0 {
		fmt.Fprintf(stderr, "barlist: warning: %d malformed line(s) skipped\n", batch.Skipped)
	}
	klog.V(1).InfoS("loaded records", "source", src.Name(), "format", batch.Format, "records", len(batch.Records))

	patterns, failed := report.Build(cfg, batch.Records)
	fmt.Fprint(stdout, r.Render(patterns))
	return exitCode(failed)
}

// runWatch polls a file or URL and redraws until the user quits.
func runWatch(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs, opts := newFlagSet("barlist watch", stderr, true)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	markSet(fs, &opts.flags)

	cfg, err := config.Resolve(opts.flags)
	if err != nil {
		fmt.Fprintf(stderr, "barlist: %v\n", err)
		return 2
	}
	if err := validateTheme(cfg.Theme); err != nil {
		fmt.Fprintf(stderr, "barlist: %v\n", err)
		return 2
	}
	src, err := openSource(opts, fs.Args(), stdin, false)
	if err != nil {
		fmt.Fprintf(stderr, "barlist watch: %v\n", err)
		if errors.Is(err, errUsage) {
			fs.Usage()
		}
		return 2
	}
	if !isTTYWriter(stdout) {
		fmt.Fprintf(stderr, "barlist watch: stdout is not a terminal\n")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	theme := render.ThemeByName(cfg.Theme)
	err = watch.Run(ctx, watch.Options{
		Source:   src,
		Interval: opts.interval,
		Title:    cfg.Charts[0].Title,
		Compute: func(records []barlist.Record) []pattern.Pattern {
			patterns, _ := report.Build(cfg, records)
			return patterns
		},
		Renderer: func(width int) render.Renderer {
			if cfg.Width > 0 {
				width = cfg.Width
			}
			return render.NewTerminal(theme, width)
		},
	})
	if err != nil {
		fmt.Fprintf(stderr, "barlist watch: %v\n", err)
		return 1
	}
	return 0
}

func newFlagSet(name string, stderr io.Writer, watching bool) (*flag.FlagSet, *options) {
	o := &options{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	klog.InitFlags(fs)

	fs.StringVar(&o.flags.ConfigPath, "config", "", "Config file (default .barlist.yaml, then user config dir)")
	fs.StringVar(&o.flags.Theme, "theme", config.DefaultTheme, "Theme: "+strings.Join(render.ThemeNames(), ", "))
	fs.IntVar(&o.flags.Limit, "limit", barlist.DefaultLimit, "Rows to show per chart")
	fs.IntVar(&o.flags.Width, "width", config.DefaultWidth, "Output width (0 = terminal width)")
	fs.BoolVar(&o.flags.NoColor, "no-color", false, "Disable colors")
	fs.StringVar(&o.flags.Main, "main", "", "Record key to rank by")
	fs.StringVar(&o.flags.Title, "title", "", "Title of the first chart")
	fs.StringVar(&o.url, "url", "", "Fetch records from this URL instead of a file")
	fs.StringVar(&o.token, "token", os.Getenv("BARLIST_TOKEN"), "Bearer token for --url")
	fs.StringVar(&o.inputFormat, "input", "", "Input format: json, jsonl, yaml, metrics (default sniffed)")
	fs.DurationVar(&o.timeout, "timeout", source.DefaultTimeout, "HTTP timeout for --url")
	fs.IntVar(&o.retries, "retries", source.DefaultRetries, "HTTP retries for --url")
	if watching {
		fs.DurationVar(&o.interval, "interval", watch.DefaultInterval, "Polling interval")
	} else {
		fs.StringVar(&o.flags.Format, "format", config.DefaultFormat, "Output format: auto, "+strings.Join(render.Modes, ", "))
	}
	return fs, o
}

// markSet records which flags were given explicitly so that they, and only
// they, override env and file settings.
func markSet(fs *flag.FlagSet, f *config.CliFlags) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "theme":
			f.ThemeSet = true
		case "format":
			f.FormatSet = true
		case "limit":
			f.LimitSet = true
		case "width":
			f.WidthSet = true
		case "no-color":
			f.NoColorSet = true
		}
	})
}

// openSource picks the record source: --url, a file argument, or stdin.
func openSource(o *options, args []string, stdin io.Reader, allowStdin bool) (source.Source, error) {
	format := detect.Parse(o.inputFormat)
	if o.inputFormat != "" && format == detect.Unknown {
		return nil, fmt.Errorf("%w: unknown input format %q (expected json, jsonl, yaml, metrics)", errUsage, o.inputFormat)
	}
	if len(args) > 1 {
		return nil, fmt.Errorf("%w: expected at most one input file, got %d", errUsage, len(args))
	}
	switch {
	case o.url != "" && len(args) > 0:
		return nil, fmt.Errorf("%w: --url and a file argument are mutually exclusive", errUsage)
	case o.url != "":
		return source.NewHTTP(o.url, o.token, o.timeout, o.retries, format), nil
	case len(args) == 1 && args[0] != "-":
		return &source.File{Path: args[0], Format: format}, nil
	case !allowStdin:
		return nil, fmt.Errorf("%w: needs a file or --url to poll", errUsage)
	default:
		return source.ReadAll("stdin", stdin, format)
	}
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termWidth returns the terminal width for w, defaulting to 80.
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return 80
}

func resolveFormat(format string, w io.Writer) string {
	if format != "auto" {
		return format
	}
	// Auto-detect: TTY = terminal, piped = llm
	if isTTYWriter(w) {
		return "terminal"
	}
	return "llm"
}

func validateTheme(name string) error {
	if !slices.Contains(render.ThemeNames(), name) {
		return fmt.Errorf("unknown theme %q (expected %s)", name, strings.Join(render.ThemeNames(), ", "))
	}
	return nil
}

func selectRenderer(mode string, cfg *config.ResolvedConfig, w io.Writer) (render.Renderer, error) {
	if err := validateTheme(cfg.Theme); err != nil {
		return nil, err
	}
	width := cfg.Width
	if width <= 0 {
		width = termWidth(w)
	}
	return render.New(mode, render.ThemeByName(cfg.Theme), width)
}

// exitCode returns 0 when every chart computed, 1 otherwise.
func exitCode(failed int) int {
	if failed > 0 {
		return 1
	}
	return 0
}
