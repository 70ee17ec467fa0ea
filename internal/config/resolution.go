package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/llmonitor/barlist/pkg/barlist"
)

// Resolution sources, recorded per field for --debug style diagnostics.
const (
	SourceCLI     = "cli"
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceDefault = "default"
)

// CliFlags holds the values of command-line flags. The *Set fields record
// whether a flag was given explicitly.
type CliFlags struct {
	ConfigPath string
	Theme      string
	Format     string
	Limit      int
	Width      int
	NoColor    bool
	Main       string
	Title      string

	ThemeSet   bool
	FormatSet  bool
	LimitSet   bool
	WidthSet   bool
	NoColorSet bool
}

// ResolvedConfig holds the final configuration after applying all priority rules.
type ResolvedConfig struct {
	Theme   string
	Format  string
	Limit   int
	Width   int
	NoColor bool
	Charts  []Chart

	ConfigPath    string
	ThemeSource   string
	FormatSource  string
	LimitSource   string
	NoColorSource string
}

// Resolve merges the config file, environment and CLI flags.
func Resolve(flags CliFlags) (*ResolvedConfig, error) {
	file, path, err := LoadFile(flags.ConfigPath)
	if err != nil {
		return nil, err
	}
	return resolve(flags, file, path, os.Getenv)
}

func resolve(flags CliFlags, file *File, path string, getenv func(string) string) (*ResolvedConfig, error) {
	r := &ResolvedConfig{
		Theme:         DefaultTheme,
		Format:        DefaultFormat,
		Limit:         barlist.DefaultLimit,
		Width:         DefaultWidth,
		Charts:        slices.Clone(file.Charts),
		ConfigPath:    path,
		ThemeSource:   SourceDefault,
		FormatSource:  SourceDefault,
		LimitSource:   SourceDefault,
		NoColorSource: SourceDefault,
	}

	// File
	if file.Theme != "" {
		r.Theme, r.ThemeSource = file.Theme, SourceFile
	}
	if file.Format != "" {
		r.Format, r.FormatSource = file.Format, SourceFile
	}
	if file.Limit > 0 {
		r.Limit, r.LimitSource = file.Limit, SourceFile
	}
	if file.Width > 0 {
		r.Width = file.Width
	}

	// Environment
	if v := getenv("BARLIST_THEME"); v != "" {
		r.Theme, r.ThemeSource = v, SourceEnv
	}
	if v := getenv("BARLIST_FORMAT"); v != "" {
		r.Format, r.FormatSource = v, SourceEnv
	}
	if v := getenv("BARLIST_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("BARLIST_LIMIT: expected a positive integer, got %q", v)
		}
		r.Limit, r.LimitSource = n, SourceEnv
	}
	if v := getenv("NO_COLOR"); v != "" {
		r.NoColor, r.NoColorSource = true, SourceEnv
	}

	// CLI
	if flags.ThemeSet {
		r.Theme, r.ThemeSource = flags.Theme, SourceCLI
	}
	if flags.FormatSet {
		r.Format, r.FormatSource = flags.Format, SourceCLI
	}
	if flags.LimitSet {
		if flags.Limit <= 0 {
			return nil, fmt.Errorf("--limit: expected a positive integer, got %d", flags.Limit)
		}
		r.Limit, r.LimitSource = flags.Limit, SourceCLI
	}
	if flags.WidthSet {
		r.Width = flags.Width
	}
	if flags.NoColorSet {
		r.NoColor, r.NoColorSource = flags.NoColor, SourceCLI
	}

	if len(r.Charts) == 0 {
		r.Charts = []Chart{{}}
	}
	if flags.Title != "" {
		r.Charts[0].Title = flags.Title
	}
	if flags.Main != "" {
		for i := range r.Charts {
			r.Charts[i] = r.Charts[i].WithMain(flags.Main)
		}
	}
	if r.NoColor {
		r.Theme = "mono"
	}
	return r, nil
}

// LimitFor returns the effective limit for a chart. A chart's own limit wins
// over file and env defaults but not over --limit.
func (r *ResolvedConfig) LimitFor(c Chart) int {
	if c.Limit > 0 && r.LimitSource != SourceCLI {
		return c.Limit
	}
	return r.Limit
}

// Describe summarizes where each setting came from.
func (r *ResolvedConfig) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "config=%q theme=%s(%s) format=%s(%s) limit=%d(%s) no_color=%t(%s) charts=%d",
		r.ConfigPath, r.Theme, r.ThemeSource, r.Format, r.FormatSource,
		r.Limit, r.LimitSource, r.NoColor, r.NoColorSource, len(r.Charts))
	return sb.String()
}
