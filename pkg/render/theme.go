package render

import "github.com/charmbracelet/lipgloss"

// Theme defines colors and glyphs for terminal rendering.
type Theme struct {
	Name    string
	Primary lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Bar     lipgloss.Style // unsegmented bar fill
	Track   lipgloss.Style // unfilled remainder of a bar
	Icons   ThemeIcons
	// Palette maps segment colour names to terminal colours. Nil disables
	// segment colouring.
	Palette map[string]lipgloss.Color
}

// ThemeIcons defines the glyph set for a theme.
type ThemeIcons struct {
	Fail   string
	Info   string
	Bullet string
	Fill   string // bar fill
	Empty  string // bar track
}

// segmentPalette covers the colour names the dashboard API uses for bar
// sections.
var segmentPalette = map[string]lipgloss.Color{
	"blue":   "39",
	"cyan":   "44",
	"teal":   "37",
	"green":  "34",
	"lime":   "148",
	"yellow": "220",
	"orange": "214",
	"red":    "196",
	"pink":   "205",
	"grape":  "170",
	"violet": "135",
	"indigo": "63",
	"gray":   "245",
	"dark":   "238",
}

// DefaultTheme returns a vibrant color theme.
func DefaultTheme() Theme {
	return Theme{
		Name:    "default",
		Primary: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // blue
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // green
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("242")), // gray
		Bold:    lipgloss.NewStyle().Bold(true),
		Bar:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Track:   lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		Icons: ThemeIcons{
			Fail:   "✗",
			Info:   "●",
			Bullet: "·",
			Fill:   "█",
			Empty:  "░",
		},
		Palette: segmentPalette,
	}
}

// OrcaTheme returns a muted, professional theme.
func OrcaTheme() Theme {
	return Theme{
		Name:    "orca",
		Primary: lipgloss.NewStyle().Foreground(lipgloss.Color("75")),  // pale blue
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("108")), // sage green
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("179")), // muted gold
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("167")), // muted red
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")), // lighter gray
		Bold:    lipgloss.NewStyle().Bold(true),
		Bar:     lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		Track:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Icons: ThemeIcons{
			Fail:   "✗",
			Info:   "·",
			Bullet: "·",
			Fill:   "▇",
			Empty:  " ",
		},
		Palette: segmentPalette,
	}
}

// MonoTheme returns a monochrome theme (no colors, ASCII bars).
func MonoTheme() Theme {
	return Theme{
		Name:    "mono",
		Primary: lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle(),
		Bold:    lipgloss.NewStyle().Bold(true),
		Bar:     lipgloss.NewStyle(),
		Track:   lipgloss.NewStyle(),
		Icons: ThemeIcons{
			Fail:   "x",
			Info:   "*",
			Bullet: "-",
			Fill:   "#",
			Empty:  ".",
		},
	}
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "orca":
		return OrcaTheme()
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}

// ThemeNames lists the built-in themes.
func ThemeNames() []string {
	return []string{"default", "orca", "mono"}
}

// segmentStyle returns the style for a named segment colour. Unknown names
// fall back to the plain bar style.
func (t Theme) segmentStyle(color string) lipgloss.Style {
	if t.Palette == nil {
		return t.Bar
	}
	if c, ok := t.Palette[color]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return t.Bar
}
