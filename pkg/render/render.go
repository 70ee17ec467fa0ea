// Package render provides output renderers for barlist's visualization patterns.
package render

import (
	"fmt"

	"github.com/llmonitor/barlist/pkg/pattern"
)

// Renderer converts patterns to formatted output.
type Renderer interface {
	Render(patterns []pattern.Pattern) string
}

// Modes lists the accepted output modes.
var Modes = []string{"terminal", "llm", "json", "table"}

// New returns the renderer for mode. width applies to terminal output only.
func New(mode string, theme Theme, width int) (Renderer, error) {
	switch mode {
	case "terminal":
		return NewTerminal(theme, width), nil
	case "llm":
		return NewLLM(), nil
	case "json":
		return NewJSON(), nil
	case "table":
		return NewTable(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (expected auto, terminal, llm, json, table)", mode)
	}
}
