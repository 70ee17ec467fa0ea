// Package pattern defines the semantic data types for barlist's output.
// Patterns are pure data; renderers decide presentation.
package pattern

// PatternType identifies the kind of visualization pattern.
type PatternType string

const (
	PatternTypeSummary PatternType = "summary"
	PatternTypeBarList PatternType = "bar-list"
	PatternTypeError   PatternType = "error"
)

// Pattern is the interface all visualization patterns implement.
type Pattern interface {
	Type() PatternType
}
