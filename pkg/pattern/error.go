package pattern

// Error represents a chart that could not be computed.
type Error struct {
	Label   string `json:"label,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Type() PatternType { return PatternTypeError }
