package barlist

import "fmt"

// ConfigurationError reports an unusable column specification or a column
// formatter that failed.
type ConfigurationError struct {
	Column string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := "barlist: "
	if e.Column != "" {
		msg += fmt.Sprintf("column %q: ", e.Column)
	}
	msg += e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
