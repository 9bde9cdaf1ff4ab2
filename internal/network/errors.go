package network

import "fmt"

// ConfigError reports an unusable network description. Matrix
// construction cannot proceed and the simulation cannot start.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("network config: %s", e.Reason)
}

// FormatError reports malformed external matrix input. Line is
// 1-based; 0 means the file as a whole.
type FormatError struct {
	Line  int
	Cause string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("network format: line %d: %s", e.Line, e.Cause)
	}
	return fmt.Sprintf("network format: %s", e.Cause)
}
