package datatable

import (
	"errors"
	"fmt"
)

// ErrConfig matches every *ConfigError via errors.Is.
var ErrConfig = errors.New("invalid table configuration")

// ConfigError reports malformed column registration or paging setup.
// It is the only error the package returns.
type ConfigError struct {
	// Column is the offending column id, empty for table-level settings.
	Column string
	// Reason describes the violated rule.
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s: %s", ErrConfig, e.Reason)
	}
	return fmt.Sprintf("%s: column %q: %s", ErrConfig, e.Column, e.Reason)
}

// Is reports whether target is ErrConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func configError(column, format string, args ...any) *ConfigError {
	return &ConfigError{Column: column, Reason: fmt.Sprintf(format, args...)}
}
