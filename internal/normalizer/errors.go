// Package normalizer maps raw tabular input onto the canonical influencer schemas.
package normalizer

import (
	"errors"
	"fmt"
)

// Structural errors. Each is wrapped in a ConfigurationError.
var (
	ErrMissingFile      = errors.New("required input file is missing")
	ErrUnreadable       = errors.New("input is not readable tabular text")
	ErrNoHeader         = errors.New("input has no header row")
	ErrMissingKeyColumn = errors.New("required key column is missing")
	ErrMissingTable     = errors.New("required table was not supplied")
	ErrUnknownTable     = errors.New("unknown table")
)

// ConfigurationError is fatal to a session: a required file or table is absent
// or cannot be read as tabular text at all.
type ConfigurationError struct {
	Err   error
	Table string
	Path  string
}

func (e *ConfigurationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("configuration error: %s (%s): %v", e.Table, e.Path, e.Err)
	}

	return fmt.Sprintf("configuration error: %s: %v", e.Table, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError wraps err for the given table.
func NewConfigurationError(table, path string, err error) *ConfigurationError {
	return &ConfigurationError{Table: table, Path: path, Err: err}
}

// IsConfigurationError reports whether err is, or wraps, a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
