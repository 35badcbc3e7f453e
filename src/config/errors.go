package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidOptions is matched by every *InvalidOptionsError.
var ErrInvalidOptions = errors.New("invalid options")

// InvalidOptionsError reports required options that are absent and list
// entries that are empty.
type InvalidOptionsError struct {
	Missing []string // required keys with no value and no default
	Empty   []string // list entries that must not be empty
}

func (e *InvalidOptionsError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing required %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Empty) > 0 {
		parts = append(parts, fmt.Sprintf("empty value in %s", strings.Join(e.Empty, ", ")))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidOptions, strings.Join(parts, "; "))
}

func (e *InvalidOptionsError) Unwrap() error { return ErrInvalidOptions }
