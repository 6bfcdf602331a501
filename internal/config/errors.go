package config

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Errors returned by configuration operations.
var (
	// ErrUnsupportedFormat indicates a known but unsupported
	// configuration file variant is present in the project.
	ErrUnsupportedFormat = errors.New("unsupported configuration format")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError reports a configuration file variant that
// htmlvet recognizes but cannot read.
type UnsupportedFormatError struct {
	// Path is the full path of the offending file.
	Path string
}

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("configuration file %s is not supported; convert it to %s",
		filepath.Base(e.Path), FileName)
}

// Is implements error matching for UnsupportedFormatError.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}
