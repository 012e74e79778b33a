package setup

import (
	"errors"
	"fmt"
)

// Errors returned by setup operations. All are recoverable: the caller
// reports them to the user and the application continues.
var (
	// ErrNotFound indicates the setup file to load does not exist.
	ErrNotFound = errors.New("setup file not found")

	// ErrNoTarget indicates a save was attempted with no path supplied
	// and no path remembered from a previous load or save.
	ErrNoTarget = errors.New("no save path for setup")

	// ErrWriteFailed indicates an I/O error while writing the setup file.
	ErrWriteFailed = errors.New("writing setup file failed")

	// ErrInvalidJSON indicates a JSON import payload that is not a valid
	// section/key object.
	ErrInvalidJSON = errors.New("invalid setup JSON")
)

// ParseError represents an error while parsing a setup file.
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
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
