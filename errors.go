package gocube

import "errors"

// Sentinel errors for the gocube package.
var (
	// Parsing errors
	ErrInvalidNotation = errors.New("gocube: invalid move notation")
)
