package core

import "errors"

// The three failure kinds the service distinguishes. Everything returned out of
// core wraps exactly one of these, so callers match with errors.Is.
var (
	// ErrDataUnavailable means the price source could not supply a usable
	// series: network or timeout failure, non-success status, malformed
	// payload, or fewer than 2 price points.
	ErrDataUnavailable = errors.New("price data unavailable")

	// ErrInvalidInput is a precondition violation at the API boundary,
	// reported before any random sampling happens.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyResultSet means statistics were requested over zero trials.
	ErrEmptyResultSet = errors.New("empty result set")
)
