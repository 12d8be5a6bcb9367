package pattern

import "errors"

var (
	// ErrDegenerateRange indicates an axis with zero coordinate spread,
	// which makes min-max normalization impossible.
	ErrDegenerateRange = errors.New("pattern: coordinate range is degenerate (max equals min)")
	// ErrNoPoints indicates an input with no points at all.
	ErrNoPoints = errors.New("pattern: input contains no points")
	// ErrSameType indicates a marked union requested for a single type.
	ErrSameType = errors.New("pattern: marked union requires two distinct types")
	// ErrWindowMismatch indicates point sets bound to different windows.
	ErrWindowMismatch = errors.New("pattern: point sets do not share the same window")
)
