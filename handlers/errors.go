// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import "errors"

// Sentinel errors for the scoring and lifecycle core. Handlers translate
// these into HTTP status codes plus a stable kind string; none are retried.
var (
	// ErrNotFound indicates a referenced party, player, song, or vote does
	// not exist. Always checked before any mutation.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition indicates a lifecycle rule violation, such as
	// advancing a party that is already complete.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrInvalidRating indicates a theme-adherence rating outside [1,5]
	// or a non-integer value.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrInvalidConstraints indicates malformed custom-theme input.
	ErrInvalidConstraints = errors.New("invalid constraints")

	// ErrStaleStatus indicates a conditional status update matched no row:
	// another transition landed between the read and the write.
	ErrStaleStatus = errors.New("party status changed concurrently")
)
