// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for the workout screen.
const (
	// MinWidth is the narrowest terminal the full layout is drawn for.
	MinWidth = 30

	// MaxContentWidth caps the bars on wide terminals.
	MaxContentWidth = 72

	// MinBigClockWidth is the width below which the countdown falls back
	// to plain text.
	MinBigClockWidth = 40
)
