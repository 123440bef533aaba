// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

const (
	// Workout operations
	OpWorkoutStart    Op = "start workout"
	OpWorkoutValidate Op = "validate workout"
	OpCuePlay         Op = "play cue"

	// Settings
	OpConfigLoad  Op = "load configuration"
	OpPresetLoad  Op = "load presets"
	OpPresetSave  Op = "save preset"
	OpPresetApply Op = "apply preset"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
