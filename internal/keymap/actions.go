// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Workout control
	ActionStart       Action = "start"        // enter - start, or restart when finished
	ActionPauseResume Action = "pause_resume" // space
	ActionStop        Action = "stop"         // s - asks for confirmation

	// Ready screen
	ActionNextPreset Action = "next_preset" // tab
	ActionPrevPreset Action = "prev_preset" // shift+tab
	ActionSettings   Action = "settings"    // e - edit rounds and durations

	// Settings form
	ActionNextField Action = "next_field"
	ActionPrevField Action = "prev_field"
	ActionSubmit    Action = "submit"

	// Confirmation popup
	ActionConfirm Action = "confirm"
	ActionCancel  Action = "cancel"
)
