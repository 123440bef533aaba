// Package action defines the interface for UI component actions.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action represents an action from a UI component.
// The ActionType method returns a string identifier for logging.
type Action interface {
	ActionType() string
}

// Msg wraps a UI action with its source component name.
// Popups report results to the app this way instead of calling into it.
type Msg struct {
	Source string // Component name: "confirm", "form", "helpbindings"
	Action Action
}

var _ tea.Msg = Msg{}
