package form

import (
	"github.com/llehouerou/tabata/internal/ui/action"
	"github.com/llehouerou/tabata/internal/workout"
)

// Submitted carries a validated workout configuration.
type Submitted struct {
	Config workout.Config
}

// ActionType implements action.Action.
func (a Submitted) ActionType() string { return "form.submitted" }

// Canceled signals the form was dismissed without applying changes.
type Canceled struct{}

// ActionType implements action.Action.
func (a Canceled) ActionType() string { return "form.canceled" }

// ActionMsg creates an action.Msg for a form action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "form", Action: a}
}
