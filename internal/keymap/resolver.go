package keymap

import "slices"

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]Action   // key -> action
	byAction map[Action][]string // action -> keys (for help)
}

// NewResolver creates a resolver from bindings. Later bindings win when a key
// is bound twice.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.bindings[key] = b.Action
			if !slices.Contains(r.byAction[b.Action], key) {
				r.byAction[b.Action] = append(r.byAction[b.Action], key)
			}
		}
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// Workout resolves keys on the main screen.
func Workout() *Resolver {
	return NewResolver(append(ByContext("global"), append(ByContext("workout"), ByContext("ready")...)...))
}

// Confirm resolves keys while a confirmation is shown.
func Confirm() *Resolver {
	return NewResolver(append(ByContext("confirm"), ByContext("global")...))
}

// Form resolves keys while the settings form is open. Global keys are left
// out so q and ? can be typed.
func Form() *Resolver {
	return NewResolver(append([]Binding{{Keys: []string{"ctrl+c"}, Action: ActionQuit}}, ByContext("form")...))
}
