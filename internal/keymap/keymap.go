package keymap

// Binding describes a single key binding for documentation and dispatch.
type Binding struct {
	Keys        []string
	Action      Action
	Description string
	Context     string // "global", "workout", "ready", "form", "confirm"
}

// All contains all key bindings.
var All = []Binding{
	// Global
	{[]string{"q", "ctrl+c"}, ActionQuit, "Quit", "global"},
	{[]string{"?"}, ActionHelp, "Toggle help", "global"},

	// Workout
	{[]string{"enter"}, ActionStart, "Start / restart", "workout"},
	{[]string{" ", "space"}, ActionPauseResume, "Pause / resume", "workout"},
	{[]string{"s"}, ActionStop, "Stop", "workout"},

	// Ready screen
	{[]string{"tab"}, ActionNextPreset, "Next preset", "ready"},
	{[]string{"shift+tab"}, ActionPrevPreset, "Previous preset", "ready"},
	{[]string{"e"}, ActionSettings, "Edit workout settings", "ready"},

	// Settings form
	{[]string{"tab", "down"}, ActionNextField, "Next field", "form"},
	{[]string{"shift+tab", "up"}, ActionPrevField, "Previous field", "form"},
	{[]string{"enter"}, ActionSubmit, "Apply settings", "form"},
	{[]string{"esc"}, ActionCancel, "Discard changes", "form"},

	// Confirmation
	{[]string{"enter", "y", "Y"}, ActionConfirm, "Confirm", "confirm"},
	{[]string{"esc", "n", "N"}, ActionCancel, "Cancel", "confirm"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
