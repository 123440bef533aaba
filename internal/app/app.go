package app

import (
	"context"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tabata/internal/keymap"
	"github.com/llehouerou/tabata/internal/notify"
	"github.com/llehouerou/tabata/internal/preset"
	"github.com/llehouerou/tabata/internal/state"
	"github.com/llehouerou/tabata/internal/timer"
	"github.com/llehouerou/tabata/internal/ui/confirm"
	"github.com/llehouerou/tabata/internal/ui/form"
	"github.com/llehouerou/tabata/internal/ui/helpbindings"
	"github.com/llehouerou/tabata/internal/workout"
)

// Options configures a Model.
type Options struct {
	Engine   Engine
	Notifier notify.Notifier // nil disables notifications
	Presets  *preset.Set     // nil uses the built-in set
	History  state.Interface // nil disables the session history
	Preset   string          // selected preset, empty for a custom workout
	Workout  workout.Config
}

// Model is the root bubbletea model.
type Model struct {
	ctx      context.Context
	engine   Engine
	sub      *timer.Subscription
	notifier notify.Notifier
	history  state.Interface
	keys     *keymap.Resolver
	now      func() time.Time

	presets     *preset.Set
	presetNames []string
	presetIdx   int // -1 for a custom workout

	cfg      workout.Config
	snap     timer.Snapshot
	starting bool

	sessionStart time.Time // zero when no workout is running
	totals       state.Totals

	cueLabel string
	cueSeq   int
	status   string

	popup   popupKind
	confirm confirm.Model
	form    form.Model
	help    helpbindings.Model

	width, height int
	quitting      bool
}

// New initializes the engine with opts.Workout and subscribes to it.
func New(ctx context.Context, opts Options) (Model, error) {
	if err := opts.Engine.Initialize(opts.Workout); err != nil {
		return Model{}, err
	}

	presets := opts.Presets
	if presets == nil {
		presets = preset.Builtin()
	}
	names := presets.Names()

	m := Model{
		ctx:         ctx,
		engine:      opts.Engine,
		sub:         opts.Engine.Subscribe(),
		notifier:    opts.Notifier,
		history:     opts.History,
		keys:        keymap.Workout(),
		now:         time.Now,
		presets:     presets,
		presetNames: names,
		presetIdx:   slices.Index(names, opts.Preset),
		cfg:         opts.Workout,
		snap:        opts.Engine.State(),
		confirm:     confirm.New(),
		help:        helpbindings.New(),
	}
	m.loadTotals()
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("tabata"), m.WatchEngineEvents())
}

// Config returns the workout the next Start will run.
func (m Model) Config() workout.Config {
	return m.cfg
}

// PresetName returns the selected preset, empty for a custom workout.
func (m Model) PresetName() string {
	if m.presetIdx < 0 || m.presetIdx >= len(m.presetNames) {
		return ""
	}
	return m.presetNames[m.presetIdx]
}

// Status returns the message shown under the progress bars.
func (m Model) Status() string {
	return m.status
}

func (m Model) phase() timer.Kind {
	return m.snap.Phase.Kind()
}
