package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/tabata/internal/app"
	"github.com/llehouerou/tabata/internal/audio"
	"github.com/llehouerou/tabata/internal/config"
	"github.com/llehouerou/tabata/internal/errmsg"
	"github.com/llehouerou/tabata/internal/logging"
	"github.com/llehouerou/tabata/internal/notify"
	"github.com/llehouerou/tabata/internal/preset"
	"github.com/llehouerou/tabata/internal/state"
	"github.com/llehouerou/tabata/internal/stderr"
	"github.com/llehouerou/tabata/internal/timer"
	"github.com/llehouerou/tabata/internal/workout"
)

type options struct {
	rounds   int
	round    int
	rest     int
	preset   string
	track    string
	noTUI    bool
	noAudio  bool
	list     bool
	history  bool
	savePath string // preset name for --save-preset

	set map[string]bool // flags given on the command line
}

func parseFlags(args []string, out io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("tabata", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.IntVar(&o.rounds, "rounds", 0, "number of work rounds (1-8)")
	fs.IntVar(&o.round, "round", 0, "work round length in seconds (1-300)")
	fs.IntVar(&o.rest, "rest", 0, "rest length in seconds (0-300, 0 disables rest)")
	fs.StringVar(&o.preset, "preset", "", "named workout from the presets file")
	fs.StringVar(&o.track, "track", "", "background track looped during the workout")
	fs.BoolVar(&o.noTUI, "no-tui", false, "run without the terminal UI, printing progress lines")
	fs.BoolVar(&o.noAudio, "no-audio", false, "do not play cues")
	fs.BoolVar(&o.list, "list-presets", false, "list presets and exit")
	fs.BoolVar(&o.history, "history", false, "print recent workouts and exit")
	fs.StringVar(&o.savePath, "save-preset", "", "save the resulting workout under `name` and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// resolveWorkout picks the workout to run. Precedence, lowest first: config
// file, last selected workout, --preset, individual flags. Any flag override
// turns the result into a custom workout.
func resolveWorkout(
	cfg *config.Config,
	presets *preset.Set,
	last *state.LastWorkout,
	o options,
) (workout.Config, string, error) {
	w := cfg.GetWorkoutConfig()
	name := cfg.Workout.Preset

	switch {
	case o.preset != "":
		name = o.preset
	case last != nil && name == "":
		w, name = last.Workout, last.Preset
	}

	if name != "" {
		pw, err := presets.Lookup(name)
		switch {
		case err == nil:
			w = pw
		case o.preset != "":
			return workout.Config{}, "", err
		default:
			// A saved preset may have been removed from the file since.
			log.Warn().Str("preset", name).Msg("preset no longer exists, using saved values")
			name = ""
		}
	}

	if o.set["rounds"] {
		w.Rounds, name = o.rounds, ""
	}
	if o.set["round"] {
		w.Round, name = time.Duration(o.round)*time.Second, ""
	}
	if o.set["rest"] {
		w.Rest, name = time.Duration(o.rest)*time.Second, ""
	}
	if o.set["track"] {
		w.BackgroundTrack = o.track
	}

	if err := w.Validate(); err != nil {
		return workout.Config{}, "", err
	}
	return w, name, nil
}

// opError tags an error with the operation that failed.
type opError struct {
	op  errmsg.Op
	err error
}

func fail(op errmsg.Op, err error) error {
	return &opError{op: op, err: err}
}

func (e *opError) Error() string { return errmsg.Format(e.op, e.err) }

func (e *opError) Unwrap() error { return e.err }

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		var oe *opError
		if errors.As(err, &oe) {
			stderr.WriteOriginal(oe.Error() + "\n")
		} else {
			stderr.WriteOriginal(fmt.Sprintf("Error: %v\n", err))
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	o, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fail(errmsg.OpConfigLoad, err)
	}

	logCfg := cfg.GetLogConfig()
	logCloser, err := logging.Setup(logging.Options{
		Level:   logCfg.Level,
		File:    logCfg.File,
		Console: o.noTUI,
	})
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer logCloser.Close()

	presets, err := preset.Load(cfg.GetPresetsFile())
	if err != nil {
		return fail(errmsg.OpPresetLoad, err)
	}
	if o.list {
		return listPresets(os.Stdout, presets)
	}

	var history state.Interface
	if m := openHistory(cfg); m != nil {
		defer m.Close()
		history = m
	}
	if o.history {
		if history == nil {
			return errors.New("history is disabled")
		}
		return printHistory(os.Stdout, history, historyLimit)
	}

	var last *state.LastWorkout
	if history != nil {
		if last, err = history.GetLastWorkout(); err != nil {
			log.Warn().Err(err).Msg("failed to load last workout")
		}
	}

	w, presetName, err := resolveWorkout(cfg, presets, last, o)
	if err != nil {
		return fail(errmsg.OpWorkoutValidate, err)
	}

	if o.savePath != "" {
		if err := presets.Add(o.savePath, w); err != nil {
			return fail(errmsg.OpPresetSave, err)
		}
		if err := preset.Save(cfg.GetPresetsFile(), presets); err != nil {
			return fail(errmsg.OpPresetSave, err)
		}
		fmt.Printf("Saved preset %q to %s\n", o.savePath, cfg.GetPresetsFile())
		return nil
	}

	windows, err := cfg.CueWindows()
	if err != nil {
		return err
	}

	var player audio.Interface = audio.Nop{}
	if cfg.AudioEnabled() && !o.noAudio {
		p := audio.NewPlayer(cfg.PlayerOptions())
		defer p.Close()
		player = p
	}

	engine := timer.New(player,
		timer.WithTickInterval(cfg.TickInterval()),
		timer.WithCueWindows(windows),
	)
	defer engine.Close()

	notifier := notify.Disabled()
	if cfg.NotifyEnabled() {
		if n, err := notify.New(); err != nil {
			log.Warn().Err(err).Msg("desktop notifications unavailable")
		} else {
			notifier = n
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if o.noTUI {
		return runHeadless(ctx, os.Stdout, engine, notifier, history, w, presetName)
	}

	return runTUI(ctx, app.Options{
		Engine:   engine,
		Notifier: notifier,
		Presets:  presets,
		History:  history,
		Preset:   presetName,
		Workout:  w,
	})
}

func runTUI(ctx context.Context, opts app.Options) error {
	// Audio backends write warnings straight to fd 2, which would corrupt
	// the alternate screen.
	if err := stderr.Start(); err != nil {
		log.Warn().Err(err).Msg("stderr capture unavailable")
	}
	defer stderr.Stop()

	m, err := app.New(ctx, opts)
	if err != nil {
		return fail(errmsg.OpInitialize, err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// openHistory returns nil when history is disabled or cannot be opened.
func openHistory(cfg *config.Config) *state.Manager {
	if !cfg.HistoryEnabled() {
		return nil
	}
	var (
		m   *state.Manager
		err error
	)
	if cfg.History.File != "" {
		m, err = state.OpenPath(cfg.History.File)
	} else {
		m, err = state.Open()
	}
	if err != nil {
		log.Warn().Err(err).Msg("failed to open workout history")
		return nil
	}
	return m
}
