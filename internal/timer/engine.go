package timer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/tabata/internal/audio"
	"github.com/llehouerou/tabata/internal/workout"
)

var (
	// ErrNotInitialized is returned by Start before a successful Initialize.
	ErrNotInitialized = errors.New("timer not initialized")
	// ErrClosed is returned by Start after Close.
	ErrClosed = errors.New("timer closed")
)

// state is the engine's only mutable data. Zero time values mean unset.
type state struct {
	phase Phase
	round int

	startedAt    time.Time // Start, anchors the intro
	workoutStart time.Time // first Round entry
	phaseStart   time.Time // current Round or Rest entry
	pausedAt     time.Time // only while Paused
	pausedTotal  time.Duration

	fired cueSet

	backgroundStarted bool
	introDone         bool // intro ended while paused; Round starts on resume
}

// Engine runs one workout at a time. All methods are safe for concurrent
// use. Callbacks and subscriptions are served after the engine lock is
// released, so they may call back into the engine; Close is the exception.
type Engine struct {
	audio        audio.Interface
	clock        clockwork.Clock
	tickInterval time.Duration
	windows      CueWindows
	intro        []audio.CueID

	mu          sync.Mutex
	cfg         workout.Config
	initialized bool
	closed      bool
	st          state
	gen         uint64 // bumped by Stop, invalidates intro goroutines and pending cues
	cancelIntro context.CancelFunc
	introGate   chan struct{} // non-nil while Paused{Intro}
	driverStop  chan struct{}
	onUpdate    func(Snapshot)
	onComplete  func()

	// audioMu orders cue starts against StopAll.
	audioMu sync.Mutex

	wg sync.WaitGroup

	subsMu sync.RWMutex
	subs   []*Subscription
}

// New creates an idle engine playing cues through a.
func New(a audio.Interface, opts ...Option) *Engine {
	e := &Engine{
		audio:        a,
		clock:        clockwork.NewRealClock(),
		tickInterval: DefaultTickInterval,
		windows:      DefaultCueWindows(),
		intro:        audio.IntroSequence(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize validates cfg, resets the engine and stores cfg for the next
// Start. An invalid cfg leaves the engine untouched.
func (e *Engine) Initialize(cfg workout.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.Stop()

	e.mu.Lock()
	e.cfg = cfg
	e.initialized = true
	e.mu.Unlock()

	log.Debug().
		Int("rounds", cfg.Rounds).
		Dur("round", cfg.Round).
		Dur("rest", cfg.Rest).
		Msg("workout initialized")
	return nil
}

// Start initializes audio and begins the intro. It is a no-op unless the
// engine is Idle. On audio failure the engine stays Idle.
//
// The intro outlives the call: ctx values are kept but only Stop cancels it.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	switch {
	case e.closed:
		e.mu.Unlock()
		return ErrClosed
	case !e.initialized:
		e.mu.Unlock()
		return ErrNotInitialized
	case e.st.phase.Kind() != Idle:
		e.mu.Unlock()
		return nil
	}
	cfg := e.cfg
	e.mu.Unlock()

	if err := e.audio.Init(); err != nil {
		return fmt.Errorf("init audio: %w", err)
	}
	if cfg.BackgroundTrack != "" {
		if err := e.audio.StartBackgroundTrack(cfg.BackgroundTrack); err != nil {
			e.audio.StopAll()
			return fmt.Errorf("start background track: %w", err)
		}
	}

	e.mu.Lock()
	if e.closed || e.st.phase.Kind() != Idle {
		e.mu.Unlock()
		return nil
	}
	now := e.clock.Now()
	e.st = state{
		phase:             phaseOf(Intro),
		startedAt:         now,
		backgroundStarted: cfg.BackgroundTrack != "",
	}
	out := e.newOutcome()
	out.phases = append(out.phases, PhaseChange{Previous: phaseOf(Idle), Current: e.st.phase})

	if len(e.intro) == 0 {
		e.enterRoundLocked(now, &out)
	} else {
		introCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		e.cancelIntro = cancel
		e.wg.Add(1)
		go e.runIntro(introCtx, e.gen, e.intro)
	}
	e.startDriverLocked()
	out.snap = buildSnapshot(e.cfg, &e.st, now)
	e.mu.Unlock()

	log.Info().Int("rounds", cfg.Rounds).Msg("workout started")
	e.dispatch(out)
	return nil
}

// Pause freezes the workout. It is a no-op unless Intro, Round or Rest.
func (e *Engine) Pause() {
	e.mu.Lock()
	if !e.st.phase.Active() {
		e.mu.Unlock()
		return
	}
	now := e.clock.Now()
	prev := e.st.phase
	e.st.phase = pausedFrom(prev.Kind())
	e.st.pausedAt = now
	if prev.Kind() == Intro {
		e.introGate = make(chan struct{})
	}
	e.stopDriverLocked()

	out := e.newOutcome()
	out.phases = append(out.phases, PhaseChange{Previous: prev, Current: e.st.phase, Round: e.st.round})
	out.snap = buildSnapshot(e.cfg, &e.st, now)
	e.mu.Unlock()

	e.dispatch(out)
}

// Resume continues a paused workout as if no time had passed. It is a no-op
// unless Paused.
func (e *Engine) Resume() {
	e.mu.Lock()
	prevKind, ok := e.st.phase.Interrupted()
	if !ok {
		e.mu.Unlock()
		return
	}
	now := e.clock.Now()
	delta := now.Sub(e.st.pausedAt)
	e.st.pausedTotal += delta
	shift(&e.st.startedAt, delta)
	shift(&e.st.workoutStart, delta)
	shift(&e.st.phaseStart, delta)
	e.st.pausedAt = time.Time{}

	paused := e.st.phase
	e.st.phase = phaseOf(prevKind)

	out := e.newOutcome()
	out.phases = append(out.phases, PhaseChange{Previous: paused, Current: e.st.phase, Round: e.st.round})
	if prevKind == Intro {
		if e.introGate != nil {
			close(e.introGate)
			e.introGate = nil
		}
		if e.st.introDone {
			e.st.introDone = false
			e.enterRoundLocked(now, &out)
		}
	}
	e.startDriverLocked()
	out.snap = buildSnapshot(e.cfg, &e.st, now)
	e.mu.Unlock()

	log.Debug().Dur("paused", delta).Msg("workout resumed")
	e.dispatch(out)
}

// Stop abandons the workout and returns to Idle. It is the only way out of
// Completed. Any intro cue in progress is cancelled and all audio stops.
func (e *Engine) Stop() {
	e.mu.Lock()
	prev := e.st.phase
	e.gen++
	if e.cancelIntro != nil {
		e.cancelIntro()
		e.cancelIntro = nil
	}
	if e.introGate != nil {
		close(e.introGate)
		e.introGate = nil
	}
	e.stopDriverLocked()
	e.st = state{}

	out := e.newOutcome()
	if prev.Kind() != Idle {
		out.phases = append(out.phases, PhaseChange{Previous: prev, Current: e.st.phase})
	}
	out.snap = buildSnapshot(e.cfg, &e.st, e.clock.Now())
	out.stopAudio = true
	e.mu.Unlock()

	e.dispatch(out)
}

// Tick advances the workout to the current time. It fires due cues, crosses
// every phase boundary already reached and reports a snapshot. Outside
// Intro, Round and Rest it does nothing.
func (e *Engine) Tick() {
	e.tick(nil)
}

// tick is shared by Tick and the driver. A driver passes its stop channel and
// is ignored once it has been replaced.
func (e *Engine) tick(driver chan struct{}) {
	e.mu.Lock()
	if driver != nil && driver != e.driverStop {
		e.mu.Unlock()
		return
	}
	if !e.st.phase.Active() {
		e.mu.Unlock()
		return
	}
	now := e.clock.Now()
	out := e.newOutcome()
	e.advanceLocked(now, &out)
	out.snap = buildSnapshot(e.cfg, &e.st, now)
	e.mu.Unlock()

	e.dispatch(out)
}

// State returns the current snapshot.
func (e *Engine) State() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return buildSnapshot(e.cfg, &e.st, e.clock.Now())
}

// Config returns the workout set by the last Initialize.
func (e *Engine) Config() workout.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// SetUpdateCallback registers fn to receive a snapshot on every tick and
// transition. Nil unregisters.
func (e *Engine) SetUpdateCallback(fn func(Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onUpdate = fn
}

// SetOnCompleteCallback registers fn to run once per completed workout,
// after the final snapshot. Nil unregisters.
func (e *Engine) SetOnCompleteCallback(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onComplete = fn
}

// Subscribe creates a new event subscription.
func (e *Engine) Subscribe() *Subscription {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	sub := newSubscription()
	e.subs = append(e.subs, sub)
	return sub
}

// Close stops the workout, waits for the engine goroutines and closes all
// subscriptions. It must not be called from a callback.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	e.Stop()
	e.wg.Wait()

	e.subsMu.Lock()
	for _, sub := range e.subs {
		sub.close()
	}
	e.subs = nil
	e.subsMu.Unlock()
	return nil
}

// advanceLocked crosses every boundary at or before now. Each new phase
// starts at the exact end of the previous one, so tick jitter never shifts
// the schedule. Cues are only considered for the phase now is in.
func (e *Engine) advanceLocked(now time.Time, out *outcome) {
	for e.st.phase.Kind().Timed() {
		k := e.st.phase.Kind()
		end := e.st.phaseStart.Add(phaseDuration(e.cfg, k))
		remaining := end.Sub(now)
		if remaining > 0 {
			fire, mark := dueCues(e.windows, k, e.st.round, remaining, e.st.fired)
			e.st.fired |= mark
			out.cues = append(out.cues, fire...)
			return
		}

		switch {
		case k == Round && e.st.round >= e.cfg.Rounds:
			e.completeLocked(out)
		case k == Round && e.cfg.HasRest():
			e.enterRestLocked(end, out)
		default:
			e.enterRoundLocked(end, out)
		}
	}
}

func (e *Engine) enterRoundLocked(at time.Time, out *outcome) {
	prev := e.st.phase
	e.st.round++
	e.st.phase = phaseOf(Round)
	e.st.phaseStart = at
	e.st.fired = 0
	if e.st.workoutStart.IsZero() {
		e.st.workoutStart = at
	}
	out.phases = append(out.phases, PhaseChange{Previous: prev, Current: e.st.phase, Round: e.st.round})
}

func (e *Engine) enterRestLocked(at time.Time, out *outcome) {
	prev := e.st.phase
	e.st.phase = phaseOf(Rest)
	e.st.phaseStart = at
	e.st.fired = 0
	out.phases = append(out.phases, PhaseChange{Previous: prev, Current: e.st.phase, Round: e.st.round})
}

func (e *Engine) completeLocked(out *outcome) {
	prev := e.st.phase
	e.st.phase = phaseOf(Completed)
	e.stopDriverLocked()
	out.phases = append(out.phases, PhaseChange{Previous: prev, Current: e.st.phase, Round: e.st.round})
	out.completed = &CompletedEvent{Rounds: e.cfg.Rounds, Duration: e.cfg.TotalDuration()}
	out.stopAudio = true
}

func shift(t *time.Time, d time.Duration) {
	if !t.IsZero() {
		*t = t.Add(d)
	}
}
