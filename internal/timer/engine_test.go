package timer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tabata/internal/audio"
	"github.com/llehouerou/tabata/internal/workout"
)

const step = 100 * time.Millisecond

func testConfig(rounds, roundSec, restSec int) workout.Config {
	return workout.Config{
		Rounds: rounds,
		Round:  time.Duration(roundSec) * time.Second,
		Rest:   time.Duration(restSec) * time.Second,
	}
}

// newManualEngine returns a started-ready engine with no intro and no tick
// driver, so tests advance it with Tick.
func newManualEngine(t *testing.T, cfg workout.Config, opts ...Option) (*Engine, *clockwork.FakeClock, *audio.Mock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	m := audio.NewMock()
	base := []Option{WithClock(clock), WithTickInterval(0), WithIntro()}
	e := New(m, append(base, opts...)...)
	require.NoError(t, e.Initialize(cfg))
	t.Cleanup(func() { _ = e.Close() })
	return e, clock, m
}

func advance(e *Engine, clock *clockwork.FakeClock, d time.Duration) {
	clock.Advance(d)
	e.Tick()
}

type transition struct {
	at    time.Duration
	kind  Kind
	round int
}

// runUntilDone ticks every step until Completed and returns each phase entry
// with its offset from the first tick.
func runUntilDone(t *testing.T, e *Engine, clock *clockwork.FakeClock) []transition {
	t.Helper()
	start := clock.Now()
	snap := e.State()
	got := []transition{{0, snap.Phase.Kind(), snap.CurrentRound}}
	for i := 0; i < 10000 && snap.Phase.Kind() != Completed; i++ {
		advance(e, clock, step)
		next := e.State()
		if next.Phase != snap.Phase || next.CurrentRound != snap.CurrentRound {
			got = append(got, transition{clock.Since(start), next.Phase.Kind(), next.CurrentRound})
		}
		snap = next
	}
	require.Equal(t, Completed, snap.Phase.Kind(), "workout did not complete")
	return got
}

func TestEngine_PhaseSequence(t *testing.T) {
	tests := []struct {
		name string
		cfg  workout.Config
		want []transition
	}{
		{
			name: "three rounds with rest",
			cfg:  testConfig(3, 5, 2),
			want: []transition{
				{0, Round, 1},
				{5 * time.Second, Rest, 1},
				{7 * time.Second, Round, 2},
				{12 * time.Second, Rest, 2},
				{14 * time.Second, Round, 3},
				{19 * time.Second, Completed, 3},
			},
		},
		{
			name: "zero rest skips rest phases",
			cfg:  testConfig(3, 5, 0),
			want: []transition{
				{0, Round, 1},
				{5 * time.Second, Round, 2},
				{10 * time.Second, Round, 3},
				{15 * time.Second, Completed, 3},
			},
		},
		{
			name: "single round has no rest",
			cfg:  testConfig(1, 3, 10),
			want: []transition{
				{0, Round, 1},
				{3 * time.Second, Completed, 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, clock, _ := newManualEngine(t, tt.cfg)
			require.NoError(t, e.Start(context.Background()))

			got := runUntilDone(t, e, clock)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.cfg.TotalDuration(), e.State().TotalDuration)
		})
	}
}

func TestEngine_BoundaryRounding(t *testing.T) {
	e, clock, _ := newManualEngine(t, testConfig(2, 20, 10))
	require.NoError(t, e.Start(context.Background()))

	advance(e, clock, 19900*time.Millisecond)
	snap := e.State()
	assert.Equal(t, Round, snap.Phase.Kind())
	assert.Equal(t, 1, snap.InnerRemaining)
	assert.Equal(t, 19, snap.ElapsedTime)

	advance(e, clock, step)
	snap = e.State()
	assert.Equal(t, Rest, snap.Phase.Kind(), "transition must happen on the tick reaching zero")
	assert.Equal(t, 1, snap.CurrentRound)
	assert.Equal(t, 10, snap.InnerRemaining)
	assert.Zero(t, snap.InnerProgress)
}

func TestEngine_OuterProgressReaches100OnlyAtEnd(t *testing.T) {
	e, clock, _ := newManualEngine(t, testConfig(3, 5, 2))
	require.NoError(t, e.Start(context.Background()))

	for range 189 {
		advance(e, clock, step)
		snap := e.State()
		require.Less(t, snap.OuterProgress, 100.0)
	}
	snap := e.State()
	assert.Equal(t, 3, snap.CurrentRound)
	assert.Equal(t, Round, snap.Phase.Kind())

	advance(e, clock, step)
	snap = e.State()
	assert.Equal(t, Completed, snap.Phase.Kind())
	assert.InDelta(t, 100, snap.OuterProgress, 1e-9)
	assert.Equal(t, 19, snap.ElapsedTime)
	assert.Zero(t, snap.RemainingTime)
}

func TestEngine_PauseIdempotent(t *testing.T) {
	e, clock, _ := newManualEngine(t, testConfig(3, 5, 2))
	require.NoError(t, e.Start(context.Background()))
	advance(e, clock, 1200*time.Millisecond)

	e.Resume()
	e.mu.Lock()
	running := e.st
	e.mu.Unlock()
	assert.Equal(t, Round, running.phase.Kind(), "resume while running is a no-op")

	e.Pause()
	e.mu.Lock()
	paused := e.st
	e.mu.Unlock()

	clock.Advance(3 * time.Second)
	e.Pause()
	e.Tick()

	e.mu.Lock()
	again := e.st
	e.mu.Unlock()
	assert.Equal(t, paused, again)
	assert.Equal(t, pausedFrom(Round), again.phase)
}

func TestEngine_PauseIgnoredWhenIdleOrCompleted(t *testing.T) {
	e, clock, _ := newManualEngine(t, testConfig(1, 1, 0))

	e.Pause()
	assert.Equal(t, Idle, e.State().Phase.Kind())

	require.NoError(t, e.Start(context.Background()))
	advance(e, clock, time.Second)
	require.Equal(t, Completed, e.State().Phase.Kind())

	e.Pause()
	assert.Equal(t, Completed, e.State().Phase.Kind())
}

func TestEngine_PauseTransparency(t *testing.T) {
	type sample struct {
		Phase          Phase
		Round          int
		InnerProgress  float64
		InnerRemaining int
		OuterProgress  float64
		Elapsed        int
	}
	record := func(pauseAt int, pauseFor time.Duration) ([]sample, []audio.CueID) {
		e, clock, m := newManualEngine(t, testConfig(3, 10, 10))
		require.NoError(t, e.Start(context.Background()))
		var out []sample
		for i := 1; e.State().Phase.Kind() != Completed; i++ {
			if i == pauseAt {
				clock.Advance(37 * time.Millisecond)
				e.Pause()
				clock.Advance(pauseFor)
				e.Tick()
				e.Resume()
				clock.Advance(step - 37*time.Millisecond)
				e.Tick()
			} else {
				advance(e, clock, step)
			}
			s := e.State()
			out = append(out, sample{s.Phase, s.CurrentRound, s.InnerProgress, s.InnerRemaining, s.OuterProgress, s.ElapsedTime})
		}
		return out, m.Overlays()
	}

	plain, plainCues := record(-1, 0)
	for _, pause := range []struct {
		at  int
		dur time.Duration
	}{
		{at: 5, dur: time.Second},
		{at: 79, dur: 47 * time.Minute},
		{at: 150, dur: 1234567 * time.Microsecond},
	} {
		got, cues := record(pause.at, pause.dur)
		assert.Equal(t, plain, got, "pause at tick %d for %s", pause.at, pause.dur)
		assert.Equal(t, plainCues, cues)
	}
}

func TestEngine_ResumeShiftsAnchors(t *testing.T) {
	e, clock, _ := newManualEngine(t, testConfig(2, 10, 5))
	require.NoError(t, e.Start(context.Background()))
	advance(e, clock, 12*time.Second)

	e.mu.Lock()
	before := e.st
	e.mu.Unlock()

	e.Pause()
	clock.Advance(90 * time.Second)
	e.Resume()

	e.mu.Lock()
	after := e.st
	e.mu.Unlock()
	assert.Equal(t, before.workoutStart.Add(90*time.Second), after.workoutStart)
	assert.Equal(t, before.phaseStart.Add(90*time.Second), after.phaseStart)
	assert.Equal(t, 90*time.Second, after.pausedTotal)
	assert.True(t, after.pausedAt.IsZero())
	assert.Equal(t, phaseOf(Rest), after.phase)
}

func TestEngine_PausedSnapshotIsFrozen(t *testing.T) {
	e, clock, _ := newManualEngine(t, testConfig(2, 10, 5))
	require.NoError(t, e.Start(context.Background()))
	advance(e, clock, 4*time.Second)

	e.Pause()
	first := e.State()
	clock.Advance(time.Minute)
	second := e.State()

	assert.Equal(t, first, second)
	assert.Equal(t, Round, second.InnerPhase)
	assert.Equal(t, 6, second.InnerRemaining)
	kind, ok := second.Phase.Interrupted()
	assert.True(t, ok)
	assert.Equal(t, Round, kind)
}

func TestEngine_StopCueFiresOnce(t *testing.T) {
	e, clock, m := newManualEngine(t, testConfig(2, 5, 0))
	require.NoError(t, e.Start(context.Background()))

	// Ticks at 2.1s, 2.0s and 1.9s remaining all fall in the window.
	for range 40 {
		advance(e, clock, step)
	}

	assert.Equal(t, []audio.CueID{audio.CueStop}, m.Overlays())
}

func TestEngine_CueWindowMissed(t *testing.T) {
	e, clock, m := newManualEngine(t, testConfig(2, 5, 0))
	require.NoError(t, e.Start(context.Background()))

	advance(e, clock, 2500*time.Millisecond)
	advance(e, clock, time.Second)

	assert.Empty(t, m.Overlays())
	assert.Equal(t, Round, e.State().Phase.Kind())
}

func TestEngine_RestCues(t *testing.T) {
	e, clock, m := newManualEngine(t, testConfig(2, 10, 10))
	sub := e.Subscribe()
	require.NoError(t, e.Start(context.Background()))

	runUntilDone(t, e, clock)

	assert.Equal(t, []audio.CueID{
		audio.CueStop,
		audio.RoundCue(2),
		audio.CueCountdownGo,
		audio.CueStop,
	}, m.Overlays())

	var kinds []CueKind
	for range 4 {
		ev := <-sub.CueFired
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, []CueKind{CueStop, CueNextRound, CueGo, CueStop}, kinds)
}

func TestEngine_CustomCueWindows(t *testing.T) {
	w := DefaultCueWindows()
	w.Stop = Window{Min: 500 * time.Millisecond, Max: 600 * time.Millisecond}
	e, clock, m := newManualEngine(t, testConfig(1, 5, 0), WithCueWindows(w))
	require.NoError(t, e.Start(context.Background()))

	advance(e, clock, 3*time.Second)
	assert.Empty(t, m.Overlays())

	advance(e, clock, 1450*time.Millisecond)
	assert.Equal(t, []audio.CueID{audio.CueStop}, m.Overlays())
}

func TestEngine_CueFailureDoesNotHalt(t *testing.T) {
	e, clock, m := newManualEngine(t, testConfig(2, 5, 2))
	m.SetOverlayError(errors.New("device gone"))
	sub := e.Subscribe()
	require.NoError(t, e.Start(context.Background()))

	advance(e, clock, 3*time.Second)
	advance(e, clock, 2*time.Second)

	ev := <-sub.Error
	assert.Equal(t, audio.CueStop, ev.Cue)
	assert.Equal(t, "cue", ev.Operation)
	assert.Equal(t, Rest, e.State().Phase.Kind())
}

func TestEngine_LateTickCatchesUp(t *testing.T) {
	e, clock, m := newManualEngine(t, testConfig(3, 5, 2))
	sub := e.Subscribe()
	require.NoError(t, e.Start(context.Background()))
	<-sub.PhaseChanged // Idle -> Intro
	<-sub.PhaseChanged // Intro -> Round

	advance(e, clock, 13*time.Second)

	snap := e.State()
	assert.Equal(t, Rest, snap.Phase.Kind())
	assert.Equal(t, 2, snap.CurrentRound)
	assert.Equal(t, 1, snap.InnerRemaining)
	assert.Empty(t, m.Overlays(), "cues of skipped windows never fire")

	var got []Kind
	for range 3 {
		got = append(got, (<-sub.PhaseChanged).Current.Kind())
	}
	assert.Equal(t, []Kind{Rest, Round, Rest}, got)

	advance(e, clock, time.Second)
	snap = e.State()
	assert.Equal(t, Round, snap.Phase.Kind())
	assert.Equal(t, 3, snap.CurrentRound)
	assert.Zero(t, snap.InnerProgress)
}

func TestEngine_BoundaryAnchoringIgnoresJitter(t *testing.T) {
	e, clock, _ := newManualEngine(t, testConfig(3, 5, 2))
	start := clock.Now()
	require.NoError(t, e.Start(context.Background()))

	for range 60 {
		advance(e, clock, 130*time.Millisecond)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	require.Equal(t, Round, e.st.phase.Kind())
	require.Equal(t, 2, e.st.round)
	assert.Equal(t, start, e.st.workoutStart)
	assert.Equal(t, start.Add(7*time.Second), e.st.phaseStart)
}

func TestEngine_CompletionFiresOnceAfterFinalSnapshot(t *testing.T) {
	e, clock, m := newManualEngine(t, testConfig(2, 3, 1))
	var events []string
	var last Snapshot
	e.SetUpdateCallback(func(s Snapshot) {
		events = append(events, "update:"+s.Phase.String())
		last = s
	})
	e.SetOnCompleteCallback(func() { events = append(events, "complete") })
	require.NoError(t, e.Start(context.Background()))
	stopsBefore := m.StopAllCalls()

	runUntilDone(t, e, clock)
	for range 10 {
		advance(e, clock, step)
	}

	require.GreaterOrEqual(t, len(events), 2)
	assert.Equal(t, []string{"update:Completed", "complete"}, events[len(events)-2:])
	count := 0
	for _, ev := range events {
		if ev == "complete" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, 7, last.ElapsedTime)
	assert.InDelta(t, 100, last.OuterProgress, 1e-9)
	assert.InDelta(t, 100, last.InnerProgress, 1e-9)
	assert.Equal(t, stopsBefore+1, m.StopAllCalls())
}

func TestEngine_StartErrors(t *testing.T) {
	t.Run("not initialized", func(t *testing.T) {
		e := New(audio.NewMock(), WithTickInterval(0))
		defer e.Close()
		assert.ErrorIs(t, e.Start(context.Background()), ErrNotInitialized)
	})

	t.Run("audio init failure leaves engine idle", func(t *testing.T) {
		e, _, m := newManualEngine(t, testConfig(2, 5, 2))
		initErr := errors.New("no output device")
		m.SetInitError(initErr)

		err := e.Start(context.Background())

		require.ErrorIs(t, err, initErr)
		assert.Equal(t, Idle, e.State().Phase.Kind())
		assert.Empty(t, m.Cues())
		assert.Empty(t, m.Backgrounds())
	})

	t.Run("background failure leaves engine idle", func(t *testing.T) {
		cfg := testConfig(2, 5, 2)
		cfg.BackgroundTrack = "/music/missing.mp3"
		e, _, m := newManualEngine(t, cfg)
		m.SetBackgroundError(errors.New("file not found"))

		err := e.Start(context.Background())

		require.Error(t, err)
		assert.Equal(t, Idle, e.State().Phase.Kind())
	})

	t.Run("closed", func(t *testing.T) {
		e, _, _ := newManualEngine(t, testConfig(2, 5, 2))
		require.NoError(t, e.Close())
		assert.ErrorIs(t, e.Start(context.Background()), ErrClosed)
	})
}

func TestEngine_StartIsNoOpWhenRunning(t *testing.T) {
	cfg := testConfig(2, 5, 2)
	cfg.BackgroundTrack = "/music/loop.mp3"
	e, clock, m := newManualEngine(t, cfg)
	require.NoError(t, e.Start(context.Background()))
	advance(e, clock, time.Second)

	require.NoError(t, e.Start(context.Background()))

	assert.Equal(t, 1, m.InitCalls())
	assert.Equal(t, []string{"/music/loop.mp3"}, m.Backgrounds())
	assert.Equal(t, 1, e.State().CurrentRound)
	assert.Equal(t, 1, e.State().ElapsedTime)
}

func TestEngine_InitializeRejectsInvalidConfig(t *testing.T) {
	e, clock, _ := newManualEngine(t, testConfig(2, 5, 2))
	require.NoError(t, e.Start(context.Background()))
	advance(e, clock, time.Second)

	err := e.Initialize(testConfig(9, 5, 2))

	require.ErrorIs(t, err, workout.ErrInvalidConfig)
	assert.Equal(t, Round, e.State().Phase.Kind())
	assert.Equal(t, 2, e.Config().Rounds)
}

func TestEngine_StopResets(t *testing.T) {
	e, clock, m := newManualEngine(t, testConfig(2, 5, 2))
	require.NoError(t, e.Start(context.Background()))
	advance(e, clock, 6*time.Second)
	stops := m.StopAllCalls()

	e.Stop()

	snap := e.State()
	assert.Equal(t, Idle, snap.Phase.Kind())
	assert.Zero(t, snap.CurrentRound)
	assert.Zero(t, snap.OuterProgress)
	assert.Equal(t, stops+1, m.StopAllCalls())

	require.NoError(t, e.Start(context.Background()))
	assert.Equal(t, 1, e.State().CurrentRound)
}

func TestEngine_IntroPlaysInOrder(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := audio.NewMock()
	e := New(m, WithClock(clock), WithTickInterval(0))
	defer e.Close()
	require.NoError(t, e.Initialize(testConfig(2, 5, 2)))
	sub := e.Subscribe()

	require.NoError(t, e.Start(context.Background()))

	require.Eventually(t, func() bool {
		return e.State().Phase.Kind() == Round
	}, time.Second, time.Millisecond)
	assert.Equal(t, audio.IntroSequence(), m.Cues())
	assert.Equal(t, 1, e.State().CurrentRound)

	for _, want := range audio.IntroSequence() {
		ev := <-sub.CueFired
		assert.True(t, ev.Intro)
		assert.Equal(t, want, ev.Cue)
	}
}

func TestEngine_IntroCueFailureContinues(t *testing.T) {
	m := audio.NewMock()
	m.SetCueError(errors.New("decode failed"))
	e := New(m, WithClock(clockwork.NewFakeClock()), WithTickInterval(0))
	defer e.Close()
	require.NoError(t, e.Initialize(testConfig(2, 5, 2)))

	require.NoError(t, e.Start(context.Background()))

	require.Eventually(t, func() bool {
		return e.State().Phase.Kind() == Round
	}, time.Second, time.Millisecond)
	assert.Len(t, m.Cues(), 3)
}

func TestEngine_StopDuringIntro(t *testing.T) {
	m := audio.NewMock()
	m.Hold()
	e := New(m, WithClock(clockwork.NewFakeClock()), WithTickInterval(0))
	require.NoError(t, e.Initialize(testConfig(2, 5, 2)))

	require.NoError(t, e.Start(context.Background()))
	assert.Equal(t, audio.CueReady, <-m.Started())

	e.Stop()
	require.NoError(t, e.Close())

	assert.Equal(t, Idle, e.State().Phase.Kind())
	assert.Equal(t, []audio.CueID{audio.CueReady}, m.Cues())
	assert.Zero(t, e.State().CurrentRound)
}

func TestEngine_PauseDuringIntro(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := audio.NewMock()
	m.Hold()
	e := New(m, WithClock(clock), WithTickInterval(0))
	defer e.Close()
	require.NoError(t, e.Initialize(testConfig(2, 5, 2)))

	require.NoError(t, e.Start(context.Background()))
	assert.Equal(t, audio.CueReady, <-m.Started())

	e.Pause()
	m.Release()
	assert.Never(t, func() bool {
		return len(m.Cues()) > 1
	}, 50*time.Millisecond, 5*time.Millisecond, "no cue starts while paused")
	assert.Equal(t, pausedFrom(Intro), e.State().Phase)

	e.Resume()
	assert.Equal(t, audio.RoundCue(1), <-m.Started())
	m.Release()
	assert.Equal(t, audio.CueCountdownGo, <-m.Started())
	m.Release()

	require.Eventually(t, func() bool {
		return e.State().Phase.Kind() == Round
	}, time.Second, time.Millisecond)
}

func TestEngine_IntroEndsWhilePaused(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := audio.NewMock()
	m.Hold()
	e := New(m, WithClock(clock), WithTickInterval(0))
	defer e.Close()
	require.NoError(t, e.Initialize(testConfig(2, 5, 2)))

	require.NoError(t, e.Start(context.Background()))
	for range 2 {
		<-m.Started()
		m.Release()
	}
	assert.Equal(t, audio.CueCountdownGo, <-m.Started())
	e.Pause()
	m.Release()

	require.Eventually(t, func() bool {
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.st.introDone
	}, time.Second, time.Millisecond)
	assert.Equal(t, pausedFrom(Intro), e.State().Phase)

	clock.Advance(10 * time.Second)
	e.Resume()

	snap := e.State()
	assert.Equal(t, Round, snap.Phase.Kind())
	assert.Equal(t, 1, snap.CurrentRound)
	e.mu.Lock()
	assert.Equal(t, clock.Now(), e.st.workoutStart)
	e.mu.Unlock()
}

func TestEngine_TickDriver(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := audio.NewMock()
	e := New(m, WithClock(clock), WithTickInterval(step), WithIntro())
	defer e.Close()
	require.NoError(t, e.Initialize(testConfig(2, 5, 2)))
	updates := make(chan Snapshot, 64)
	e.SetUpdateCallback(func(s Snapshot) {
		select {
		case updates <- s:
		default:
		}
	})

	require.NoError(t, e.Start(context.Background()))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	clock.Advance(5 * time.Second)
	require.Eventually(t, func() bool {
		return e.State().Phase.Kind() == Rest
	}, time.Second, time.Millisecond)

	e.Pause()
	require.NoError(t, clock.BlockUntilContext(ctx, 0), "pause stops the driver")

	e.Resume()
	require.NoError(t, clock.BlockUntilContext(ctx, 1), "resume restarts the driver")

	clock.Advance(2 * time.Second)
	require.Eventually(t, func() bool {
		return e.State().CurrentRound == 2
	}, time.Second, time.Millisecond)

	clock.Advance(5 * time.Second)
	require.Eventually(t, func() bool {
		return e.State().Phase.Kind() == Completed
	}, time.Second, time.Millisecond)
	require.NoError(t, clock.BlockUntilContext(ctx, 0), "completion stops the driver")
	assert.NotEmpty(t, updates)
}

func TestEngine_CloseClosesSubscriptions(t *testing.T) {
	e, _, _ := newManualEngine(t, testConfig(2, 5, 2))
	sub := e.Subscribe()

	require.NoError(t, e.Close())
	require.NoError(t, e.Close())

	select {
	case <-sub.Done:
	default:
		t.Fatal("Done not closed")
	}
}

func TestEngine_CueComputedBeforeStopIsDropped(t *testing.T) {
	e, clock, m := newManualEngine(t, testConfig(2, 5, 2))
	require.NoError(t, e.Start(context.Background()))
	advance(e, clock, 2*time.Second)

	// A tick that found the stop cue due, dispatched only after Stop.
	e.mu.Lock()
	out := e.newOutcome()
	e.mu.Unlock()
	out.cues = []cueFire{{kind: CueStop, id: audio.CueStop, round: 1}}

	e.Stop()
	e.dispatch(out)

	assert.Empty(t, m.Overlays())
	assert.Equal(t, 1, m.StopAllCalls())
	assert.Equal(t, Idle, e.State().Phase.Kind())
}

func TestEngine_CueDispatchedWhileRunning(t *testing.T) {
	e, clock, m := newManualEngine(t, testConfig(2, 5, 2))
	require.NoError(t, e.Start(context.Background()))
	advance(e, clock, 2*time.Second)
	require.Empty(t, m.Overlays())

	advance(e, clock, time.Second)

	assert.Equal(t, []audio.CueID{audio.CueStop}, m.Overlays())
	assert.Zero(t, m.StopAllCalls())
}
