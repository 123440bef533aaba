package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/tabata/internal/app"
	"github.com/llehouerou/tabata/internal/errmsg"
	"github.com/llehouerou/tabata/internal/notify"
	"github.com/llehouerou/tabata/internal/state"
	"github.com/llehouerou/tabata/internal/timer"
	"github.com/llehouerou/tabata/internal/ui/render"
	"github.com/llehouerou/tabata/internal/workout"
)

// headlessEngine is the part of the engine the line reporter drives.
type headlessEngine interface {
	Initialize(cfg workout.Config) error
	Start(ctx context.Context) error
	Stop()
	State() timer.Snapshot
	Subscribe() *timer.Subscription
	SetUpdateCallback(fn func(timer.Snapshot))
	SetOnCompleteCallback(fn func())
}

var _ headlessEngine = (*timer.Engine)(nil)

// reporter prints one line per phase and cue.
type reporter struct {
	out io.Writer
	cfg workout.Config

	mu   sync.Mutex
	last timer.Snapshot
}

func (r *reporter) update(s timer.Snapshot) {
	r.mu.Lock()
	r.last = s
	r.mu.Unlock()
}

func (r *reporter) snapshot() timer.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func (r *reporter) phase(pc timer.PhaseChange) {
	switch pc.Current.Kind() {
	case timer.Intro:
		fmt.Fprintln(r.out, "Get ready...")
	case timer.Round:
		fmt.Fprintf(r.out, "%s round of %d · work %s\n",
			humanize.Ordinal(pc.Round), r.cfg.Rounds, render.Duration(r.cfg.Round))
	case timer.Rest:
		fmt.Fprintf(r.out, "rest %s · %s round next\n",
			render.Duration(r.cfg.Rest), humanize.Ordinal(pc.Round+1))
	}
}

func (r *reporter) cue(e timer.CueEvent) {
	fmt.Fprintf(r.out, "  ♪ %s\n", app.CueText(e))
}

// drain prints events queued before completion. The engine publishes them
// before running the completion callback.
func (r *reporter) drain(sub *timer.Subscription) {
	for {
		select {
		case pc := <-sub.PhaseChanged:
			r.phase(pc)
		case c := <-sub.CueFired:
			r.cue(c)
		default:
			return
		}
	}
}

// runHeadless runs one workout printing progress lines to out. It returns
// when the workout completes or ctx is canceled.
func runHeadless(
	ctx context.Context,
	out io.Writer,
	e headlessEngine,
	n notify.Notifier,
	history state.Interface,
	w workout.Config,
	presetName string,
) error {
	if err := e.Initialize(w); err != nil {
		return err
	}

	r := &reporter{out: out, cfg: w}
	done := make(chan struct{})
	var once sync.Once
	e.SetUpdateCallback(r.update)
	e.SetOnCompleteCallback(func() { once.Do(func() { close(done) }) })
	defer e.SetUpdateCallback(nil)
	defer e.SetOnCompleteCallback(nil)

	sub := e.Subscribe()
	name := presetName
	if name == "" {
		name = "custom"
	}
	fmt.Fprintf(out, "%s: %d × %s work / %s rest · total %s\n",
		name, w.Rounds, render.Duration(w.Round), render.Duration(w.Rest), render.Duration(w.TotalDuration()))

	startedAt := time.Now()
	if err := e.Start(ctx); err != nil {
		return fail(errmsg.OpWorkoutStart, err)
	}

	session := func(roundsDone int, completed bool) state.Session {
		return state.Session{
			StartedAt:  startedAt,
			EndedAt:    time.Now(),
			Preset:     presetName,
			Workout:    w,
			RoundsDone: roundsDone,
			Completed:  completed,
		}
	}

	for {
		select {
		case <-ctx.Done():
			// Stop resets the engine to Idle, so count rounds first.
			s := session(e.State().RoundsDone(), false)
			e.Stop()
			fmt.Fprintf(out, "Stopped after %s.\n", roundsPhrase(s.RoundsDone))
			if s.RoundsDone > 0 {
				recordSession(history, s)
			}
			return nil

		case pc := <-sub.PhaseChanged:
			r.phase(pc)

		case c := <-sub.CueFired:
			r.cue(c)

		case ev := <-sub.Error:
			log.Warn().Err(ev.Err).Str("cue", string(ev.Cue)).Msg("cue failed")

		case <-done:
			r.drain(sub)
			fmt.Fprintf(out, "Workout complete! %s in %s.\n",
				roundsPhrase(w.Rounds), render.Duration(w.TotalDuration()))
			if _, err := n.Notify(notify.WorkoutComplete(w.Rounds, w.TotalDuration())); err != nil {
				log.Warn().Err(err).Msg("completion notification failed")
			}
			recordSession(history, session(r.snapshot().RoundsDone(), true))
			return nil

		case <-sub.Done:
			return nil
		}
	}
}

func roundsPhrase(n int) string {
	if n == 1 {
		return "1 round"
	}
	return fmt.Sprintf("%d rounds", n)
}

func recordSession(h state.Interface, s state.Session) {
	if h == nil {
		return
	}
	if err := h.RecordSession(s); err != nil {
		log.Warn().Err(err).Msg("failed to record workout session")
	}
}
