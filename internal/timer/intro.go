package timer

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/llehouerou/tabata/internal/audio"
)

// runIntro plays the intro cues in order, each after the previous one ends,
// then enters the first round. Before every cue it waits out a pause and
// gives up once Stop has bumped the generation.
func (e *Engine) runIntro(ctx context.Context, gen uint64, ids []audio.CueID) {
	defer e.wg.Done()

	for _, id := range ids {
		if !e.waitIntroGate(ctx, gen) {
			return
		}
		e.broadcast(func(s *Subscription) { s.sendCue(CueEvent{Cue: id, Intro: true}) })
		if err := e.audio.PlayCue(ctx, id); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn().Err(err).Str("cue", string(id)).Msg("intro cue failed")
			e.broadcast(func(s *Subscription) {
				s.sendError(ErrorEvent{Operation: "intro", Cue: id, Err: err})
			})
		}
	}
	e.finishIntro(gen)
}

// waitIntroGate blocks while the intro is paused. It returns false if the
// intro was abandoned.
func (e *Engine) waitIntroGate(ctx context.Context, gen uint64) bool {
	for {
		e.mu.Lock()
		if e.gen != gen || ctx.Err() != nil {
			e.mu.Unlock()
			return false
		}
		gate := e.introGate
		e.mu.Unlock()

		if gate == nil {
			return true
		}
		select {
		case <-gate:
		case <-ctx.Done():
			return false
		}
	}
}

func (e *Engine) finishIntro(gen uint64) {
	e.mu.Lock()
	if e.gen != gen {
		e.mu.Unlock()
		return
	}
	if e.cancelIntro != nil {
		e.cancelIntro()
		e.cancelIntro = nil
	}

	switch e.st.phase.Current() {
	case Intro:
		if e.st.phase.Kind() == Paused {
			e.st.introDone = true
			e.mu.Unlock()
			return
		}
	default:
		e.mu.Unlock()
		return
	}

	now := e.clock.Now()
	out := e.newOutcome()
	e.enterRoundLocked(now, &out)
	out.snap = buildSnapshot(e.cfg, &e.st, now)
	e.mu.Unlock()

	e.dispatch(out)
}
