package timer

import "github.com/rs/zerolog/log"

// outcome collects the side effects of a state change so they can run after
// the engine lock is released.
type outcome struct {
	snap      Snapshot
	phases    []PhaseChange
	cues      []cueFire
	completed *CompletedEvent
	stopAudio bool
	gen       uint64

	onUpdate   func(Snapshot)
	onComplete func()
}

func (e *Engine) newOutcome() outcome {
	return outcome{gen: e.gen, onUpdate: e.onUpdate, onComplete: e.onComplete}
}

func (e *Engine) dispatch(out outcome) {
	for _, pc := range out.phases {
		log.Debug().
			Stringer("from", pc.Previous).
			Stringer("to", pc.Current).
			Int("round", pc.Round).
			Msg("phase changed")
		e.broadcast(func(s *Subscription) { s.sendPhase(pc) })
	}

	e.playAudio(out)

	e.broadcast(func(s *Subscription) { s.sendSnapshot(out.snap) })
	if out.onUpdate != nil {
		out.onUpdate(out.snap)
	}

	if out.completed != nil {
		log.Info().
			Int("rounds", out.completed.Rounds).
			Dur("duration", out.completed.Duration).
			Msg("workout completed")
		e.broadcast(func(s *Subscription) { s.sendCompleted(*out.completed) })
		if out.onComplete != nil {
			out.onComplete()
		}
	}
}

// playAudio starts the outcome's cues unless Stop ran since the outcome was
// built, then stops audio if asked.
func (e *Engine) playAudio(out outcome) {
	if len(out.cues) == 0 && !out.stopAudio {
		return
	}
	e.audioMu.Lock()
	defer e.audioMu.Unlock()

	for _, c := range out.cues {
		if !e.isCurrent(out.gen) {
			log.Debug().Str("cue", string(c.id)).Msg("cue dropped after stop")
			break
		}
		e.playOverlay(c)
	}

	if out.stopAudio {
		e.audio.StopAll()
	}
}

func (e *Engine) isCurrent(gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen == gen
}

// playOverlay fires a timed cue. Failures are reported but never stop the
// workout.
func (e *Engine) playOverlay(c cueFire) {
	if err := e.audio.PlayOverlayCue(c.id); err != nil {
		log.Warn().Err(err).Str("cue", string(c.id)).Msg("cue failed")
		e.broadcast(func(s *Subscription) {
			s.sendError(ErrorEvent{Operation: "cue", Cue: c.id, Err: err})
		})
		return
	}
	log.Debug().Str("cue", string(c.id)).Int("round", c.round).Msg("cue fired")
	e.broadcast(func(s *Subscription) {
		s.sendCue(CueEvent{Cue: c.id, Kind: c.kind, Round: c.round})
	})
}

func (e *Engine) broadcast(send func(*Subscription)) {
	e.subsMu.RLock()
	defer e.subsMu.RUnlock()
	for _, sub := range e.subs {
		send(sub)
	}
}
