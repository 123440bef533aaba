// Package audio plays workout cues and the optional background track.
package audio

import "context"

// Interface is the audio contract consumed by the timer engine.
type Interface interface {
	// Init prepares the output device and loads cue assets.
	Init() error
	// PlayCue plays a cue and returns once playback has ended, or when ctx
	// is done.
	PlayCue(ctx context.Context, id CueID) error
	// PlayOverlayCue starts a cue over the background track and returns
	// immediately. The background is ducked while the cue plays.
	PlayOverlayCue(id CueID) error
	// StartBackgroundTrack loops the track at path. Starting the track that
	// is already playing is a no-op.
	StartBackgroundTrack(path string) error
	// StopAll stops every sound and restores the background volume.
	StopAll()
}

// Verify implementations at compile time.
var (
	_ Interface = (*Player)(nil)
	_ Interface = (*Mock)(nil)
	_ Interface = Nop{}
)

// Nop is a silent Interface used when audio is disabled.
type Nop struct{}

func (Nop) Init() error { return nil }

func (Nop) PlayCue(ctx context.Context, _ CueID) error { return ctx.Err() }

func (Nop) PlayOverlayCue(_ CueID) error { return nil }

func (Nop) StartBackgroundTrack(_ string) error { return nil }

func (Nop) StopAll() {}
