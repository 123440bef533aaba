package audio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog/log"
)

// DefaultSampleRate is the speaker rate; every asset is resampled to it.
const DefaultSampleRate beep.SampleRate = 44100

var (
	// ErrNotInitialized is returned when playing before Init.
	ErrNotInitialized = errors.New("audio not initialized")
	// ErrStopped is returned by PlayCue when StopAll interrupts the cue.
	ErrStopped = errors.New("audio stopped")
)

// Options configures a Player.
type Options struct {
	AssetsDir        string
	SampleRate       beep.SampleRate // DefaultSampleRate when zero
	BackgroundVolume float64         // DefaultBackgroundVolume when zero
	DuckFraction     float64         // DefaultDuckFraction when zero
	Preload          []CueID         // decoded by Init, failures are fatal
}

// Player plays cues and a looping background track through the system
// speaker.
//
// Lock order is p.mu then speaker.Lock. Beep callbacks run with the speaker
// locked, so they hand off to a goroutine before touching p.mu.
type Player struct {
	rate    beep.SampleRate
	lib     *Library
	preload []CueID

	mu          sync.Mutex
	initialized bool
	duck        ducker

	bgPath   string
	bgStream beep.StreamSeekCloser
	bgCtrl   *beep.Ctrl
	bgVolume *effects.Volume

	overlay    *beep.Ctrl
	overlaySeq uint64

	stopCh chan struct{}
}

// NewPlayer creates a player. Nothing touches the audio device until Init.
func NewPlayer(opts Options) *Player {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}
	if opts.BackgroundVolume <= 0 {
		opts.BackgroundVolume = DefaultBackgroundVolume
	}
	if opts.DuckFraction <= 0 {
		opts.DuckFraction = DefaultDuckFraction
	}
	return &Player{
		rate:    opts.SampleRate,
		lib:     NewLibrary(opts.AssetsDir, opts.SampleRate),
		preload: opts.Preload,
		duck:    newDucker(opts.BackgroundVolume, opts.DuckFraction),
		stopCh:  make(chan struct{}),
	}
}

// Library exposes the cue asset library.
func (p *Player) Library() *Library { return p.lib }

// Init opens the speaker and decodes the preload list. Calling it again
// after a success is a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := p.lib.Preload(p.preload...); err != nil {
		return fmt.Errorf("load cues: %w", err)
	}
	if err := speaker.Init(p.rate, p.rate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	p.initialized = true
	log.Debug().Int("sample_rate", int(p.rate)).Msg("audio initialized")
	return nil
}

// PlayCue plays id and waits for it to end.
func (p *Player) PlayCue(ctx context.Context, id CueID) error {
	buf, err := p.lib.Buffer(id)
	if err != nil {
		return err
	}

	p.mu.Lock()
	if !p.initialized {
		p.mu.Unlock()
		return ErrNotInitialized
	}
	stop := p.stopCh
	p.mu.Unlock()

	done := make(chan struct{})
	ctrl := &beep.Ctrl{Streamer: buf.Streamer(0, buf.Len())}
	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
		return nil
	case <-stop:
		return ErrStopped
	case <-ctx.Done():
		// A nil streamer ends the Ctrl, which lets the callback run.
		speaker.Lock()
		ctrl.Streamer = nil
		speaker.Unlock()
		return ctx.Err()
	}
}

// PlayOverlayCue plays id over the background track, replacing any overlay
// still playing. The background stays ducked until the newest overlay ends.
func (p *Player) PlayOverlayCue(id CueID) error {
	buf, err := p.lib.Buffer(id)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return ErrNotInitialized
	}

	p.overlaySeq++
	seq := p.overlaySeq
	ctrl := &beep.Ctrl{Streamer: buf.Streamer(0, buf.Len())}

	speaker.Lock()
	if p.overlay != nil {
		p.overlay.Streamer = nil
	}
	p.overlay = ctrl
	if p.duck.lower() {
		p.applyVolumeLocked()
	}
	speaker.Unlock()

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		go p.overlayEnded(seq)
	})))
	return nil
}

func (p *Player) overlayEnded(seq uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if seq != p.overlaySeq {
		return
	}
	speaker.Lock()
	p.overlay = nil
	if p.duck.restore() {
		p.applyVolumeLocked()
	}
	speaker.Unlock()
}

// StartBackgroundTrack loops the track at path.
func (p *Player) StartBackgroundTrack(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return ErrNotInitialized
	}
	if p.bgStream != nil && p.bgPath == path {
		return nil
	}
	p.stopBackgroundLocked()

	streamer, format, err := openStream(path)
	if err != nil {
		return fmt.Errorf("open background track: %w", err)
	}

	var s beep.Streamer = beep.Loop(-1, streamer)
	if format.SampleRate != p.rate {
		s = beep.Resample(resampleQuality, format.SampleRate, p.rate, s)
	}

	p.bgPath = path
	p.bgStream = streamer
	p.bgCtrl = &beep.Ctrl{Streamer: s}
	p.bgVolume = &effects.Volume{
		Streamer: p.bgCtrl,
		Base:     2,
		Volume:   levelToVolume(p.duck.level()),
	}
	speaker.Play(p.bgVolume)

	log.Debug().Str("path", path).Msg("background track started")
	return nil
}

// StopAll silences everything, restores the background level and unblocks
// any PlayCue in progress.
func (p *Player) StopAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.overlaySeq++

	speaker.Lock()
	if p.overlay != nil {
		p.overlay.Streamer = nil
		p.overlay = nil
	}
	if p.duck.restore() {
		p.applyVolumeLocked()
	}
	speaker.Unlock()

	p.stopBackgroundLocked()
	if p.initialized {
		speaker.Clear()
	}

	close(p.stopCh)
	p.stopCh = make(chan struct{})
}

// Close stops playback and releases the audio device.
func (p *Player) Close() {
	p.StopAll()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
}

func (p *Player) stopBackgroundLocked() {
	if p.bgCtrl != nil {
		speaker.Lock()
		p.bgCtrl.Streamer = nil
		speaker.Unlock()
	}
	if p.bgStream != nil {
		if err := p.bgStream.Close(); err != nil {
			log.Debug().Err(err).Str("path", p.bgPath).Msg("close background track")
		}
	}
	p.bgPath = ""
	p.bgStream = nil
	p.bgCtrl = nil
	p.bgVolume = nil
}

// applyVolumeLocked must be called with the speaker locked.
func (p *Player) applyVolumeLocked() {
	if p.bgVolume != nil {
		p.bgVolume.Volume = levelToVolume(p.duck.level())
	}
}
