package audio

import (
	"context"
	"sync"
)

// Mock is a test double for Player. It is safe for concurrent use since the
// engine plays intro cues from its own goroutine.
type Mock struct {
	mu sync.Mutex

	initErr    error
	cueErr     error
	overlayErr error
	bgErr      error

	initCalls    int
	cues         []CueID
	overlays     []CueID
	backgrounds  []string
	stopAllCalls int

	// When held, PlayCue blocks until Release or ctx is done.
	held    bool
	release chan struct{}
	started chan CueID
}

// NewMock creates a mock whose cues finish immediately.
func NewMock() *Mock {
	return &Mock{
		release: make(chan struct{}),
		started: make(chan CueID, 32),
	}
}

func (m *Mock) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initCalls++
	return m.initErr
}

func (m *Mock) PlayCue(ctx context.Context, id CueID) error {
	m.mu.Lock()
	m.cues = append(m.cues, id)
	held := m.held
	err := m.cueErr
	m.mu.Unlock()

	select {
	case m.started <- id:
	default:
	}

	if held {
		select {
		case <-m.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (m *Mock) PlayOverlayCue(id CueID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overlays = append(m.overlays, id)
	return m.overlayErr
}

func (m *Mock) StartBackgroundTrack(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backgrounds = append(m.backgrounds, path)
	return m.bgErr
}

func (m *Mock) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopAllCalls++
}

// Test helpers

func (m *Mock) SetInitError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initErr = err
}

func (m *Mock) SetCueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cueErr = err
}

func (m *Mock) SetOverlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overlayErr = err
}

func (m *Mock) SetBackgroundError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bgErr = err
}

// Hold makes subsequent PlayCue calls block until Release.
func (m *Mock) Hold() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held = true
}

// Release lets one held PlayCue call finish.
func (m *Mock) Release() {
	m.release <- struct{}{}
}

// Started receives the id of every PlayCue call as it begins.
func (m *Mock) Started() <-chan CueID { return m.started }

func (m *Mock) InitCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initCalls
}

func (m *Mock) Cues() []CueID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CueID(nil), m.cues...)
}

func (m *Mock) Overlays() []CueID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CueID(nil), m.overlays...)
}

func (m *Mock) Backgrounds() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.backgrounds...)
}

func (m *Mock) StopAllCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopAllCalls
}
