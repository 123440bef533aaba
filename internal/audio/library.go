package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gopxl/beep/v2"
)

// ErrCueNotFound is returned when no asset file exists for a cue.
var ErrCueNotFound = errors.New("cue asset not found")

// resampleQuality matches the quality used for track playback.
const resampleQuality = 4

// Library resolves cue ids to asset files and keeps decoded cues in memory,
// resampled to the output rate.
type Library struct {
	dir  string
	rate beep.SampleRate

	mu    sync.Mutex
	cache map[CueID]*beep.Buffer
}

// NewLibrary creates a library reading assets from dir.
func NewLibrary(dir string, rate beep.SampleRate) *Library {
	return &Library{
		dir:   dir,
		rate:  rate,
		cache: make(map[CueID]*beep.Buffer),
	}
}

// Path returns the asset file for id, trying each supported extension.
func (l *Library) Path(id CueID) (string, error) {
	for _, ext := range supportedExts {
		path := filepath.Join(l.dir, string(id)+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s in %s", ErrCueNotFound, id, l.dir)
}

// Buffer returns the decoded cue, loading it on first use.
func (l *Library) Buffer(id CueID) (*beep.Buffer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if buf, ok := l.cache[id]; ok {
		return buf, nil
	}

	path, err := l.Path(id)
	if err != nil {
		return nil, err
	}
	buf, err := l.decode(path)
	if err != nil {
		return nil, fmt.Errorf("load cue %s: %w", id, err)
	}
	l.cache[id] = buf
	return buf, nil
}

// Preload decodes every listed cue and reports all failures together.
func (l *Library) Preload(ids ...CueID) error {
	var errs []error
	for _, id := range ids {
		if _, err := l.Buffer(id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (l *Library) decode(path string) (*beep.Buffer, error) {
	streamer, format, err := openStream(path)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != l.rate {
		s = beep.Resample(resampleQuality, format.SampleRate, l.rate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: l.rate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return nil, err
	}
	return buf, nil
}
