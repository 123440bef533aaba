package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSilence writes a WAV file of n silent samples at rate.
func writeSilence(t *testing.T, path string, rate beep.SampleRate, n int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Silence(n), format))
}

func TestLibrary_Path(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "3_2_1_stop.wav"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "3_2_1_stop.mp3"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "round_1.mp3"), 0o755))

	lib := NewLibrary(dir, 44100)

	path, err := lib.Path(CueStop)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "3_2_1_stop.mp3"), path, "mp3 is preferred")

	_, err = lib.Path(RoundCue(1))
	assert.True(t, errors.Is(err, ErrCueNotFound), "directories are not assets")

	_, err = lib.Path(CueReady)
	assert.True(t, errors.Is(err, ErrCueNotFound))
}

func TestLibrary_BufferResamplesAndCaches(t *testing.T) {
	dir := t.TempDir()
	writeSilence(t, filepath.Join(dir, "are_you_ready.wav"), 22050, 22050)

	lib := NewLibrary(dir, 44100)

	buf, err := lib.Buffer(CueReady)
	require.NoError(t, err)
	assert.Equal(t, beep.SampleRate(44100), buf.Format().SampleRate)
	// One second of audio at the output rate, give or take resampler edges.
	assert.InDelta(t, 44100, buf.Len(), 256)

	again, err := lib.Buffer(CueReady)
	require.NoError(t, err)
	assert.Same(t, buf, again)
}

func TestLibrary_PreloadJoinsErrors(t *testing.T) {
	dir := t.TempDir()
	writeSilence(t, filepath.Join(dir, "are_you_ready.wav"), 44100, 100)

	lib := NewLibrary(dir, 44100)
	err := lib.Preload(CueReady, CueStop, CueCountdownGo)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCueNotFound))
	assert.Contains(t, err.Error(), string(CueStop))
	assert.Contains(t, err.Error(), string(CueCountdownGo))
	assert.NotContains(t, err.Error(), string(CueReady))
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("/music/song.MP3"))
	assert.True(t, IsSupported("cue.flac"))
	assert.True(t, IsSupported("cue.wav"))
	assert.False(t, IsSupported("cue.ogg"))
	assert.False(t, IsSupported("cue"))
}

func TestOpenStream_Unsupported(t *testing.T) {
	_, _, err := openStream("track.ogg")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestAllCues(t *testing.T) {
	ids := AllCues(3)
	assert.Equal(t, []CueID{CueReady, CueStop, CueCountdownGo, "round_1", "round_2", "round_3"}, ids)
	assert.Len(t, AllCues(12), 3+MaxRoundCue)
}
