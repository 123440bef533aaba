package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tabata/internal/workout"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name                      string
		round, rounds, rest, song string
		want                      workout.Config
		wantErr                   error
	}{
		{
			name:  "classic tabata",
			round: "20", rounds: "8", rest: "10",
			want: workout.Config{Rounds: 8, Round: 20 * time.Second, Rest: 10 * time.Second},
		},
		{
			name:  "zero rest with track",
			round: " 45 ", rounds: "3", rest: "0", song: " ~/music/loop.mp3 ",
			want: workout.Config{Rounds: 3, Round: 45 * time.Second, BackgroundTrack: "~/music/loop.mp3"},
		},
		{
			name:  "upper bounds",
			round: "300", rounds: "8", rest: "300",
			want: workout.Config{Rounds: 8, Round: 300 * time.Second, Rest: 300 * time.Second},
		},
		{name: "round zero", round: "0", rounds: "8", rest: "10", wantErr: ErrRoundDuration},
		{name: "round too long", round: "301", rounds: "8", rest: "10", wantErr: ErrRoundDuration},
		{name: "round not a number", round: "abc", rounds: "8", rest: "10", wantErr: ErrRoundDuration},
		{name: "round empty", round: "", rounds: "8", rest: "10", wantErr: ErrRoundDuration},
		{name: "too many rounds", round: "20", rounds: "9", rest: "10", wantErr: ErrRounds},
		{name: "no rounds", round: "20", rounds: "0", rest: "10", wantErr: ErrRounds},
		{name: "negative rest", round: "20", rounds: "8", rest: "-1", wantErr: ErrRestDuration},
		{name: "rest too long", round: "20", rounds: "8", rest: "301", wantErr: ErrRestDuration},
		{name: "round checked first", round: "0", rounds: "0", rest: "-1", wantErr: ErrRoundDuration},
		{name: "rounds checked before rest", round: "20", rounds: "0", rest: "-1", wantErr: ErrRounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.round, tt.rounds, tt.rest, tt.song)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	assert.Equal(t, "Number of rounds must be between 1 and 8", ErrRounds.Error())
}
