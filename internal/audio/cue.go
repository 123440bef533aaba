package audio

import "fmt"

// CueID names an audio cue. It doubles as the asset file stem.
type CueID string

const (
	CueReady       CueID = "are_you_ready"
	CueStop        CueID = "3_2_1_stop"
	CueCountdownGo CueID = "5_4_3_2_1_go"
)

// MaxRoundCue is the highest round number with a recorded announcement.
const MaxRoundCue = 8

// RoundCue returns the announcement for round n.
func RoundCue(n int) CueID {
	return CueID(fmt.Sprintf("round_%d", n))
}

// IntroSequence is played back to back before the first round.
func IntroSequence() []CueID {
	return []CueID{CueReady, RoundCue(1), CueCountdownGo}
}

// AllCues lists every cue a workout of up to rounds rounds can play.
func AllCues(rounds int) []CueID {
	rounds = min(rounds, MaxRoundCue)
	ids := []CueID{CueReady, CueStop, CueCountdownGo}
	for n := 1; n <= rounds; n++ {
		ids = append(ids, RoundCue(n))
	}
	return ids
}
