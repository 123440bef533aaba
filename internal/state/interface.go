package state

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	GetLastWorkout() (*LastWorkout, error)
	SaveLastWorkout(w LastWorkout)
	RecordSession(s Session) error
	RecentSessions(limit int) ([]Session, error)
	Totals() (Totals, error)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
