package timer

const eventBufferSize = 16

// Subscription provides event channels for a subscriber. Sends never block:
// a subscriber that falls behind loses events.
type Subscription struct {
	Snapshots    <-chan Snapshot
	PhaseChanged <-chan PhaseChange
	CueFired     <-chan CueEvent
	Completed    <-chan CompletedEvent
	Error        <-chan ErrorEvent
	Done         <-chan struct{}

	snapshotCh chan Snapshot
	phaseCh    chan PhaseChange
	cueCh      chan CueEvent
	completeCh chan CompletedEvent
	errorCh    chan ErrorEvent
	doneCh     chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		snapshotCh: make(chan Snapshot, eventBufferSize),
		phaseCh:    make(chan PhaseChange, eventBufferSize),
		cueCh:      make(chan CueEvent, eventBufferSize),
		completeCh: make(chan CompletedEvent, 1),
		errorCh:    make(chan ErrorEvent, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.Snapshots = s.snapshotCh
	s.PhaseChanged = s.phaseCh
	s.CueFired = s.cueCh
	s.Completed = s.completeCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) close() {
	close(s.doneCh)
}

func (s *Subscription) sendSnapshot(e Snapshot) {
	select {
	case s.snapshotCh <- e:
	default:
	}
}

func (s *Subscription) sendPhase(e PhaseChange) {
	select {
	case s.phaseCh <- e:
	default:
	}
}

func (s *Subscription) sendCue(e CueEvent) {
	select {
	case s.cueCh <- e:
	default:
	}
}

func (s *Subscription) sendCompleted(e CompletedEvent) {
	select {
	case s.completeCh <- e:
	default:
	}
}

func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
