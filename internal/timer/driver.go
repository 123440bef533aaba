package timer

import "github.com/jonboulle/clockwork"

// startDriverLocked starts the periodic tick goroutine unless one is running
// or the driver is disabled.
func (e *Engine) startDriverLocked() {
	if e.tickInterval <= 0 || e.driverStop != nil {
		return
	}
	stop := make(chan struct{})
	e.driverStop = stop
	ticker := e.clock.NewTicker(e.tickInterval)

	e.wg.Add(1)
	go e.runDriver(ticker, stop)
}

// stopDriverLocked signals the driver to exit. It does not wait: the driver
// may itself be the caller.
func (e *Engine) stopDriverLocked() {
	if e.driverStop != nil {
		close(e.driverStop)
		e.driverStop = nil
	}
}

func (e *Engine) runDriver(ticker clockwork.Ticker, stop chan struct{}) {
	defer e.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			e.tick(stop)
		}
	}
}
