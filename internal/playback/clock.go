package playback

import "time"

// Ticker delivers ticks until stopped
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock creates tickers. Tests replace it to drive playback tick by tick.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

type wallClock struct{}

func (wallClock) NewTicker(d time.Duration) Ticker {
	return wallTicker{time.NewTicker(d)}
}

type wallTicker struct {
	t *time.Ticker
}

func (w wallTicker) C() <-chan time.Time {
	return w.t.C
}

func (w wallTicker) Stop() {
	w.t.Stop()
}
