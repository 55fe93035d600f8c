package playback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/roman-kulish/starpi-replay/internal/metrics"
	"github.com/roman-kulish/starpi-replay/internal/telemetry"
)

const (
	// TickInterval is the wall clock period of the playback timer
	TickInterval = 100 * time.Millisecond

	// TickStep is how far the cursor moves per tick, in seconds of flight time
	TickStep = 0.1

	// SkipOffset is the jump of SkipBack and SkipForward, in seconds
	SkipOffset = 5.0
)

// ErrNoSeries is returned when playback is requested before a flight was loaded
var ErrNoSeries = errors.New("no flight loaded")

// Snapshot is a consistent view of the cursor and play state
type Snapshot struct {
	FlightID string  `json:"flightID"`
	Time     float64 `json:"time"`     // Cursor position in seconds
	Duration float64 `json:"duration"` // Flight duration in seconds
	Playing  bool    `json:"playing"`

	Series *telemetry.Series `json:"-"` // Loaded series the cursor refers to
}

// WithLogger sets the logger for the controller
func WithLogger(logger *slog.Logger) func(c *Controller) {
	return func(c *Controller) {
		c.logger = logger.With(slog.String("component", "playback"))
	}
}

// WithClock replaces the wall clock used for ticking
func WithClock(clock Clock) func(c *Controller) {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithTickInterval changes the wall clock period of a tick. The cursor still
// advances by TickStep per tick.
func WithTickInterval(d time.Duration) func(c *Controller) {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithObserver registers fn to be called from the ticker goroutine after every
// tick that moved the cursor. fn must not call Play, Pause, Toggle or Load.
func WithObserver(fn func(Snapshot)) func(c *Controller) {
	return func(c *Controller) {
		c.observer = fn
	}
}

// WithMetrics sets the collectors updated on every state change
func WithMetrics(m *metrics.Playback) func(c *Controller) {
	return func(c *Controller) {
		c.metrics = m
	}
}

// Controller owns the time cursor of the selected flight and the timer that
// advances it while playing.
type Controller struct {
	ctl sync.Mutex // serialises Load, Play and Pause; never taken by the ticker

	mu         sync.Mutex
	series     *telemetry.Series
	cursor     float64
	playing    bool
	generation uint64 // bumped whenever a ticking task is started or torn down

	isTicking atomic.Bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	clock    Clock
	interval time.Duration
	observer func(Snapshot)
	metrics  *metrics.Playback
	logger   *slog.Logger
}

// NewController creates a stopped controller with no flight loaded
func NewController(options ...func(c *Controller)) *Controller {
	c := Controller{
		clock:    wallClock{},
		interval: TickInterval,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&c)
	}

	return &c
}

// Load selects a new series. Any running timer is torn down before the
// cursor is reset to zero and playback is stopped.
func (c *Controller) Load(series *telemetry.Series) error {
	if series == nil {
		return ErrNoSeries
	}
	if series.Len() == 0 {
		return fmt.Errorf("%w: flight '%s'", telemetry.ErrEmptySeries, series.FlightID())
	}

	c.ctl.Lock()
	defer c.ctl.Unlock()

	c.stop()

	c.mu.Lock()
	c.series = series
	c.cursor = 0
	c.playing = false
	c.mu.Unlock()

	c.metrics.Selected()
	c.logger.Info("flight loaded",
		slog.String("flight", series.FlightID()),
		slog.Float64("duration", series.Duration()))

	return nil
}

// Play starts the timer. It is a no-op when already playing.
func (c *Controller) Play(ctx context.Context) error {
	c.ctl.Lock()
	defer c.ctl.Unlock()

	c.mu.Lock()
	if c.series == nil {
		c.mu.Unlock()
		return ErrNoSeries
	}
	if c.playing {
		c.mu.Unlock()
		return nil
	}
	if c.cancel != nil {
		c.cancel() // release a task that ended at the end of the flight
		c.cancel = nil
	}
	c.mu.Unlock()

	c.wg.Wait()

	c.mu.Lock()
	c.playing = true
	c.generation++
	generation := c.generation
	ctx, c.cancel = context.WithCancel(ctx)
	from := c.cursor
	c.mu.Unlock()

	ticker := c.clock.NewTicker(c.interval)

	c.isTicking.Store(true)
	c.wg.Add(1)
	go c.run(ctx, ticker, generation)

	c.metrics.Transition(true)
	c.logger.Debug("playback started", slog.Float64("from", from))

	return nil
}

// Pause stops playback. When it returns the timer is gone and no further
// tick can move the cursor.
func (c *Controller) Pause() {
	c.ctl.Lock()
	defer c.ctl.Unlock()

	c.stop()
}

// Toggle pauses a playing controller and plays a stopped one
func (c *Controller) Toggle(ctx context.Context) error {
	if c.IsPlaying() {
		c.Pause()
		return nil
	}
	return c.Play(ctx)
}

// Seek moves the cursor to t clamped to [0, duration]. The play state is kept
// and a running timer continues from the new position.
func (c *Controller) Seek(t float64) {
	if math.IsNaN(t) {
		return
	}
	c.move(func(float64) float64 { return t })
}

// SkipBack moves the cursor SkipOffset seconds back, clamped at zero
func (c *Controller) SkipBack() {
	c.move(func(cur float64) float64 { return cur - SkipOffset })
}

// SkipForward moves the cursor SkipOffset seconds forward, clamped at the end
func (c *Controller) SkipForward() {
	c.move(func(cur float64) float64 { return cur + SkipOffset })
}

func (c *Controller) move(to func(cur float64) float64) {
	c.mu.Lock()
	if c.series == nil {
		c.mu.Unlock()
		return
	}
	c.cursor = clamp(telemetry.RoundTime(to(c.cursor)), 0, c.series.Duration())
	cursor := c.cursor
	c.mu.Unlock()

	c.metrics.Seek(cursor)
}

// Snapshot returns the cursor and play state as one consistent value
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{Time: c.cursor, Playing: c.playing, Series: c.series}
	if c.series != nil {
		s.FlightID = c.series.FlightID()
		s.Duration = c.series.Duration()
	}
	return s
}

func (c *Controller) CurrentTime() float64 {
	return c.Snapshot().Time
}

func (c *Controller) IsPlaying() bool {
	return c.Snapshot().Playing
}

func (c *Controller) Duration() float64 {
	return c.Snapshot().Duration
}

// Series returns the loaded series, nil before the first Load
func (c *Controller) Series() *telemetry.Series {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.series
}

// IsTicking reports whether the timer goroutine is alive
func (c *Controller) IsTicking() bool {
	return c.isTicking.Load()
}

// stop tears down the running task and waits for it to exit; ctl must be held
func (c *Controller) stop() {
	c.mu.Lock()
	wasPlaying := c.playing
	c.playing = false
	c.generation++
	cancel := c.cancel
	c.cancel = nil
	cursor := c.cursor
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.wg.Wait()

	if wasPlaying {
		c.metrics.Transition(false)
		c.logger.Debug("playback paused", slog.Float64("at", cursor))
	}
}

func (c *Controller) run(ctx context.Context, ticker Ticker, generation uint64) {
	defer func() {
		ticker.Stop()
		c.isTicking.Store(false)
		c.wg.Done()
	}()

	for {
		select {
		case <-ctx.Done():
			c.mu.Lock()
			stale := c.generation != generation || !c.playing
			if !stale {
				c.playing = false // parent context gone
			}
			c.mu.Unlock()

			if !stale {
				c.metrics.Transition(false)
				c.logger.Debug("playback cancelled", slog.String("reason", ctx.Err().Error()))
			}
			return

		case <-ticker.C():
			snapshot, moved := c.advance(generation)
			if !moved {
				return
			}
			if c.observer != nil {
				c.observer(snapshot)
			}
			if !snapshot.Playing {
				return
			}
		}
	}
}

// advance moves the cursor one step; it refuses to touch the cursor on behalf
// of a task that has been torn down.
func (c *Controller) advance(generation uint64) (Snapshot, bool) {
	c.mu.Lock()
	if !c.playing || c.generation != generation {
		c.mu.Unlock()
		return Snapshot{}, false
	}

	duration := c.series.Duration()
	next := math.Min(telemetry.RoundTime(c.cursor+TickStep), duration)
	c.cursor = next

	finished := next >= duration
	if finished {
		c.cursor = duration
		c.playing = false
	}

	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.metrics.Tick(snapshot.Time)
	if finished {
		c.metrics.Completed()
		c.metrics.Transition(false)
		c.logger.Info("end of flight reached", slog.String("flight", snapshot.FlightID))
	}

	return snapshot, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
