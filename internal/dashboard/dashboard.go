package dashboard

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roman-kulish/starpi-replay/internal/flight"
	"github.com/roman-kulish/starpi-replay/internal/playback"
	"github.com/roman-kulish/starpi-replay/internal/projection"
	"github.com/roman-kulish/starpi-replay/internal/telemetry"
)

// Chart binds a scalar channel to the history mode it is drawn with
type Chart struct {
	Name    string             `yaml:"name"`
	Channel projection.Channel `yaml:"channel"`
	Mode    projection.Mode    `yaml:"mode"`
}

// DefaultCharts are shown when no chart set is configured
var DefaultCharts = []Chart{
	{Name: "Altitude", Channel: projection.Altitude, Mode: projection.ModeFull},
	{Name: "Speed", Channel: projection.Speed, Mode: projection.ModeFull},
	{Name: "Horizontal Velocity", Channel: projection.HorizontalVelocity, Mode: projection.ModeFull},
	{Name: "Vertical Acceleration", Channel: projection.AccelZ, Mode: projection.ModeFull},
}

// WithLogger sets the logger for the dashboard
func WithLogger(logger *slog.Logger) func(d *Dashboard) {
	return func(d *Dashboard) {
		d.logger = logger.With(slog.String("component", "dashboard"))
	}
}

// WithProjector replaces the default projector
func WithProjector(p *projection.Projector) func(d *Dashboard) {
	return func(d *Dashboard) {
		d.projector = p
	}
}

// WithCharts sets the charts returned by Charts
func WithCharts(charts []Chart) func(d *Dashboard) {
	return func(d *Dashboard) {
		if len(charts) > 0 {
			d.charts = append([]Chart(nil), charts...)
		}
	}
}

// WithTrackMode sets whether Track shows the whole ground track or only the
// path flown so far
func WithTrackMode(mode projection.Mode) func(d *Dashboard) {
	return func(d *Dashboard) {
		d.trackMode = mode
	}
}

// Dashboard ties the flight catalog, the playback controller and the
// projections together. Every read resolves the selected flight and the
// cursor from one controller snapshot, so the values it returns always
// belong to the same flight and instant. Reads fail with
// telemetry.ErrInvalidFlightID when the controller holds a series the catalog
// does not own.
type Dashboard struct {
	catalog    *flight.Catalog
	controller *playback.Controller
	projector  *projection.Projector
	charts     []Chart
	trackMode  projection.Mode
	logger     *slog.Logger
}

// New creates a dashboard and selects the first flight of the catalog
func New(catalog *flight.Catalog, controller *playback.Controller, options ...func(d *Dashboard)) (*Dashboard, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, fmt.Errorf("dashboard: empty flight catalog")
	}
	if controller == nil {
		controller = playback.NewController()
	}

	d := Dashboard{
		catalog:    catalog,
		controller: controller,
		charts:     DefaultCharts,
		trackMode:  projection.ModeReveal,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&d)
	}

	if d.projector == nil {
		p, err := projection.NewProjector(projection.DefaultCacheSize)
		if err != nil {
			return nil, err
		}
		d.projector = p
	}

	if err := d.SelectFlight(catalog.First().ID); err != nil {
		return nil, err
	}

	return &d, nil
}

// SelectFlight switches the dashboard to another flight. Playback stops and
// the cursor returns to zero. An unknown id leaves the dashboard unchanged.
func (d *Dashboard) SelectFlight(id string) error {
	r, err := d.catalog.Lookup(id)
	if err != nil {
		return err
	}
	if err = d.controller.Load(r.Series); err != nil {
		return err
	}

	d.logger.Info("flight selected", slog.String("flight", r.ID), slog.String("status", string(r.Status)))
	return nil
}

func (d *Dashboard) Play(ctx context.Context) error {
	return d.controller.Play(ctx)
}

func (d *Dashboard) Pause() {
	d.controller.Pause()
}

func (d *Dashboard) Toggle(ctx context.Context) error {
	return d.controller.Toggle(ctx)
}

// Seek moves the cursor to t, clamped to the flight
func (d *Dashboard) Seek(t float64) {
	d.controller.Seek(t)
}

func (d *Dashboard) SkipBack() {
	d.controller.SkipBack()
}

func (d *Dashboard) SkipForward() {
	d.controller.SkipForward()
}

func (d *Dashboard) Snapshot() playback.Snapshot {
	return d.controller.Snapshot()
}

func (d *Dashboard) CurrentTime() float64 {
	return d.controller.CurrentTime()
}

func (d *Dashboard) IsPlaying() bool {
	return d.controller.IsPlaying()
}

// Flights lists the catalog in order
func (d *Dashboard) Flights() []*flight.Record {
	return d.catalog.List()
}

// Flight returns the selected flight
func (d *Dashboard) Flight() (*flight.Record, error) {
	r, _, err := d.state()
	return r, err
}

// Current returns the sample under the cursor
func (d *Dashboard) Current() (telemetry.Sample, error) {
	return d.SampleAt(d.controller.Snapshot())
}

// SampleAt resolves the sample a snapshot points at, so a caller holding a
// snapshot reads the same instant it was taken at
func (d *Dashboard) SampleAt(snap playback.Snapshot) (telemetry.Sample, error) {
	r, err := d.record(snap)
	if err != nil {
		return telemetry.Sample{}, err
	}
	return d.projector.Current(r.Series, snap.Time)
}

// Get implements telemetry.Provider
func (d *Dashboard) Get() *telemetry.Sample {
	s, err := d.Current()
	if err != nil {
		d.logger.Warn("no sample under cursor", slog.String("error", err.Error()))
		return nil
	}
	return &s
}

// Phase is the flight phase of the sample under the cursor
func (d *Dashboard) Phase() (telemetry.Phase, error) {
	s, err := d.Current()
	if err != nil {
		return 0, err
	}
	return s.Phase, nil
}

// History returns the samples from the start of the flight up to the cursor
func (d *Dashboard) History() (telemetry.View, error) {
	r, snap, err := d.state()
	if err != nil {
		return telemetry.View{}, err
	}
	return r.Series.History(snap.Time), nil
}

func (d *Dashboard) ChannelSeries(ch projection.Channel, mode projection.Mode) ([]projection.Point, error) {
	r, snap, err := d.state()
	if err != nil {
		return nil, err
	}
	return d.projector.Series(r.Series, ch, mode, snap.Time), nil
}

func (d *Dashboard) VectorSeries(ch projection.VectorChannel, mode projection.Mode) ([]projection.VectorPoint, error) {
	r, snap, err := d.state()
	if err != nil {
		return nil, err
	}
	return d.projector.Vectors(r.Series, ch, mode, snap.Time), nil
}

// Charts returns the configured charts
func (d *Dashboard) Charts() []Chart {
	return append([]Chart(nil), d.charts...)
}

// ChartSeries projects one configured chart at the cursor
func (d *Dashboard) ChartSeries(c Chart) ([]projection.Point, error) {
	return d.ChannelSeries(c.Channel, c.Mode)
}

// SensorRanges returns the whole-flight range of every gauge channel
func (d *Dashboard) SensorRanges() (map[projection.Channel]projection.Range, error) {
	r, _, err := d.state()
	if err != nil {
		return nil, err
	}
	return d.projector.Ranges(r.Series)
}

func (d *Dashboard) SensorRange(ch projection.Channel) (projection.Range, error) {
	r, _, err := d.state()
	if err != nil {
		return projection.Range{}, err
	}
	return d.projector.Range(r.Series, ch)
}

// Gauges reads every gauge channel at the cursor against its flight range
func (d *Dashboard) Gauges() (map[projection.Channel]projection.Reading, error) {
	r, snap, err := d.state()
	if err != nil {
		return nil, err
	}

	s, err := d.projector.Current(r.Series, snap.Time)
	if err != nil {
		return nil, err
	}
	ranges, err := d.projector.Ranges(r.Series)
	if err != nil {
		return nil, err
	}

	out := make(map[projection.Channel]projection.Reading, len(ranges))
	for ch, rng := range ranges {
		v, _ := ch.Value(s)
		out[ch] = projection.NewGauge(rng).Read(v)
	}
	return out, nil
}

// PathToDate returns the ground track flown up to the cursor. It is empty at
// the start of the flight.
func (d *Dashboard) PathToDate() ([]projection.Position, error) {
	r, snap, err := d.state()
	if err != nil {
		return nil, err
	}
	return d.projector.Path(r.Series, snap.Time), nil
}

// Track returns the ground track in the configured mode
func (d *Dashboard) Track() ([]projection.Position, error) {
	r, snap, err := d.state()
	if err != nil {
		return nil, err
	}
	return d.projector.Track(r.Series, d.trackMode, snap.Time), nil
}

func (d *Dashboard) Milestones() ([]projection.Milestone, error) {
	r, _, err := d.state()
	if err != nil {
		return nil, err
	}
	return projection.Milestones(r.Series), nil
}

// CamerasActive reports whether the onboard cameras record at the cursor
func (d *Dashboard) CamerasActive() (bool, error) {
	p, err := d.Phase()
	if err != nil {
		return false, err
	}
	return projection.CamerasActive(p), nil
}

// state resolves the selected flight and the cursor from one snapshot
func (d *Dashboard) state() (*flight.Record, playback.Snapshot, error) {
	snap := d.controller.Snapshot()
	r, err := d.record(snap)
	return r, snap, err
}

// record maps a snapshot to its catalog record. A controller loaded behind the
// dashboard's back holds a series the catalog does not own, which is rejected.
func (d *Dashboard) record(snap playback.Snapshot) (*flight.Record, error) {
	if snap.Series == nil {
		return nil, fmt.Errorf("%w: no flight selected", telemetry.ErrInvalidFlightID)
	}

	r, err := d.catalog.Lookup(snap.FlightID)
	if err != nil {
		return nil, err
	}
	if r.Series != snap.Series {
		return nil, fmt.Errorf("%w: series of '%s' was not loaded from the catalog", telemetry.ErrInvalidFlightID, snap.FlightID)
	}
	return r, nil
}
