package projection

import (
	"errors"
	"fmt"
	"math"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/roman-kulish/starpi-replay/internal/telemetry"
)

const (
	// DefaultCacheSize is enough for every chart of one dashboard across a
	// full replay at 0.1s resolution
	DefaultCacheSize = 4096
)

// ErrChannelUnavailable is returned when no sample of a series carries the channel
var ErrChannelUnavailable = errors.New("channel not available")

// Mode selects how much of a series a consumer is shown
type Mode uint8

const (
	// ModeFull shows the whole flight regardless of the cursor
	ModeFull Mode = iota

	// ModeReveal shows only the samples up to the cursor
	ModeReveal
)

func (m Mode) String() string {
	if m == ModeReveal {
		return "reveal"
	}
	return "full"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return ModeFull, nil
	case "reveal":
		return ModeReveal, nil
	}
	return 0, fmt.Errorf("projection.Mode: unknown mode '%s'", s)
}

func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Point is one (time, value) pair of a chart
type Point struct {
	Time  float64 `json:"time"`
	Value float64 `json:"value"`
}

// VectorPoint is one (time, x, y, z) row of a three axis chart
type VectorPoint struct {
	Time float64 `json:"time"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

// Position is one point of the ground track
type Position struct {
	Time      float64 `json:"time"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Range is the (floor(min), ceil(max)) span of a channel over a whole flight
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type seriesKey struct {
	series  *telemetry.Series
	channel uint8
	end     int
}

type rangeKey struct {
	series  *telemetry.Series
	channel Channel
}

// Projector derives read-only views from a series and a cursor time. Results
// are memoized per series, so a returned slice is shared and must not be modified.
type Projector struct {
	points    *lru.Cache[seriesKey, []Point]
	vectors   *lru.Cache[seriesKey, []VectorPoint]
	positions *lru.Cache[seriesKey, []Position]
	ranges    *lru.Cache[rangeKey, Range]
}

// NewProjector creates a projector keeping up to size entries per projection kind
func NewProjector(size int) (*Projector, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	points, err := lru.New[seriesKey, []Point](size)
	if err != nil {
		return nil, fmt.Errorf("creating point cache: %w", err)
	}
	vectors, err := lru.New[seriesKey, []VectorPoint](size)
	if err != nil {
		return nil, fmt.Errorf("creating vector cache: %w", err)
	}
	positions, err := lru.New[seriesKey, []Position](size)
	if err != nil {
		return nil, fmt.Errorf("creating position cache: %w", err)
	}
	ranges, err := lru.New[rangeKey, Range](len(channelNames) * 16)
	if err != nil {
		return nil, fmt.Errorf("creating range cache: %w", err)
	}

	return &Projector{
		points:    points,
		vectors:   vectors,
		positions: positions,
		ranges:    ranges,
	}, nil
}

// Current returns the sample under the cursor
func (p *Projector) Current(series *telemetry.Series, t float64) (telemetry.Sample, error) {
	return series.At(t)
}

// Series maps the visible part of a flight to (time, value) pairs
func (p *Projector) Series(series *telemetry.Series, ch Channel, mode Mode, t float64) []Point {
	view := visible(series, mode, t)
	key := seriesKey{series: series, channel: uint8(ch), end: view.Len()}

	if points, ok := p.points.Get(key); ok {
		return points
	}

	points := make([]Point, 0, view.Len())
	for _, s := range view.All() {
		if v, ok := ch.Value(s); ok {
			points = append(points, Point{Time: s.Time, Value: v})
		}
	}

	p.points.Add(key, points)
	return points
}

// Vectors maps the visible part of a flight to (time, x, y, z) rows
func (p *Projector) Vectors(series *telemetry.Series, ch VectorChannel, mode Mode, t float64) []VectorPoint {
	view := visible(series, mode, t)
	key := seriesKey{series: series, channel: uint8(ch), end: view.Len()}

	if rows, ok := p.vectors.Get(key); ok {
		return rows
	}

	rows := make([]VectorPoint, 0, view.Len())
	for _, s := range view.All() {
		if v, ok := ch.Value(s); ok {
			rows = append(rows, VectorPoint{Time: s.Time, X: v.X, Y: v.Y, Z: v.Z})
		}
	}

	p.vectors.Add(key, rows)
	return rows
}

// Range is computed over the entire series, so it does not depend on the cursor
func (p *Projector) Range(series *telemetry.Series, ch Channel) (Range, error) {
	if series.Len() == 0 {
		return Range{}, fmt.Errorf("%w: flight '%s'", telemetry.ErrEmptySeries, series.FlightID())
	}

	key := rangeKey{series: series, channel: ch}
	if r, ok := p.ranges.Get(key); ok {
		return r, nil
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range series.All() {
		if v, ok := ch.Value(s); ok {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return Range{}, fmt.Errorf("%w: %s in flight '%s'", ErrChannelUnavailable, ch, series.FlightID())
	}

	r := Range{Min: math.Floor(lo), Max: math.Ceil(hi)}
	p.ranges.Add(key, r)
	return r, nil
}

// Ranges returns the range of every gauge channel
func (p *Projector) Ranges(series *telemetry.Series) (map[Channel]Range, error) {
	out := make(map[Channel]Range, len(GaugeChannels))
	for _, ch := range GaugeChannels {
		r, err := p.Range(series, ch)
		if err != nil {
			return nil, err
		}
		out[ch] = r
	}
	return out, nil
}

// Path returns the ground track flown up to t. Nothing has been flown at
// t <= 0, so the path is empty there.
func (p *Projector) Path(series *telemetry.Series, t float64) []Position {
	return p.Track(series, ModeReveal, t)
}

// Track returns the ground track of the whole flight in ModeFull, or the path
// flown up to t in ModeReveal.
func (p *Projector) Track(series *telemetry.Series, mode Mode, t float64) []Position {
	end := series.Len()
	if mode == ModeReveal {
		end = 0
		if t > 0 {
			end = series.History(t).Len()
		}
	}

	key := seriesKey{series: series, end: end}
	if path, ok := p.positions.Get(key); ok {
		return path
	}

	path := make([]Position, 0, end)
	for i := range end {
		s := series.Sample(i)
		path = append(path, Position{Time: s.Time, Latitude: s.Latitude, Longitude: s.Longitude})
	}

	p.positions.Add(key, path)
	return path
}

// Purge drops every memoized result
func (p *Projector) Purge() {
	p.points.Purge()
	p.vectors.Purge()
	p.positions.Purge()
	p.ranges.Purge()
}

func visible(series *telemetry.Series, mode Mode, t float64) telemetry.View {
	if mode == ModeReveal {
		return series.History(t)
	}
	return series.Full()
}
