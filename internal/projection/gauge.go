package projection

import "math"

const (
	// needle sweep of a round gauge, from -135° at Min to +135° at Max
	gaugeSweep = 270.0
	gaugeStart = -135.0
)

// Level is the alert state of a gauge reading
type Level uint8

const (
	LevelNormal Level = iota
	LevelWarning
	LevelDanger
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelDanger:
		return "danger"
	default:
		return "normal"
	}
}

// Gauge scales a reading into a fixed range. Warning and Danger are optional
// thresholds compared against the raw value.
type Gauge struct {
	Min     float64
	Max     float64
	Warning *float64
	Danger  *float64
}

// Reading is a value prepared for a linear bar or a round gauge
type Reading struct {
	Value   float64 // Input value clamped to [Min, Max]
	Percent float64 // Position within the range, [0, 1]
	Angle   float64 // Needle angle in degrees, [-135, 135]
	Level   Level
}

// NewGauge sizes a gauge from a flight range
func NewGauge(r Range) Gauge {
	return Gauge{Min: r.Min, Max: r.Max}
}

func (g Gauge) Read(v float64) Reading {
	r := Reading{Value: math.Max(g.Min, math.Min(g.Max, v))}

	if span := g.Max - g.Min; span > 0 {
		r.Percent = (r.Value - g.Min) / span
	}
	r.Angle = r.Percent*gaugeSweep + gaugeStart

	switch {
	case g.Danger != nil && v >= *g.Danger:
		r.Level = LevelDanger
	case g.Warning != nil && v >= *g.Warning:
		r.Level = LevelWarning
	}

	return r
}
