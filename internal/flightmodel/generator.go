package flightmodel

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/roman-kulish/starpi-replay/internal/rand"
	"github.com/roman-kulish/starpi-replay/internal/telemetry"
)

const (
	// Duration of every simulated recording in seconds
	Duration = LandedAt

	// Launch site, Star Pi test range
	DefaultLatitude  = 37.7749
	DefaultLongitude = -122.4194
)

// Variant selects which sensor channels the avionics board carries.
type Variant uint8

const (
	// VariantSensorSuite carries the HMC5883L magnetometer
	VariantSensorSuite Variant = iota

	// VariantCompact has no magnetometer
	VariantCompact
)

var variantNames = map[Variant]string{
	VariantSensorSuite: "sensor-suite",
	VariantCompact:     "compact",
}

func (v Variant) String() string {
	if n, ok := variantNames[v]; ok {
		return n
	}
	return "unknown"
}

func ParseVariant(s string) (Variant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for v, n := range variantNames {
		if n == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("flightmodel.Variant: unknown variant '%s'", s)
}

func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// WithSource sets the noise source used for the jittered channels
func WithSource(source rand.Source) func(g *Generator) {
	return func(g *Generator) {
		g.source = source
	}
}

// WithSeed seeds a dedicated PCG noise source, making the output reproducible
func WithSeed(seed int64) func(g *Generator) {
	return func(g *Generator) {
		g.source = rand.NewSeeded(seed)
	}
}

// WithVariant sets the sensor variant
func WithVariant(variant Variant) func(g *Generator) {
	return func(g *Generator) {
		g.variant = variant
	}
}

// WithOrigin moves the launch site
func WithOrigin(latitude, longitude float64) func(g *Generator) {
	return func(g *Generator) {
		g.latitude = latitude
		g.longitude = longitude
	}
}

// WithLogger sets the logger for the generator
func WithLogger(logger *slog.Logger) func(g *Generator) {
	return func(g *Generator) {
		g.logger = logger.With(slog.String("component", "flightmodel"))
	}
}

// Generator produces telemetry series from the phase schedule. A Generator
// owns its noise source and must not be shared between goroutines.
type Generator struct {
	source    rand.Source
	variant   Variant
	latitude  float64
	longitude float64
	logger    *slog.Logger
}

// New creates a Generator with a wall-clock seeded noise source and a discard logger
func New(options ...func(g *Generator)) *Generator {
	g := Generator{
		variant:   VariantSensorSuite,
		latitude:  DefaultLatitude,
		longitude: DefaultLongitude,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&g)
	}

	if g.source == nil {
		g.source = rand.New()
	}

	return &g
}

// Generate is a shorthand for New(options...).Generate(flightID)
func Generate(flightID string, options ...func(g *Generator)) (*telemetry.Series, error) {
	return New(options...).Generate(flightID)
}

func (g *Generator) Variant() Variant {
	return g.variant
}

// Generate builds the complete series for one flight. Sample times are
// derived from the sample index so the last sample sits exactly on Duration.
func (g *Generator) Generate(flightID string) (*telemetry.Series, error) {
	if strings.TrimSpace(flightID) == "" {
		return nil, fmt.Errorf("%w: flight id must not be empty", telemetry.ErrInvalidFlightID)
	}

	n := int(math.Round(Duration/telemetry.Step)) + 1
	samples := make([]telemetry.Sample, n)
	for i := range samples {
		samples[i] = g.sample(telemetry.RoundTime(float64(i) * telemetry.Step))
	}

	series, err := telemetry.NewSeries(flightID, telemetry.Step, samples)
	if err != nil {
		return nil, fmt.Errorf("generating flight '%s': %w", flightID, err)
	}

	g.logger.Debug("flight generated",
		slog.String("flight", flightID),
		slog.String("variant", g.variant.String()),
		slog.Int("samples", series.Len()),
		slog.Int("maxAltitude", MaxAltitude(series)))

	return series, nil
}

func (g *Generator) sample(t float64) telemetry.Sample {
	k := Kinematics(t)
	alt := k.Altitude

	s := telemetry.Sample{
		Time:     t,
		Phase:    k.Phase,
		Altitude: alt,
		Speed:    k.Speed,
		Accel: telemetry.Vector3{
			X: k.Acceleration * g.uniform(0.8, 1.2),
			Y: k.Acceleration * g.uniform(0.9, 1.1),
			Z: k.Acceleration,
		},
		Pitch: 30 * math.Sin(0.5*t),
		Roll:  20 * math.Cos(0.5*t),
		Yaw:   math.Mod(10*t, 360),
	}

	if k.Phase == telemetry.PhaseFlight {
		s.Gyro = telemetry.Vector3{
			X: g.uniform(-50, 50),
			Y: g.uniform(-50, 50),
			Z: g.uniform(-25, 25),
		}
	} else {
		s.Gyro = telemetry.Vector3{
			X: g.uniform(0, 5),
			Y: g.uniform(0, 5),
			Z: g.uniform(0, 5),
		}
	}

	if g.variant == VariantSensorSuite {
		s.Mag = &telemetry.Vector3{
			X: 30 + 20*math.Sin(0.5*t) + g.uniform(0, 5),
			Y: 40 + 20*math.Cos(0.5*t) + g.uniform(0, 5),
			Z: -50 + 10*math.Sin(0.3*t) + g.uniform(0, 5),
		}
	}

	s.Temperature = 22 - 0.01*alt + g.uniform(0, 0.5)
	s.Pressure = 101.3 - 0.01*alt
	s.Humidity = math.Max(0, 45+g.uniform(0, 10)-0.02*alt)

	s.Latitude = g.latitude + 0.0001*alt + g.uniform(0, 0.001)
	s.Longitude = g.longitude + 0.0001*alt + g.uniform(0, 0.001)
	s.GPSAltitude = alt + g.uniform(0, 5)

	if t > LiftoffAt {
		s.HorizontalVelocity = math.Min(0.3*k.Speed, g.uniform(50, 60))
	}

	return s
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return rand.Uniform(g.source, lo, hi)
}

// MaxAltitude is the flight summary altitude: the highest sample rounded up to whole meters.
func MaxAltitude(series *telemetry.Series) int {
	highest := 0.0
	for _, s := range series.All() {
		highest = math.Max(highest, s.Altitude)
	}
	return int(math.Ceil(highest))
}
