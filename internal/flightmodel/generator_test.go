package flightmodel

import (
	"errors"
	"math"
	"testing"

	"github.com/roman-kulish/starpi-replay/internal/telemetry"
)

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func generate(t *testing.T, options ...func(g *Generator)) *telemetry.Series {
	t.Helper()

	series, err := Generate("flight-001", options...)
	if err != nil {
		t.Fatalf("Failed to generate flight: %v", err)
	}
	return series
}

func TestGenerate_LengthAndTimes(t *testing.T) {
	series := generate(t, WithSeed(1))

	if series.Len() != 351 {
		t.Fatalf("series length = %d, want 351", series.Len())
	}
	if series.Duration() != Duration {
		t.Errorf("Duration() = %v, want %v", series.Duration(), Duration)
	}

	for i, s := range series.All() {
		if want := float64(i) / 10; s.Time != want {
			t.Fatalf("sample %d time = %v, want %v", i, s.Time, want)
		}
	}
}

func TestGenerate_NonNegative(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42} {
		series := generate(t, WithSeed(seed))
		for i, s := range series.All() {
			if s.Altitude < 0 || s.Speed < 0 || s.Humidity < 0 {
				t.Fatalf("seed %d sample %d has negative value: alt=%v speed=%v humidity=%v",
					seed, i, s.Altitude, s.Speed, s.Humidity)
			}
		}
	}
}

func TestGenerate_PhaseSchedule(t *testing.T) {
	series := generate(t, WithSeed(1))

	prev := telemetry.PhaseStandby
	for i, s := range series.All() {
		if s.Phase < prev {
			t.Fatalf("phase went backwards at sample %d: %s after %s", i, s.Phase, prev)
		}
		prev = s.Phase
	}

	testCases := []struct {
		index int
		want  telemetry.Phase
	}{
		{index: 0, want: telemetry.PhaseStandby},
		{index: 19, want: telemetry.PhaseStandby},
		{index: 20, want: telemetry.PhaseArmed},
		{index: 29, want: telemetry.PhaseArmed},
		{index: 30, want: telemetry.PhaseFlight},
		{index: 80, want: telemetry.PhaseFlight},
		{index: 199, want: telemetry.PhaseFlight},
		{index: 200, want: telemetry.PhaseRecovery},
		{index: 349, want: telemetry.PhaseRecovery},
		{index: 350, want: telemetry.PhaseLanded},
	}

	for _, tc := range testCases {
		if got := series.Sample(tc.index).Phase; got != tc.want {
			t.Errorf("sample %d phase = %s, want %s", tc.index, got, tc.want)
		}
	}
}

func TestKinematics(t *testing.T) {
	testCases := []struct {
		name     string
		t        float64
		wantAlt  float64
		wantSpd  float64
		wantAcc  float64
		wantPhas telemetry.Phase
	}{
		{name: "standby", t: 1, wantPhas: telemetry.PhaseStandby},
		{name: "armed", t: 2.5, wantPhas: telemetry.PhaseArmed},
		{name: "liftoff", t: 3, wantAcc: 15, wantPhas: telemetry.PhaseFlight},
		{name: "boost", t: 5, wantAlt: 200, wantSpd: 200, wantAcc: 15 + 3*math.Sin(4), wantPhas: telemetry.PhaseFlight},
		{name: "burnout", t: 8, wantAlt: 1250, wantSpd: 500, wantAcc: -2, wantPhas: telemetry.PhaseFlight},
		{name: "coast", t: 8.5, wantAlt: 1242.5, wantSpd: 470, wantAcc: -2 - 0.5*math.Sin(0.5), wantPhas: telemetry.PhaseFlight},
		{name: "coast clamped", t: 19.9, wantAlt: 0, wantSpd: 0, wantAcc: -2 - 0.5*math.Sin(11.9), wantPhas: telemetry.PhaseFlight},
		{name: "recovery", t: 20, wantAlt: 400, wantSpd: 50, wantAcc: -1, wantPhas: telemetry.PhaseRecovery},
		{name: "recovery descent", t: 30, wantAlt: 300, wantSpd: 40, wantAcc: -1, wantPhas: telemetry.PhaseRecovery},
		{name: "landed", t: 35, wantPhas: telemetry.PhaseLanded},
		{name: "after landing", t: 60, wantPhas: telemetry.PhaseLanded},
	}

	const eps = 1e-9
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			k := Kinematics(tc.t)
			if k.Phase != tc.wantPhas {
				t.Errorf("phase = %s, want %s", k.Phase, tc.wantPhas)
			}
			if math.Abs(k.Altitude-tc.wantAlt) > eps {
				t.Errorf("altitude = %v, want %v", k.Altitude, tc.wantAlt)
			}
			if math.Abs(k.Speed-tc.wantSpd) > eps {
				t.Errorf("speed = %v, want %v", k.Speed, tc.wantSpd)
			}
			if math.Abs(k.Acceleration-tc.wantAcc) > eps {
				t.Errorf("acceleration = %v, want %v", k.Acceleration, tc.wantAcc)
			}
		})
	}
}

func TestGenerate_Reproducible(t *testing.T) {
	a := generate(t, WithSeed(1234))
	b := generate(t, WithSeed(1234))

	for i, s := range a.All() {
		other := b.Sample(i)
		if s.Accel != other.Accel || s.Gyro != other.Gyro || *s.Mag != *other.Mag ||
			s.Temperature != other.Temperature || s.Latitude != other.Latitude {
			t.Fatalf("sample %d differs between runs with the same seed", i)
		}
	}
}

func TestGenerate_NoiseBounds(t *testing.T) {
	testCases := []struct {
		name  string
		noise float64
	}{
		{name: "low", noise: 0},
		{name: "high", noise: 0.999999},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			series := generate(t, WithSource(constSource(tc.noise)))

			for i, s := range series.All() {
				k := Kinematics(s.Time)
				if k.Acceleration != 0 {
					if f := s.Accel.X / k.Acceleration; f < 0.8-1e-9 || f > 1.2 {
						t.Fatalf("sample %d accelX factor %v out of [0.8, 1.2]", i, f)
					}
					if f := s.Accel.Y / k.Acceleration; f < 0.9-1e-9 || f > 1.1 {
						t.Fatalf("sample %d accelY factor %v out of [0.9, 1.1]", i, f)
					}
				}
				if s.Accel.Z != k.Acceleration {
					t.Fatalf("sample %d accelZ = %v, want %v", i, s.Accel.Z, k.Acceleration)
				}

				limit := 5.0
				if s.Phase == telemetry.PhaseFlight {
					limit = 50
				}
				if math.Abs(s.Gyro.X) > limit || math.Abs(s.Gyro.Y) > limit || math.Abs(s.Gyro.Z) > limit {
					t.Fatalf("sample %d gyro %+v exceeds %v", i, s.Gyro, limit)
				}

				base := 22 - 0.01*s.Altitude
				if s.Temperature < base || s.Temperature > base+0.5 {
					t.Fatalf("sample %d temperature %v out of [%v, %v]", i, s.Temperature, base, base+0.5)
				}
				if s.Pressure != 101.3-0.01*s.Altitude {
					t.Fatalf("sample %d pressure %v", i, s.Pressure)
				}
				if d := s.GPSAltitude - s.Altitude; d < 0 || d > 5 {
					t.Fatalf("sample %d GPS altitude offset %v out of [0, 5]", i, d)
				}
				if d := s.Latitude - DefaultLatitude - 0.0001*s.Altitude; d < -1e-9 || d > 0.001+1e-9 {
					t.Fatalf("sample %d latitude jitter %v out of [0, 0.001]", i, d)
				}
				if s.Yaw < 0 || s.Yaw >= 360 {
					t.Fatalf("sample %d yaw %v out of [0, 360)", i, s.Yaw)
				}
				if s.Time <= LiftoffAt && s.HorizontalVelocity != 0 {
					t.Fatalf("sample %d horizontal velocity before liftoff: %v", i, s.HorizontalVelocity)
				}
				if s.HorizontalVelocity > 60 {
					t.Fatalf("sample %d horizontal velocity %v above 60", i, s.HorizontalVelocity)
				}
			}
		})
	}
}

func TestGenerate_Variant(t *testing.T) {
	suite := generate(t, WithSeed(5), WithVariant(VariantSensorSuite))
	compact := generate(t, WithSeed(5), WithVariant(VariantCompact))

	for i := range suite.Len() {
		if suite.Sample(i).Mag == nil {
			t.Fatalf("sensor suite sample %d has no magnetometer reading", i)
		}
		if compact.Sample(i).Mag != nil {
			t.Fatalf("compact sample %d has a magnetometer reading", i)
		}
	}
}

func TestGenerate_InvalidFlightID(t *testing.T) {
	for _, id := range []string{"", "   "} {
		if _, err := Generate(id); !errors.Is(err, telemetry.ErrInvalidFlightID) {
			t.Errorf("Generate(%q): expected ErrInvalidFlightID, got %v", id, err)
		}
	}
}

func TestGenerate_Origin(t *testing.T) {
	series := generate(t, WithSource(constSource(0)), WithOrigin(-33.9, 151.2))

	first := series.Sample(0)
	if first.Latitude != -33.9 || first.Longitude != 151.2 {
		t.Errorf("origin = (%v, %v), want (-33.9, 151.2)", first.Latitude, first.Longitude)
	}
}

func TestMaxAltitude(t *testing.T) {
	series := generate(t, WithSeed(1))
	if got := MaxAltitude(series); got != 1250 {
		t.Errorf("MaxAltitude() = %d, want 1250", got)
	}
}

func TestParseVariant(t *testing.T) {
	testCases := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{in: "sensor-suite", want: VariantSensorSuite},
		{in: "Compact", want: VariantCompact},
		{in: "figma", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseVariant(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("ParseVariant(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}
