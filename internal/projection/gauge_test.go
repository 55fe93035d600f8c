package projection

import (
	"math"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestGauge_Read(t *testing.T) {
	testCases := []struct {
		name        string
		gauge       Gauge
		value       float64
		wantValue   float64
		wantPercent float64
		wantAngle   float64
		wantLevel   Level
	}{
		{name: "minimum", gauge: Gauge{Min: 0, Max: 600}, value: 0, wantValue: 0, wantPercent: 0, wantAngle: -135},
		{name: "middle", gauge: Gauge{Min: -20, Max: 20}, value: 0, wantValue: 0, wantPercent: 0.5, wantAngle: 0},
		{name: "maximum", gauge: Gauge{Min: 0, Max: 600}, value: 600, wantValue: 600, wantPercent: 1, wantAngle: 135},
		{name: "below range clamps", gauge: Gauge{Min: 0, Max: 100}, value: -10, wantValue: 0, wantPercent: 0, wantAngle: -135},
		{name: "above range clamps", gauge: Gauge{Min: 0, Max: 100}, value: 150, wantValue: 100, wantPercent: 1, wantAngle: 135},
		{name: "flat range", gauge: Gauge{Min: 5, Max: 5}, value: 5, wantValue: 5, wantPercent: 0, wantAngle: -135},
		{
			name:  "warning",
			gauge: Gauge{Min: 0, Max: 100, Warning: ptr(60), Danger: ptr(90)},
			value: 75, wantValue: 75, wantPercent: 0.75, wantAngle: 67.5, wantLevel: LevelWarning,
		},
		{
			name:  "danger beyond range",
			gauge: Gauge{Min: 0, Max: 100, Warning: ptr(60), Danger: ptr(90)},
			value: 120, wantValue: 100, wantPercent: 1, wantAngle: 135, wantLevel: LevelDanger,
		},
	}

	const eps = 1e-9
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := tc.gauge.Read(tc.value)
			if math.Abs(r.Value-tc.wantValue) > eps {
				t.Errorf("value = %v, want %v", r.Value, tc.wantValue)
			}
			if math.Abs(r.Percent-tc.wantPercent) > eps {
				t.Errorf("percent = %v, want %v", r.Percent, tc.wantPercent)
			}
			if math.Abs(r.Angle-tc.wantAngle) > eps {
				t.Errorf("angle = %v, want %v", r.Angle, tc.wantAngle)
			}
			if r.Level != tc.wantLevel {
				t.Errorf("level = %s, want %s", r.Level, tc.wantLevel)
			}
		})
	}
}

func TestNewGauge(t *testing.T) {
	g := NewGauge(Range{Min: -3, Max: 18})
	if g.Min != -3 || g.Max != 18 || g.Warning != nil || g.Danger != nil {
		t.Errorf("NewGauge = %+v", g)
	}
}
