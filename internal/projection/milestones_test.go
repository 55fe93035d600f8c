package projection

import (
	"testing"

	"github.com/roman-kulish/starpi-replay/internal/telemetry"
)

func TestMilestones(t *testing.T) {
	series := newTestSeries(t)

	want := []Milestone{
		{Name: MilestoneLiftoff, Time: 3.0},
		{Name: MilestoneMaxAccel, Time: 3.8},
		{Name: MilestoneApogee, Time: 8.0},
		{Name: MilestoneLanding, Time: 35.0},
	}

	got := Milestones(series)
	if len(got) != len(want) {
		t.Fatalf("got %d milestones, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("milestone %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMilestones_Empty(t *testing.T) {
	empty, err := telemetry.NewSeries("empty", telemetry.Step, nil)
	if err != nil {
		t.Fatalf("Failed to create series: %v", err)
	}
	if got := Milestones(empty); got != nil {
		t.Errorf("Milestones(empty) = %+v, want nil", got)
	}
}

func TestCamerasActive(t *testing.T) {
	testCases := []struct {
		phase telemetry.Phase
		want  bool
	}{
		{phase: telemetry.PhaseStandby, want: false},
		{phase: telemetry.PhaseArmed, want: false},
		{phase: telemetry.PhaseFlight, want: true},
		{phase: telemetry.PhaseRecovery, want: true},
		{phase: telemetry.PhaseLanded, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.phase.String(), func(t *testing.T) {
			if got := CamerasActive(tc.phase); got != tc.want {
				t.Errorf("CamerasActive(%s) = %v, want %v", tc.phase, got, tc.want)
			}
		})
	}
}
