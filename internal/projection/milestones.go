package projection

import (
	"math"

	"github.com/roman-kulish/starpi-replay/internal/telemetry"
)

const (
	MilestoneLiftoff  = "Liftoff"
	MilestoneMaxAccel = "Max Accel"
	MilestoneApogee   = "Apogee"
	MilestoneLanding  = "Landing"
)

// Milestone marks a notable instant on the replay timeline
type Milestone struct {
	Name string  `json:"name"`
	Time float64 `json:"time"`
}

// Milestones finds liftoff, peak acceleration, apogee and landing in a series.
// A flight that never lands reports landing at the end of the recording.
func Milestones(series *telemetry.Series) []Milestone {
	if series.Len() == 0 {
		return nil
	}

	liftoff, landing := math.NaN(), math.NaN()
	maxAccel, apogee := series.Sample(0), series.Sample(0)

	for _, s := range series.All() {
		if math.IsNaN(liftoff) && s.Phase == telemetry.PhaseFlight {
			liftoff = s.Time
		}
		if math.IsNaN(landing) && s.Phase == telemetry.PhaseLanded {
			landing = s.Time
		}
		if s.Accel.Z > maxAccel.Accel.Z {
			maxAccel = s
		}
		if s.Altitude > apogee.Altitude {
			apogee = s
		}
	}

	if math.IsNaN(landing) {
		landing = series.Duration()
	}

	out := make([]Milestone, 0, 4)
	if !math.IsNaN(liftoff) {
		out = append(out, Milestone{Name: MilestoneLiftoff, Time: liftoff})
	}
	out = append(out,
		Milestone{Name: MilestoneMaxAccel, Time: maxAccel.Time},
		Milestone{Name: MilestoneApogee, Time: apogee.Time},
		Milestone{Name: MilestoneLanding, Time: landing},
	)
	return out
}

// CamerasActive reports whether the onboard cameras record in the given phase
func CamerasActive(p telemetry.Phase) bool {
	return p == telemetry.PhaseFlight || p == telemetry.PhaseRecovery
}
