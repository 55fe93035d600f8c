package flightmodel

import (
	"math"

	"github.com/roman-kulish/starpi-replay/internal/telemetry"
)

// Phase boundaries in seconds from the start of the recording.
const (
	ArmedAt    = 2.0
	LiftoffAt  = 3.0
	BurnoutAt  = 8.0
	RecoveryAt = 20.0
	LandedAt   = 35.0
)

// Kinematic is the noiseless state of the rocket at a given time.
type Kinematic struct {
	Phase        telemetry.Phase
	Altitude     float64 // m
	Speed        float64 // m/s
	Acceleration float64 // m/s²
}

// Phase returns the flight phase scheduled at t.
func Phase(t float64) telemetry.Phase {
	switch {
	case t < ArmedAt:
		return telemetry.PhaseStandby
	case t < LiftoffAt:
		return telemetry.PhaseArmed
	case t < RecoveryAt:
		return telemetry.PhaseFlight
	case t < LandedAt:
		return telemetry.PhaseRecovery
	default:
		return telemetry.PhaseLanded
	}
}

// Kinematics evaluates the phase schedule at t. Altitude and speed are never negative.
func Kinematics(t float64) Kinematic {
	k := Kinematic{Phase: Phase(t)}

	switch {
	case k.Phase != telemetry.PhaseFlight && k.Phase != telemetry.PhaseRecovery:
		// standby, armed and landed carry no motion

	case t < BurnoutAt: // boost
		ft := t - LiftoffAt
		k.Altitude = 50 * ft * ft
		k.Speed = 100 * ft
		k.Acceleration = 15 + 3*math.Sin(2*ft)

	case t < RecoveryAt: // coast
		ft := t - BurnoutAt
		k.Altitude = 1250 - 30*ft*ft
		k.Speed = 500 - 60*ft
		k.Acceleration = -2 - 0.5*math.Sin(ft)

	default: // under recovery device
		ft := t - RecoveryAt
		k.Altitude = 400 - 10*ft
		k.Speed = 50 - ft
		k.Acceleration = -1
	}

	k.Altitude = math.Max(0, k.Altitude)
	k.Speed = math.Max(0, k.Speed)
	return k
}
