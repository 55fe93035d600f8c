package telemetry

import (
	"fmt"
	"strings"
)

// Phase is the flight lifecycle state of a sample. Values are ordered, a later
// phase never precedes an earlier one within a series.
type Phase uint8

const (
	PhaseStandby Phase = iota
	PhaseArmed
	PhaseFlight
	PhaseRecovery
	PhaseLanded
)

var phaseNames = map[Phase]string{
	PhaseStandby:  "standby",
	PhaseArmed:    "armed",
	PhaseFlight:   "flight",
	PhaseRecovery: "recovery",
	PhaseLanded:   "landed",
}

func (p Phase) String() string {
	if n, ok := phaseNames[p]; ok {
		return n
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// ParsePhase converts the text form back to a Phase, case-insensitive.
func ParsePhase(s string) (Phase, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p, n := range phaseNames {
		if n == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("telemetry.Phase: unknown phase '%s'", s)
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	v, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Vector3 is a three axis reading.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Sample is one instant of simulated flight telemetry
type Sample struct {
	Time  float64 `json:"time"`  // Offset from the start of the recording in seconds
	Phase Phase   `json:"phase"` // Flight phase at Time

	Altitude           float64 `json:"altitude"`           // Barometric altitude in meters
	Speed              float64 `json:"speed"`              // Vertical speed in m/s
	HorizontalVelocity float64 `json:"horizontalVelocity"` // Horizontal speed in m/s

	Accel Vector3  `json:"accel"`         // MPU6050 acceleration in m/s²
	Gyro  Vector3  `json:"gyro"`          // MPU6050 angular rate in °/s
	Mag   *Vector3 `json:"mag,omitempty"` // HMC5883L magnetic field in µT, nil when not fitted

	Pitch float64 `json:"pitch"` // Pitch angle in degrees
	Roll  float64 `json:"roll"`  // Roll angle in degrees
	Yaw   float64 `json:"yaw"`   // Yaw angle in degrees, [0, 360)

	Temperature float64 `json:"temperature"` // BME280 temperature in °C
	Pressure    float64 `json:"pressure"`    // BME280 pressure in kPa
	Humidity    float64 `json:"humidity"`    // BME280 relative humidity in %

	Latitude    float64 `json:"latitude"`    // GPS latitude in degrees
	Longitude   float64 `json:"longitude"`   // GPS longitude in degrees
	GPSAltitude float64 `json:"gpsAltitude"` // GPS altitude in meters
}
