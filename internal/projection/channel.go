package projection

import (
	"fmt"
	"strings"

	"github.com/roman-kulish/starpi-replay/internal/telemetry"
)

// Channel is a scalar telemetry field that can be charted or gauged
type Channel uint8

const (
	Altitude Channel = iota
	Speed
	HorizontalVelocity
	AccelX
	AccelY
	AccelZ
	GyroX
	GyroY
	GyroZ
	MagX
	MagY
	MagZ
	Pitch
	Roll
	Yaw
	Temperature
	Pressure
	Humidity
	Latitude
	Longitude
	GPSAltitude
)

var channelNames = [...]string{
	Altitude:           "altitude",
	Speed:              "speed",
	HorizontalVelocity: "horizontalVelocity",
	AccelX:             "accelX",
	AccelY:             "accelY",
	AccelZ:             "accelZ",
	GyroX:              "gyroX",
	GyroY:              "gyroY",
	GyroZ:              "gyroZ",
	MagX:               "magX",
	MagY:               "magY",
	MagZ:               "magZ",
	Pitch:              "pitch",
	Roll:               "roll",
	Yaw:                "yaw",
	Temperature:        "temperature",
	Pressure:           "pressure",
	Humidity:           "humidity",
	Latitude:           "latitude",
	Longitude:          "longitude",
	GPSAltitude:        "gpsAltitude",
}

// Channels lists every scalar channel in column order
func Channels() []Channel {
	out := make([]Channel, len(channelNames))
	for i := range channelNames {
		out[i] = Channel(i)
	}
	return out
}

// GaugeChannels are sized once per flight so gauge scales never move during playback
var GaugeChannels = []Channel{Altitude, Speed, Temperature, Pressure, Humidity, AccelZ}

func (c Channel) String() string {
	if int(c) < len(channelNames) {
		return channelNames[c]
	}
	return fmt.Sprintf("channel(%d)", uint8(c))
}

// ParseChannel accepts the channel name case-insensitively
func ParseChannel(s string) (Channel, error) {
	s = strings.TrimSpace(s)
	for i, n := range channelNames {
		if strings.EqualFold(n, s) {
			return Channel(i), nil
		}
	}
	return 0, fmt.Errorf("projection.Channel: unknown channel '%s'", s)
}

func (c *Channel) UnmarshalText(text []byte) error {
	v, err := ParseChannel(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c Channel) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Value extracts the channel from s. It reports false when the sample does not
// carry the channel, e.g. magnetometer axes on a compact board.
func (c Channel) Value(s telemetry.Sample) (float64, bool) {
	switch c {
	case Altitude:
		return s.Altitude, true
	case Speed:
		return s.Speed, true
	case HorizontalVelocity:
		return s.HorizontalVelocity, true
	case AccelX:
		return s.Accel.X, true
	case AccelY:
		return s.Accel.Y, true
	case AccelZ:
		return s.Accel.Z, true
	case GyroX:
		return s.Gyro.X, true
	case GyroY:
		return s.Gyro.Y, true
	case GyroZ:
		return s.Gyro.Z, true
	case MagX, MagY, MagZ:
		if s.Mag == nil {
			return 0, false
		}
		switch c {
		case MagX:
			return s.Mag.X, true
		case MagY:
			return s.Mag.Y, true
		default:
			return s.Mag.Z, true
		}
	case Pitch:
		return s.Pitch, true
	case Roll:
		return s.Roll, true
	case Yaw:
		return s.Yaw, true
	case Temperature:
		return s.Temperature, true
	case Pressure:
		return s.Pressure, true
	case Humidity:
		return s.Humidity, true
	case Latitude:
		return s.Latitude, true
	case Longitude:
		return s.Longitude, true
	case GPSAltitude:
		return s.GPSAltitude, true
	}
	return 0, false
}

// VectorChannel is a three axis telemetry field
type VectorChannel uint8

const (
	Accel VectorChannel = iota
	Gyro
	Mag
)

var vectorNames = [...]string{
	Accel: "accel",
	Gyro:  "gyro",
	Mag:   "mag",
}

func (v VectorChannel) String() string {
	if int(v) < len(vectorNames) {
		return vectorNames[v]
	}
	return fmt.Sprintf("vector(%d)", uint8(v))
}

func ParseVectorChannel(s string) (VectorChannel, error) {
	s = strings.TrimSpace(s)
	for i, n := range vectorNames {
		if strings.EqualFold(n, s) {
			return VectorChannel(i), nil
		}
	}
	return 0, fmt.Errorf("projection.VectorChannel: unknown channel '%s'", s)
}

func (v VectorChannel) Value(s telemetry.Sample) (telemetry.Vector3, bool) {
	switch v {
	case Accel:
		return s.Accel, true
	case Gyro:
		return s.Gyro, true
	case Mag:
		if s.Mag != nil {
			return *s.Mag, true
		}
	}
	return telemetry.Vector3{}, false
}
