package format

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// clockEpsilon keeps a cursor sitting on the 0.1s grid from rounding down a digit
const clockEpsilon = 1e-9

// PlaybackClock formats seconds as mm:ss.d, the timeline scrubber label
func PlaybackClock(seconds float64) string {
	tenths := int(math.Floor(math.Max(0, seconds)*10 + clockEpsilon))
	return fmt.Sprintf("%02d:%02d.%d", tenths/600, tenths/10%60, tenths%10)
}

// MissionClock formats seconds as T+mm:ss:cc with centiseconds
func MissionClock(seconds float64) string {
	cs := int(math.Floor(math.Max(0, seconds)*100 + clockEpsilon))
	return fmt.Sprintf("T+%02d:%02d:%02d", cs/6000, cs/100%60, cs%100)
}

// Latitude formats degrees as degrees and decimal minutes, e.g. 37° 46.4940' N
func Latitude(deg float64) string {
	return coordinate(deg, "N", "S")
}

// Longitude formats degrees as degrees and decimal minutes, e.g. 122° 25.1640' W
func Longitude(deg float64) string {
	return coordinate(deg, "E", "W")
}

func coordinate(v float64, positive, negative string) string {
	dir := positive
	if v < 0 {
		dir = negative
	}

	abs := math.Abs(v)
	degrees := math.Floor(abs)
	return fmt.Sprintf("%d° %.4f' %s", int(degrees), (abs-degrees)*60, dir)
}

// Altitude formats meters with thousands separators, e.g. 1,250.0 m
func Altitude(m float64) string {
	return humanize.FormatFloat("#,###.#", m) + " m"
}

// Pressure formats a kPa reading with an SI prefix, e.g. 101.3 kPa
func Pressure(kPa float64) string {
	return humanize.SIWithDigits(kPa*1000, 1, "Pa")
}

// Quantity formats a value with a fixed number of decimals and a unit
func Quantity(v float64, decimals int, unit string) string {
	return humanize.CommafWithDigits(roundTo(v, decimals), decimals) + " " + unit
}

// Meters formats a whole number of meters, e.g. the flight summary max altitude
func Meters(m int) string {
	return humanize.Comma(int64(m)) + " m"
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
