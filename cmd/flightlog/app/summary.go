package app

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/roman-kulish/starpi-replay/internal/flight"
	"github.com/roman-kulish/starpi-replay/internal/format"
	"github.com/roman-kulish/starpi-replay/internal/projection"
)

var gaugeUnits = map[projection.Channel]string{
	projection.Altitude:    "m",
	projection.Speed:       "m/s",
	projection.Temperature: "°C",
	projection.Pressure:    "kPa",
	projection.Humidity:    "%",
	projection.AccelZ:      "m/s²",
}

// WriteSummary prints the flight card of a record: catalog data, milestones
// and the range of every gauge
func WriteSummary(w io.Writer, r *flight.Record, projector *projection.Projector) error {
	started, err := r.StartedAt(time.UTC)
	if err != nil {
		return err
	}

	ranges, err := projector.Ranges(r.Series)
	if err != nil {
		return err
	}

	first := r.Series.Sample(0)

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", strings.ToUpper(r.ID), r.Status)
	fmt.Fprintf(&b, "  launched     %s (%s)\n", started.Format(time.DateTime), humanize.Time(started))
	fmt.Fprintf(&b, "  site         %s %s\n", format.Latitude(first.Latitude), format.Longitude(first.Longitude))
	fmt.Fprintf(&b, "  duration     %s, %s samples\n", format.PlaybackClock(r.Duration), humanize.Comma(int64(r.Series.Len())))
	fmt.Fprintf(&b, "  apogee       %s\n", format.Meters(r.MaxAltitude))
	fmt.Fprintf(&b, "  cameras      %s\n", strings.Join(r.Cameras, ", "))

	b.WriteString("milestones\n")
	for i, m := range projection.Milestones(r.Series) {
		fmt.Fprintf(&b, "  %-4s %-10s %s\n", humanize.Ordinal(i+1), m.Name, format.MissionClock(m.Time))
	}

	b.WriteString("ranges\n")
	for _, ch := range projection.GaugeChannels {
		rng := ranges[ch]
		fmt.Fprintf(&b, "  %-12s %s .. %s %s\n", ch,
			humanize.Commaf(rng.Min), humanize.Commaf(rng.Max), gaugeUnits[ch])
	}

	_, err = io.WriteString(w, b.String())
	return err
}
