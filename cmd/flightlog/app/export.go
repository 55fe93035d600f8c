package app

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/roman-kulish/starpi-replay/internal/projection"
	"github.com/roman-kulish/starpi-replay/internal/telemetry"
)

// Header returns the CSV columns: time, phase, then every channel in order
func Header() []string {
	channels := projection.Channels()

	header := make([]string, 0, len(channels)+2)
	header = append(header, "time", "phase")
	for _, ch := range channels {
		header = append(header, ch.String())
	}
	return header
}

// WriteCSV writes one row per sample. Channels a sample does not carry are left empty.
func WriteCSV(w io.Writer, series *telemetry.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return err
	}

	channels := projection.Channels()
	row := make([]string, len(channels)+2)
	for _, s := range series.All() {
		row[0] = strconv.FormatFloat(s.Time, 'f', 1, 64)
		row[1] = s.Phase.String()
		for i, ch := range channels {
			row[i+2] = ""
			if v, ok := ch.Value(s); ok {
				row[i+2] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
