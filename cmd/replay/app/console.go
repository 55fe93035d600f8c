package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/roman-kulish/starpi-replay/internal/dashboard"
	"github.com/roman-kulish/starpi-replay/internal/format"
	"github.com/roman-kulish/starpi-replay/internal/playback"
	"github.com/roman-kulish/starpi-replay/internal/projection"
)

// errQuit ends the command loop
var errQuit = errors.New("quit")

const consoleHelp = `commands:
  play | pause | toggle     control playback
  seek <seconds>            move the cursor
  back | fwd                skip 5 seconds
  select <flight>           replay another flight
  list                      show the flight catalog
  status                    show the current sample
  gauges                    show gauge readings
  milestones                show the timeline markers
  quit                      exit`

// syncWriter serialises writes from the console and the playback observer
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.w.Write(p)
}

// Console executes replay commands against a dashboard
type Console struct {
	dash *dashboard.Dashboard
	out  io.Writer
}

func NewConsole(dash *dashboard.Dashboard, out io.Writer) *Console {
	return &Console{dash: dash, out: out}
}

// Execute runs one command line. It returns errQuit when the session should end.
func (c *Console) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "play":
		return c.dash.Play(ctx)

	case "pause":
		c.dash.Pause()

	case "toggle", "space":
		return c.dash.Toggle(ctx)

	case "seek":
		if len(args) != 1 {
			return errors.New("usage: seek <seconds>")
		}
		t, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid time '%s'", args[0])
		}
		c.dash.Seek(t)
		c.Status()

	case "back":
		c.dash.SkipBack()
		c.Status()

	case "fwd", "forward":
		c.dash.SkipForward()
		c.Status()

	case "select":
		if len(args) != 1 {
			return errors.New("usage: select <flight>")
		}
		if err := c.dash.SelectFlight(args[0]); err != nil {
			return err
		}
		c.Status()

	case "list":
		return c.List()

	case "status":
		c.Status()

	case "gauges":
		return c.Gauges()

	case "milestones":
		return c.Milestones()

	case "help":
		fmt.Fprintln(c.out, consoleHelp)

	case "quit", "exit":
		return errQuit

	default:
		return fmt.Errorf("unknown command '%s', try help", cmd)
	}

	return nil
}

// List prints the catalog and marks the selected flight
func (c *Console) List() error {
	current, err := c.dash.Flight()
	if err != nil {
		return err
	}

	selected := current.ID
	for _, r := range c.dash.Flights() {
		marker := " "
		if r.ID == selected {
			marker = "*"
		}
		fmt.Fprintf(c.out, "%s %s  %s %s  %-7s  max %s  %s\n",
			marker, r.ID, r.Date, r.Time, r.Status,
			format.Meters(r.MaxAltitude), format.PlaybackClock(r.Duration))
	}
	return nil
}

// Status prints the sample under the cursor
func (c *Console) Status() {
	c.report(c.dash.Snapshot())
}

// report prints the sample the snapshot points at, so every field of the line
// belongs to the same instant
func (c *Console) report(snap playback.Snapshot) {
	s, err := c.dash.SampleAt(snap)
	if err != nil {
		fmt.Fprintf(c.out, "%s: %s\n", snap.FlightID, err)
		return
	}

	state := "paused"
	if snap.Playing {
		state = "playing"
	}
	cameras := "off"
	if projection.CamerasActive(s.Phase) {
		cameras = "rec"
	}

	fmt.Fprintf(c.out, "[%s] %s / %s %s %-8s alt %s spd %s %s %s cam %s %s\n",
		snap.FlightID,
		format.PlaybackClock(snap.Time), format.PlaybackClock(snap.Duration),
		format.MissionClock(snap.Time),
		strings.ToUpper(s.Phase.String()),
		format.Altitude(s.Altitude),
		format.Quantity(s.Speed, 1, "m/s"),
		format.Latitude(s.Latitude), format.Longitude(s.Longitude),
		cameras, state)
}

// Gauges prints every gauge reading at the cursor
func (c *Console) Gauges() error {
	readings, err := c.dash.Gauges()
	if err != nil {
		return err
	}

	for _, ch := range projection.GaugeChannels {
		r := readings[ch]
		fmt.Fprintf(c.out, "  %-12s %10s  %3.0f%%  %s\n",
			ch, humanize.CommafWithDigits(r.Value, 2), r.Percent*100, r.Level)
	}
	return nil
}

func (c *Console) Milestones() error {
	milestones, err := c.dash.Milestones()
	if err != nil {
		return err
	}

	for i, m := range milestones {
		fmt.Fprintf(c.out, "  %s %-9s %s\n", humanize.Ordinal(i+1), m.Name, format.MissionClock(m.Time))
	}
	return nil
}
