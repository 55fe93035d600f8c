package flight

import (
	"fmt"
	"strings"
	"time"

	"github.com/roman-kulish/starpi-replay/internal/telemetry"
)

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"

	dateLayout = time.DateOnly
	timeLayout = time.TimeOnly
)

// Status is the recovery outcome of a flight
type Status string

var validStatuses = map[Status]struct{}{
	StatusSuccess: {},
	StatusPartial: {},
	StatusFailed:  {},
}

func (s Status) Validate() error {
	if _, ok := validStatuses[s]; !ok {
		return fmt.Errorf("flight.Status: invalid status '%s'", s)
	}
	return nil
}

// DefaultCameras are the onboard and ground cameras fitted to every airframe
var DefaultCameras = []string{"Nose Cone", "Payload Bay", "Fin Camera", "Ground View"}

// Entry is the catalog description of a flight before its telemetry is generated
type Entry struct {
	ID      string   `yaml:"id"`
	Date    string   `yaml:"date"` // 2006-01-02
	Time    string   `yaml:"time"` // 15:04:05
	Status  Status   `yaml:"status"`
	Cameras []string `yaml:"cameras"`
}

// Validate checks the entry and fills in defaults for optional fields
func (e *Entry) Validate() error {
	e.ID = strings.TrimSpace(e.ID)
	if e.ID == "" {
		return fmt.Errorf("%w: flight.Entry: id is required", telemetry.ErrInvalidFlightID)
	}
	if _, err := time.Parse(dateLayout, e.Date); err != nil {
		return fmt.Errorf("flight.Entry '%s': invalid date '%s': %w", e.ID, e.Date, err)
	}
	if _, err := time.Parse(timeLayout, e.Time); err != nil {
		return fmt.Errorf("flight.Entry '%s': invalid time '%s': %w", e.ID, e.Time, err)
	}

	if e.Status == "" {
		e.Status = StatusSuccess
	}
	if err := e.Status.Validate(); err != nil {
		return fmt.Errorf("flight.Entry '%s': %w", e.ID, err)
	}

	if len(e.Cameras) == 0 {
		e.Cameras = append([]string(nil), DefaultCameras...)
	}

	return nil
}

// Record is a catalogued flight together with the telemetry series it owns
type Record struct {
	ID          string
	Date        string
	Time        string
	Status      Status
	Cameras     []string
	MaxAltitude int     // Highest sample, rounded up to whole meters
	Duration    float64 // Recording length in seconds
	Series      *telemetry.Series
}

// StartedAt combines the record date and time in the given location
func (r *Record) StartedAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(time.DateTime, r.Date+" "+r.Time, loc)
}
