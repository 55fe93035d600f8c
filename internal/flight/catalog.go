package flight

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roman-kulish/starpi-replay/internal/flightmodel"
	"github.com/roman-kulish/starpi-replay/internal/telemetry"
)

// DefaultEntries is the built-in test campaign
var DefaultEntries = []Entry{
	{ID: "flight-001", Date: "2024-12-20", Time: "14:32:15"},
	{ID: "flight-002", Date: "2024-12-15", Time: "10:15:42"},
	{ID: "flight-003", Date: "2024-12-10", Time: "16:45:30"},
	{ID: "flight-004", Date: "2024-12-05", Time: "09:20:18"},
	{ID: "flight-005", Date: "2024-11-28", Time: "13:55:47"},
	{ID: "flight-006", Date: "2024-11-22", Time: "11:10:25"},
}

// WithLogger sets the logger for the catalog
func WithLogger(logger *slog.Logger) func(c *Catalog) {
	return func(c *Catalog) {
		c.logger = logger.With(slog.String("component", "catalog"))
	}
}

// WithGenerator sets the flight model used to produce the series
func WithGenerator(g *flightmodel.Generator) func(c *Catalog) {
	return func(c *Catalog) {
		c.generator = g
	}
}

// Catalog is the fixed, ordered set of flights available for replay
type Catalog struct {
	records   []*Record
	byID      map[string]*Record
	generator *flightmodel.Generator
	logger    *slog.Logger
}

// NewCatalog validates the entries and generates the telemetry of every flight.
// The catalog is immutable afterwards.
func NewCatalog(entries []Entry, options ...func(c *Catalog)) (*Catalog, error) {
	c := Catalog{
		byID:   make(map[string]*Record, len(entries)),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&c)
	}

	if c.generator == nil {
		c.generator = flightmodel.New()
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("flight.Catalog: no flights given")
	}

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if _, ok := c.byID[e.ID]; ok {
			return nil, fmt.Errorf("flight.Catalog: duplicate flight id '%s'", e.ID)
		}

		series, err := c.generator.Generate(e.ID)
		if err != nil {
			return nil, err
		}

		r := &Record{
			ID:          e.ID,
			Date:        e.Date,
			Time:        e.Time,
			Status:      e.Status,
			Cameras:     e.Cameras,
			MaxAltitude: flightmodel.MaxAltitude(series),
			Duration:    series.Duration(),
			Series:      series,
		}

		c.records = append(c.records, r)
		c.byID[r.ID] = r
	}

	c.logger.Info("flight catalog ready",
		slog.Int("flights", len(c.records)),
		slog.String("variant", c.generator.Variant().String()))

	return &c, nil
}

// Lookup returns the record with the given id
func (c *Catalog) Lookup(id string) (*Record, error) {
	r, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: '%s' is not in the catalog", telemetry.ErrInvalidFlightID, id)
	}
	return r, nil
}

// List returns the records in catalog order
func (c *Catalog) List() []*Record {
	return append([]*Record(nil), c.records...)
}

// First returns the record selected when nothing else was asked for
func (c *Catalog) First() *Record {
	return c.records[0]
}

func (c *Catalog) Len() int {
	return len(c.records)
}
