package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roman-kulish/starpi-replay/internal/dashboard"
	"github.com/roman-kulish/starpi-replay/internal/flight"
	"github.com/roman-kulish/starpi-replay/internal/flightmodel"
	"github.com/roman-kulish/starpi-replay/internal/log"
	"github.com/roman-kulish/starpi-replay/internal/playback"
	"github.com/roman-kulish/starpi-replay/internal/projection"
)

const defaultReportEvery = 10 // ticks, one second of flight time

// Duration is a time.Duration written as "100ms" or "1s" in yaml
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration '%s': %w", value.Line, s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Config represents the main application configuration
type Config struct {
	Settings Settings          `yaml:"settings"`
	Flights  []flight.Entry    `yaml:"flights"`
	Replay   ReplayConfig      `yaml:"replay"`
	Charts   []dashboard.Chart `yaml:"charts"`
	Track    projection.Mode   `yaml:"track"`
}

// Settings represents global application settings
type Settings struct {
	LogLevel     string              `yaml:"logLevel"`
	LogFile      string              `yaml:"logFile"`
	Seed         *int64              `yaml:"seed"` // wall clock seeded when omitted
	Variant      flightmodel.Variant `yaml:"variant"`
	TickInterval Duration            `yaml:"tickInterval"`
}

// ReplayConfig represents the initial state of the replay session
type ReplayConfig struct {
	Flight      string `yaml:"flight"`
	Autoplay    bool   `yaml:"autoplay"`
	ReportEvery int    `yaml:"reportEvery"` // ticks between status lines, 0 disables them
}

// NewConfig returns a configuration replaying the built-in campaign
func NewConfig() *Config {
	return &Config{
		Settings: Settings{
			LogLevel:     "info",
			Variant:      flightmodel.VariantSensorSuite,
			TickInterval: Duration(playback.TickInterval),
		},
		Flights: append([]flight.Entry(nil), flight.DefaultEntries...),
		Replay:  ReplayConfig{ReportEvery: defaultReportEvery},
		Charts:  append([]dashboard.Chart(nil), dashboard.DefaultCharts...),
		Track:   projection.ModeReveal,
	}
}

// LoadConfig reads a yaml configuration file on top of the defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes yaml on top of the defaults and validates the result
func ParseConfig(data []byte) (*Config, error) {
	c := NewConfig()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports every problem found in the configuration at once
func (c *Config) Validate() error {
	var errs []error

	if _, err := log.ParseLevel(c.Settings.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Settings.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("settings.tickInterval must be positive, got %s", time.Duration(c.Settings.TickInterval)))
	}
	if len(c.Flights) == 0 {
		errs = append(errs, errors.New("flights: at least one flight is required"))
	}
	if c.Replay.ReportEvery < 0 {
		errs = append(errs, fmt.Errorf("replay.reportEvery must not be negative, got %d", c.Replay.ReportEvery))
	}

	if c.Replay.Flight != "" {
		found := false
		for _, e := range c.Flights {
			if e.ID == c.Replay.Flight {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, fmt.Errorf("replay.flight '%s' is not in the flight list", c.Replay.Flight))
		}
	}

	for i, ch := range c.Charts {
		if ch.Name == "" {
			errs = append(errs, fmt.Errorf("charts[%d]: name is required", i))
		}
	}

	return errors.Join(errs...)
}
