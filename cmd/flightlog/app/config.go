package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/roman-kulish/starpi-replay/internal/flightmodel"
)

const (
	FormatCSV     = "csv"
	FormatSummary = "summary"
)

type OutputFormat string

type Config struct {
	FlightID   string
	Seed       *int64
	Variant    flightmodel.Variant
	Format     OutputFormat
	OutputFile string // stdout when empty
	Verbose    bool
}

var validOutputFormats = map[OutputFormat]struct{}{
	FormatCSV:     {},
	FormatSummary: {},
}

func NewConfig() *Config {
	return &Config{
		FlightID: "flight-001",
		Variant:  flightmodel.VariantSensorSuite,
		Format:   FormatSummary,
	}
}

func NewConfigFromCLI() (*Config, error) {
	return NewConfigFromArgs(os.Args[1:], os.Stderr)
}

// NewConfigFromArgs parses command line arguments without the program name
func NewConfigFromArgs(args []string, output io.Writer) (*Config, error) {
	c := NewConfig()

	fs := flag.NewFlagSet("flightlog", flag.ContinueOnError)
	fs.SetOutput(output)

	var outputFormat, variant string
	var seed int64
	fs.StringVar(&c.FlightID, "f", c.FlightID, "Flight ID")
	fs.Int64Var(&seed, "seed", 0, "Seed of the sensor noise, wall clock seeded when omitted")
	fs.StringVar(&variant, "variant", c.Variant.String(), "Avionics board. [sensor-suite, compact]")
	fs.StringVar(&outputFormat, "format", string(c.Format), "Output format. [csv, summary]")
	fs.StringVar(&c.OutputFile, "o", "", "Path to the output file, stdout when omitted")
	fs.BoolVar(&c.Verbose, "verbose", false, "Enable more verbose output")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			c.Seed = &seed
		}
	})

	outputFormat = strings.ToLower(outputFormat)

	var err error
	if strings.TrimSpace(c.FlightID) == "" {
		err = errors.New("flight id is required")
	} else if _, ok := validOutputFormats[OutputFormat(outputFormat)]; !ok {
		err = fmt.Errorf("invalid output format: %s", outputFormat)
	} else {
		c.Variant, err = flightmodel.ParseVariant(variant)
	}

	if err != nil {
		fs.Usage()
		return nil, err
	}

	c.Format = OutputFormat(outputFormat)
	return c, nil
}
