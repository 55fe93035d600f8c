package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/roman-kulish/starpi-replay/internal/flight"
	"github.com/roman-kulish/starpi-replay/internal/flightmodel"
	"github.com/roman-kulish/starpi-replay/internal/projection"
)

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	if config.OutputFile == "" {
		return write(ctx, config, logger, os.Stdout)
	}

	f, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("creating output file '%s': %w", config.OutputFile, err)
	}
	defer f.Close()

	if err = write(ctx, config, logger, f); err != nil {
		return err
	}

	logger.Info("flight exported", slog.String("flight", config.FlightID), slog.String("path", config.OutputFile))
	return f.Close()
}

func write(ctx context.Context, config *Config, logger *slog.Logger, w io.Writer) error {
	options := []func(g *flightmodel.Generator){
		flightmodel.WithVariant(config.Variant),
		flightmodel.WithLogger(logger),
	}
	if config.Seed != nil {
		options = append(options, flightmodel.WithSeed(*config.Seed))
	}

	catalog, err := flight.NewCatalog(flight.DefaultEntries,
		flight.WithGenerator(flightmodel.New(options...)),
		flight.WithLogger(logger))
	if err != nil {
		return err
	}

	record, err := catalog.Lookup(config.FlightID)
	if err != nil {
		return err
	}

	if err = ctx.Err(); err != nil {
		return err
	}

	if config.Verbose {
		logger.Info("flight generated",
			slog.String("flight", record.ID),
			slog.String("variant", config.Variant.String()),
			slog.Int("samples", record.Series.Len()),
			slog.Int("maxAltitude", record.MaxAltitude))
	}

	switch config.Format {
	case FormatCSV:
		return WriteCSV(w, record.Series)

	default:
		projector, err := projection.NewProjector(len(projection.GaugeChannels))
		if err != nil {
			return err
		}
		return WriteSummary(w, record, projector)
	}
}
