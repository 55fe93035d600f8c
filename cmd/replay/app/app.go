package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/roman-kulish/starpi-replay/internal/dashboard"
	"github.com/roman-kulish/starpi-replay/internal/flight"
	"github.com/roman-kulish/starpi-replay/internal/flightmodel"
	"github.com/roman-kulish/starpi-replay/internal/metrics"
	"github.com/roman-kulish/starpi-replay/internal/playback"
)

// Run replays flights with commands read from standard input
func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	return run(ctx, config, logger, os.Stdin, os.Stdout)
}

func run(ctx context.Context, config *Config, logger *slog.Logger, in io.Reader, out io.Writer) error {
	registry := prometheus.NewRegistry()
	defer logSummary(registry, logger)

	catalog, err := createCatalog(config, logger)
	if err != nil {
		return fmt.Errorf("failed to create flight catalog: %w", err)
	}

	w := &syncWriter{w: out}

	var console *Console
	finished := make(chan struct{}, 1)
	reportEvery := config.Replay.ReportEvery

	var ticks int
	observer := func(snap playback.Snapshot) {
		ticks++
		if !snap.Playing {
			console.report(snap)
			select {
			case finished <- struct{}{}:
			default:
			}
			return
		}
		if reportEvery > 0 && ticks%reportEvery == 0 {
			console.report(snap)
		}
	}

	controller := playback.NewController(
		playback.WithLogger(logger),
		playback.WithTickInterval(time.Duration(config.Settings.TickInterval)),
		playback.WithObserver(observer),
		playback.WithMetrics(metrics.NewPlayback(registry)))

	dash, err := dashboard.New(catalog, controller,
		dashboard.WithLogger(logger),
		dashboard.WithCharts(config.Charts),
		dashboard.WithTrackMode(config.Track))
	if err != nil {
		return fmt.Errorf("failed to create dashboard: %w", err)
	}
	defer dash.Pause()

	console = NewConsole(dash, w)

	if config.Replay.Flight != "" {
		if err = dash.SelectFlight(config.Replay.Flight); err != nil {
			return err
		}
	}

	console.Status()
	if config.Replay.Autoplay {
		if err = dash.Play(ctx); err != nil {
			return err
		}
	}

	lines := make(chan string)
	go readLines(ctx, in, lines)

	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-lines:
			if !ok {
				// input closed, let a running replay finish
				waitFinished(ctx, dash, finished)
				return nil
			}

			err = console.Execute(ctx, line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintf(w, "error: %s\n", err)
			}
		}
	}
}

func createCatalog(config *Config, logger *slog.Logger) (*flight.Catalog, error) {
	options := []func(g *flightmodel.Generator){
		flightmodel.WithVariant(config.Settings.Variant),
		flightmodel.WithLogger(logger),
	}
	if config.Settings.Seed != nil {
		options = append(options, flightmodel.WithSeed(*config.Settings.Seed))
	}

	return flight.NewCatalog(config.Flights,
		flight.WithGenerator(flightmodel.New(options...)),
		flight.WithLogger(logger))
}

func waitFinished(ctx context.Context, dash *dashboard.Dashboard, finished <-chan struct{}) {
	for dash.IsPlaying() {
		select {
		case <-finished:
		case <-ctx.Done():
			return
		}
	}
}

func readLines(ctx context.Context, in io.Reader, lines chan<- string) {
	defer close(lines)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
}

func logSummary(g prometheus.Gatherer, logger *slog.Logger) {
	attrs, err := metrics.LogAttrs(g)
	if err != nil {
		logger.Warn("failed to gather playback metrics", slog.String("error", err.Error()))
		return
	}
	logger.Info("playback summary", attrs...)
}
