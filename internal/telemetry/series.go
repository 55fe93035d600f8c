package telemetry

import (
	"fmt"
	"iter"
	"math"
)

const (
	// Step is the fixed sampling interval in seconds
	Step = 0.1

	// timeScale sets the grid every sample time and cursor value is rounded to (1µs)
	timeScale = 1e6

	// indexTolerance keeps a time sitting on the sampling grid from flooring
	// to the previous index because of binary float error, e.g. 0.3/0.1
	indexTolerance = 1e-9
)

// RoundTime snaps t to the microsecond grid used for sample times and the playback cursor.
func RoundTime(t float64) float64 {
	return math.Round(t*timeScale) / timeScale
}

// Series is the immutable, evenly spaced sample sequence of a single flight.
type Series struct {
	flightID string
	step     float64
	samples  []Sample
}

// NewSeries takes ownership of a copy of samples.
//
// Parameters:
//   - flightID: identifier of the flight owning the series
//   - step: sampling interval in seconds, must be positive
//   - samples: samples ordered by time, the first one at t=0
//
// Returns:
//   - *Series: the read-only series
//   - error: ErrInvalidSeries when the samples are not evenly spaced
func NewSeries(flightID string, step float64, samples []Sample) (*Series, error) {
	if step <= 0 || math.IsNaN(step) {
		return nil, fmt.Errorf("%w: step must be positive: %v given", ErrInvalidSeries, step)
	}

	for i, s := range samples {
		want := RoundTime(float64(i) * step)
		if math.Abs(s.Time-want) > 1/timeScale {
			return nil, fmt.Errorf("%w: sample %d at t=%v, expected t=%v", ErrInvalidSeries, i, s.Time, want)
		}
	}

	return &Series{
		flightID: flightID,
		step:     step,
		samples:  append([]Sample(nil), samples...),
	}, nil
}

func (s *Series) FlightID() string {
	return s.flightID
}

func (s *Series) Step() float64 {
	return s.step
}

func (s *Series) Len() int {
	return len(s.samples)
}

// Duration is the time of the last sample, zero for an empty series.
func (s *Series) Duration() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	return s.samples[len(s.samples)-1].Time
}

// Sample returns the i-th sample; it panics when i is out of range.
func (s *Series) Sample(i int) Sample {
	return s.samples[i]
}

// IndexAt maps t to floor(t/step) clamped to the valid index range.
func (s *Series) IndexAt(t float64) (int, error) {
	if len(s.samples) == 0 {
		return 0, ErrEmptySeries
	}
	return s.index(t), nil
}

func (s *Series) index(t float64) int {
	if math.IsNaN(t) || t <= 0 {
		return 0
	}

	last := len(s.samples) - 1
	f := math.Floor(t/s.step + indexTolerance)
	if f >= float64(last) {
		return last
	}
	return int(f)
}

// At returns the sample the cursor at t points to. It never interpolates.
func (s *Series) At(t float64) (Sample, error) {
	if len(s.samples) == 0 {
		return Sample{}, fmt.Errorf("%w: flight '%s'", ErrEmptySeries, s.flightID)
	}
	return s.samples[s.index(t)], nil
}

// History returns the prefix of samples with time <= t.
func (s *Series) History(t float64) View {
	if len(s.samples) == 0 || math.IsNaN(t) || t < 0 {
		return View{}
	}
	return View{samples: s.samples[:s.index(t)+1]}
}

// Full returns the whole series as a view.
func (s *Series) Full() View {
	return View{samples: s.samples}
}

// All iterates over every sample with its index.
func (s *Series) All() iter.Seq2[int, Sample] {
	return s.Full().All()
}

// View is a read-only window over a series. It shares the series storage and
// never copies samples.
type View struct {
	samples []Sample
}

func (v View) Len() int {
	return len(v.samples)
}

func (v View) At(i int) Sample {
	return v.samples[i]
}

// Last returns the final sample of the view, false when the view is empty.
func (v View) Last() (Sample, bool) {
	if len(v.samples) == 0 {
		return Sample{}, false
	}
	return v.samples[len(v.samples)-1], true
}

func (v View) All() iter.Seq2[int, Sample] {
	return func(yield func(int, Sample) bool) {
		for i, s := range v.samples {
			if !yield(i, s) {
				return
			}
		}
	}
}
