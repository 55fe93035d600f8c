package metrics

import (
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "starpi"

// Playback counts what the playback controller does. A nil *Playback is valid
// and records nothing.
type Playback struct {
	ticks       prometheus.Counter
	seeks       prometheus.Counter
	selections  prometheus.Counter
	completions prometheus.Counter
	transitions *prometheus.CounterVec
	cursor      prometheus.Gauge
}

// NewPlayback creates the playback collectors and registers them with reg
func NewPlayback(reg prometheus.Registerer) *Playback {
	p := &Playback{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playback_ticks_total",
			Help:      "Total number of timer ticks that advanced the cursor.",
		}),
		seeks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playback_seeks_total",
			Help:      "Total number of manual cursor moves, including skips.",
		}),
		selections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playback_flight_selections_total",
			Help:      "Total number of flight selections.",
		}),
		completions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playback_completions_total",
			Help:      "Total number of replays that reached the end of the flight.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playback_transitions_total",
			Help:      "Total number of play state transitions by target state.",
		}, []string{"state"}),
		cursor: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "playback_cursor_seconds",
			Help:      "Current playback cursor position.",
		}),
	}

	reg.MustRegister(p.ticks, p.seeks, p.selections, p.completions, p.transitions, p.cursor)
	return p
}

func (p *Playback) Tick(cursor float64) {
	if p == nil {
		return
	}
	p.ticks.Inc()
	p.cursor.Set(cursor)
}

func (p *Playback) Seek(cursor float64) {
	if p == nil {
		return
	}
	p.seeks.Inc()
	p.cursor.Set(cursor)
}

func (p *Playback) Selected() {
	if p == nil {
		return
	}
	p.selections.Inc()
	p.cursor.Set(0)
}

func (p *Playback) Completed() {
	if p == nil {
		return
	}
	p.completions.Inc()
}

func (p *Playback) Transition(playing bool) {
	if p == nil {
		return
	}
	state := "stopped"
	if playing {
		state = "playing"
	}
	p.transitions.WithLabelValues(state).Inc()
}

// LogAttrs flattens counters and gauges gathered from g into slog attributes,
// for a one-line summary on shutdown.
func LogAttrs(g prometheus.Gatherer) ([]any, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	var attrs []any
	for _, mf := range families {
		name := strings.TrimPrefix(mf.GetName(), namespace+"_")
		for _, m := range mf.GetMetric() {
			key := name
			for _, l := range m.GetLabel() {
				key += "." + l.GetValue()
			}

			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				attrs = append(attrs, slog.Float64(key, m.GetCounter().GetValue()))
			case dto.MetricType_GAUGE:
				attrs = append(attrs, slog.Float64(key, m.GetGauge().GetValue()))
			}
		}
	}

	return attrs, nil
}
