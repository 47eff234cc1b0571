// Package metrics holds the Prometheus counters exposed on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	registry *prometheus.Registry

	// EntriesRecorded counts ledger appends by source ("form" or "voice").
	EntriesRecorded *prometheus.CounterVec
	// ChartsRendered counts chart artifacts written to the public directory.
	ChartsRendered  prometheus.Counter
	// VoiceOutcomes counts voice intakes by outcome label.
	VoiceOutcomes   *prometheus.CounterVec
}

func New() *Registry {
	r := &Registry{
		EntriesRecorded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caderneta_entries_recorded_total",
				Help: "Ledger entries appended, by source",
			},
			[]string{"source"},
		),
		ChartsRendered: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "caderneta_charts_rendered_total",
				Help: "Chart images written to the public directory",
			},
		),
		VoiceOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caderneta_voice_outcomes_total",
				Help: "Voice intakes by outcome",
			},
			[]string{"outcome"},
		),
	}

	r.registry = prometheus.NewRegistry()
	r.registry.MustRegister(r.EntriesRecorded, r.ChartsRendered, r.VoiceOutcomes)
	return r
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
