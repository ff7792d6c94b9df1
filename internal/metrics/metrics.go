package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/saxenaaman628/settlement-elections/internal/elections"
)

// Recorder counts command outcomes by command and outcome kind.
type Recorder struct {
	registry *prometheus.Registry
	commands *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	commands := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "settlement_elections",
		Name:      "commands_total",
		Help:      "Voter commands handled, by command and outcome.",
	}, []string{"command", "outcome"})
	registry.MustRegister(commands)

	return &Recorder{registry: registry, commands: commands}
}

func (r *Recorder) Observe(command string, kind elections.OutcomeKind) {
	r.commands.WithLabelValues(command, string(kind)).Inc()
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
