package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(commandsTotal, rejectedTotal) }

var commandsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bot_commands_total",
		Help: "Dispatched commands by verb and outcome (found/not_found/upstream_error).",
	},
	[]string{"verb", "outcome"},
)

var rejectedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bot_rejected_input_total",
		Help: "Inputs rejected before dispatch, by reason.",
	},
	[]string{"reason"},
)

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncCommand(verb, outcome string) {
	commandsTotal.WithLabelValues(norm(verb), norm(outcome)).Inc()
}

func IncRejected(reason string) {
	rejectedTotal.WithLabelValues(norm(reason)).Inc()
}
