package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	GenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generations_total",
			Help: "Total number of generation requests by outcome",
		},
		[]string{"status"},
	)

	WebhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Total number of payment webhook events by result",
		},
		[]string{"result"},
	)

	CreditsSpentTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "credits_spent_total",
			Help: "Total number of credits debited for generations",
		},
	)
)

func Register() {
	prometheus.MustRegister(GenerationsTotal, WebhookEventsTotal, CreditsSpentTotal)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
