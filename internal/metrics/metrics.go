package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	WebhookEventsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_processed_total",
			Help: "Number of verified gateway webhook events, by event type",
		},
		[]string{"type"},
	)

	CheckoutSessionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_sessions_created_total",
			Help: "Number of checkout sessions opened with the payment gateway",
		},
	)

	PurchasesCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "purchases_completed_total",
			Help: "Number of purchases moved to the completed status",
		},
	)

	PurchasesRefunded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "purchases_refunded_total",
			Help: "Number of purchases moved to the refunded status",
		},
	)

	ReconcilerSweeps = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reconciler_sweeps_total",
			Help: "Number of pending-purchase reconciliation sweeps",
		},
	)
)

func Register() {
	prometheus.MustRegister(
		WebhookEventsProcessed,
		CheckoutSessionsCreated,
		PurchasesCompleted,
		PurchasesRefunded,
		ReconcilerSweeps,
	)
}
