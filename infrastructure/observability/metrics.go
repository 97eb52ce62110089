package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors. All money values are
// recorded in cents.
type Metrics struct {
	registry *prometheus.Registry

	DepositsCreated      prometheus.Counter
	TransactionsResolved *prometheus.CounterVec
	BetsPlaced           prometheus.Counter
	StakeVolume          prometheus.Counter
	MatchesSettled       prometheus.Counter
	SettlementPayouts    prometheus.Counter
	SettlementDuration   prometheus.Histogram
	CrashRoundsFinished  prometheus.Counter
	CrashPointHistogram  prometheus.Histogram
	PromoRedemptions     prometheus.Counter
	HTTPRequestDuration  *prometheus.HistogramVec
}

// NewMetrics creates a metrics set on a private registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	return &Metrics{
		registry: registry,
		DepositsCreated: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "betsim_deposits_created_total",
			Help: "Total number of deposit intents created",
		}),
		TransactionsResolved: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "betsim_transactions_resolved_total",
			Help: "Wallet transactions resolved, by kind and final status",
		}, []string{"kind", "status"}),
		BetsPlaced: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "betsim_bets_placed_total",
			Help: "Total number of bets placed",
		}),
		StakeVolume: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "betsim_stake_volume_cents_total",
			Help: "Total stake volume in cents",
		}),
		MatchesSettled: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "betsim_matches_settled_total",
			Help: "Total number of matches settled",
		}),
		SettlementPayouts: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "betsim_settlement_payouts_cents_total",
			Help: "Total settlement payouts in cents",
		}),
		SettlementDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "betsim_settlement_duration_seconds",
			Help:    "Time taken to settle a match including all bet resolutions",
			Buckets: prometheus.DefBuckets,
		}),
		CrashRoundsFinished: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "betsim_crash_rounds_finished_total",
			Help: "Total number of crash rounds finished",
		}),
		CrashPointHistogram: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "betsim_crash_point_distribution",
			Help:    "Distribution of crash points",
			Buckets: []float64{1.01, 1.2, 1.5, 2, 3, 5, 10, 25, 100},
		}),
		PromoRedemptions: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "betsim_promo_redemptions_total",
			Help: "Total number of promo code redemptions",
		}),
		HTTPRequestDuration: promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "betsim_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
}

// Registry exposes the private registry for the metrics server
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
