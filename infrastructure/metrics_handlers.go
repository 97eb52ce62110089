package infrastructure

import (
	"context"

	"betsim/domain/events"
	"betsim/infrastructure/observability"
)

// RegisterMetricsHandlers feeds domain events into the Prometheus collectors
// via the publisher's local handler hook
func RegisterMetricsHandlers(publisher *NATSEventPublisher, metrics *observability.Metrics) {
	publisher.RegisterLocalHandler(events.EventTypeBetPlaced, func(ctx context.Context, event events.Event) error {
		if e, ok := event.(events.BetPlacedEvent); ok {
			metrics.BetsPlaced.Inc()
			metrics.StakeVolume.Add(float64(e.Stake))
		}
		return nil
	})

	publisher.RegisterLocalHandler(events.EventTypeMatchSettled, func(ctx context.Context, event events.Event) error {
		if e, ok := event.(events.MatchSettledEvent); ok {
			metrics.MatchesSettled.Inc()
			metrics.SettlementPayouts.Add(float64(e.TotalPaidOut))
		}
		return nil
	})

	publisher.RegisterLocalHandler(events.EventTypeTransactionResolved, func(ctx context.Context, event events.Event) error {
		if e, ok := event.(events.TransactionResolvedEvent); ok {
			metrics.TransactionsResolved.WithLabelValues(string(e.Kind), string(e.Status)).Inc()
		}
		return nil
	})

	publisher.RegisterLocalHandler(events.EventTypeCrashRoundFinished, func(ctx context.Context, event events.Event) error {
		if e, ok := event.(events.CrashRoundFinishedEvent); ok {
			metrics.CrashRoundsFinished.Inc()
			metrics.CrashPointHistogram.Observe(e.CrashPoint)
		}
		return nil
	})

	publisher.RegisterLocalHandler(events.EventTypePromoCodeRedeemed, func(ctx context.Context, event events.Event) error {
		if _, ok := event.(events.PromoCodeRedeemedEvent); ok {
			metrics.PromoRedemptions.Inc()
		}
		return nil
	})
}
