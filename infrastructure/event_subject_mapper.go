package infrastructure

import (
	"fmt"

	"betsim/domain/events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeBalanceChange:
		return "accounts.balance_changed"
	case events.EventTypeAccountCreated:
		return "accounts.created"
	case events.EventTypeBetPlaced:
		return "betting.placed"
	case events.EventTypeMatchSettled:
		return "matches.settled"
	case events.EventTypeTransactionResolved:
		return "wallet.transaction_resolved"
	case events.EventTypeCrashRoundFinished:
		return "crash.round_finished"
	case events.EventTypePromoCodeRedeemed:
		return "promos.redeemed"
	default:
		// Fallback for unknown event types
		return fmt.Sprintf("unknown.%s", event.Type())
	}
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	switch subject {
	case "accounts.balance_changed":
		return events.EventTypeBalanceChange
	case "accounts.created":
		return events.EventTypeAccountCreated
	case "betting.placed":
		return events.EventTypeBetPlaced
	case "matches.settled":
		return events.EventTypeMatchSettled
	case "wallet.transaction_resolved":
		return events.EventTypeTransactionResolved
	case "crash.round_finished":
		return events.EventTypeCrashRoundFinished
	case "promos.redeemed":
		return events.EventTypePromoCodeRedeemed
	default:
		return events.EventType(subject)
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"accounts.balance_changed",
		"accounts.created",
		"betting.placed",
		"matches.settled",
		"wallet.transaction_resolved",
		"crash.round_finished",
		"promos.redeemed",
	}
}
