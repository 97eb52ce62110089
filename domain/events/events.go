package events

import "betsim/domain/entities"

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange        EventType = "balance_change"
	EventTypeAccountCreated       EventType = "account_created"
	EventTypeBetPlaced            EventType = "bet_placed"
	EventTypeMatchSettled         EventType = "match_settled"
	EventTypeTransactionResolved  EventType = "transaction_resolved"
	EventTypeCrashRoundFinished   EventType = "crash_round_finished"
	EventTypePromoCodeRedeemed    EventType = "promo_code_redeemed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	AccountID    int64
	OldBalance   int64
	NewBalance   int64
	ChangeAmount int64
	EntryType    entities.EntryType
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// AccountCreatedEvent represents a new account creation
type AccountCreatedEvent struct {
	AccountID      int64
	Username       string
	InitialBalance int64
}

func (e AccountCreatedEvent) Type() EventType {
	return EventTypeAccountCreated
}

// BetPlacedEvent represents a bet that was placed
type BetPlacedEvent struct {
	BetID        int64
	AccountID    int64
	MatchID      int64
	Outcome      string
	Stake        int64
	Odds         float64
	PotentialWin int64
}

func (e BetPlacedEvent) Type() EventType {
	return EventTypeBetPlaced
}

// MatchSettledEvent represents a completed settlement
type MatchSettledEvent struct {
	MatchID        int64
	WinningOutcome string
	BetsProcessed  int
	Winners        int
	Losers         int
	TotalPaidOut   int64
}

func (e MatchSettledEvent) Type() EventType {
	return EventTypeMatchSettled
}

// TransactionResolvedEvent represents a deposit or withdrawal reaching a
// terminal status
type TransactionResolvedEvent struct {
	TxID      string
	AccountID int64
	Kind      entities.TransactionKind
	Amount    int64
	Status    entities.TransactionStatus
}

func (e TransactionResolvedEvent) Type() EventType {
	return EventTypeTransactionResolved
}

// CrashRoundFinishedEvent represents a crash round that has ended
type CrashRoundFinishedEvent struct {
	RoundID      string
	CrashPoint   float64
	TotalStaked  int64
	TotalPaidOut int64
}

func (e CrashRoundFinishedEvent) Type() EventType {
	return EventTypeCrashRoundFinished
}

// PromoCodeRedeemedEvent represents a successful promo code redemption
type PromoCodeRedeemedEvent struct {
	CodeID        int64
	Code          string
	AccountID     int64
	BonusCredited int64
}

func (e PromoCodeRedeemedEvent) Type() EventType {
	return EventTypePromoCodeRedeemed
}
