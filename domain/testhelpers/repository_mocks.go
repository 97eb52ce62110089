package testhelpers

import (
	"context"

	"betsim/domain/entities"
	"betsim/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*entities.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByUsername(ctx context.Context, username string) (*entities.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, username string, initialBalance int64) (*entities.Account, error) {
	args := m.Called(ctx, username, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceChange(ctx context.Context, accountID int64, delta int64) (int64, error) {
	args := m.Called(ctx, accountID, delta)
	return args.Get(0).(int64), args.Error(1)
}

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Record(ctx context.Context, entry *entities.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.LedgerEntry, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LedgerEntry), args.Error(1)
}

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByTxID(ctx context.Context, txid string) (*entities.Transaction, error) {
	args := m.Called(ctx, txid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByTxIDForUpdate(ctx context.Context, txid string) (*entities.Transaction, error) {
	args := m.Called(ctx, txid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) TransitionStatus(ctx context.Context, txid string, from, to entities.TransactionStatus) (bool, error) {
	args := m.Called(ctx, txid, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.Transaction, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Transaction), args.Error(1)
}

// MockMatchRepository is a mock implementation of MatchRepository
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) Create(ctx context.Context, match *entities.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MockMatchRepository) GetByID(ctx context.Context, id int64) (*entities.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Match), args.Error(1)
}

func (m *MockMatchRepository) List(ctx context.Context, includeSettled bool, limit int) ([]*entities.Match, error) {
	args := m.Called(ctx, includeSettled, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Match), args.Error(1)
}

func (m *MockMatchRepository) MarkSettled(ctx context.Context, matchID int64, winningOutcome string, scoreHome, scoreAway *int) (bool, error) {
	args := m.Called(ctx, matchID, winningOutcome, scoreHome, scoreAway)
	return args.Bool(0), args.Error(1)
}

// MockBetRepository is a mock implementation of BetRepository
type MockBetRepository struct {
	mock.Mock
}

func (m *MockBetRepository) Create(ctx context.Context, bet *entities.Bet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockBetRepository) GetByID(ctx context.Context, id int64) (*entities.Bet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Bet), args.Error(1)
}

func (m *MockBetRepository) GetOpenByMatch(ctx context.Context, matchID int64) ([]*entities.Bet, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Bet), args.Error(1)
}

func (m *MockBetRepository) MarkResolved(ctx context.Context, betID int64, status entities.BetStatus) (bool, error) {
	args := m.Called(ctx, betID, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockBetRepository) GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.Bet, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Bet), args.Error(1)
}

// MockPromoCodeRepository is a mock implementation of PromoCodeRepository
type MockPromoCodeRepository struct {
	mock.Mock
}

func (m *MockPromoCodeRepository) Create(ctx context.Context, code *entities.PromoCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockPromoCodeRepository) GetByCodeForUpdate(ctx context.Context, code string) (*entities.PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PromoCode), args.Error(1)
}

func (m *MockPromoCodeRepository) HasRedemption(ctx context.Context, codeID, accountID int64) (bool, error) {
	args := m.Called(ctx, codeID, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPromoCodeRepository) RecordRedemption(ctx context.Context, codeID, accountID int64) error {
	args := m.Called(ctx, codeID, accountID)
	return args.Error(0)
}

func (m *MockPromoCodeRepository) IncrementUses(ctx context.Context, codeID int64) error {
	args := m.Called(ctx, codeID)
	return args.Error(0)
}

// MockCrashRoundRepository is a mock implementation of CrashRoundRepository
type MockCrashRoundRepository struct {
	mock.Mock
}

func (m *MockCrashRoundRepository) Create(ctx context.Context, round *entities.CrashRound) error {
	args := m.Called(ctx, round)
	return args.Error(0)
}

func (m *MockCrashRoundRepository) Update(ctx context.Context, round *entities.CrashRound) error {
	args := m.Called(ctx, round)
	return args.Error(0)
}

func (m *MockCrashRoundRepository) GetRecent(ctx context.Context, limit int) ([]*entities.CrashRound, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CrashRound), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockPaymentGateway is a mock implementation of PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

// MockWithdrawalQueue is a mock implementation of WithdrawalQueue
type MockWithdrawalQueue struct {
	mock.Mock
}

func (m *MockWithdrawalQueue) Enqueue(ctx context.Context, txid string) error {
	args := m.Called(ctx, txid)
	return args.Error(0)
}
