package testhelpers

import (
	"context"

	"betsim/domain/interfaces"
)

// FakeUnitOfWork backs the UnitOfWork interface with repository mocks.
// Begin/Commit/Rollback are counted so tests can assert on transaction
// boundaries.
type FakeUnitOfWork struct {
	AccountRepo     *MockAccountRepository
	LedgerRepo      *MockLedgerRepository
	TransactionRepo *MockTransactionRepository
	MatchRepo       *MockMatchRepository
	BetRepo         *MockBetRepository
	PromoCodeRepo   *MockPromoCodeRepository
	CrashRoundRepo  *MockCrashRoundRepository
	Publisher       *MockEventPublisher

	BeginCount    int
	CommitCount   int
	RollbackCount int
}

// NewFakeUnitOfWork creates a unit of work with fresh mocks
func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{
		AccountRepo:     &MockAccountRepository{},
		LedgerRepo:      &MockLedgerRepository{},
		TransactionRepo: &MockTransactionRepository{},
		MatchRepo:       &MockMatchRepository{},
		BetRepo:         &MockBetRepository{},
		PromoCodeRepo:   &MockPromoCodeRepository{},
		CrashRoundRepo:  &MockCrashRoundRepository{},
		Publisher:       &MockEventPublisher{},
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) error {
	u.BeginCount++
	return nil
}

func (u *FakeUnitOfWork) Commit() error {
	u.CommitCount++
	return nil
}

func (u *FakeUnitOfWork) Rollback() error {
	u.RollbackCount++
	return nil
}

func (u *FakeUnitOfWork) Accounts() interfaces.AccountRepository         { return u.AccountRepo }
func (u *FakeUnitOfWork) Ledger() interfaces.LedgerRepository            { return u.LedgerRepo }
func (u *FakeUnitOfWork) Transactions() interfaces.TransactionRepository { return u.TransactionRepo }
func (u *FakeUnitOfWork) Matches() interfaces.MatchRepository            { return u.MatchRepo }
func (u *FakeUnitOfWork) Bets() interfaces.BetRepository                 { return u.BetRepo }
func (u *FakeUnitOfWork) PromoCodes() interfaces.PromoCodeRepository     { return u.PromoCodeRepo }
func (u *FakeUnitOfWork) CrashRounds() interfaces.CrashRoundRepository   { return u.CrashRoundRepo }
func (u *FakeUnitOfWork) EventBus() interfaces.EventPublisher            { return u.Publisher }

// FakeUnitOfWorkFactory hands out the same unit of work on every Create, so
// a test can set expectations once regardless of how many transactions the
// service opens.
type FakeUnitOfWorkFactory struct {
	UoW *FakeUnitOfWork
}

// NewFakeUnitOfWorkFactory creates a factory around a fresh unit of work
func NewFakeUnitOfWorkFactory() *FakeUnitOfWorkFactory {
	return &FakeUnitOfWorkFactory{UoW: NewFakeUnitOfWork()}
}

func (f *FakeUnitOfWorkFactory) Create() interfaces.UnitOfWork {
	return f.UoW
}
