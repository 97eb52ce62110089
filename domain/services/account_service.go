package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"betsim/config"
	"betsim/domain/entities"
	"betsim/domain/events"
	"betsim/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type accountService struct {
	config     *config.Config
	uowFactory interfaces.UnitOfWorkFactory
}

// NewAccountService creates a new account service
func NewAccountService(uowFactory interfaces.UnitOfWorkFactory) interfaces.AccountService {
	return &accountService{
		config:     config.Get(),
		uowFactory: uowFactory,
	}
}

// Register creates a new account, seeded with the configured starting balance
func (s *accountService) Register(ctx context.Context, username string) (*entities.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username cannot be empty: %w", entities.ErrValidation)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.Accounts().Create(ctx, username, s.config.StartingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if s.config.StartingBalance > 0 {
		entry := &entities.LedgerEntry{
			AccountID:     account.ID,
			BalanceBefore: 0,
			BalanceAfter:  s.config.StartingBalance,
			ChangeAmount:  s.config.StartingBalance,
			EntryType:     entities.EntryTypeInitial,
		}
		if err := uow.Ledger().Record(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to record initial ledger entry: %w", err)
		}
	}

	if err := uow.EventBus().Publish(events.AccountCreatedEvent{
		AccountID:      account.ID,
		Username:       account.Username,
		InitialBalance: account.Balance,
	}); err != nil {
		return nil, fmt.Errorf("failed to publish account created event: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"accountID": account.ID,
		"username":  account.Username,
	}).Info("Account registered")

	return account, nil
}

// GetAccount retrieves an account by ID
func (s *accountService) GetAccount(ctx context.Context, accountID int64) (*entities.Account, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.Accounts().GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account %d: %w", accountID, entities.ErrNotFound)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return account, nil
}

// CreditAccount credits an account looked up by username or numeric ID.
// Privilege is enforced at the API boundary; this is the administrative
// credit path, so no upper bound applies beyond basic validation.
func (s *accountService) CreditAccount(ctx context.Context, usernameOrID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit amount must be positive: %w", entities.ErrValidation)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := s.resolveAccount(ctx, uow, usernameOrID)
	if err != nil {
		return 0, err
	}

	entry, err := applyBalanceChange(ctx, uow, account.ID, amount, entities.EntryTypeAdminCredit, map[string]any{
		"granted_to": usernameOrID,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to credit account %d: %w", account.ID, err)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"accountID":  account.ID,
		"amount":     amount,
		"newBalance": entry.BalanceAfter,
	}).Info("Administrative credit applied")

	return entry.BalanceAfter, nil
}

// GetLedger returns the account's balance audit trail, newest first
func (s *accountService) GetLedger(ctx context.Context, accountID int64, limit int) ([]*entities.LedgerEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.Ledger().GetByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return entries, nil
}

// resolveAccount looks up an account by numeric ID first, falling back to
// username
func (s *accountService) resolveAccount(ctx context.Context, uow interfaces.UnitOfWork, usernameOrID string) (*entities.Account, error) {
	usernameOrID = strings.TrimSpace(usernameOrID)
	if usernameOrID == "" {
		return nil, fmt.Errorf("account identifier cannot be empty: %w", entities.ErrValidation)
	}

	if id, err := strconv.ParseInt(usernameOrID, 10, 64); err == nil {
		account, err := uow.Accounts().GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if account != nil {
			return account, nil
		}
	}

	account, err := uow.Accounts().GetByUsername(ctx, usernameOrID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account %q: %w", usernameOrID, entities.ErrNotFound)
	}
	return account, nil
}
