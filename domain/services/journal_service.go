package services

import (
	"context"
	"fmt"
	"time"

	"betsim/config"
	"betsim/domain/entities"
	"betsim/domain/events"
	"betsim/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type journalService struct {
	config      *config.Config
	uowFactory  interfaces.UnitOfWorkFactory
	gateway     interfaces.PaymentGateway
	withdrawals interfaces.WithdrawalQueue
}

// NewJournalService creates a new transaction journal service
func NewJournalService(
	uowFactory interfaces.UnitOfWorkFactory,
	gateway interfaces.PaymentGateway,
	withdrawals interfaces.WithdrawalQueue,
) interfaces.JournalService {
	return &journalService{
		config:      config.Get(),
		uowFactory:  uowFactory,
		gateway:     gateway,
		withdrawals: withdrawals,
	}
}

// CreateDeposit validates limits, obtains a payment reference from the
// gateway and persists a pending transaction. The balance is untouched until
// the gateway confirms.
func (s *journalService) CreateDeposit(ctx context.Context, accountID, amount int64) (*entities.Transaction, error) {
	if amount < s.config.MinDeposit || amount > s.config.MaxDeposit {
		return nil, fmt.Errorf("deposit amount %d outside [%d, %d]: %w",
			amount, s.config.MinDeposit, s.config.MaxDeposit, entities.ErrValidation)
	}

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

	intent, err := s.gateway.CreateDeposit(ctx, accountID, amount)
	if err != nil {
		return nil, fmt.Errorf("gateway rejected deposit creation: %w", entities.ErrGatewayFailure)
	}

	expiresAt := intent.ExpiresAt
	tx := &entities.Transaction{
		TxID:             intent.TxID,
		AccountID:        accountID,
		Kind:             entities.TransactionKindDeposit,
		Amount:           amount,
		Status:           entities.TransactionStatusPending,
		PaymentReference: intent.PaymentReference,
		ExpiresAt:        &expiresAt,
	}
	if err := uow.Transactions().Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to persist deposit %s: %w", intent.TxID, err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"txid":      tx.TxID,
		"accountID": accountID,
		"amount":    amount,
	}).Info("Deposit created")

	return tx, nil
}

// ConfirmDeposit resolves a pending deposit against the gateway outcome.
// The row lock taken on the transaction record serializes duplicate webhook
// deliveries: the first caller resolves, later callers observe a terminal
// status and no-op.
func (s *journalService) ConfirmDeposit(ctx context.Context, txid string) (entities.TransactionStatus, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tx, err := uow.Transactions().GetByTxIDForUpdate(ctx, txid)
	if err != nil {
		return "", err
	}
	if tx == nil {
		return "", fmt.Errorf("transaction %s: %w", txid, entities.ErrNotFound)
	}
	if tx.Kind != entities.TransactionKindDeposit {
		return "", fmt.Errorf("transaction %s is not a deposit: %w", txid, entities.ErrValidation)
	}

	if tx.Status.IsTerminal() {
		// Benign no-op under at-least-once delivery
		if err := uow.Commit(); err != nil {
			return "", fmt.Errorf("failed to commit transaction: %w", err)
		}
		log.WithFields(log.Fields{"txid": txid, "status": tx.Status}).
			Debug("Duplicate deposit confirmation ignored")
		return tx.Status, nil
	}

	// An expired payment reference never completes
	if tx.IsExpired(time.Now()) {
		return s.resolveDeposit(ctx, uow, tx, entities.TransactionStatusFailed)
	}

	result, err := s.gateway.ConfirmDeposit(ctx, txid)
	if err != nil {
		// Leave the transaction pending; the webhook will be redelivered
		return "", fmt.Errorf("gateway confirmation for %s: %w", txid, entities.ErrGatewayFailure)
	}

	return s.resolveDeposit(ctx, uow, tx, result.Status)
}

// resolveDeposit applies the terminal transition for a deposit. The credit
// and the status flip happen in the same unit of work, so neither is ever
// observed without the other.
func (s *journalService) resolveDeposit(
	ctx context.Context,
	uow interfaces.UnitOfWork,
	tx *entities.Transaction,
	outcome entities.TransactionStatus,
) (entities.TransactionStatus, error) {
	ok, err := uow.Transactions().TransitionStatus(ctx, tx.TxID, tx.Status, outcome)
	if err != nil {
		return "", fmt.Errorf("failed to transition deposit %s: %w", tx.TxID, err)
	}
	if !ok {
		return "", fmt.Errorf("deposit %s: %w", tx.TxID, entities.ErrAlreadyTerminal)
	}

	if outcome == entities.TransactionStatusCompleted {
		if _, err := applyBalanceChange(ctx, uow, tx.AccountID, tx.Amount, entities.EntryTypeDeposit, map[string]any{
			"txid": tx.TxID,
		}); err != nil {
			return "", fmt.Errorf("failed to credit deposit %s: %w", tx.TxID, err)
		}
	}

	if err := uow.EventBus().Publish(events.TransactionResolvedEvent{
		TxID:      tx.TxID,
		AccountID: tx.AccountID,
		Kind:      tx.Kind,
		Amount:    tx.Amount,
		Status:    outcome,
	}); err != nil {
		return "", fmt.Errorf("failed to publish transaction resolved event: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"txid":      tx.TxID,
		"accountID": tx.AccountID,
		"amount":    tx.Amount,
		"status":    outcome,
	}).Info("Deposit resolved")

	return outcome, nil
}

// CreateWithdraw validates limits, debits the account immediately as an
// optimistic hold and persists a pending transaction, then hands the txid to
// the withdrawal queue for asynchronous gateway processing.
func (s *journalService) CreateWithdraw(ctx context.Context, accountID, amount int64) (*entities.Transaction, error) {
	if amount < s.config.MinWithdraw || amount > s.config.MaxWithdraw {
		return nil, fmt.Errorf("withdraw amount %d outside [%d, %d]: %w",
			amount, s.config.MinWithdraw, s.config.MaxWithdraw, entities.ErrValidation)
	}

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
	if account.Balance < amount {
		return nil, fmt.Errorf("account %d balance %d below withdrawal %d: %w",
			accountID, account.Balance, amount, entities.ErrInsufficientFunds)
	}

	// Only a validated request mints a gateway intent. The balance check above
	// is advisory; the hold below re-checks atomically.
	intent, err := s.gateway.CreateWithdraw(ctx, accountID, amount)
	if err != nil {
		return nil, fmt.Errorf("gateway rejected withdrawal creation: %w", entities.ErrGatewayFailure)
	}

	// The hold and the pending record commit together; if either fails the
	// account is left untouched.
	if _, err := applyBalanceChange(ctx, uow, accountID, -amount, entities.EntryTypeWithdraw, map[string]any{
		"txid": intent.TxID,
	}); err != nil {
		return nil, err
	}

	tx := &entities.Transaction{
		TxID:      intent.TxID,
		AccountID: accountID,
		Kind:      entities.TransactionKindWithdraw,
		Amount:    amount,
		Status:    entities.TransactionStatusPending,
		Metadata:  map[string]any{"estimated_time": intent.EstimatedTime},
	}
	if err := uow.Transactions().Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to persist withdrawal %s: %w", intent.TxID, err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if err := s.withdrawals.Enqueue(ctx, tx.TxID); err != nil {
		// The hold is already committed; the worker's backlog sweep or a
		// manual re-enqueue resolves stuck withdrawals.
		log.WithFields(log.Fields{"txid": tx.TxID, "error": err}).
			Error("Failed to enqueue withdrawal for processing")
	}

	log.WithFields(log.Fields{
		"txid":      tx.TxID,
		"accountID": accountID,
		"amount":    amount,
	}).Info("Withdrawal created, funds held")

	return tx, nil
}

// CompleteWithdraw resolves a pending withdrawal against the gateway
// outcome. Success leaves the balance alone (the debit already happened at
// creation); failure refunds the held amount exactly once. The row lock plus
// the guarded status transition make duplicate deliveries safe.
func (s *journalService) CompleteWithdraw(ctx context.Context, txid string) (entities.TransactionStatus, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tx, err := uow.Transactions().GetByTxIDForUpdate(ctx, txid)
	if err != nil {
		return "", err
	}
	if tx == nil {
		return "", fmt.Errorf("transaction %s: %w", txid, entities.ErrNotFound)
	}
	if tx.Kind != entities.TransactionKindWithdraw {
		return "", fmt.Errorf("transaction %s is not a withdrawal: %w", txid, entities.ErrValidation)
	}

	if tx.Status.IsTerminal() {
		if err := uow.Commit(); err != nil {
			return "", fmt.Errorf("failed to commit transaction: %w", err)
		}
		log.WithFields(log.Fields{"txid": txid, "status": tx.Status}).
			Debug("Duplicate withdrawal completion ignored")
		return tx.Status, nil
	}

	result, err := s.gateway.ProcessWithdraw(ctx, txid)
	if err != nil {
		// Leave pending; the queue redelivers
		return "", fmt.Errorf("gateway processing for %s: %w", txid, entities.ErrGatewayFailure)
	}

	ok, err := uow.Transactions().TransitionStatus(ctx, txid, tx.Status, result.Status)
	if err != nil {
		return "", fmt.Errorf("failed to transition withdrawal %s: %w", txid, err)
	}
	if !ok {
		return "", fmt.Errorf("withdrawal %s: %w", txid, entities.ErrAlreadyTerminal)
	}

	if result.Status == entities.TransactionStatusFailed {
		// Refund the hold; guarded by the status transition above so a
		// duplicate delivery can never refund twice
		if _, err := applyBalanceChange(ctx, uow, tx.AccountID, tx.Amount, entities.EntryTypeWithdrawRefund, map[string]any{
			"txid": tx.TxID,
		}); err != nil {
			return "", fmt.Errorf("failed to refund withdrawal %s: %w", txid, err)
		}
	}

	if err := uow.EventBus().Publish(events.TransactionResolvedEvent{
		TxID:      tx.TxID,
		AccountID: tx.AccountID,
		Kind:      tx.Kind,
		Amount:    tx.Amount,
		Status:    result.Status,
	}); err != nil {
		return "", fmt.Errorf("failed to publish transaction resolved event: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"txid":      tx.TxID,
		"accountID": tx.AccountID,
		"amount":    tx.Amount,
		"status":    result.Status,
	}).Info("Withdrawal resolved")

	return result.Status, nil
}

// GetTransactions returns an account's transactions, newest first
func (s *journalService) GetTransactions(ctx context.Context, accountID int64, limit int) ([]*entities.Transaction, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	txs, err := uow.Transactions().GetByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return txs, nil
}
