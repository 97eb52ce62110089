package repository

import (
	"context"
	"testing"

	"betsim/domain/entities"
	"betsim/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB)
	txRepo := NewTransactionRepository(testDB.DB)
	ctx := context.Background()

	account, err := accountRepo.Create(ctx, "alice", 10000)
	require.NoError(t, err)

	t.Run("deposit roundtrip", func(t *testing.T) {
		deposit := testutil.CreateTestDeposit(account.ID, 10000)
		require.NoError(t, txRepo.Create(ctx, deposit))

		found, err := txRepo.GetByTxID(ctx, deposit.TxID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, entities.TransactionKindDeposit, found.Kind)
		assert.Equal(t, entities.TransactionStatusPending, found.Status)
		assert.Equal(t, deposit.PaymentReference, found.PaymentReference)
		require.NotNil(t, found.ExpiresAt)
	})

	t.Run("withdrawal with metadata", func(t *testing.T) {
		withdrawal := testutil.CreateTestWithdraw(account.ID, 5000)
		withdrawal.Metadata = map[string]any{"estimated_time": "1-2 business days"}
		require.NoError(t, txRepo.Create(ctx, withdrawal))

		found, err := txRepo.GetByTxID(ctx, withdrawal.TxID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "1-2 business days", found.Metadata["estimated_time"])
		assert.Nil(t, found.ExpiresAt)
	})

	t.Run("unknown txid returns nil", func(t *testing.T) {
		found, err := txRepo.GetByTxID(ctx, "no-such-tx")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestTransactionRepository_TransitionStatus(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB)
	txRepo := NewTransactionRepository(testDB.DB)
	ctx := context.Background()

	account, err := accountRepo.Create(ctx, "alice", 0)
	require.NoError(t, err)

	deposit := testutil.CreateTestDeposit(account.ID, 10000)
	require.NoError(t, txRepo.Create(ctx, deposit))

	t.Run("guarded transition succeeds once", func(t *testing.T) {
		ok, err := txRepo.TransitionStatus(ctx, deposit.TxID,
			entities.TransactionStatusPending, entities.TransactionStatusCompleted)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("stale transition reports false", func(t *testing.T) {
		ok, err := txRepo.TransitionStatus(ctx, deposit.TxID,
			entities.TransactionStatusPending, entities.TransactionStatusFailed)
		require.NoError(t, err)
		assert.False(t, ok)

		// The first outcome stuck
		found, err := txRepo.GetByTxID(ctx, deposit.TxID)
		require.NoError(t, err)
		assert.Equal(t, entities.TransactionStatusCompleted, found.Status)
	})

	t.Run("unknown txid reports false", func(t *testing.T) {
		ok, err := txRepo.TransitionStatus(ctx, "no-such-tx",
			entities.TransactionStatusPending, entities.TransactionStatusCompleted)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestTransactionRepository_GetByAccount(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB)
	txRepo := NewTransactionRepository(testDB.DB)
	ctx := context.Background()

	alice, err := accountRepo.Create(ctx, "alice", 0)
	require.NoError(t, err)
	bob, err := accountRepo.Create(ctx, "bob", 0)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, txRepo.Create(ctx, testutil.CreateTestDeposit(alice.ID, 10000)))
	}
	require.NoError(t, txRepo.Create(ctx, testutil.CreateTestWithdraw(bob.ID, 5000)))

	txs, err := txRepo.GetByAccount(ctx, alice.ID, 10)
	require.NoError(t, err)
	assert.Len(t, txs, 3)
	for _, tx := range txs {
		assert.Equal(t, alice.ID, tx.AccountID)
	}

	limited, err := txRepo.GetByAccount(ctx, alice.ID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
