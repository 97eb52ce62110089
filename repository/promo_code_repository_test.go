package repository

import (
	"context"
	"testing"

	"betsim/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoCodeRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPromoCodeRepository(testDB.DB)
	ctx := context.Background()

	t.Run("roundtrip", func(t *testing.T) {
		promo := testutil.CreateTestPromoCode("WELCOME10", 1000)
		maxUses := 100
		promo.MaxUses = &maxUses
		require.NoError(t, repo.Create(ctx, promo))
		assert.NotZero(t, promo.ID)

		found, err := repo.GetByCodeForUpdate(ctx, "WELCOME10")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, int64(1000), found.BonusAmount)
		require.NotNil(t, found.MaxUses)
		assert.Equal(t, 100, *found.MaxUses)
		assert.Equal(t, 0, found.CurrentUses)
		assert.True(t, found.IsActive)
	})

	t.Run("unknown code returns nil", func(t *testing.T) {
		found, err := repo.GetByCodeForUpdate(ctx, "MISSING")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("duplicate code rejected", func(t *testing.T) {
		dup := testutil.CreateTestPromoCode("WELCOME10", 500)
		assert.Error(t, repo.Create(ctx, dup))
	})
}

func TestPromoCodeRepository_Redemptions(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB)
	repo := NewPromoCodeRepository(testDB.DB)
	ctx := context.Background()

	alice, err := accountRepo.Create(ctx, "alice", 0)
	require.NoError(t, err)
	bob, err := accountRepo.Create(ctx, "bob", 0)
	require.NoError(t, err)

	promo := testutil.CreateTestPromoCode("WELCOME10", 1000)
	require.NoError(t, repo.Create(ctx, promo))

	t.Run("no redemption initially", func(t *testing.T) {
		redeemed, err := repo.HasRedemption(ctx, promo.ID, alice.ID)
		require.NoError(t, err)
		assert.False(t, redeemed)
	})

	t.Run("redemption recorded per account", func(t *testing.T) {
		require.NoError(t, repo.RecordRedemption(ctx, promo.ID, alice.ID))

		redeemed, err := repo.HasRedemption(ctx, promo.ID, alice.ID)
		require.NoError(t, err)
		assert.True(t, redeemed)

		// Another account is unaffected
		redeemed, err = repo.HasRedemption(ctx, promo.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, redeemed)
	})

	t.Run("duplicate redemption rejected by unique constraint", func(t *testing.T) {
		assert.Error(t, repo.RecordRedemption(ctx, promo.ID, alice.ID))
	})

	t.Run("increment uses", func(t *testing.T) {
		require.NoError(t, repo.IncrementUses(ctx, promo.ID))
		require.NoError(t, repo.IncrementUses(ctx, promo.ID))

		found, err := repo.GetByCodeForUpdate(ctx, "WELCOME10")
		require.NoError(t, err)
		assert.Equal(t, 2, found.CurrentUses)
	})
}
