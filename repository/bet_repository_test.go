package repository

import (
	"context"
	"testing"

	"betsim/domain/entities"
	"betsim/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBetRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB)
	matchRepo := NewMatchRepository(testDB.DB)
	betRepo := NewBetRepository(testDB.DB)
	ctx := context.Background()

	account, err := accountRepo.Create(ctx, "alice", 10000)
	require.NoError(t, err)
	match := testutil.CreateTestMatch("Arsenal", "Chelsea")
	require.NoError(t, matchRepo.Create(ctx, match))

	t.Run("frozen odds persist", func(t *testing.T) {
		bet := testutil.CreateTestBet(account.ID, match.ID, "home", 2000, 2.5)
		require.NoError(t, betRepo.Create(ctx, bet))
		assert.NotZero(t, bet.ID)

		found, err := betRepo.GetByID(ctx, bet.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, 2.5, found.Odds)
		assert.Equal(t, int64(5000), found.PotentialWin)
		assert.Equal(t, entities.BetStatusOpen, found.Status)
	})

	t.Run("unknown id returns nil", func(t *testing.T) {
		found, err := betRepo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestBetRepository_GetOpenByMatch(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB)
	matchRepo := NewMatchRepository(testDB.DB)
	betRepo := NewBetRepository(testDB.DB)
	ctx := context.Background()

	alice, err := accountRepo.Create(ctx, "alice", 10000)
	require.NoError(t, err)
	bob, err := accountRepo.Create(ctx, "bob", 10000)
	require.NoError(t, err)

	match := testutil.CreateTestMatch("Arsenal", "Chelsea")
	require.NoError(t, matchRepo.Create(ctx, match))
	other := testutil.CreateTestMatch("Liverpool", "Everton")
	require.NoError(t, matchRepo.Create(ctx, other))

	open1 := testutil.CreateTestBet(alice.ID, match.ID, "home", 1000, 2.5)
	require.NoError(t, betRepo.Create(ctx, open1))
	open2 := testutil.CreateTestBet(bob.ID, match.ID, "away", 2000, 2.8)
	require.NoError(t, betRepo.Create(ctx, open2))

	resolved := testutil.CreateTestBet(alice.ID, match.ID, "draw", 500, 3.2)
	require.NoError(t, betRepo.Create(ctx, resolved))
	flipped, err := betRepo.MarkResolved(ctx, resolved.ID, entities.BetStatusLost)
	require.NoError(t, err)
	require.True(t, flipped)

	elsewhere := testutil.CreateTestBet(alice.ID, other.ID, "home", 1000, 2.5)
	require.NoError(t, betRepo.Create(ctx, elsewhere))

	bets, err := betRepo.GetOpenByMatch(ctx, match.ID)
	require.NoError(t, err)
	require.Len(t, bets, 2)
	assert.Equal(t, open1.ID, bets[0].ID)
	assert.Equal(t, open2.ID, bets[1].ID)
}

func TestBetRepository_MarkResolved(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB)
	matchRepo := NewMatchRepository(testDB.DB)
	betRepo := NewBetRepository(testDB.DB)
	ctx := context.Background()

	account, err := accountRepo.Create(ctx, "alice", 10000)
	require.NoError(t, err)
	match := testutil.CreateTestMatch("Arsenal", "Chelsea")
	require.NoError(t, matchRepo.Create(ctx, match))

	bet := testutil.CreateTestBet(account.ID, match.ID, "home", 2000, 2.5)
	require.NoError(t, betRepo.Create(ctx, bet))

	t.Run("open to won flips once", func(t *testing.T) {
		flipped, err := betRepo.MarkResolved(ctx, bet.ID, entities.BetStatusWon)
		require.NoError(t, err)
		assert.True(t, flipped)

		found, err := betRepo.GetByID(ctx, bet.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.BetStatusWon, found.Status)
	})

	t.Run("second resolution reports false", func(t *testing.T) {
		flipped, err := betRepo.MarkResolved(ctx, bet.ID, entities.BetStatusLost)
		require.NoError(t, err)
		assert.False(t, flipped)

		found, err := betRepo.GetByID(ctx, bet.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.BetStatusWon, found.Status)
	})
}

func TestBetRepository_GetByAccount(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB)
	matchRepo := NewMatchRepository(testDB.DB)
	betRepo := NewBetRepository(testDB.DB)
	ctx := context.Background()

	alice, err := accountRepo.Create(ctx, "alice", 10000)
	require.NoError(t, err)
	bob, err := accountRepo.Create(ctx, "bob", 10000)
	require.NoError(t, err)

	match := testutil.CreateTestMatch("Arsenal", "Chelsea")
	require.NoError(t, matchRepo.Create(ctx, match))

	for i := 0; i < 3; i++ {
		require.NoError(t, betRepo.Create(ctx, testutil.CreateTestBet(alice.ID, match.ID, "home", 1000, 2.5)))
	}
	require.NoError(t, betRepo.Create(ctx, testutil.CreateTestBet(bob.ID, match.ID, "away", 1000, 2.8)))

	bets, err := betRepo.GetByAccount(ctx, alice.ID, 10)
	require.NoError(t, err)
	assert.Len(t, bets, 3)

	limited, err := betRepo.GetByAccount(ctx, alice.ID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
