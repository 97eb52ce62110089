package repository

import (
	"context"
	"testing"
	"time"

	"betsim/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewMatchRepository(testDB.DB)
	ctx := context.Background()

	t.Run("outcomes roundtrip", func(t *testing.T) {
		match := testutil.CreateTestMatchWithOdds("Arsenal", "Chelsea", map[string]float64{
			"home": 2.15,
			"draw": 3.4,
			"away": 3.1,
		})
		require.NoError(t, repo.Create(ctx, match))
		assert.NotZero(t, match.ID)

		found, err := repo.GetByID(ctx, match.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, 2.15, found.Outcomes["home"])
		assert.Equal(t, 3.4, found.Outcomes["draw"])
		assert.False(t, found.Settled)
		assert.Nil(t, found.WinningOutcome)
	})

	t.Run("unknown id returns nil", func(t *testing.T) {
		found, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestMatchRepository_List(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewMatchRepository(testDB.DB)
	ctx := context.Background()

	early := testutil.CreateTestMatch("Arsenal", "Chelsea")
	early.MatchDate = time.Now().Add(12 * time.Hour)
	require.NoError(t, repo.Create(ctx, early))

	late := testutil.CreateTestMatch("Liverpool", "Everton")
	late.MatchDate = time.Now().Add(48 * time.Hour)
	require.NoError(t, repo.Create(ctx, late))

	settled := testutil.CreateTestMatch("Spurs", "West Ham")
	require.NoError(t, repo.Create(ctx, settled))
	flipped, err := repo.MarkSettled(ctx, settled.ID, "home", nil, nil)
	require.NoError(t, err)
	require.True(t, flipped)

	t.Run("open matches only by default", func(t *testing.T) {
		matches, err := repo.List(ctx, false, 10)
		require.NoError(t, err)
		require.Len(t, matches, 2)
		// Upcoming first
		assert.Equal(t, early.ID, matches[0].ID)
		assert.Equal(t, late.ID, matches[1].ID)
	})

	t.Run("include settled", func(t *testing.T) {
		matches, err := repo.List(ctx, true, 10)
		require.NoError(t, err)
		assert.Len(t, matches, 3)
	})
}

func TestMatchRepository_MarkSettled(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewMatchRepository(testDB.DB)
	ctx := context.Background()

	match := testutil.CreateTestMatch("Arsenal", "Chelsea")
	require.NoError(t, repo.Create(ctx, match))

	scoreHome, scoreAway := 2, 1

	t.Run("latch flips once", func(t *testing.T) {
		flipped, err := repo.MarkSettled(ctx, match.ID, "home", &scoreHome, &scoreAway)
		require.NoError(t, err)
		assert.True(t, flipped)

		found, err := repo.GetByID(ctx, match.ID)
		require.NoError(t, err)
		assert.True(t, found.Settled)
		require.NotNil(t, found.WinningOutcome)
		assert.Equal(t, "home", *found.WinningOutcome)
		require.NotNil(t, found.ScoreHome)
		assert.Equal(t, 2, *found.ScoreHome)
		assert.NotNil(t, found.SettledAt)
	})

	t.Run("second settle reports false", func(t *testing.T) {
		flipped, err := repo.MarkSettled(ctx, match.ID, "away", nil, nil)
		require.NoError(t, err)
		assert.False(t, flipped)

		// The first result stuck
		found, err := repo.GetByID(ctx, match.ID)
		require.NoError(t, err)
		assert.Equal(t, "home", *found.WinningOutcome)
	})

	t.Run("unknown match reports false", func(t *testing.T) {
		flipped, err := repo.MarkSettled(ctx, 999999, "home", nil, nil)
		require.NoError(t, err)
		assert.False(t, flipped)
	})
}
