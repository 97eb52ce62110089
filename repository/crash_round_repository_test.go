package repository

import (
	"context"
	"testing"
	"time"

	"betsim/domain/entities"
	"betsim/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrashRoundRepository_CreateAndUpdate(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewCrashRoundRepository(testDB.DB)
	ctx := context.Background()

	t.Run("lifecycle roundtrip", func(t *testing.T) {
		round := &entities.CrashRound{
			ID:         "round-1",
			CrashPoint: 2.37,
			Phase:      entities.RoundPhaseWaiting,
		}
		require.NoError(t, repo.Create(ctx, round))
		assert.False(t, round.CreatedAt.IsZero())

		started := time.Now()
		crashed := started.Add(3 * time.Second)
		round.Phase = entities.RoundPhaseCrashed
		round.StartedAt = &started
		round.CrashedAt = &crashed
		round.TotalStaked = 5000
		round.TotalPaidOut = 3200
		require.NoError(t, repo.Update(ctx, round))

		recent, err := repo.GetRecent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, "round-1", recent[0].ID)
		assert.Equal(t, 2.37, recent[0].CrashPoint)
		assert.Equal(t, int64(5000), recent[0].TotalStaked)
		assert.Equal(t, int64(3200), recent[0].TotalPaidOut)
		require.NotNil(t, recent[0].StartedAt)
		require.NotNil(t, recent[0].CrashedAt)
	})

	t.Run("update unknown round", func(t *testing.T) {
		ghost := &entities.CrashRound{ID: "no-such-round", Phase: entities.RoundPhaseCrashed}
		err := repo.Update(ctx, ghost)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestCrashRoundRepository_GetRecent(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewCrashRoundRepository(testDB.DB)
	ctx := context.Background()

	// Only crashed rounds show up in history
	live := &entities.CrashRound{ID: "live", CrashPoint: 1.8, Phase: entities.RoundPhaseRunning}
	require.NoError(t, repo.Create(ctx, live))

	for i, id := range []string{"r1", "r2", "r3"} {
		round := testutil.CreateTestCrashRound(1.5 + float64(i))
		round.ID = id
		require.NoError(t, repo.Create(ctx, round))
		time.Sleep(time.Millisecond)
	}

	recent, err := repo.GetRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "r3", recent[0].ID)
	assert.Equal(t, "r2", recent[1].ID)
}
