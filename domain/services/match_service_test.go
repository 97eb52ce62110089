package services

import (
	"context"
	"testing"
	"time"

	"betsim/config"
	"betsim/domain/entities"
	"betsim/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateMatch_Success(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	factory := testhelpers.NewFakeUnitOfWorkFactory()
	uow := factory.UoW
	service := NewMatchService(factory)
	ctx := context.Background()

	matchDate := time.Now().Add(48 * time.Hour)
	outcomes := map[string]float64{"home": 2.5, "draw": 3.2, "away": 2.8}

	uow.MatchRepo.On("Create", ctx, mock.MatchedBy(func(m *entities.Match) bool {
		return m.HomeTeam == "Arsenal" && m.AwayTeam == "Chelsea" && !m.Settled
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.Match).ID = 5
	}).Return(nil)

	match, err := service.CreateMatch(ctx, " Arsenal ", "Chelsea", outcomes, matchDate)

	require.NoError(t, err)
	assert.Equal(t, int64(5), match.ID)
	assert.Equal(t, outcomes, match.Outcomes)
	assert.Equal(t, 1, uow.CommitCount)
}

func TestCreateMatch_Validation(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	factory := testhelpers.NewFakeUnitOfWorkFactory()
	service := NewMatchService(factory)
	ctx := context.Background()
	matchDate := time.Now().Add(48 * time.Hour)

	tests := []struct {
		name     string
		home     string
		away     string
		outcomes map[string]float64
	}{
		{"empty home team", "", "Chelsea", map[string]float64{"home": 2.0, "away": 2.0}},
		{"empty away team", "Arsenal", "  ", map[string]float64{"home": 2.0, "away": 2.0}},
		{"single outcome", "Arsenal", "Chelsea", map[string]float64{"home": 2.0}},
		{"blank outcome label", "Arsenal", "Chelsea", map[string]float64{" ": 2.0, "away": 2.0}},
		{"odds at 1.0", "Arsenal", "Chelsea", map[string]float64{"home": 1.0, "away": 2.0}},
		{"odds below 1.0", "Arsenal", "Chelsea", map[string]float64{"home": 0.5, "away": 2.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateMatch(ctx, tt.home, tt.away, tt.outcomes, matchDate)
			assert.ErrorIs(t, err, entities.ErrValidation)
		})
	}

	assert.Equal(t, 0, factory.UoW.BeginCount)
}

func TestGetMatch_NotFound(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	factory := testhelpers.NewFakeUnitOfWorkFactory()
	uow := factory.UoW
	service := NewMatchService(factory)
	ctx := context.Background()

	uow.MatchRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

	_, err := service.GetMatch(ctx, 99)

	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestListMatches(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	factory := testhelpers.NewFakeUnitOfWorkFactory()
	uow := factory.UoW
	service := NewMatchService(factory)
	ctx := context.Background()

	expected := []*entities.Match{{ID: 1}, {ID: 2}}
	uow.MatchRepo.On("List", ctx, false, 50).Return(expected, nil)

	matches, err := service.ListMatches(ctx, false, 50)

	require.NoError(t, err)
	assert.Equal(t, expected, matches)
}
