package services

import (
	"context"
	"testing"
	"time"

	"betsim/config"
	"betsim/domain/entities"
	"betsim/domain/events"
	"betsim/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func activeCode(id int64, code string, bonus int64) *entities.PromoCode {
	return &entities.PromoCode{
		ID:          id,
		Code:        code,
		BonusAmount: bonus,
		IsActive:    true,
	}
}

func TestRedeem_Success(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	factory := testhelpers.NewFakeUnitOfWorkFactory()
	uow := factory.UoW
	service := NewPromoService(factory)
	ctx := context.Background()

	promo := activeCode(3, "WELCOME10", 1000)

	uow.PromoCodeRepo.On("GetByCodeForUpdate", ctx, "WELCOME10").Return(promo, nil)
	uow.AccountRepo.On("GetByID", ctx, int64(1)).Return(&entities.Account{ID: 1, Balance: 500}, nil)
	uow.PromoCodeRepo.On("HasRedemption", ctx, int64(3), int64(1)).Return(false, nil)
	uow.AccountRepo.On("ApplyBalanceChange", ctx, int64(1), int64(1000)).Return(int64(1500), nil)
	uow.LedgerRepo.On("Record", ctx, mock.MatchedBy(func(entry *entities.LedgerEntry) bool {
		return entry.EntryType == entities.EntryTypePromoBonus &&
			entry.ChangeAmount == 1000 &&
			entry.Metadata["code"] == "WELCOME10"
	})).Return(nil)
	uow.PromoCodeRepo.On("RecordRedemption", ctx, int64(3), int64(1)).Return(nil)
	uow.PromoCodeRepo.On("IncrementUses", ctx, int64(3)).Return(nil)
	uow.Publisher.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return(nil)
	uow.Publisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		redeemed, ok := e.(events.PromoCodeRedeemedEvent)
		return ok && redeemed.Code == "WELCOME10" && redeemed.BonusCredited == 1000
	})).Return(nil)

	result, err := service.Redeem(ctx, 1, "WELCOME10")

	require.NoError(t, err)
	assert.Equal(t, int64(1000), result.BonusCredited)
	assert.Equal(t, int64(1500), result.NewBalance)
	assert.Equal(t, 1, uow.CommitCount)
	uow.PromoCodeRepo.AssertExpectations(t)
}

func TestRedeem_CodeNormalized(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	factory := testhelpers.NewFakeUnitOfWorkFactory()
	uow := factory.UoW
	service := NewPromoService(factory)
	ctx := context.Background()

	promo := activeCode(3, "WELCOME10", 1000)

	// Lookup happens on the trimmed, upper-cased form
	uow.PromoCodeRepo.On("GetByCodeForUpdate", ctx, "WELCOME10").Return(promo, nil)
	uow.AccountRepo.On("GetByID", ctx, int64(1)).Return(&entities.Account{ID: 1}, nil)
	uow.PromoCodeRepo.On("HasRedemption", ctx, int64(3), int64(1)).Return(false, nil)
	uow.AccountRepo.On("ApplyBalanceChange", ctx, int64(1), int64(1000)).Return(int64(1000), nil)
	uow.LedgerRepo.On("Record", ctx, mock.Anything).Return(nil)
	uow.PromoCodeRepo.On("RecordRedemption", ctx, int64(3), int64(1)).Return(nil)
	uow.PromoCodeRepo.On("IncrementUses", ctx, int64(3)).Return(nil)
	uow.Publisher.On("Publish", mock.Anything).Return(nil)

	_, err := service.Redeem(ctx, 1, "  welcome10  ")

	require.NoError(t, err)
	uow.PromoCodeRepo.AssertExpectations(t)
}

func TestRedeem_EmptyCode(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	factory := testhelpers.NewFakeUnitOfWorkFactory()
	service := NewPromoService(factory)

	_, err := service.Redeem(context.Background(), 1, "   ")

	assert.ErrorIs(t, err, entities.ErrValidation)
	assert.Equal(t, 0, factory.UoW.BeginCount)
}

func TestRedeem_UnknownOrInactiveCode(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	factory := testhelpers.NewFakeUnitOfWorkFactory()
	uow := factory.UoW
	service := NewPromoService(factory)
	ctx := context.Background()

	uow.PromoCodeRepo.On("GetByCodeForUpdate", ctx, "MISSING").Return(nil, nil)
	_, err := service.Redeem(ctx, 1, "MISSING")
	assert.ErrorIs(t, err, entities.ErrNotFound)

	inactive := activeCode(4, "RETIRED", 500)
	inactive.IsActive = false
	uow.PromoCodeRepo.On("GetByCodeForUpdate", ctx, "RETIRED").Return(inactive, nil)
	_, err = service.Redeem(ctx, 1, "RETIRED")
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRedeem_ExpiredCode(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	factory := testhelpers.NewFakeUnitOfWorkFactory()
	uow := factory.UoW
	service := NewPromoService(factory)
	ctx := context.Background()

	expiredAt := time.Now().Add(-time.Hour)
	promo := activeCode(3, "OLDCODE", 1000)
	promo.ExpiresAt = &expiredAt
	uow.PromoCodeRepo.On("GetByCodeForUpdate", ctx, "OLDCODE").Return(promo, nil)

	_, err := service.Redeem(ctx, 1, "OLDCODE")

	assert.ErrorIs(t, err, entities.ErrExpired)
	uow.AccountRepo.AssertNotCalled(t, "ApplyBalanceChange", mock.Anything, mock.Anything, mock.Anything)
}

func TestRedeem_UsageLimitReached(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	factory := testhelpers.NewFakeUnitOfWorkFactory()
	uow := factory.UoW
	service := NewPromoService(factory)
	ctx := context.Background()

	maxUses := 100
	promo := activeCode(3, "POPULAR", 1000)
	promo.MaxUses = &maxUses
	promo.CurrentUses = 100
	uow.PromoCodeRepo.On("GetByCodeForUpdate", ctx, "POPULAR").Return(promo, nil)

	_, err := service.Redeem(ctx, 1, "POPULAR")

	assert.ErrorIs(t, err, entities.ErrLimitReached)
}

func TestRedeem_AlreadyRedeemedByAccount(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	factory := testhelpers.NewFakeUnitOfWorkFactory()
	uow := factory.UoW
	service := NewPromoService(factory)
	ctx := context.Background()

	promo := activeCode(3, "WELCOME10", 1000)
	uow.PromoCodeRepo.On("GetByCodeForUpdate", ctx, "WELCOME10").Return(promo, nil)
	uow.AccountRepo.On("GetByID", ctx, int64(1)).Return(&entities.Account{ID: 1}, nil)
	uow.PromoCodeRepo.On("HasRedemption", ctx, int64(3), int64(1)).Return(true, nil)

	_, err := service.Redeem(ctx, 1, "WELCOME10")

	assert.ErrorIs(t, err, entities.ErrAlreadyRedeemed)
	assert.Equal(t, 0, uow.CommitCount)
	uow.AccountRepo.AssertNotCalled(t, "ApplyBalanceChange", mock.Anything, mock.Anything, mock.Anything)
}
