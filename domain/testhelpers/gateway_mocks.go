package testhelpers

import (
	"context"

	"betsim/domain/interfaces"
)

func (m *MockPaymentGateway) CreateDeposit(ctx context.Context, accountID, amount int64) (*interfaces.DepositIntent, error) {
	args := m.Called(ctx, accountID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.DepositIntent), args.Error(1)
}

func (m *MockPaymentGateway) ConfirmDeposit(ctx context.Context, txid string) (*interfaces.GatewayResult, error) {
	args := m.Called(ctx, txid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.GatewayResult), args.Error(1)
}

func (m *MockPaymentGateway) CreateWithdraw(ctx context.Context, accountID, amount int64) (*interfaces.WithdrawIntent, error) {
	args := m.Called(ctx, accountID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.WithdrawIntent), args.Error(1)
}

func (m *MockPaymentGateway) ProcessWithdraw(ctx context.Context, txid string) (*interfaces.GatewayResult, error) {
	args := m.Called(ctx, txid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.GatewayResult), args.Error(1)
}
