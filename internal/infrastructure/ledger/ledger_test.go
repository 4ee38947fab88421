package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"used_market/internal/domain"
	"used_market/internal/infrastructure/ledger"
	"used_market/pkg/errcodes"
)

func TestChargeDebitsBalance(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	accounts := ledger.New()
	accounts.Deposit(ctx, 1, 5000)

	rq.NoError(accounts.Charge(ctx, 1, 3000))
	rq.EqualValues(2000, accounts.Balance(ctx, 1))

	rq.NoError(accounts.Charge(ctx, 1, 2000))
	rq.Zero(accounts.Balance(ctx, 1))
}

func TestChargeInsufficientFundsLeavesBalance(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	accounts := ledger.New()
	accounts.Deposit(ctx, 1, 100)

	err := accounts.Charge(ctx, 1, 101)
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.InsufficientFunds))
	rq.EqualValues(100, accounts.Balance(ctx, 1))
}

func TestChargeUnknownAccount(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	accounts := ledger.New()

	err := accounts.Charge(ctx, 42, 1)
	rq.Error(err)
	rq.Zero(accounts.Balance(ctx, 42))
}
