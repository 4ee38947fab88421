// Package ledger is the in-process stand-in for the host game's money system.
// The real game owns the authoritative balance; this adapter enforces the
// pipeline's contract that no operation leaves a partial charge.
package ledger

import (
	"context"
	"fmt"

	"used_market/internal/domain"
	"used_market/pkg/contextx"
	"used_market/pkg/errcodes"
	"used_market/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Ledger struct {
	balances map[int64]int64
}

func New() *Ledger {
	return &Ledger{balances: make(map[int64]int64)}
}

func (l *Ledger) Deposit(_ context.Context, accountID, amount int64) {
	l.balances[accountID] += amount
}

func (l *Ledger) Balance(_ context.Context, accountID int64) int64 {
	return l.balances[accountID]
}

// Charge debits the account or fails with InsufficientFunds, leaving the
// balance untouched.
func (l *Ledger) Charge(ctx context.Context, accountID, amount int64) error {
	balance := l.balances[accountID]

	if balance < amount {
		return domain.NewError(errcodes.InsufficientFunds,
			fmt.Sprintf("balance %d is short of %d", balance, amount))
	}

	l.balances[accountID] = balance - amount

	logger(ctx).Debug("account charged",
		logx.FieldAccountID, accountID,
		"amount", amount,
		"balance", l.balances[accountID],
	)

	return nil
}
