package entities

import (
	"time"
)

// Account holds one user's balance. Balances are stored in cents and are
// never allowed to go negative; every mutation goes through the ledger.
type Account struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Balance   int64     `db:"balance"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// CanDebit reports whether the account can cover a debit of the given amount.
func (a *Account) CanDebit(amount int64) bool {
	return amount > 0 && amount <= a.Balance
}
