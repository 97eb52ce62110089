package entities

import "time"

// EntryType classifies a ledger entry by the operation that produced it
type EntryType string

const (
	EntryTypeDeposit        EntryType = "deposit"
	EntryTypeWithdraw       EntryType = "withdraw"
	EntryTypeWithdrawRefund EntryType = "withdraw_refund"
	EntryTypeBetStake       EntryType = "bet_stake"
	EntryTypeBetWin         EntryType = "bet_win"
	EntryTypeCrashStake     EntryType = "crash_stake"
	EntryTypeCrashCashout   EntryType = "crash_cashout"
	EntryTypePromoBonus     EntryType = "promo_bonus"
	EntryTypeAdminCredit    EntryType = "admin_credit"
	EntryTypeInitial        EntryType = "initial"
)

// IsCredit returns true if the entry type increases the balance
func (et EntryType) IsCredit() bool {
	switch et {
	case EntryTypeDeposit, EntryTypeWithdrawRefund, EntryTypeBetWin,
		EntryTypeCrashCashout, EntryTypePromoBonus, EntryTypeAdminCredit, EntryTypeInitial:
		return true
	}
	return false
}

// String returns the string representation of the entry type
func (et EntryType) String() string {
	return string(et)
}

// LedgerEntry is the audit record for a single balance change. The pair
// (BalanceBefore, BalanceAfter) must always satisfy
// BalanceAfter == BalanceBefore + ChangeAmount.
type LedgerEntry struct {
	ID            int64          `db:"id"`
	AccountID     int64          `db:"account_id"`
	BalanceBefore int64          `db:"balance_before"`
	BalanceAfter  int64          `db:"balance_after"`
	ChangeAmount  int64          `db:"change_amount"`
	EntryType     EntryType      `db:"entry_type"`
	Metadata      map[string]any `db:"metadata"`
	CreatedAt     time.Time      `db:"created_at"`
}
