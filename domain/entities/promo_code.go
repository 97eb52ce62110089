package entities

import (
	"time"
)

// PromoCode is a redeemable bonus code. Each account may redeem a given
// code at most once; redemption records enforce that.
type PromoCode struct {
	ID          int64      `db:"id"`
	Code        string     `db:"code"`
	BonusAmount int64      `db:"bonus_amount"`
	MaxUses     *int       `db:"max_uses"`
	CurrentUses int        `db:"current_uses"`
	ExpiresAt   *time.Time `db:"expires_at"`
	IsActive    bool       `db:"is_active"`
	CreatedAt   time.Time  `db:"created_at"`
}

// IsExpired reports whether the code is past its expiry
func (p *PromoCode) IsExpired(now time.Time) bool {
	return p.ExpiresAt != nil && now.After(*p.ExpiresAt)
}

// LimitReached reports whether the code has exhausted its allowed uses
func (p *PromoCode) LimitReached() bool {
	return p.MaxUses != nil && p.CurrentUses >= *p.MaxUses
}

// PromoRedemption records one account's redemption of one code.
// Unique on (CodeID, AccountID).
type PromoRedemption struct {
	ID        int64     `db:"id"`
	CodeID    int64     `db:"code_id"`
	AccountID int64     `db:"account_id"`
	CreatedAt time.Time `db:"created_at"`
}
