package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPromoCodeIsExpired(t *testing.T) {
	now := time.Now()

	perpetual := &PromoCode{Code: "FOREVER"}
	assert.False(t, perpetual.IsExpired(now))

	future := now.Add(time.Hour)
	active := &PromoCode{Code: "ACTIVE", ExpiresAt: &future}
	assert.False(t, active.IsExpired(now))

	past := now.Add(-time.Hour)
	expired := &PromoCode{Code: "EXPIRED", ExpiresAt: &past}
	assert.True(t, expired.IsExpired(now))
}

func TestPromoCodeLimitReached(t *testing.T) {
	unlimited := &PromoCode{Code: "UNLIMITED", CurrentUses: 1000000}
	assert.False(t, unlimited.LimitReached())

	maxUses := 100
	open := &PromoCode{Code: "OPEN", MaxUses: &maxUses, CurrentUses: 99}
	assert.False(t, open.LimitReached())

	exhausted := &PromoCode{Code: "FULL", MaxUses: &maxUses, CurrentUses: 100}
	assert.True(t, exhausted.LimitReached())
}
