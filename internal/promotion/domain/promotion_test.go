package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPromotionIsActiveBoundaries(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC)
	p := &Promotion{StartDate: start, EndDate: end}

	assert.False(t, p.IsActive(start.Add(-time.Second)))
	assert.True(t, p.IsActive(start))
	assert.True(t, p.IsActive(start.Add(12*time.Hour)))
	assert.True(t, p.IsActive(end))
	assert.False(t, p.IsActive(end.Add(time.Second)))
}

func TestCouponIsValid(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	c := &Coupon{ExpirationDate: now.Add(time.Hour)}
	assert.True(t, c.IsValid(now))

	c = &Coupon{ExpirationDate: now.Add(-time.Second)}
	assert.False(t, c.IsValid(now))

	limit := 2
	c = &Coupon{ExpirationDate: now.Add(time.Hour), UsageLimit: &limit, UsageCount: 1}
	assert.True(t, c.IsValid(now))

	c.UsageCount = 2
	assert.False(t, c.IsValid(now))
}
