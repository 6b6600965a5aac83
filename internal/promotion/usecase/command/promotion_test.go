package command

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarmart/commerce/pkg/apperrors"

	orderdomain "github.com/cedarmart/commerce/internal/order/domain"

	"github.com/cedarmart/commerce/internal/promotion/domain"
)

func seedPromotion(f *promotionFixture, pct string) *domain.Promotion {
	now := time.Now().UTC()
	p := &domain.Promotion{
		ID:                 1,
		Name:               "Summer Sale",
		DiscountPercentage: decimal.RequireFromString(pct),
		StartDate:          now.Add(-24 * time.Hour),
		EndDate:            now.Add(24 * time.Hour),
		ApplicableTiers:    "Bronze,Silver,Gold",
	}
	f.promotions.promotions[p.ID] = p
	return p
}

func seedCoupon(f *promotionFixture, code string, mutate func(*domain.Coupon)) *domain.Coupon {
	c := &domain.Coupon{
		ID:             uint(len(f.coupons.coupons) + 1),
		Code:           code,
		PromotionID:    1,
		ExpirationDate: time.Now().UTC().Add(24 * time.Hour),
	}
	if mutate != nil {
		mutate(c)
	}
	f.coupons.coupons[c.ID] = c
	return c
}

func seedOrder(f *promotionFixture, id, userID uint, total string) *orderdomain.Order {
	o := &orderdomain.Order{
		ID:         id,
		UserID:     userID,
		TotalPrice: decimal.RequireFromString(total),
		Status:     orderdomain.StatusPending,
	}
	f.orders.orders[o.ID] = o
	return o
}

func TestApplyCouponDiscountsOrder(t *testing.T) {
	f := newPromotionFixture()
	seedPromotion(f, "20")
	coupon := seedCoupon(f, "SUMMER20", nil)
	seedOrder(f, 5, 10, "50.00")

	result, err := NewApplyCouponHandler(f.uow).Handle(context.Background(), ApplyCouponCommand{
		UserID: 10, Code: "SUMMER20", OrderID: 5,
	})
	require.NoError(t, err)

	assert.True(t, result.DiscountAmount.Equal(decimal.RequireFromString("10")), "discount was %s", result.DiscountAmount)
	assert.True(t, result.NewTotalPrice.Equal(decimal.RequireFromString("40")), "total was %s", result.NewTotalPrice)

	order, _ := f.orders.FindByID(5)
	require.NotNil(t, order.CouponID)
	assert.Equal(t, coupon.ID, *order.CouponID)

	updated, _ := f.coupons.FindByID(coupon.ID)
	assert.Equal(t, 1, updated.UsageCount)
}

func TestApplyCouponOnlyOncePerOrder(t *testing.T) {
	f := newPromotionFixture()
	seedPromotion(f, "20")
	seedCoupon(f, "SUMMER20", nil)
	seedCoupon(f, "EXTRA5", nil)
	seedOrder(f, 5, 10, "50.00")

	handler := NewApplyCouponHandler(f.uow)
	_, err := handler.Handle(context.Background(), ApplyCouponCommand{UserID: 10, Code: "SUMMER20", OrderID: 5})
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), ApplyCouponCommand{UserID: 10, Code: "EXTRA5", OrderID: 5})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "already been applied")
}

func TestApplyCouponBoundToAnotherUser(t *testing.T) {
	f := newPromotionFixture()
	seedPromotion(f, "20")
	owner := uint(77)
	seedCoupon(f, "PERSONAL", func(c *domain.Coupon) { c.UserID = &owner })
	seedOrder(f, 5, 10, "50.00")

	_, err := NewApplyCouponHandler(f.uow).Handle(context.Background(), ApplyCouponCommand{
		UserID: 10, Code: "PERSONAL", OrderID: 5,
	})
	assert.True(t, apperrors.IsForbidden(err))
}

func TestApplyCouponExpiredOrExhausted(t *testing.T) {
	f := newPromotionFixture()
	seedPromotion(f, "20")
	seedCoupon(f, "OLD", func(c *domain.Coupon) {
		c.ExpirationDate = time.Now().UTC().Add(-time.Hour)
	})
	limit := 3
	seedCoupon(f, "USEDUP", func(c *domain.Coupon) {
		c.UsageLimit = &limit
		c.UsageCount = 3
	})
	seedOrder(f, 5, 10, "50.00")

	handler := NewApplyCouponHandler(f.uow)

	_, err := handler.Handle(context.Background(), ApplyCouponCommand{UserID: 10, Code: "OLD", OrderID: 5})
	assert.True(t, apperrors.IsValidation(err))

	_, err = handler.Handle(context.Background(), ApplyCouponCommand{UserID: 10, Code: "USEDUP", OrderID: 5})
	assert.True(t, apperrors.IsValidation(err))
}

func TestApplyCouponUnknownCode(t *testing.T) {
	f := newPromotionFixture()
	seedOrder(f, 5, 10, "50.00")

	_, err := NewApplyCouponHandler(f.uow).Handle(context.Background(), ApplyCouponCommand{
		UserID: 10, Code: "NOPE", OrderID: 5,
	})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreatePromotionValidation(t *testing.T) {
	f := newPromotionFixture()
	handler := NewCreatePromotionHandler(f.uow)
	now := time.Now().UTC()

	base := CreatePromotionCommand{
		ActorID:            1,
		Name:               "Flash Sale",
		DiscountPercentage: decimal.NewFromInt(15),
		StartDate:          now,
		EndDate:            now.Add(48 * time.Hour),
		ApplicableTiers:    "Gold",
	}

	cmd := base
	cmd.Name = ""
	_, err := handler.Handle(context.Background(), cmd)
	assert.True(t, apperrors.IsValidation(err))

	cmd = base
	cmd.DiscountPercentage = decimal.NewFromInt(120)
	_, err = handler.Handle(context.Background(), cmd)
	assert.True(t, apperrors.IsValidation(err))

	cmd = base
	cmd.EndDate = now.Add(-time.Hour)
	_, err = handler.Handle(context.Background(), cmd)
	assert.True(t, apperrors.IsValidation(err))

	created, err := handler.Handle(context.Background(), base)
	require.NoError(t, err)
	assert.Equal(t, "Flash Sale", created.Name)
	assert.NotZero(t, created.ID)
}

func TestCreateCouponRejectsDuplicateCode(t *testing.T) {
	f := newPromotionFixture()
	seedPromotion(f, "20")
	handler := NewCreateCouponHandler(f.uow)

	cmd := CreateCouponCommand{
		ActorID:        1,
		Code:           "SUMMER20",
		PromotionID:    1,
		ExpirationDate: time.Now().UTC().Add(24 * time.Hour),
	}

	_, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), cmd)
	assert.True(t, apperrors.IsConflict(err))
}

func TestCreateCouponRequiresExistingPromotion(t *testing.T) {
	f := newPromotionFixture()
	handler := NewCreateCouponHandler(f.uow)

	_, err := handler.Handle(context.Background(), CreateCouponCommand{
		ActorID:        1,
		Code:           "GHOST",
		PromotionID:    42,
		ExpirationDate: time.Now().UTC().Add(24 * time.Hour),
	})
	assert.True(t, apperrors.IsNotFound(err))
}
