package command

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/promotion/domain"
)

// ApplyCouponCommand represents the command to apply a coupon to an order
type ApplyCouponCommand struct {
	UserID  uint
	Code    string
	OrderID uint
}

// ApplyCouponResult reports the discount taken and the order's new total.
type ApplyCouponResult struct {
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	NewTotalPrice  decimal.Decimal `json:"new_total_price"`
}

// ApplyCouponHandler handles coupon application
type ApplyCouponHandler struct {
	uow domain.UnitOfWork
}

// NewApplyCouponHandler creates a new apply coupon handler
func NewApplyCouponHandler(uow domain.UnitOfWork) *ApplyCouponHandler {
	return &ApplyCouponHandler{uow: uow}
}

// Handle executes the apply coupon command. The coupon and order rows are
// both locked: the usage count increments exactly once per successful
// application and an order accepts at most one coupon.
func (h *ApplyCouponHandler) Handle(ctx context.Context, cmd ApplyCouponCommand) (*ApplyCouponResult, error) {
	if cmd.Code == "" || cmd.OrderID == 0 {
		return nil, apperrors.Validationf("coupon code and order ID are required")
	}

	var result *ApplyCouponResult
	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		coupon, err := repos.Coupons.FindByCodeForUpdate(cmd.Code)
		if err != nil {
			return apperrors.NotFoundf("invalid coupon code")
		}

		if coupon.UserID != nil && *coupon.UserID != cmd.UserID {
			return apperrors.Forbiddenf("this coupon is not assigned to you")
		}

		if !coupon.IsValid(time.Now().UTC()) {
			return apperrors.Validationf("coupon is no longer valid")
		}

		order, err := repos.Orders.FindByIDForUpdate(cmd.OrderID)
		if err != nil {
			return apperrors.NotFoundf("order %d not found", cmd.OrderID)
		}

		if order.CouponID != nil {
			return apperrors.Validationf("a coupon has already been applied to this order")
		}

		promotion, err := repos.Promotions.FindByID(coupon.PromotionID)
		if err != nil {
			return apperrors.NotFoundf("associated promotion not found")
		}

		discount := promotion.DiscountPercentage.Div(decimal.NewFromInt(100)).Mul(order.TotalPrice)
		order.TotalPrice = order.TotalPrice.Sub(discount)
		order.CouponID = &coupon.ID

		if err := repos.Orders.Update(order); err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}

		coupon.UsageCount++
		if err := repos.Coupons.Update(coupon); err != nil {
			return fmt.Errorf("failed to update coupon usage: %w", err)
		}

		action := fmt.Sprintf("Applied coupon '%s' to order %d, discount %s, new total %s",
			coupon.Code, order.ID, discount.StringFixed(2), order.TotalPrice.StringFixed(2))
		if err := repos.Audit.Record(cmd.UserID, action); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}

		result = &ApplyCouponResult{DiscountAmount: discount, NewTotalPrice: order.TotalPrice}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
