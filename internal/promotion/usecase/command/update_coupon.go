package command

import (
	"context"
	"fmt"
	"time"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/promotion/domain"
)

// UpdateCouponCommand represents the command to update a coupon. Nil fields
// are left unchanged.
type UpdateCouponCommand struct {
	ActorID        uint
	ID             uint
	Code           *string
	PromotionID    *uint
	UserID         *uint
	ExpirationDate *time.Time
	UsageLimit     *int
}

// UpdateCouponHandler handles coupon updates
type UpdateCouponHandler struct {
	uow domain.UnitOfWork
}

// NewUpdateCouponHandler creates a new update coupon handler
func NewUpdateCouponHandler(uow domain.UnitOfWork) *UpdateCouponHandler {
	return &UpdateCouponHandler{uow: uow}
}

// Handle executes the update coupon command
func (h *UpdateCouponHandler) Handle(ctx context.Context, cmd UpdateCouponCommand) (*domain.Coupon, error) {
	var coupon *domain.Coupon
	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		var err error
		coupon, err = repos.Coupons.FindByID(cmd.ID)
		if err != nil {
			return apperrors.NotFoundf("coupon %d not found", cmd.ID)
		}

		if cmd.Code != nil && *cmd.Code != coupon.Code {
			if existing, _ := repos.Coupons.FindByCode(*cmd.Code); existing != nil && existing.ID != coupon.ID {
				return apperrors.Conflictf("coupon code already exists")
			}
			coupon.Code = *cmd.Code
		}

		if cmd.PromotionID != nil {
			if _, err := repos.Promotions.FindByID(*cmd.PromotionID); err != nil {
				return apperrors.NotFoundf("promotion %d not found", *cmd.PromotionID)
			}
			coupon.PromotionID = *cmd.PromotionID
		}

		if cmd.UserID != nil {
			coupon.UserID = cmd.UserID
		}
		if cmd.ExpirationDate != nil {
			coupon.ExpirationDate = *cmd.ExpirationDate
		}
		if cmd.UsageLimit != nil {
			if *cmd.UsageLimit <= 0 {
				return apperrors.Validationf("usage_limit must be positive")
			}
			coupon.UsageLimit = cmd.UsageLimit
		}

		if err := repos.Coupons.Update(coupon); err != nil {
			return fmt.Errorf("failed to update coupon: %w", err)
		}

		if err := repos.Audit.Record(cmd.ActorID, fmt.Sprintf("Updated coupon '%s'", coupon.Code)); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return coupon, nil
}
