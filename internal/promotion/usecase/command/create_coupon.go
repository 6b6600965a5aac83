package command

import (
	"context"
	"fmt"
	"time"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/promotion/domain"
)

// CreateCouponCommand represents the command to create a coupon
type CreateCouponCommand struct {
	ActorID        uint
	Code           string
	PromotionID    uint
	UserID         *uint
	ExpirationDate time.Time
	UsageLimit     *int
}

// CreateCouponHandler handles coupon creation
type CreateCouponHandler struct {
	uow domain.UnitOfWork
}

// NewCreateCouponHandler creates a new create coupon handler
func NewCreateCouponHandler(uow domain.UnitOfWork) *CreateCouponHandler {
	return &CreateCouponHandler{uow: uow}
}

// Handle executes the create coupon command
func (h *CreateCouponHandler) Handle(ctx context.Context, cmd CreateCouponCommand) (*domain.Coupon, error) {
	if cmd.Code == "" {
		return nil, apperrors.Validationf("code is required")
	}
	if cmd.PromotionID == 0 {
		return nil, apperrors.Validationf("promotion_id is required")
	}
	if cmd.ExpirationDate.IsZero() {
		return nil, apperrors.Validationf("expiration_date is required")
	}
	if cmd.UsageLimit != nil && *cmd.UsageLimit <= 0 {
		return nil, apperrors.Validationf("usage_limit must be positive")
	}

	coupon := &domain.Coupon{
		Code:           cmd.Code,
		PromotionID:    cmd.PromotionID,
		UserID:         cmd.UserID,
		ExpirationDate: cmd.ExpirationDate,
		UsageLimit:     cmd.UsageLimit,
	}

	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		if _, err := repos.Promotions.FindByID(cmd.PromotionID); err != nil {
			return apperrors.NotFoundf("promotion %d not found", cmd.PromotionID)
		}

		if existing, _ := repos.Coupons.FindByCode(cmd.Code); existing != nil {
			return apperrors.Conflictf("coupon code already exists")
		}

		if err := repos.Coupons.Create(coupon); err != nil {
			return fmt.Errorf("failed to create coupon: %w", err)
		}

		if err := repos.Audit.Record(cmd.ActorID, fmt.Sprintf("Created coupon '%s'", coupon.Code)); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return coupon, nil
}
