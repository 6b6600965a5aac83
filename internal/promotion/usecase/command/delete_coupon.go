package command

import (
	"context"
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/promotion/domain"
)

// DeleteCouponCommand represents the command to delete a coupon
type DeleteCouponCommand struct {
	ActorID uint
	ID      uint
}

// DeleteCouponHandler handles coupon deletion
type DeleteCouponHandler struct {
	uow domain.UnitOfWork
}

// NewDeleteCouponHandler creates a new delete coupon handler
func NewDeleteCouponHandler(uow domain.UnitOfWork) *DeleteCouponHandler {
	return &DeleteCouponHandler{uow: uow}
}

// Handle executes the delete coupon command
func (h *DeleteCouponHandler) Handle(ctx context.Context, cmd DeleteCouponCommand) error {
	return h.uow.Execute(ctx, func(repos domain.Repos) error {
		coupon, err := repos.Coupons.FindByID(cmd.ID)
		if err != nil {
			return apperrors.NotFoundf("coupon %d not found", cmd.ID)
		}

		if err := repos.Coupons.Delete(coupon.ID); err != nil {
			return fmt.Errorf("failed to delete coupon: %w", err)
		}

		if err := repos.Audit.Record(cmd.ActorID, fmt.Sprintf("Deleted coupon '%s'", coupon.Code)); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}

		return nil
	})
}
