package command

import (
	"context"
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/promotion/domain"
)

// DeletePromotionCommand represents the command to delete a promotion
type DeletePromotionCommand struct {
	ActorID uint
	ID      uint
}

// DeletePromotionHandler handles promotion deletion
type DeletePromotionHandler struct {
	uow domain.UnitOfWork
}

// NewDeletePromotionHandler creates a new delete promotion handler
func NewDeletePromotionHandler(uow domain.UnitOfWork) *DeletePromotionHandler {
	return &DeletePromotionHandler{uow: uow}
}

// Handle executes the delete promotion command. Product associations are
// detached before the promotion row is removed.
func (h *DeletePromotionHandler) Handle(ctx context.Context, cmd DeletePromotionCommand) error {
	return h.uow.Execute(ctx, func(repos domain.Repos) error {
		promotion, err := repos.Promotions.FindByID(cmd.ID)
		if err != nil {
			return apperrors.NotFoundf("promotion %d not found", cmd.ID)
		}

		if err := repos.Promotions.DetachProducts(promotion.ID); err != nil {
			return fmt.Errorf("failed to detach products: %w", err)
		}

		if err := repos.Promotions.Delete(promotion.ID); err != nil {
			return fmt.Errorf("failed to delete promotion: %w", err)
		}

		if err := repos.Audit.Record(cmd.ActorID, fmt.Sprintf("Deleted promotion '%s'", promotion.Name)); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}

		return nil
	})
}
