package command

import (
	"context"
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/catalog/domain"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ActorID uint
	ID      uint
}

// DeleteProductHandler handles product deletion command
type DeleteProductHandler struct {
	uow domain.UnitOfWork
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(uow domain.UnitOfWork) *DeleteProductHandler {
	return &DeleteProductHandler{uow: uow}
}

// Handle executes the delete product command. Dependent inventory records,
// promotion associations, cart items and order items are removed in the
// same transaction.
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	if cmd.ID == 0 {
		return apperrors.Validationf("invalid product id")
	}

	return h.uow.Execute(ctx, func(repos domain.Repos) error {
		if _, err := repos.Products.FindByID(cmd.ID); err != nil {
			return apperrors.NotFoundf("product %d not found", cmd.ID)
		}
		if err := repos.Products.Delete(cmd.ID); err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return repos.Audit.Record(cmd.ActorID,
			fmt.Sprintf("Product %d deleted by admin %d", cmd.ID, cmd.ActorID))
	})
}
