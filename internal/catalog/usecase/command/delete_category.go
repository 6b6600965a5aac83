package command

import (
	"context"
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/catalog/domain"
)

// DeleteCategoryCommand represents the command to delete a category
type DeleteCategoryCommand struct {
	ActorID uint
	ID      uint
}

// DeleteCategoryHandler handles category deletion
type DeleteCategoryHandler struct {
	uow domain.UnitOfWork
}

// NewDeleteCategoryHandler creates a new delete category handler
func NewDeleteCategoryHandler(uow domain.UnitOfWork) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{uow: uow}
}

// Handle executes the delete category command. Categories still referenced
// by products are rejected rather than orphaning them.
func (h *DeleteCategoryHandler) Handle(ctx context.Context, cmd DeleteCategoryCommand) error {
	if cmd.ID == 0 {
		return apperrors.Validationf("invalid category id")
	}

	return h.uow.Execute(ctx, func(repos domain.Repos) error {
		if _, err := repos.Categories.FindByID(cmd.ID); err != nil {
			return apperrors.NotFoundf("category %d not found", cmd.ID)
		}
		products, err := repos.Products.FindByCategory(cmd.ID, 1, 0)
		if err != nil {
			return fmt.Errorf("failed to check category products: %w", err)
		}
		if len(products) > 0 {
			return apperrors.Conflictf("category %d still has products", cmd.ID)
		}
		if err := repos.Categories.Delete(cmd.ID); err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return repos.Audit.Record(cmd.ActorID,
			fmt.Sprintf("Category %d deleted by admin %d", cmd.ID, cmd.ActorID))
	})
}
