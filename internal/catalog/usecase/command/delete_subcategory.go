package command

import (
	"context"
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/catalog/domain"
)

// DeleteSubcategoryCommand represents the command to delete a subcategory
type DeleteSubcategoryCommand struct {
	ActorID uint
	ID      uint
}

// DeleteSubcategoryHandler handles subcategory deletion
type DeleteSubcategoryHandler struct {
	uow domain.UnitOfWork
}

// NewDeleteSubcategoryHandler creates a new delete subcategory handler
func NewDeleteSubcategoryHandler(uow domain.UnitOfWork) *DeleteSubcategoryHandler {
	return &DeleteSubcategoryHandler{uow: uow}
}

// Handle executes the delete subcategory command
func (h *DeleteSubcategoryHandler) Handle(ctx context.Context, cmd DeleteSubcategoryCommand) error {
	if cmd.ID == 0 {
		return apperrors.Validationf("invalid subcategory id")
	}

	return h.uow.Execute(ctx, func(repos domain.Repos) error {
		if _, err := repos.Subcategories.FindByID(cmd.ID); err != nil {
			return apperrors.NotFoundf("subcategory %d not found", cmd.ID)
		}
		if err := repos.Subcategories.Delete(cmd.ID); err != nil {
			return fmt.Errorf("failed to delete subcategory: %w", err)
		}
		return repos.Audit.Record(cmd.ActorID,
			fmt.Sprintf("Subcategory %d deleted by admin %d", cmd.ID, cmd.ActorID))
	})
}
