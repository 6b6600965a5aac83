package command

import (
	"context"
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/catalog/domain"
)

// UpdateSubcategoryCommand represents the command to update a subcategory
type UpdateSubcategoryCommand struct {
	ActorID uint
	ID      uint
	Name    *string
}

// UpdateSubcategoryHandler handles subcategory update
type UpdateSubcategoryHandler struct {
	uow domain.UnitOfWork
}

// NewUpdateSubcategoryHandler creates a new update subcategory handler
func NewUpdateSubcategoryHandler(uow domain.UnitOfWork) *UpdateSubcategoryHandler {
	return &UpdateSubcategoryHandler{uow: uow}
}

// Handle executes the update subcategory command
func (h *UpdateSubcategoryHandler) Handle(ctx context.Context, cmd UpdateSubcategoryCommand) (*domain.Subcategory, error) {
	if cmd.ID == 0 {
		return nil, apperrors.Validationf("invalid subcategory id")
	}

	var updated *domain.Subcategory
	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		subcategory, err := repos.Subcategories.FindByID(cmd.ID)
		if err != nil {
			return apperrors.NotFoundf("subcategory %d not found", cmd.ID)
		}
		if cmd.Name != nil {
			if *cmd.Name == "" || len(*cmd.Name) > 255 {
				return apperrors.Validationf("name must be between 1 and 255 characters")
			}
			subcategory.Name = *cmd.Name
		}
		if err := repos.Subcategories.Update(subcategory); err != nil {
			return fmt.Errorf("failed to update subcategory: %w", err)
		}
		updated = subcategory
		return repos.Audit.Record(cmd.ActorID,
			fmt.Sprintf("Subcategory %d updated by admin %d", subcategory.ID, cmd.ActorID))
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
