package command

import (
	"context"
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/catalog/domain"
)

// UpdateCategoryCommand represents the command to update a category
type UpdateCategoryCommand struct {
	ActorID     uint
	ID          uint
	Name        *string
	Description *string
}

// UpdateCategoryHandler handles category update
type UpdateCategoryHandler struct {
	uow domain.UnitOfWork
}

// NewUpdateCategoryHandler creates a new update category handler
func NewUpdateCategoryHandler(uow domain.UnitOfWork) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{uow: uow}
}

// Handle executes the update category command
func (h *UpdateCategoryHandler) Handle(ctx context.Context, cmd UpdateCategoryCommand) (*domain.Category, error) {
	if cmd.ID == 0 {
		return nil, apperrors.Validationf("invalid category id")
	}

	var updated *domain.Category
	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		category, err := repos.Categories.FindByID(cmd.ID)
		if err != nil {
			return apperrors.NotFoundf("category %d not found", cmd.ID)
		}
		if cmd.Name != nil {
			if *cmd.Name == "" || len(*cmd.Name) > 255 {
				return apperrors.Validationf("name must be between 1 and 255 characters")
			}
			category.Name = *cmd.Name
		}
		if cmd.Description != nil {
			category.Description = *cmd.Description
		}
		if err := repos.Categories.Update(category); err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}
		updated = category
		return repos.Audit.Record(cmd.ActorID,
			fmt.Sprintf("Category %d updated by admin %d", category.ID, cmd.ActorID))
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
