package command

import (
	"context"
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/catalog/domain"
)

// CreateSubcategoryCommand represents the command to create a subcategory
type CreateSubcategoryCommand struct {
	ActorID    uint
	Name       string
	CategoryID uint
}

// CreateSubcategoryHandler handles subcategory creation
type CreateSubcategoryHandler struct {
	uow domain.UnitOfWork
}

// NewCreateSubcategoryHandler creates a new create subcategory handler
func NewCreateSubcategoryHandler(uow domain.UnitOfWork) *CreateSubcategoryHandler {
	return &CreateSubcategoryHandler{uow: uow}
}

// Handle executes the create subcategory command
func (h *CreateSubcategoryHandler) Handle(ctx context.Context, cmd CreateSubcategoryCommand) (*domain.Subcategory, error) {
	if cmd.Name == "" || len(cmd.Name) > 255 {
		return nil, apperrors.Validationf("name must be between 1 and 255 characters")
	}
	if cmd.CategoryID == 0 {
		return nil, apperrors.Validationf("category_id is required")
	}

	subcategory := &domain.Subcategory{Name: cmd.Name, CategoryID: cmd.CategoryID}
	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		if _, err := repos.Categories.FindByID(cmd.CategoryID); err != nil {
			return apperrors.NotFoundf("category %d not found", cmd.CategoryID)
		}
		if err := repos.Subcategories.Create(subcategory); err != nil {
			return fmt.Errorf("failed to create subcategory: %w", err)
		}
		return repos.Audit.Record(cmd.ActorID,
			fmt.Sprintf("Subcategory %q (id %d) created by admin %d", subcategory.Name, subcategory.ID, cmd.ActorID))
	})
	if err != nil {
		return nil, err
	}

	return subcategory, nil
}
