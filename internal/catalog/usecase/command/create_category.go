package command

import (
	"context"
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/catalog/domain"
)

// CreateCategoryCommand represents the command to create a category
type CreateCategoryCommand struct {
	ActorID     uint
	Name        string
	Description string
}

// CreateCategoryHandler handles category creation
type CreateCategoryHandler struct {
	uow domain.UnitOfWork
}

// NewCreateCategoryHandler creates a new create category handler
func NewCreateCategoryHandler(uow domain.UnitOfWork) *CreateCategoryHandler {
	return &CreateCategoryHandler{uow: uow}
}

// Handle executes the create category command
func (h *CreateCategoryHandler) Handle(ctx context.Context, cmd CreateCategoryCommand) (*domain.Category, error) {
	if cmd.Name == "" || len(cmd.Name) > 255 {
		return nil, apperrors.Validationf("name must be between 1 and 255 characters")
	}

	category := &domain.Category{Name: cmd.Name, Description: cmd.Description}
	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		if err := repos.Categories.Create(category); err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		return repos.Audit.Record(cmd.ActorID,
			fmt.Sprintf("Category %q (id %d) created by admin %d", category.Name, category.ID, cmd.ActorID))
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}
