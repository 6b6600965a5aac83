package command

import (
	"context"
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/review/domain"
)

// CreateReviewCommand represents the command to post a product review
type CreateReviewCommand struct {
	UserID    uint
	ProductID uint
	Rating    int
	Comment   string
}

// CreateReviewHandler handles review creation
type CreateReviewHandler struct {
	uow domain.UnitOfWork
}

// NewCreateReviewHandler creates a new create review handler
func NewCreateReviewHandler(uow domain.UnitOfWork) *CreateReviewHandler {
	return &CreateReviewHandler{uow: uow}
}

// Handle executes the create review command
func (h *CreateReviewHandler) Handle(ctx context.Context, cmd CreateReviewCommand) (*domain.Review, error) {
	if cmd.ProductID == 0 {
		return nil, apperrors.Validationf("product_id is required")
	}
	if err := validateReviewFields(cmd.Rating, cmd.Comment); err != nil {
		return nil, err
	}

	review := &domain.Review{
		ProductID: cmd.ProductID,
		UserID:    cmd.UserID,
		Rating:    cmd.Rating,
		Comment:   cmd.Comment,
	}

	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		if _, err := repos.Products.FindByID(cmd.ProductID); err != nil {
			return apperrors.NotFoundf("product %d not found", cmd.ProductID)
		}

		if err := repos.Reviews.Create(review); err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		action := fmt.Sprintf("Posted a review for product %d", cmd.ProductID)
		if err := repos.Audit.Record(cmd.UserID, action); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

func validateReviewFields(rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return apperrors.Validationf("rating must be between 1 and 5")
	}
	if len(comment) > 1000 {
		return apperrors.Validationf("comment length must be less than 1000 characters")
	}
	return nil
}
