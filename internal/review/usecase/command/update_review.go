package command

import (
	"context"
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/review/domain"
)

// UpdateReviewCommand represents the command to edit a review. Nil fields
// keep their current value.
type UpdateReviewCommand struct {
	UserID   uint
	ReviewID uint
	Rating   *int
	Comment  *string
}

// UpdateReviewHandler handles review updates
type UpdateReviewHandler struct {
	uow domain.UnitOfWork
}

// NewUpdateReviewHandler creates a new update review handler
func NewUpdateReviewHandler(uow domain.UnitOfWork) *UpdateReviewHandler {
	return &UpdateReviewHandler{uow: uow}
}

// Handle executes the update review command. Only the author may edit a
// review.
func (h *UpdateReviewHandler) Handle(ctx context.Context, cmd UpdateReviewCommand) (*domain.Review, error) {
	var review *domain.Review

	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		var err error
		review, err = repos.Reviews.FindByID(cmd.ReviewID)
		if err != nil {
			return apperrors.NotFoundf("review %d not found", cmd.ReviewID)
		}

		if review.UserID != cmd.UserID {
			return apperrors.Forbiddenf("you can only edit your own reviews")
		}

		if cmd.Rating != nil {
			review.Rating = *cmd.Rating
		}
		if cmd.Comment != nil {
			review.Comment = *cmd.Comment
		}
		if err := validateReviewFields(review.Rating, review.Comment); err != nil {
			return err
		}

		if err := repos.Reviews.Update(review); err != nil {
			return fmt.Errorf("failed to update review: %w", err)
		}

		action := fmt.Sprintf("Updated review %d", cmd.ReviewID)
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
