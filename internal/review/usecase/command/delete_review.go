package command

import (
	"context"
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/review/domain"
)

// DeleteReviewCommand represents the command to delete a review
type DeleteReviewCommand struct {
	UserID   uint
	ReviewID uint
}

// DeleteReviewHandler handles review deletion
type DeleteReviewHandler struct {
	uow domain.UnitOfWork
}

// NewDeleteReviewHandler creates a new delete review handler
func NewDeleteReviewHandler(uow domain.UnitOfWork) *DeleteReviewHandler {
	return &DeleteReviewHandler{uow: uow}
}

// Handle executes the delete review command. Only the author may delete a
// review.
func (h *DeleteReviewHandler) Handle(ctx context.Context, cmd DeleteReviewCommand) error {
	return h.uow.Execute(ctx, func(repos domain.Repos) error {
		review, err := repos.Reviews.FindByID(cmd.ReviewID)
		if err != nil {
			return apperrors.NotFoundf("review %d not found", cmd.ReviewID)
		}

		if review.UserID != cmd.UserID {
			return apperrors.Forbiddenf("you can only delete your own reviews")
		}

		if err := repos.Reviews.Delete(cmd.ReviewID); err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}

		action := fmt.Sprintf("Deleted review %d", cmd.ReviewID)
		if err := repos.Audit.Record(cmd.UserID, action); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}

		return nil
	})
}
