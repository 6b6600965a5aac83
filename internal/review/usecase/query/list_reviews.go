package query

import (
	"fmt"

	"github.com/cedarmart/commerce/internal/review/domain"
)

// ListReviewsQuery represents the query to list reviews. A non-zero
// ProductID scopes the result to one product.
type ListReviewsQuery struct {
	ProductID uint
}

// ListReviewsHandler handles the list reviews query
type ListReviewsHandler struct {
	reviews domain.ReviewRepository
}

// NewListReviewsHandler creates a new list reviews handler
func NewListReviewsHandler(reviews domain.ReviewRepository) *ListReviewsHandler {
	return &ListReviewsHandler{reviews: reviews}
}

// Handle executes the list reviews query
func (h *ListReviewsHandler) Handle(query ListReviewsQuery) ([]domain.Review, error) {
	var (
		reviews []domain.Review
		err     error
	)
	if query.ProductID != 0 {
		reviews, err = h.reviews.FindByProduct(query.ProductID)
	} else {
		reviews, err = h.reviews.FindAll()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
