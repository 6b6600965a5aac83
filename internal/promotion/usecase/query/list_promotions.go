package query

import (
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/promotion/domain"
)

// ListPromotionsQuery represents the query to list all promotions
type ListPromotionsQuery struct{}

// ListPromotionsHandler handles listing promotions
type ListPromotionsHandler struct {
	repo domain.PromotionRepository
}

// NewListPromotionsHandler creates a new list promotions handler
func NewListPromotionsHandler(repo domain.PromotionRepository) *ListPromotionsHandler {
	return &ListPromotionsHandler{repo: repo}
}

// Handle executes the list promotions query
func (h *ListPromotionsHandler) Handle(_ ListPromotionsQuery) ([]domain.Promotion, error) {
	promotions, err := h.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}
	return promotions, nil
}

// GetPromotionQuery represents the query to get one promotion
type GetPromotionQuery struct {
	ID uint
}

// GetPromotionHandler handles getting a single promotion
type GetPromotionHandler struct {
	repo domain.PromotionRepository
}

// NewGetPromotionHandler creates a new get promotion handler
func NewGetPromotionHandler(repo domain.PromotionRepository) *GetPromotionHandler {
	return &GetPromotionHandler{repo: repo}
}

// Handle executes the get promotion query
func (h *GetPromotionHandler) Handle(q GetPromotionQuery) (*domain.Promotion, error) {
	promotion, err := h.repo.FindByID(q.ID)
	if err != nil {
		return nil, apperrors.NotFoundf("promotion %d not found", q.ID)
	}
	return promotion, nil
}
