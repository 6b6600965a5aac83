package query

import (
	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/user/domain"
)

// GetUserQuery represents a query to get a user by ID
type GetUserQuery struct {
	UserID uint
}

// GetUserHandler handles getting a single user
type GetUserHandler struct {
	repo domain.UserRepository
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(repo domain.UserRepository) *GetUserHandler {
	return &GetUserHandler{repo: repo}
}

// Handle executes the get user query
func (h *GetUserHandler) Handle(query GetUserQuery) (*domain.User, error) {
	user, err := h.repo.FindByID(query.UserID)
	if err != nil {
		return nil, apperrors.NotFoundf("user %d not found", query.UserID)
	}
	return user, nil
}
