package query

import (
	"fmt"

	"github.com/cedarmart/commerce/internal/catalog/domain"
)

// ListCategoriesQuery represents the query to list categories
type ListCategoriesQuery struct{}

// ListCategoriesHandler handles list categories query
type ListCategoriesHandler struct {
	repo domain.CategoryRepository
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(repo domain.CategoryRepository) *ListCategoriesHandler {
	return &ListCategoriesHandler{repo: repo}
}

// Handle executes the list categories query
func (h *ListCategoriesHandler) Handle(_ ListCategoriesQuery) ([]domain.Category, error) {
	categories, err := h.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ListSubcategoriesQuery represents the query to list subcategories of a category
type ListSubcategoriesQuery struct {
	CategoryID uint
}

// ListSubcategoriesHandler handles list subcategories query
type ListSubcategoriesHandler struct {
	repo domain.SubcategoryRepository
}

// NewListSubcategoriesHandler creates a new list subcategories handler
func NewListSubcategoriesHandler(repo domain.SubcategoryRepository) *ListSubcategoriesHandler {
	return &ListSubcategoriesHandler{repo: repo}
}

// Handle executes the list subcategories query
func (h *ListSubcategoriesHandler) Handle(q ListSubcategoriesQuery) ([]domain.Subcategory, error) {
	subcategories, err := h.repo.FindByCategory(q.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}
	return subcategories, nil
}
