package query

import (
	"fmt"

	"github.com/cedarmart/commerce/internal/audit/domain"
)

// ListActivityQuery represents the query to page through the audit trail
type ListActivityQuery struct {
	Limit  int
	Offset int
}

// ListActivityResult holds a page of audit entries
type ListActivityResult struct {
	Logs  []domain.ActivityLog `json:"logs"`
	Total int64                `json:"total"`
}

// ListActivityHandler handles the list activity query
type ListActivityHandler struct {
	logs domain.ActivityLogRepository
}

// NewListActivityHandler creates a new list activity handler
func NewListActivityHandler(logs domain.ActivityLogRepository) *ListActivityHandler {
	return &ListActivityHandler{logs: logs}
}

// Handle executes the list activity query
func (h *ListActivityHandler) Handle(query ListActivityQuery) (*ListActivityResult, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	logs, err := h.logs.FindAll(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}

	total, err := h.logs.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count activity logs: %w", err)
	}

	return &ListActivityResult{Logs: logs, Total: total}, nil
}
