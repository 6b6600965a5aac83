package domain

import (
	"context"

	auditdomain "github.com/cedarmart/commerce/internal/audit/domain"
)

// Repos bundles the transaction-scoped repositories a catalog mutation may
// touch.
type Repos struct {
	Products      ProductRepository
	Categories    CategoryRepository
	Subcategories SubcategoryRepository
	Audit         auditdomain.Recorder
}

// UnitOfWork runs fn inside a single database transaction. Every write
// performed through the passed repos commits or rolls back atomically,
// audit entries included.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(Repos) error) error
}
