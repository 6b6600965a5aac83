//go:build wireinject
// +build wireinject

package audit

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/cedarmart/commerce/internal/audit/delivery/http"
	"github.com/cedarmart/commerce/internal/audit/domain"
	"github.com/cedarmart/commerce/internal/audit/repository"
)

// ProvideActivityLogRepository provides the activity log repository
func ProvideActivityLogRepository(db *gorm.DB) domain.ActivityLogRepository {
	return repository.NewGormActivityLogRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideActivityLogRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.AuditHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewAuditHandler,
	)
	return nil, nil
}
