package repository

import (
	"github.com/cedarmart/commerce/internal/audit/domain"
	"gorm.io/gorm"
)

type GormActivityLogRepository struct {
	db *gorm.DB
}

func NewGormActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

func (r *GormActivityLogRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.ActivityLog{})
}

func (r *GormActivityLogRepository) Record(actorID uint, action string) error {
	return r.db.Create(&domain.ActivityLog{ActorID: actorID, Action: action}).Error
}

func (r *GormActivityLogRepository) FindAll(limit, offset int) ([]domain.ActivityLog, error) {
	var logs []domain.ActivityLog
	err := r.db.Order("id DESC").Limit(limit).Offset(offset).Find(&logs).Error
	return logs, err
}

func (r *GormActivityLogRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.ActivityLog{}).Count(&count).Error
	return count, err
}
