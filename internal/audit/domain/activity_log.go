package domain

import "time"

// ActivityLog is an append-only audit trail entry. Rows are never updated
// or deleted.
type ActivityLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ActorID   uint      `json:"actor_id" gorm:"not null;index"`
	Action    string    `json:"action" gorm:"type:text;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"autoCreateTime"`
}

// TableName specifies the table name
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// Recorder records an audit entry. Business mutations call it inside the
// same transaction as the change they describe, so both commit or roll back
// together.
type Recorder interface {
	Record(actorID uint, action string) error
}

// ActivityLogRepository defines the contract for audit log access.
type ActivityLogRepository interface {
	Recorder
	FindAll(limit, offset int) ([]ActivityLog, error)
	Count() (int64, error)
}
