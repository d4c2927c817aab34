package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/salestrack/salestrack-backend/pkg/enums"
)

// PerformanceRecordPeriodConstraint names the composite unique index that
// guarantees at most one record per user and month. Concurrent upserts for
// the same period resolve through this constraint.
const PerformanceRecordPeriodConstraint = "idx_performance_user_period"

// PerformanceRecord holds one employee's metrics for one calendar month.
type PerformanceRecord struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_performance_user_period,priority:1"`
	Year   int       `gorm:"column:year;not null;uniqueIndex:idx_performance_user_period,priority:2"`
	Month  int       `gorm:"column:month;not null;uniqueIndex:idx_performance_user_period,priority:3"`

	Revenue       int64 `gorm:"column:revenue;not null;default:0"`
	RevenueTarget int64 `gorm:"column:revenue_target;not null;default:0"`
	NewClients    int   `gorm:"column:new_clients;not null;default:0"`

	AppointmentsCompleted int `gorm:"column:appointments_completed;not null;default:0"`
	AppointmentsPlanned   int `gorm:"column:appointments_planned;not null;default:0"`
	SalesCompleted        int `gorm:"column:sales_completed;not null;default:0"`

	FilesUpdated int `gorm:"column:files_updated;not null;default:0"`
	TotalFiles   int `gorm:"column:total_files;not null;default:0"`
	EventCount   int `gorm:"column:event_count;not null;default:0"`

	Satisfaction int     `gorm:"column:satisfaction;not null;default:4"`
	Comment      *string `gorm:"column:comment"`

	Status      enums.RecordStatus `gorm:"column:status;not null;default:'draft'"`
	ValidatedAt *time.Time         `gorm:"column:validated_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
