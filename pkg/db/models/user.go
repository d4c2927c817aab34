package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/salestrack/salestrack-backend/pkg/enums"
)

// MaxFailedLoginAttempts is the failure count at which an account locks.
const MaxFailedLoginAttempts = 5

// User represents the canonical identity entity.
type User struct {
	ID           uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName    string           `gorm:"column:first_name;not null"`
	LastName     string           `gorm:"column:last_name;not null"`
	Email        string           `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string           `gorm:"column:password_hash;not null"`
	Status       enums.UserStatus `gorm:"column:status;not null;default:'active'"`
	Role         enums.UserRole   `gorm:"column:role;not null;default:'user'"`

	FailedLoginAttempts int        `gorm:"column:failed_login_attempts;not null;default:0"`
	IsBlocked           bool       `gorm:"column:is_blocked;not null;default:false"`
	BlockedAt           *time.Time `gorm:"column:blocked_at"`
	LastLoginAt         *time.Time `gorm:"column:last_login_at"`

	JobTitle   *string    `gorm:"column:job_title"`
	Department *string    `gorm:"column:department"`
	HireDate   *time.Time `gorm:"column:hire_date"`

	// Reserved for a password-reset flow that has no endpoints yet.
	ResetToken          *string    `gorm:"column:reset_token"`
	ResetTokenExpiresAt *time.Time `gorm:"column:reset_token_expires_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
