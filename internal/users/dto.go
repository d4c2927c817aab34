package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/salestrack/salestrack-backend/pkg/db/models"
	"github.com/salestrack/salestrack-backend/pkg/enums"
)

// UserDTO is the transport shape. It never carries the password hash or the
// reset-token fields.
type UserDTO struct {
	ID          uuid.UUID        `json:"id"`
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	Email       string           `json:"email"`
	Status      enums.UserStatus `json:"status"`
	Role        enums.UserRole   `json:"role"`
	LastLoginAt *time.Time       `json:"last_login_at,omitempty"`
	JobTitle    *string          `json:"job_title,omitempty"`
	Department  *string          `json:"department,omitempty"`
	HireDate    *time.Time       `json:"hire_date,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         enums.UserRole
	JobTitle     *string
	Department   *string
	HireDate     *time.Time
}

// UpdateProfileDTO carries the mutable profile fields; nil means unchanged.
type UpdateProfileDTO struct {
	FirstName  *string
	LastName   *string
	JobTitle   *string
	Department *string
	HireDate   *time.Time
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Status:      u.Status,
		Role:        u.Role,
		LastLoginAt: u.LastLoginAt,
		JobTitle:    u.JobTitle,
		Department:  u.Department,
		HireDate:    u.HireDate,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.Role
	if role == "" {
		role = enums.UserRoleUser
	}

	return &models.User{
		ID:           uuid.New(),
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Status:       enums.UserStatusActive,
		Role:         role,
		JobTitle:     c.JobTitle,
		Department:   c.Department,
		HireDate:     c.HireDate,
	}
}

// Columns converts the set fields into a column update map.
func (u UpdateProfileDTO) Columns() map[string]any {
	columns := map[string]any{}
	if u.FirstName != nil {
		columns["first_name"] = *u.FirstName
	}
	if u.LastName != nil {
		columns["last_name"] = *u.LastName
	}
	if u.JobTitle != nil {
		columns["job_title"] = *u.JobTitle
	}
	if u.Department != nil {
		columns["department"] = *u.Department
	}
	if u.HireDate != nil {
		columns["hire_date"] = *u.HireDate
	}
	return columns
}
