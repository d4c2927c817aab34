package auth

import (
	"time"

	"github.com/salestrack/salestrack-backend/internal/users"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest contains the payload required to onboard an employee.
type RegisterRequest struct {
	FirstName  string     `json:"first_name" validate:"required"`
	LastName   string     `json:"last_name" validate:"required"`
	Email      string     `json:"email" validate:"required,email"`
	Password   string     `json:"password" validate:"required,min=8"`
	JobTitle   *string    `json:"job_title,omitempty"`
	Department *string    `json:"department,omitempty"`
	HireDate   *time.Time `json:"hire_date,omitempty"`
}

// UpdateProfileRequest carries a partial update of the mutable profile
// fields; absent fields are left unchanged.
type UpdateProfileRequest struct {
	FirstName  *string    `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName   *string    `json:"last_name,omitempty" validate:"omitempty,min=1"`
	JobTitle   *string    `json:"job_title,omitempty"`
	Department *string    `json:"department,omitempty"`
	HireDate   *time.Time `json:"hire_date,omitempty"`
}

// ChangePasswordRequest swaps the stored credential after re-verifying the
// current one.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// AuthResponse contains the token and public user view produced by a
// successful login or registration.
type AuthResponse struct {
	Token string         `json:"token"`
	User  *users.UserDTO `json:"user"`
}
