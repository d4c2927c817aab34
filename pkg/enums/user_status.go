package enums

// UserStatus gates whether an account may log in at all. It is independent
// of the lockout flag, which only tracks failed-attempt blocking.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// String implements fmt.Stringer.
func (s UserStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known UserStatus.
func (s UserStatus) IsValid() bool {
	return s == UserStatusActive || s == UserStatusInactive
}
