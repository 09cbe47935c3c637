package user

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleOwner   Role = "owner"   // Venue owner - full access
	RoleManager Role = "manager" // Can run penalty/payroll workflows
	RoleStaff   Role = "staff"   // Regular staff member
)

var RoleValues = []string{
	string(RoleOwner),
	string(RoleManager),
	string(RoleStaff),
}

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	HourlyRate   decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOwner checks if user is the venue owner
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}

// IsManager checks if user is manager or owner
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleOwner
}
