package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of access roles. Role names from requests are
// validated into this set at the boundary.
type Role string

const (
	RoleAdministrator Role = "ADMINISTRATOR"
	RoleManager       Role = "MANAGER"
	RoleSalesperson   Role = "SALESPERSON"
	RoleOperator      Role = "OPERATOR"
	RoleReadOnly      Role = "READONLY"
)

// ParseRole validates s against the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdministrator, RoleManager, RoleSalesperson, RoleOperator, RoleReadOnly:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User is an operator account. FailedLogins counts consecutive failed
// authentication attempts; once it reaches the lockout threshold the account
// is locked and stays locked until an administrator unlocks it.
type User struct {
	UserID       string     `json:"userID"`
	Name         string     `json:"name"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	IsActive     bool       `json:"isActive"`
	FailedLogins int        `json:"failedLogins"`
	Locked       bool       `json:"locked"`
	LockedAt     *time.Time `json:"lockedAt,omitempty"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	AuditFields
}
