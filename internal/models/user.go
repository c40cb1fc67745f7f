package models

import "database/sql"

// User is the database representation of an operator account.
type User struct {
	UserID       string
	Name         string
	Username     string
	PasswordHash string
	Role         string
	IsActive     bool
	FailedLogins int
	Locked       bool
	LockedAt     sql.NullTime
	LastLoginAt  sql.NullTime
	AuditFields
}
