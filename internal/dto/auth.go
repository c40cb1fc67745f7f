package dto

import (
	"time"

	"github.com/vendasys/vendas_pos_app/internal/core/domain"
)

// LoginRequest carries operator credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token issued on successful login.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// UserResponse is the outward representation of an account; it never carries
// the password hash.
type UserResponse struct {
	UserID      string      `json:"userID"`
	Name        string      `json:"name"`
	Username    string      `json:"username"`
	Role        domain.Role `json:"role"`
	IsActive    bool        `json:"isActive"`
	Locked      bool        `json:"locked"`
	LastLoginAt *time.Time  `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// ToUserResponse maps a domain user to its outward representation.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		Name:        u.Name,
		Username:    u.Username,
		Role:        u.Role,
		IsActive:    u.IsActive,
		Locked:      u.Locked,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
