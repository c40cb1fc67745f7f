package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vendasys/vendas_pos_app/internal/apperrors"
	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	"github.com/vendasys/vendas_pos_app/internal/core/ports"
	"github.com/vendasys/vendas_pos_app/internal/dto"
	"github.com/vendasys/vendas_pos_app/internal/utils"
)

type UserService struct {
	userRepo   ports.UserRepository
	bcryptCost int
}

func NewUserService(userRepo ports.UserRepository, bcryptCost int) *UserService {
	return &UserService{userRepo: userRepo, bcryptCost: bcryptCost}
}

func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	hash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if user.Name == "" || user.Username == "" {
		return nil, fmt.Errorf("%w: name and username are required", apperrors.ErrValidation)
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for update: %w", err)
	}
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
		if user.Name == "" {
			return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
		}
	}
	if req.Role != nil {
		role, err := domain.ParseRole(*req.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		user.Role = role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = updaterUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID, newPassword, updaterUserID string) error {
	hash, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash, updaterUserID, time.Now()); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	return nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UnlockUser clears the lock and the failed-login counter. Only route guards
// limit who can call it; the service applies it unconditionally.
func (s *UserService) UnlockUser(ctx context.Context, userID, updaterUserID string) error {
	if err := s.userRepo.UnlockUser(ctx, userID, updaterUserID, time.Now()); err != nil {
		return fmt.Errorf("failed to unlock user: %w", err)
	}
	return nil
}

func (s *UserService) DeactivateUser(ctx context.Context, userID, updaterUserID string) error {
	if userID == updaterUserID {
		return fmt.Errorf("%w: cannot deactivate your own account", apperrors.ErrValidation)
	}
	if err := s.userRepo.DeactivateUser(ctx, userID, updaterUserID, time.Now()); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	return nil
}
