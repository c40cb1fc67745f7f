package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vendasys/vendas_pos_app/internal/apperrors"
	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	"github.com/vendasys/vendas_pos_app/internal/core/ports"
	"github.com/vendasys/vendas_pos_app/internal/utils"
)

type AuthService struct {
	userRepo         ports.UserRepository
	lockoutThreshold int
	logger           *slog.Logger
}

func NewAuthService(userRepo ports.UserRepository, lockoutThreshold int, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		userRepo:         userRepo,
		lockoutThreshold: lockoutThreshold,
		logger:           logger,
	}
}

// Authenticate checks credentials against the user store. A wrong password
// counts toward the lockout threshold; reaching it locks the account until an
// administrator unlocks it. Every denial surfaces the same ErrUnauthorized so
// a caller cannot distinguish unknown users from locked or inactive ones; the
// distinct cause is logged for the audit trail.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("Login denied",
				slog.String("username", username),
				slog.String("reason", "unknown user"),
			)
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user for authentication: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		locked, err := s.userRepo.RecordFailedLogin(ctx, user.UserID, s.lockoutThreshold, time.Now())
		if err != nil {
			return nil, fmt.Errorf("failed to record failed login: %w", err)
		}
		s.logger.Warn("Login denied",
			slog.String("user_id", user.UserID),
			slog.String("reason", "password mismatch"),
		)
		if locked && !user.Locked {
			s.logger.Warn("Account locked after repeated login failures",
				slog.String("user_id", user.UserID),
				slog.Int("threshold", s.lockoutThreshold),
			)
		}
		return nil, apperrors.ErrUnauthorized
	}

	// A correct password on a locked or inactive account is still denied and
	// does not reset the counter.
	if user.Locked {
		s.logger.Warn("Login denied",
			slog.String("user_id", user.UserID),
			slog.String("reason", "account locked"),
		)
		return nil, apperrors.ErrUnauthorized
	}
	if !user.IsActive {
		s.logger.Warn("Login denied",
			slog.String("user_id", user.UserID),
			slog.String("reason", "account inactive"),
		)
		return nil, apperrors.ErrUnauthorized
	}

	if err := s.userRepo.RecordSuccessfulLogin(ctx, user.UserID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to record successful login: %w", err)
	}
	user.FailedLogins = 0
	return user, nil
}
