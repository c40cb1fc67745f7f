package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vendasys/vendas_pos_app/internal/apperrors"
	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	"github.com/vendasys/vendas_pos_app/internal/core/ports"
	"github.com/vendasys/vendas_pos_app/internal/models"
)

type PgxUserRepository struct {
	gw *Gateway
}

func newPgxUserRepository(gw *Gateway) ports.UserRepository {
	return &PgxUserRepository{gw: gw}
}

var _ ports.UserRepository = (*PgxUserRepository)(nil)

func toModelUser(d domain.User) models.User {
	m := models.User{
		UserID:       d.UserID,
		Name:         d.Name,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Role:         string(d.Role),
		IsActive:     d.IsActive,
		FailedLogins: d.FailedLogins,
		Locked:       d.Locked,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
	if d.LockedAt != nil {
		m.LockedAt = sql.NullTime{Time: *d.LockedAt, Valid: true}
	}
	if d.LastLoginAt != nil {
		m.LastLoginAt = sql.NullTime{Time: *d.LastLoginAt, Valid: true}
	}
	return m
}

func toDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:       m.UserID,
		Name:         m.Name,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		IsActive:     m.IsActive,
		FailedLogins: m.FailedLogins,
		Locked:       m.Locked,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.LockedAt.Valid {
		t := m.LockedAt.Time
		d.LockedAt = &t
	}
	if m.LastLoginAt.Valid {
		t := m.LastLoginAt.Time
		d.LastLoginAt = &t
	}
	return d
}

const userColumns = `user_id, name, username, password_hash, role, is_active,
	failed_logins, locked, locked_at, last_login_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanUser(rows pgx.Rows, m *models.User) error {
	return rows.Scan(
		&m.UserID,
		&m.Name,
		&m.Username,
		&m.PasswordHash,
		&m.Role,
		&m.IsActive,
		&m.FailedLogins,
		&m.Locked,
		&m.LockedAt,
		&m.LastLoginAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := toModelUser(user)
	query := `
		INSERT INTO users (user_id, name, username, password_hash, role, is_active,
			failed_logins, locked, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.gw.Execute(ctx, query,
		m.UserID, m.Name, m.Username, m.PasswordHash, m.Role, m.IsActive,
		m.FailedLogins, m.Locked, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := toModelUser(user)
	query := `
		UPDATE users
		SET name = $1, role = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE user_id = $6;
	`
	affected, err := r.gw.Execute(ctx, query,
		m.Name, m.Role, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy, m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash, updatedBy string, now time.Time) error {
	query := `
		UPDATE users
		SET password_hash = $1, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $4;
	`
	affected, err := r.gw.Execute(ctx, query, passwordHash, now, updatedBy, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUserWhere(ctx, "user_id = $1", userID)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findUserWhere(ctx, "LOWER(username) = LOWER($1)", username)
}

func (r *PgxUserRepository) findUserWhere(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s;`, userColumns, where)

	var found bool
	var m models.User
	err := r.gw.Select(ctx, func(rows pgx.Rows) error {
		for rows.Next() {
			if err := scanUser(rows, &m); err != nil {
				return err
			}
			found = true
		}
		return nil
	}, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !found {
		return nil, apperrors.ErrNotFound
	}
	d := toDomainUser(m)
	return &d, nil
}

func (r *PgxUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`
		SELECT %s FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`, userColumns)

	var ms []models.User
	err := r.gw.Select(ctx, func(rows pgx.Rows) error {
		ms = ms[:0]
		for rows.Next() {
			var m models.User
			if err := scanUser(rows, &m); err != nil {
				return err
			}
			ms = append(ms, m)
		}
		return nil
	}, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = toDomainUser(m)
	}
	return ds, nil
}

// RecordFailedLogin increments the counter and flips the lock in one
// statement, so concurrent failed attempts cannot race past the threshold.
func (r *PgxUserRepository) RecordFailedLogin(ctx context.Context, userID string, lockoutThreshold int, now time.Time) (bool, error) {
	query := `
		UPDATE users
		SET failed_logins = failed_logins + 1,
			locked = locked OR (failed_logins + 1 >= $1),
			locked_at = CASE WHEN NOT locked AND failed_logins + 1 >= $1 THEN $2 ELSE locked_at END
		WHERE user_id = $3
		RETURNING locked;
	`
	var locked bool
	if err := r.gw.Scalar(ctx, &locked, query, lockoutThreshold, now, userID); err != nil {
		return false, fmt.Errorf("failed to record failed login: %w", err)
	}
	return locked, nil
}

func (r *PgxUserRepository) RecordSuccessfulLogin(ctx context.Context, userID string, now time.Time) error {
	query := `
		UPDATE users
		SET failed_logins = 0, last_login_at = $1
		WHERE user_id = $2;
	`
	affected, err := r.gw.Execute(ctx, query, now, userID)
	if err != nil {
		return fmt.Errorf("failed to record successful login: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UnlockUser(ctx context.Context, userID, updatedBy string, now time.Time) error {
	query := `
		UPDATE users
		SET locked = false, locked_at = NULL, failed_logins = 0,
			last_updated_at = $1, last_updated_by = $2
		WHERE user_id = $3;
	`
	affected, err := r.gw.Execute(ctx, query, now, updatedBy, userID)
	if err != nil {
		return fmt.Errorf("failed to unlock user: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) DeactivateUser(ctx context.Context, userID, updatedBy string, now time.Time) error {
	query := `
		UPDATE users
		SET is_active = false, last_updated_at = $1, last_updated_by = $2
		WHERE user_id = $3 AND is_active;
	`
	affected, err := r.gw.Execute(ctx, query, now, updatedBy, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
