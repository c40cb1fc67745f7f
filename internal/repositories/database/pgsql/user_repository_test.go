package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendasys/vendas_pos_app/internal/apperrors"
)

// The increment and the lock check live in one statement so concurrent failed
// attempts cannot race past the threshold. These tests pin the statement's
// arithmetic and the locked flag it reports back.
func TestRecordFailedLoginLocksAtThreshold(t *testing.T) {
	var gotSQL string
	var gotArgs []any
	db := &stubDB{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			gotSQL = sql
			gotArgs = args
			return fakeRow{scanFn: func(dest ...any) error {
				*(dest[0].(*bool)) = true
				return nil
			}}
		},
	}
	repo := &PgxUserRepository{gw: NewGateway(db, testLogger(), testConfig())}

	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	locked, err := repo.RecordFailedLogin(context.Background(), "user-1", 10, now)

	require.NoError(t, err)
	assert.True(t, locked)
	assert.Contains(t, gotSQL, "failed_logins = failed_logins + 1")
	assert.Contains(t, gotSQL, "locked = locked OR (failed_logins + 1 >= $1)")
	assert.Contains(t, gotSQL, "RETURNING locked")
	require.Len(t, gotArgs, 3)
	assert.Equal(t, 10, gotArgs[0])
	assert.Equal(t, now, gotArgs[1])
	assert.Equal(t, "user-1", gotArgs[2])
}

func TestRecordFailedLoginBelowThresholdStaysUnlocked(t *testing.T) {
	db := &stubDB{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return fakeRow{scanFn: func(dest ...any) error {
				*(dest[0].(*bool)) = false
				return nil
			}}
		},
	}
	repo := &PgxUserRepository{gw: NewGateway(db, testLogger(), testConfig())}

	locked, err := repo.RecordFailedLogin(context.Background(), "user-1", 10, time.Now())

	require.NoError(t, err)
	assert.False(t, locked)
}

func TestRecordFailedLoginUnknownUserIsNotFound(t *testing.T) {
	db := &stubDB{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return fakeRow{scanFn: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}
	repo := &PgxUserRepository{gw: NewGateway(db, testLogger(), testConfig())}

	_, err := repo.RecordFailedLogin(context.Background(), "ghost", 10, time.Now())

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
