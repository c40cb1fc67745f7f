package pgsql

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendasys/vendas_pos_app/internal/apperrors"
)

type stubDB struct {
	execFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	beginFn    func(ctx context.Context) (pgx.Tx, error)
}

func (s *stubDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return s.execFn(ctx, sql, args...)
}

func (s *stubDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (s *stubDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return s.queryRowFn(ctx, sql, args...)
}

func (s *stubDB) Begin(ctx context.Context) (pgx.Tx, error) {
	return s.beginFn(ctx)
}

type fakeRow struct {
	scanFn func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scanFn(dest...) }

// fakeTx panics on everything except the overridden methods.
type fakeTx struct {
	pgx.Tx
	commitErr  error
	rolledBack bool
	committed  bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() GatewayConfig {
	return GatewayConfig{
		CallTimeout: time.Second,
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
	}
}

func transientErr() error {
	return &pgconn.PgError{Code: "40001", Message: "serialization failure"}
}

func TestExecuteRetriesTransientThenSucceeds(t *testing.T) {
	calls := 0
	db := &stubDB{
		execFn: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			calls++
			if calls < 3 {
				return pgconn.CommandTag{}, transientErr()
			}
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}
	gw := NewGateway(db, testLogger(), testConfig())

	affected, err := gw.Execute(context.Background(), "UPDATE t SET x = $1", 1)

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.Equal(t, 3, calls)
}

func TestExecutePermanentErrorIsNotRetried(t *testing.T) {
	calls := 0
	db := &stubDB{
		execFn: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			calls++
			return pgconn.CommandTag{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
		},
	}
	gw := NewGateway(db, testLogger(), testConfig())

	_, err := gw.Execute(context.Background(), "INSERT INTO users VALUES ($1)", "x")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Contains(t, err.Error(), "users_username_key")
	assert.Equal(t, 1, calls)
}

func TestExecuteRejectsEmptyStatement(t *testing.T) {
	calls := 0
	db := &stubDB{
		execFn: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			calls++
			return pgconn.CommandTag{}, nil
		},
	}
	gw := NewGateway(db, testLogger(), testConfig())

	_, err := gw.Execute(context.Background(), "   \n\t ")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, 0, calls)
}

func TestExecuteExhaustsRetries(t *testing.T) {
	calls := 0
	db := &stubDB{
		execFn: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			calls++
			return pgconn.CommandTag{}, transientErr()
		},
	}
	gw := NewGateway(db, testLogger(), testConfig())

	_, err := gw.Execute(context.Background(), "UPDATE t SET x = 1")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRetriesExhausted)
	assert.Equal(t, 3, calls)
}

func TestExecuteCancelledDuringBackoffIsTransient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	db := &stubDB{
		execFn: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			cancel()
			return pgconn.CommandTag{}, transientErr()
		},
	}
	gw := NewGateway(db, testLogger(), testConfig())

	_, err := gw.Execute(ctx, "UPDATE t SET x = 1")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTransient)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScalarNoRowsIsNotFound(t *testing.T) {
	db := &stubDB{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return fakeRow{scanFn: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}
	gw := NewGateway(db, testLogger(), testConfig())

	var n int
	err := gw.Scalar(context.Background(), &n, "SELECT 1 WHERE false")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestScalarScansValue(t *testing.T) {
	db := &stubDB{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return fakeRow{scanFn: func(dest ...any) error {
				*(dest[0].(*int)) = 42
				return nil
			}}
		},
	}
	gw := NewGateway(db, testLogger(), testConfig())

	var n int
	err := gw.Scalar(context.Background(), &n, "SELECT COUNT(*) FROM t")

	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestWithinTxDomainErrorPassesThroughAndRollsBack(t *testing.T) {
	tx := &fakeTx{}
	db := &stubDB{
		beginFn: func(ctx context.Context) (pgx.Tx, error) { return tx, nil },
	}
	gw := NewGateway(db, testLogger(), testConfig())

	err := gw.WithinTx(context.Background(), func(ctx context.Context, _ pgx.Tx) error {
		return apperrors.ErrInsufficientStock
	})

	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestWithinTxCommitsOnSuccess(t *testing.T) {
	tx := &fakeTx{}
	db := &stubDB{
		beginFn: func(ctx context.Context) (pgx.Tx, error) { return tx, nil },
	}
	gw := NewGateway(db, testLogger(), testConfig())

	err := gw.WithinTx(context.Background(), func(ctx context.Context, _ pgx.Tx) error {
		return nil
	})

	require.NoError(t, err)
	assert.True(t, tx.committed)
}

func TestWithinTxRetriesTransientBegin(t *testing.T) {
	calls := 0
	db := &stubDB{
		beginFn: func(ctx context.Context) (pgx.Tx, error) {
			calls++
			if calls < 2 {
				return nil, transientErr()
			}
			return &fakeTx{}, nil
		},
	}
	gw := NewGateway(db, testLogger(), testConfig())

	err := gw.WithinTx(context.Background(), func(ctx context.Context, _ pgx.Tx) error {
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestIsTransientClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"connection failure", &pgconn.PgError{Code: "08006"}, true},
		{"too many connections", &pgconn.PgError{Code: "53300"}, true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, false},
		{"syntax error", &pgconn.PgError{Code: "42601"}, false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.transient, isTransient(tc.err))
		})
	}
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique violation", &pgconn.PgError{Code: "23505"}, apperrors.ErrDuplicate},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, apperrors.ErrForeignKey},
		{"string too long", &pgconn.PgError{Code: "22001"}, apperrors.ErrDataTooLong},
		{"numeric overflow", &pgconn.PgError{Code: "22003"}, apperrors.ErrConversion},
		{"invalid text representation", &pgconn.PgError{Code: "22P02"}, apperrors.ErrConversion},
		{"not null violation", &pgconn.PgError{Code: "23502"}, apperrors.ErrValidation},
		{"no rows", pgx.ErrNoRows, apperrors.ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, translateError(tc.err), tc.want)
		})
	}
}

func TestTranslateErrorPassesDomainErrorsThrough(t *testing.T) {
	err := apperrors.ErrInsufficientStock
	assert.Equal(t, err, translateError(err))
}
