package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vendasys/vendas_pos_app/internal/apperrors"
)

// DB is the subset of a pgx connection pool the gateway needs. It is an
// interface so gateway behaviour can be exercised without a live database.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// GatewayConfig tunes per-call timeout and the transient-retry policy.
type GatewayConfig struct {
	CallTimeout time.Duration // applied to every call; default 30s
	MaxAttempts int           // total attempts per call, including the first; default 3
	BaseDelay   time.Duration // backoff between attempts grows linearly: attempt x BaseDelay
}

// Gateway executes parameterized statements against the store with timeout
// control, transient-error retry with linear backoff, and translation of
// low-level database errors into the apperrors taxonomy. All repositories go
// through it.
//
// Statement templates are logged; bound parameter values never are.
type Gateway struct {
	db          DB
	logger      *slog.Logger
	callTimeout time.Duration
	maxAttempts int
	baseDelay   time.Duration
}

// NewGateway creates a gateway over db.
func NewGateway(db DB, logger *slog.Logger, cfg GatewayConfig) *Gateway {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 30 * time.Second
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 3
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 250 * time.Millisecond
	}
	return &Gateway{
		db:          db,
		logger:      logger,
		callTimeout: cfg.CallTimeout,
		maxAttempts: cfg.MaxAttempts,
		baseDelay:   cfg.BaseDelay,
	}
}

// Execute runs a statement that returns no rows and reports the affected count.
func (g *Gateway) Execute(ctx context.Context, sqlText string, args ...any) (int64, error) {
	var affected int64
	err := g.do(ctx, "execute", sqlText, func(callCtx context.Context) (int64, error) {
		tag, err := g.db.Exec(callCtx, sqlText, args...)
		if err != nil {
			return 0, err
		}
		affected = tag.RowsAffected()
		return affected, nil
	})
	return affected, err
}

// Scalar runs a statement expected to produce a single value and scans it
// into dst. A statement producing no rows surfaces ErrNotFound.
func (g *Gateway) Scalar(ctx context.Context, dst any, sqlText string, args ...any) error {
	return g.do(ctx, "scalar", sqlText, func(callCtx context.Context) (int64, error) {
		if err := g.db.QueryRow(callCtx, sqlText, args...).Scan(dst); err != nil {
			return 0, err
		}
		return 1, nil
	})
}

// Select runs a query and hands the row set to collect. The collect function
// must fully materialize what it needs: on a transient failure the whole
// query, including collection, is re-run.
func (g *Gateway) Select(ctx context.Context, collect func(pgx.Rows) error, sqlText string, args ...any) error {
	return g.do(ctx, "select", sqlText, func(callCtx context.Context) (int64, error) {
		rows, err := g.db.Query(callCtx, sqlText, args...)
		if err != nil {
			return 0, err
		}
		defer rows.Close()
		if err := collect(rows); err != nil {
			return 0, err
		}
		if err := rows.Err(); err != nil {
			return 0, err
		}
		rows.Close()
		return rows.CommandTag().RowsAffected(), nil
	})
}

// WithinTx runs fn inside a database transaction: scoped acquisition of the
// transaction handle, all writes issued against it, single commit or rollback
// at the end. The whole fn is retried on a transient failure; the rollback
// makes that safe.
func (g *Gateway) WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return g.retry(ctx, "tx", "", func(callCtx context.Context) (int64, error) {
		tx, err := g.db.Begin(callCtx)
		if err != nil {
			return 0, err
		}
		defer tx.Rollback(callCtx)
		if err := fn(callCtx, tx); err != nil {
			return 0, err
		}
		if err := tx.Commit(callCtx); err != nil {
			return 0, err
		}
		return 0, nil
	})
}

// do validates the statement text and runs call under the retry policy.
func (g *Gateway) do(ctx context.Context, op, sqlText string, call func(context.Context) (int64, error)) error {
	if strings.TrimSpace(sqlText) == "" {
		return fmt.Errorf("%w: empty statement", apperrors.ErrValidation)
	}
	return g.retry(ctx, op, sqlText, call)
}

func (g *Gateway) retry(ctx context.Context, op, sqlText string, call func(context.Context) (int64, error)) error {
	var lastErr error
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, g.callTimeout)
		n, err := call(callCtx)
		cancel()

		if err == nil {
			g.logger.Info("statement executed",
				slog.String("op", op),
				slog.String("statement", sqlText),
				slog.Int64("rows", n),
				slog.Int("attempt", attempt),
			)
			return nil
		}

		if !isTransient(err) {
			translated := translateError(err)
			g.logger.Error("statement failed",
				slog.String("op", op),
				slog.String("statement", sqlText),
				slog.String("error", translated.Error()),
			)
			return translated
		}

		lastErr = err
		if attempt == g.maxAttempts {
			break
		}

		delay := time.Duration(attempt) * g.baseDelay
		g.logger.Warn("transient failure, retrying",
			slog.String("op", op),
			slog.String("statement", sqlText),
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()),
		)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			// The caller gave up mid-backoff; surface it in the taxonomy like
			// every other exit path.
			return fmt.Errorf("%w: %w", apperrors.ErrTransient, ctx.Err())
		case <-timer.C:
		}
	}

	g.logger.Error("retries exhausted",
		slog.String("op", op),
		slog.String("statement", sqlText),
		slog.Int("attempts", g.maxAttempts),
		slog.String("error", lastErr.Error()),
	)
	return fmt.Errorf("%w (%d attempts): %w", apperrors.ErrRetriesExhausted, g.maxAttempts, lastErr)
}

// transientPgCodes is the closed set of PostgreSQL error codes treated as
// transient: the failure is expected to resolve on retry.
var transientPgCodes = map[string]struct{}{
	"08000": {}, // connection_exception
	"08003": {}, // connection_does_not_exist
	"08006": {}, // connection_failure
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"53300": {}, // too_many_connections
	"55P03": {}, // lock_not_available
	"57P03": {}, // cannot_connect_now
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		_, ok := transientPgCodes[pgErr.Code]
		return ok
	}
	return pgconn.SafeToRetry(err)
}

// translateError maps permanent low-level errors into the apperrors taxonomy.
// Errors that already carry application meaning (domain-rule rejections
// returned from inside WithinTx) pass through unchanged.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: constraint %s", apperrors.ErrDuplicate, pgErr.ConstraintName)
		case "23503":
			return fmt.Errorf("%w: constraint %s", apperrors.ErrForeignKey, pgErr.ConstraintName)
		case "22001":
			return fmt.Errorf("%w: %s", apperrors.ErrDataTooLong, pgErr.Message)
		case "22003", "22007", "22P02":
			return fmt.Errorf("%w: %s", apperrors.ErrConversion, pgErr.Message)
		case "23502", "23514":
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, pgErr.Message)
		default:
			return apperrors.NewAppError(500, "database error "+pgErr.Code, err)
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	return err
}
