// internal/repository/postgres/settlement_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vestflow-engine/internal/domain"
	"vestflow-engine/internal/repository"
	"vestflow-engine/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Postgres error code for unique constraint violations.
const uniqueViolationCode = "23505"

// SettlementRepository implements repository.SettlementRepository for PostgreSQL.
type SettlementRepository struct {
	// No longer holds *sqlx.DB as methods receive DBExecutor directly
}

// NewSettlementRepository creates a new SettlementRepository.
func NewSettlementRepository(db *sqlx.DB) repository.SettlementRepository {
	return &SettlementRepository{}
}

// CreateRun inserts the daily gate record. A unique violation on run_date
// means another invocation already registered this day and is mapped to
// util.ErrAlreadyRun.
func (r *SettlementRepository) CreateRun(ctx context.Context, q repository.DBExecutor, run *domain.SettlementRun) error {
	query := `INSERT INTO settlement_runs (run_date, created_at) VALUES ($1, $2) RETURNING id`
	err := q.QueryRowContext(ctx, query, run.RunDate, run.CreatedAt).Scan(&run.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return util.ErrAlreadyRun
		}
		return fmt.Errorf("failed to create settlement run: %w", err)
	}
	return nil
}

// GetRunByDate retrieves the run record for the UTC day boundary of date.
func (r *SettlementRepository) GetRunByDate(ctx context.Context, q repository.DBExecutor, date time.Time) (*domain.SettlementRun, error) {
	var run domain.SettlementRun
	query := `SELECT id, run_date, created_at FROM settlement_runs WHERE run_date = $1`
	err := q.GetContext(ctx, &run, query, domain.DayStartUTC(date))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get settlement run for date %s: %w", date.Format("2006-01-02"), err)
	}
	return &run, nil
}

// CreateRunLog appends a run attempt summary using the provided DBExecutor.
func (r *SettlementRepository) CreateRunLog(ctx context.Context, q repository.DBExecutor, log *domain.SettlementRunLog) error {
	query := `INSERT INTO settlement_run_logs (correlation_id, run_id, forced, processed, skipped, total_accrual, total_commission, failures, detail, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		log.CorrelationID, log.RunID, log.Forced,
		log.Processed, log.Skipped,
		log.TotalAccrual, log.TotalCommission,
		log.Failures, log.Detail, log.CreatedAt,
	).Scan(&log.ID)
	if err != nil {
		return fmt.Errorf("failed to create settlement run log: %w", err)
	}
	return nil
}

// ListRunLogs retrieves a paginated list of run logs, newest first.
// It performs two queries: one for the data and one for the total count.
func (r *SettlementRepository) ListRunLogs(ctx context.Context, q repository.DBExecutor, limit, offset int) ([]domain.SettlementRunLog, int64, error) {
	logs := []domain.SettlementRunLog{}
	query := `SELECT id, correlation_id, run_id, forced, processed, skipped, total_accrual, total_commission, failures, detail, created_at
              FROM settlement_run_logs
              ORDER BY created_at DESC, id DESC
              LIMIT $1 OFFSET $2`
	err := q.SelectContext(ctx, &logs, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch settlement run logs: %w", err)
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM settlement_run_logs`
	err = q.GetContext(ctx, &totalCount, countQuery)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total settlement run log count: %w", err)
	}

	return logs, totalCount, nil
}

// GetLastForcedRunTime returns the creation time of the most recent forced
// run log, or nil if no forced run has been recorded.
func (r *SettlementRepository) GetLastForcedRunTime(ctx context.Context, q repository.DBExecutor) (*time.Time, error) {
	var last sql.NullTime
	query := `SELECT MAX(created_at) FROM settlement_run_logs WHERE forced = TRUE`
	err := q.GetContext(ctx, &last, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get last forced run time: %w", err)
	}
	if !last.Valid {
		return nil, nil
	}
	return &last.Time, nil
}
