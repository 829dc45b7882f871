// internal/repository/settlement_repo.go
package repository

import (
	"context"
	"time"

	"vestflow-engine/internal/domain"
)

// SettlementRepository defines the interface for settlement run registry
// and run log operations.
type SettlementRepository interface {
	// CreateRun inserts the daily gate record. If a run already exists for
	// the same date the uniqueness constraint fires and util.ErrAlreadyRun
	// is returned; this is the expected steady-state outcome for every
	// invocation after the first on a given day.
	CreateRun(ctx context.Context, q DBExecutor, run *domain.SettlementRun) error
	// GetRunByDate retrieves the run record for the UTC day boundary of date,
	// or util.ErrNotFound.
	GetRunByDate(ctx context.Context, q DBExecutor, date time.Time) (*domain.SettlementRun, error)
	// CreateRunLog appends a run attempt summary.
	CreateRunLog(ctx context.Context, q DBExecutor, log *domain.SettlementRunLog) error
	// ListRunLogs retrieves a paginated list of run logs, newest first,
	// along with the total count.
	ListRunLogs(ctx context.Context, q DBExecutor, limit, offset int) ([]domain.SettlementRunLog, int64, error)
	// GetLastForcedRunTime returns the creation time of the most recent
	// forced run log, or nil if none exists. Backs the forced-run throttle
	// so it survives process restarts.
	GetLastForcedRunTime(ctx context.Context, q DBExecutor) (*time.Time, error)
}
