// internal/repository/postgres/audit_pg.go
package postgres

import (
	"context"
	"fmt"

	"vestflow-engine/internal/domain"
	"vestflow-engine/internal/repository"

	"github.com/jmoiron/sqlx"
)

// AuditRepository implements repository.AuditRepository for PostgreSQL.
type AuditRepository struct {
	// No longer holds *sqlx.DB as methods receive DBExecutor directly
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *sqlx.DB) repository.AuditRepository {
	return &AuditRepository{}
}

// CreateAudit appends a balance audit snapshot using the provided DBExecutor.
func (r *AuditRepository) CreateAudit(ctx context.Context, q repository.DBExecutor, audit *domain.BalanceAudit) error {
	query := `INSERT INTO balance_audits (user_id, action, amount, balance_before, balance_after, metadata, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		audit.UserID, audit.Action, audit.Amount,
		audit.BalanceBefore, audit.BalanceAfter,
		audit.Metadata, audit.CreatedAt,
	).Scan(&audit.ID)
	if err != nil {
		return fmt.Errorf("failed to create balance audit: %w", err)
	}
	return nil
}
