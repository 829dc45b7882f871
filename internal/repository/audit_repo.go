// internal/repository/audit_repo.go
package repository

import (
	"context"

	"vestflow-engine/internal/domain"
)

// AuditRepository defines the interface for balance audit trail operations.
type AuditRepository interface {
	// CreateAudit appends a balance audit snapshot using the provided DBExecutor.
	CreateAudit(ctx context.Context, q DBExecutor, audit *domain.BalanceAudit) error
}
