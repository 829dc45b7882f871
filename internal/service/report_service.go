// internal/service/report_service.go
package service

import (
	"context"
	"fmt"

	"vestflow-engine/internal/domain"
	"vestflow-engine/internal/repository"
	"vestflow-engine/internal/util"
)

// ReportService defines the read-only reporting surface consumed by admin
// tooling: settlement run history, earnings queries and wallet lookups.
type ReportService interface {
	GetRunLogs(ctx context.Context, limit, offset int) ([]domain.SettlementRunLog, int64, error)
	GetEarnings(ctx context.Context, filter repository.EarningFilter, limit, offset int) ([]domain.Earning, int64, error)
	GetWalletByUserID(ctx context.Context, userID int64) (*domain.Wallet, error)
}

// reportService implements the ReportService interface.
type reportService struct {
	dbExecutor     repository.DBExecutor
	walletRepo     repository.WalletRepository
	earningRepo    repository.EarningRepository
	settlementRepo repository.SettlementRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(
	dbExecutor repository.DBExecutor,
	walletRepo repository.WalletRepository,
	earningRepo repository.EarningRepository,
	settlementRepo repository.SettlementRepository,
) ReportService {
	return &reportService{
		dbExecutor:     dbExecutor,
		walletRepo:     walletRepo,
		earningRepo:    earningRepo,
		settlementRepo: settlementRepo,
	}
}

// GetRunLogs retrieves a paginated list of settlement run logs, newest first.
func (s *reportService) GetRunLogs(ctx context.Context, limit, offset int) ([]domain.SettlementRunLog, int64, error) {
	logs, totalCount, err := s.settlementRepo.ListRunLogs(ctx, s.dbExecutor, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve settlement run logs: %w", err)
	}
	return logs, totalCount, nil
}

// GetEarnings retrieves a filtered, paginated list of earnings records,
// newest first.
func (s *reportService) GetEarnings(ctx context.Context, filter repository.EarningFilter, limit, offset int) ([]domain.Earning, int64, error) {
	earnings, totalCount, err := s.earningRepo.ListEarnings(ctx, s.dbExecutor, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve earnings: %w", err)
	}
	return earnings, totalCount, nil
}

// GetWalletByUserID retrieves a user's wallet.
func (s *reportService) GetWalletByUserID(ctx context.Context, userID int64) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetWalletByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to retrieve wallet for user %d: %w", userID, err)
	}
	return wallet, nil
}
