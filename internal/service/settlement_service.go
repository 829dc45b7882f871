// internal/service/settlement_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vestflow-engine/internal/domain"
	"vestflow-engine/internal/repository"
	"vestflow-engine/internal/util"
	"vestflow-engine/pkg/db"

	"github.com/shopspring/decimal"
)

// SettlementConfig carries the externally supplied knobs of the engine:
// the level-indexed commission table, traversal and pagination bounds,
// currency precision and the forced-run throttle interval. None of these
// are hardcoded in the engine logic.
type SettlementConfig struct {
	CommissionTable      CommissionTable
	MaxReferralDepth     int
	CurrencyPrecision    int32
	PageSize             int
	ForcedRunMinInterval time.Duration
}

// SettlementService defines the interface for the daily settlement engine.
type SettlementService interface {
	// RunSettlement performs one full settlement pass. With forced=false the
	// daily gate is honored and util.ErrAlreadyRun is returned if the day was
	// already processed. With forced=true the gate is bypassed, subject to a
	// persisted minimum interval between forced runs.
	RunSettlement(ctx context.Context, forced bool) (*domain.RunSummary, error)
	// HasRunForDate reports whether a settlement run exists for the UTC
	// calendar day of date.
	HasRunForDate(ctx context.Context, date time.Time) (bool, error)
}

// settlementService implements the SettlementService interface.
type settlementService struct {
	dbBeginner     db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor     repository.DBExecutor // For non-transactional reads/writes (e.g., *sqlx.DB)
	userRepo       repository.UserRepository
	walletRepo     repository.WalletRepository
	positionRepo   repository.PositionRepository
	earningRepo    repository.EarningRepository
	settlementRepo repository.SettlementRepository
	auditRepo      repository.AuditRepository
	beginTx        db.BeginTxFunc    // Injected dependency for beginning transactions
	commitTx       db.CommitTxFunc   // Injected dependency for committing transactions
	rollbackTx     db.RollbackTxFunc // Injected dependency for rolling back transactions
	resolver       *ReferralResolver
	cfg            SettlementConfig
	logger         *slog.Logger
}

// NewSettlementService creates a new instance of SettlementService.
func NewSettlementService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	walletRepo repository.WalletRepository,
	positionRepo repository.PositionRepository,
	earningRepo repository.EarningRepository,
	settlementRepo repository.SettlementRepository,
	auditRepo repository.AuditRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	cfg SettlementConfig,
	logger *slog.Logger,
) SettlementService {
	return &settlementService{
		dbBeginner:     dbBeginner,
		dbExecutor:     dbExecutor,
		userRepo:       userRepo,
		walletRepo:     walletRepo,
		positionRepo:   positionRepo,
		earningRepo:    earningRepo,
		settlementRepo: settlementRepo,
		auditRepo:      auditRepo,
		beginTx:        beginTx,
		commitTx:       commitTx,
		rollbackTx:     rollbackTx,
		resolver:       NewReferralResolver(userRepo),
		cfg:            cfg,
		logger:         logger,
	}
}

// RunSettlement performs one full settlement pass over all eligible positions.
// Each position is settled in its own transaction; one position's failure is
// recorded and never aborts the run or affects other positions. A run log is
// persisted regardless of outcome; failure to persist it is fatal to the run.
func (s *settlementService) RunSettlement(ctx context.Context, forced bool) (*domain.RunSummary, error) {
	dayStart := domain.DayStartUTC(time.Now())

	var runID *int64
	if forced {
		if err := s.checkForcedInterval(ctx); err != nil {
			return nil, err
		}
		s.logger.Warn("running forced settlement, daily gate bypassed", "day", dayStart.Format("2006-01-02"))
	} else {
		run := domain.NewSettlementRun(dayStart)
		if err := s.settlementRepo.CreateRun(ctx, s.dbExecutor, run); err != nil {
			if util.IsError(err, util.ErrAlreadyRun) {
				return nil, util.ErrAlreadyRun
			}
			return nil, fmt.Errorf("settlement: failed to register run for %s: %w", dayStart.Format("2006-01-02"), err)
		}
		runID = &run.ID
	}

	summary := domain.NewRunSummary()

	// Page through eligible positions by keyset so memory stays bounded for
	// arbitrarily large position sets.
	afterID := int64(0)
	for {
		positions, err := s.positionRepo.ListEligible(ctx, s.dbExecutor, dayStart, afterID, s.cfg.PageSize)
		if err != nil {
			return nil, fmt.Errorf("settlement: failed to enumerate eligible positions: %w", err)
		}
		if len(positions) == 0 {
			break
		}
		for i := range positions {
			position := &positions[i]
			afterID = position.ID
			if err := s.settlePosition(ctx, position.ID, dayStart, summary); err != nil {
				summary.FailedItems = append(summary.FailedItems, domain.FailedItem{
					PositionID: position.ID,
					Error:      err.Error(),
				})
				s.logger.Error("position settlement failed", "position_id", position.ID, "error", err)
			}
		}
		if len(positions) < s.cfg.PageSize {
			break
		}
	}

	runLog := domain.NewSettlementRunLog(runID, forced, summary)
	if err := s.settlementRepo.CreateRunLog(ctx, s.dbExecutor, runLog); err != nil {
		return nil, fmt.Errorf("settlement: failed to persist run log: %w", err)
	}

	s.logger.Info("settlement run completed",
		"correlation_id", runLog.CorrelationID,
		"forced", forced,
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"failed", len(summary.FailedItems),
		"total_accrual", summary.TotalAccrual.String(),
		"total_commission", summary.TotalCommission.String(),
	)
	return summary, nil
}

// HasRunForDate reports whether a settlement run exists for the UTC calendar
// day of date.
func (s *settlementService) HasRunForDate(ctx context.Context, date time.Time) (bool, error) {
	_, err := s.settlementRepo.GetRunByDate(ctx, s.dbExecutor, date)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("settlement: failed to check run for date: %w", err)
	}
	return true, nil
}

// checkForcedInterval enforces the minimum spacing between forced runs
// against the persisted run log, so the throttle survives restarts.
func (s *settlementService) checkForcedInterval(ctx context.Context) error {
	last, err := s.settlementRepo.GetLastForcedRunTime(ctx, s.dbExecutor)
	if err != nil {
		return fmt.Errorf("settlement: failed to check forced run interval: %w", err)
	}
	if last != nil && time.Since(*last) < s.cfg.ForcedRunMinInterval {
		return util.ErrForcedRunThrottled
	}
	return nil
}

// settlePosition is one atomic unit of work: accrue the position's daily
// return and fan out referral commissions, all inside a single transaction.
// Balance audit snapshots are written after the commit, outside the
// transaction, so an audit fault can never poison the posting itself.
func (s *settlementService) settlePosition(ctx context.Context, positionID int64, dayStart time.Time, summary *domain.RunSummary) error {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("transaction controller does not implement DBExecutor")
	}

	// Re-read inside the transaction; the snapshot taken during enumeration
	// may be stale by the time this position's turn comes.
	position, err := s.positionRepo.GetPositionByID(ctx, txExecutor, positionID)
	if err != nil {
		return fmt.Errorf("failed to re-read position: %w", err)
	}
	if !position.EligibleFor(dayStart) {
		summary.Skipped++
		return nil
	}

	wallet, err := s.walletForUser(ctx, txExecutor, position.UserID)
	if err != nil {
		return fmt.Errorf("failed to load owner wallet: %w", err)
	}

	accrual := DailyAccrual(position.Principal, position.DailyRate, s.cfg.CurrencyPrecision)

	if err := s.walletRepo.CreditAccrual(ctx, txExecutor, wallet.ID, accrual); err != nil {
		return fmt.Errorf("failed to credit accrual: %w", err)
	}
	earning := domain.NewAccrualEarning(position.UserID, accrual, position.ID)
	if err := s.earningRepo.CreateEarning(ctx, txExecutor, earning); err != nil {
		return fmt.Errorf("failed to record accrual earning: %w", err)
	}
	if err := s.positionRepo.MarkSettled(ctx, txExecutor, position.ID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to mark position settled: %w", err)
	}

	audits := []*domain.BalanceAudit{
		domain.NewBalanceAudit(position.UserID, domain.AuditActionDailyAccrual,
			accrual, wallet.Balance, wallet.Balance.Add(accrual), auditMeta(position.ID, 0)),
	}

	commissionPaid, commissionAudits, err := s.distributeCommissions(ctx, txExecutor, position, accrual)
	if err != nil {
		return err
	}
	audits = append(audits, commissionAudits...)

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	summary.Processed++
	summary.TotalAccrual = summary.TotalAccrual.Add(accrual)
	summary.TotalCommission = summary.TotalCommission.Add(commissionPaid)

	s.recordAudits(ctx, audits)
	return nil
}

// distributeCommissions resolves the owner's sponsor chain and credits each
// ancestor its level share of the accrual. Ancestors beyond the configured
// table receive zero and are skipped without error. Runs on the caller's
// transaction executor; returns the total paid and pending audit snapshots.
func (s *settlementService) distributeCommissions(ctx context.Context, q repository.DBExecutor, position *domain.Position, accrual decimal.Decimal) (decimal.Decimal, []*domain.BalanceAudit, error) {
	total := decimal.Zero

	ancestors, err := s.resolver.Resolve(ctx, q, position.UserID, s.cfg.MaxReferralDepth)
	if err != nil {
		return total, nil, fmt.Errorf("failed to resolve sponsor chain: %w", err)
	}

	audits := []*domain.BalanceAudit{}
	for _, ancestor := range ancestors {
		amount := s.cfg.CommissionTable.CommissionFor(accrual, ancestor.Level, s.cfg.CurrencyPrecision)
		if amount.IsZero() {
			continue
		}

		wallet, err := s.walletForUser(ctx, q, ancestor.UserID)
		if err != nil {
			return total, nil, fmt.Errorf("failed to load ancestor wallet for user %d: %w", ancestor.UserID, err)
		}
		if err := s.walletRepo.CreditCommission(ctx, q, wallet.ID, amount); err != nil {
			return total, nil, fmt.Errorf("failed to credit level %d commission to user %d: %w", ancestor.Level, ancestor.UserID, err)
		}
		earning := domain.NewCommissionEarning(ancestor.UserID, amount, position.UserID, ancestor.Level)
		if err := s.earningRepo.CreateEarning(ctx, q, earning); err != nil {
			return total, nil, fmt.Errorf("failed to record level %d commission earning: %w", ancestor.Level, err)
		}

		audits = append(audits, domain.NewBalanceAudit(ancestor.UserID, domain.AuditActionReferralCommission,
			amount, wallet.Balance, wallet.Balance.Add(amount), auditMeta(position.ID, ancestor.Level)))
		total = total.Add(amount)
	}

	return total, audits, nil
}

// walletForUser fetches the user's wallet, creating an empty one on first
// reference.
func (s *settlementService) walletForUser(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetWalletByUserID(ctx, q, userID)
	if err == nil {
		return wallet, nil
	}
	if !util.IsError(err, util.ErrNotFound) {
		return nil, err
	}
	wallet = domain.NewWallet(userID)
	if err := s.walletRepo.CreateWallet(ctx, q, wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

// recordAudits writes balance audit snapshots best-effort. Audit logging is
// observability, not a correctness dependency: failures are logged and dropped.
func (s *settlementService) recordAudits(ctx context.Context, audits []*domain.BalanceAudit) {
	for _, audit := range audits {
		if err := s.auditRepo.CreateAudit(ctx, s.dbExecutor, audit); err != nil {
			s.logger.Warn("failed to write balance audit",
				"user_id", audit.UserID, "action", audit.Action, "error", err)
		}
	}
}

func auditMeta(positionID int64, level int) *string {
	var meta string
	if level > 0 {
		meta = fmt.Sprintf("position=%d level=%d", positionID, level)
	} else {
		meta = fmt.Sprintf("position=%d", positionID)
	}
	return &meta
}
