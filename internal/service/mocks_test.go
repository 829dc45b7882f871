// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"vestflow-engine/internal/domain"
	"vestflow-engine/internal/repository"
	"vestflow-engine/pkg/db" // Import pkg/db for interfaces and function types

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// dec is a test helper for building exact decimal values.
func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// decEq builds a testify argument matcher comparing decimals by value, since
// equal decimals may differ in internal exponent representation.
func decEq(s string) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		want, err := decimal.NewFromString(s)
		return err == nil && want.Equal(d)
	})
}

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController is a mock implementation of db.TxController.
// It also implicitly implements repository.DBExecutor for testing purposes
// by embedding MockDBExecutor.
type MockTxController struct {
	mock.Mock
	MockDBExecutor // Embed MockDBExecutor to satisfy repository.DBExecutor interface
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

var _ db.TxController = (*MockTxController)(nil)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByReferralCode(ctx context.Context, q repository.DBExecutor, code string) (*domain.User, error) {
	args := m.Called(ctx, q, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockWalletRepository is a mock implementation of repository.WalletRepository.
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	args := m.Called(ctx, q, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetWalletByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) CreditAccrual(ctx context.Context, q repository.DBExecutor, walletID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, q, walletID, amount)
	return args.Error(0)
}

func (m *MockWalletRepository) CreditCommission(ctx context.Context, q repository.DBExecutor, walletID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, q, walletID, amount)
	return args.Error(0)
}

// MockPositionRepository is a mock implementation of repository.PositionRepository.
type MockPositionRepository struct {
	mock.Mock
}

func (m *MockPositionRepository) CreatePosition(ctx context.Context, q repository.DBExecutor, position *domain.Position) error {
	args := m.Called(ctx, q, position)
	return args.Error(0)
}

func (m *MockPositionRepository) GetPositionByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Position, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Position), args.Error(1)
}

func (m *MockPositionRepository) ListEligible(ctx context.Context, q repository.DBExecutor, dayStart time.Time, afterID int64, limit int) ([]domain.Position, error) {
	args := m.Called(ctx, q, dayStart, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Position), args.Error(1)
}

func (m *MockPositionRepository) MarkSettled(ctx context.Context, q repository.DBExecutor, positionID int64, settledAt time.Time) error {
	args := m.Called(ctx, q, positionID, settledAt)
	return args.Error(0)
}

// MockEarningRepository is a mock implementation of repository.EarningRepository.
type MockEarningRepository struct {
	mock.Mock
}

func (m *MockEarningRepository) CreateEarning(ctx context.Context, q repository.DBExecutor, earning *domain.Earning) error {
	args := m.Called(ctx, q, earning)
	return args.Error(0)
}

func (m *MockEarningRepository) ListEarnings(ctx context.Context, q repository.DBExecutor, filter repository.EarningFilter, limit, offset int) ([]domain.Earning, int64, error) {
	args := m.Called(ctx, q, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Earning), args.Get(1).(int64), args.Error(2)
}

// MockSettlementRepository is a mock implementation of repository.SettlementRepository.
type MockSettlementRepository struct {
	mock.Mock
}

func (m *MockSettlementRepository) CreateRun(ctx context.Context, q repository.DBExecutor, run *domain.SettlementRun) error {
	args := m.Called(ctx, q, run)
	return args.Error(0)
}

func (m *MockSettlementRepository) GetRunByDate(ctx context.Context, q repository.DBExecutor, date time.Time) (*domain.SettlementRun, error) {
	args := m.Called(ctx, q, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementRun), args.Error(1)
}

func (m *MockSettlementRepository) CreateRunLog(ctx context.Context, q repository.DBExecutor, log *domain.SettlementRunLog) error {
	args := m.Called(ctx, q, log)
	return args.Error(0)
}

func (m *MockSettlementRepository) ListRunLogs(ctx context.Context, q repository.DBExecutor, limit, offset int) ([]domain.SettlementRunLog, int64, error) {
	args := m.Called(ctx, q, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.SettlementRunLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockSettlementRepository) GetLastForcedRunTime(ctx context.Context, q repository.DBExecutor) (*time.Time, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

// MockAuditRepository is a mock implementation of repository.AuditRepository.
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) CreateAudit(ctx context.Context, q repository.DBExecutor, audit *domain.BalanceAudit) error {
	args := m.Called(ctx, q, audit)
	return args.Error(0)
}
