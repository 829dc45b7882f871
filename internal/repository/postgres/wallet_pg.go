// internal/repository/postgres/wallet_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vestflow-engine/internal/domain"
	"vestflow-engine/internal/repository"
	"vestflow-engine/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// WalletRepository implements repository.WalletRepository for PostgreSQL.
type WalletRepository struct {
	// No longer holds *sqlx.DB as methods receive DBExecutor directly
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(db *sqlx.DB) repository.WalletRepository {
	return &WalletRepository{}
}

// CreateWallet inserts a new wallet into the database using the provided DBExecutor.
func (r *WalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	query := `INSERT INTO wallets (user_id, balance, deposit_balance, total_accrued, total_commission, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		wallet.UserID, wallet.Balance, wallet.DepositBalance,
		wallet.TotalAccrued, wallet.TotalCommission,
		wallet.CreatedAt, wallet.UpdatedAt,
	).Scan(&wallet.ID)
	if err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

// GetWalletByUserID retrieves a user's wallet using the provided DBExecutor.
func (r *WalletRepository) GetWalletByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT id, user_id, balance, deposit_balance, total_accrued, total_commission, created_at, updated_at
              FROM wallets WHERE user_id = $1`
	err := q.GetContext(ctx, &wallet, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wallet for user %d: %w", userID, err)
	}
	return &wallet, nil
}

// CreditAccrual adds a daily return to the wallet's main balance and
// cumulative accrual total using the provided DBExecutor.
func (r *WalletRepository) CreditAccrual(ctx context.Context, q repository.DBExecutor, walletID int64, amount decimal.Decimal) error {
	query := `UPDATE wallets
              SET balance = balance + $1, total_accrued = total_accrued + $1, updated_at = $2
              WHERE id = $3`
	return r.credit(ctx, q, query, walletID, amount)
}

// CreditCommission adds a referral commission to the wallet's main balance
// and cumulative commission total using the provided DBExecutor.
func (r *WalletRepository) CreditCommission(ctx context.Context, q repository.DBExecutor, walletID int64, amount decimal.Decimal) error {
	query := `UPDATE wallets
              SET balance = balance + $1, total_commission = total_commission + $1, updated_at = $2
              WHERE id = $3`
	return r.credit(ctx, q, query, walletID, amount)
}

func (r *WalletRepository) credit(ctx context.Context, q repository.DBExecutor, query string, walletID int64, amount decimal.Decimal) error {
	result, err := q.ExecContext(ctx, query, amount, time.Now().UTC(), walletID)
	if err != nil {
		return fmt.Errorf("failed to credit wallet %d: %w", walletID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after crediting wallet %d: %w", walletID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no rows affected when crediting wallet %d, wallet might not exist", walletID)
	}
	return nil
}
