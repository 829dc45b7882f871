// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"vestflow-engine/internal/domain"

	"github.com/shopspring/decimal"
)

// WalletRepository defines the interface for wallet data operations.
type WalletRepository interface {
	// CreateWallet adds a new wallet to the database using the provided DBExecutor.
	CreateWallet(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	// GetWalletByUserID retrieves a user's wallet using the provided DBExecutor.
	GetWalletByUserID(ctx context.Context, q DBExecutor, userID int64) (*domain.Wallet, error)
	// CreditAccrual adds a daily return to the wallet's main balance and
	// cumulative accrual total in one statement.
	CreditAccrual(ctx context.Context, q DBExecutor, walletID int64, amount decimal.Decimal) error
	// CreditCommission adds a referral commission to the wallet's main balance
	// and cumulative commission total in one statement.
	CreditCommission(ctx context.Context, q DBExecutor, walletID int64, amount decimal.Decimal) error
}
