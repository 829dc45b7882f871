// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "vestflow-engine/internal/api"
	"vestflow-engine/internal/api/handler"
	"vestflow-engine/internal/config"
	"vestflow-engine/internal/repository"
	"vestflow-engine/internal/repository/postgres"
	"vestflow-engine/internal/service"
	"vestflow-engine/internal/util"
	"vestflow-engine/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository       repository.UserRepository
	WalletRepository     repository.WalletRepository
	PositionRepository   repository.PositionRepository
	EarningRepository    repository.EarningRepository
	SettlementRepository repository.SettlementRepository
	AuditRepository      repository.AuditRepository

	// Services
	SettlementService service.SettlementService
	ReportService     service.ReportService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.WalletRepository = postgres.NewWalletRepository(app.DB)
	app.PositionRepository = postgres.NewPositionRepository(app.DB)
	app.EarningRepository = postgres.NewEarningRepository(app.DB)
	app.SettlementRepository = postgres.NewSettlementRepository(app.DB)
	app.AuditRepository = postgres.NewAuditRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Services
	// Pass the concrete db.BeginTx, db.CommitTx, db.RollbackTx functions from pkg/db
	app.SettlementService = service.NewSettlementService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.UserRepository,
		app.WalletRepository,
		app.PositionRepository,
		app.EarningRepository,
		app.SettlementRepository,
		app.AuditRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		service.SettlementConfig{
			CommissionTable:      service.CommissionTable(app.Config.Settlement.CommissionLevels),
			MaxReferralDepth:     app.Config.Settlement.MaxReferralDepth,
			CurrencyPrecision:    app.Config.Settlement.CurrencyPrecision,
			PageSize:             app.Config.Settlement.PageSize,
			ForcedRunMinInterval: app.Config.Settlement.ForcedRunMinInterval,
		},
		app.Logger,
	)
	app.ReportService = service.NewReportService(
		app.DB,
		app.WalletRepository,
		app.EarningRepository,
		app.SettlementRepository,
	)
	app.Logger.Info("Services initialized.")

	// 6. Initialize HTTP Handlers and Router
	settlementHandler := handler.NewSettlementHandler(app.SettlementService, app.ReportService, app.Logger)
	app.HTTPHandler = router.NewRouter(settlementHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
