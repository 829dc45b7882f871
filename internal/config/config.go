// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"vestflow-engine/pkg/db" // Import db package for its Config struct
)

// SettlementConfig holds the externally supplied settlement engine knobs.
type SettlementConfig struct {
	CommissionLevels     []decimal.Decimal // Percent per referral level, index 0 = level 1
	MaxReferralDepth     int               // Hard bound on sponsor-chain traversal
	CurrencyPrecision    int32             // Decimal places for all monetary rounding
	PageSize             int               // Positions fetched per page during a run
	ForcedRunMinInterval time.Duration     // Minimum spacing between forced runs
	DailyRunHourUTC      int               // Hour of day (UTC) for the scheduled run
}

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string
	DB         db.Config
	Settlement SettlementConfig
}

// LoadConfig loads configuration from environment variables, reading a .env
// file first if one is present.
// It returns an AppConfig instance or an error if any variable is invalid.
func LoadConfig() (*AppConfig, error) {
	// A missing .env file is fine; real environments set variables directly.
	_ = godotenv.Load()

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080" // Default port
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost" // Default to localhost for local development
	}
	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		dbPortStr = "5432" // Default PostgreSQL port
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		dbUser = "user" // Default user for local development
	}
	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		dbPassword = "password" // Default password for local development
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "vestflowdb" // Default database name for local development
	}
	dbSSLMode := os.Getenv("DB_SSLMODE")
	if dbSSLMode == "" {
		dbSSLMode = "disable" // Default to disable for local development
	}

	settlement, err := loadSettlementConfig()
	if err != nil {
		return nil, err
	}

	return &AppConfig{
		ServerPort: serverPort,
		DB: db.Config{
			Host:     dbHost,
			Port:     dbPort,
			User:     dbUser,
			Password: dbPassword,
			DBName:   dbName,
			SSLMode:  dbSSLMode,
		},
		Settlement: settlement,
	}, nil
}

func loadSettlementConfig() (SettlementConfig, error) {
	cfg := SettlementConfig{
		MaxReferralDepth:     10,
		CurrencyPrecision:    2,
		PageSize:             500,
		ForcedRunMinInterval: time.Hour,
		DailyRunHourUTC:      0,
	}

	levelsStr := os.Getenv("COMMISSION_LEVELS")
	if levelsStr == "" {
		levelsStr = "10,5,2" // Default per-level percentages
	}
	for _, part := range strings.Split(levelsStr, ",") {
		rate, err := decimal.NewFromString(strings.TrimSpace(part))
		if err != nil {
			return cfg, fmt.Errorf("invalid COMMISSION_LEVELS entry %q: %w", part, err)
		}
		cfg.CommissionLevels = append(cfg.CommissionLevels, rate)
	}

	if depthStr := os.Getenv("MAX_REFERRAL_DEPTH"); depthStr != "" {
		depth, err := strconv.Atoi(depthStr)
		if err != nil || depth < 1 {
			return cfg, fmt.Errorf("invalid MAX_REFERRAL_DEPTH: %q", depthStr)
		}
		cfg.MaxReferralDepth = depth
	}
	if precStr := os.Getenv("CURRENCY_PRECISION"); precStr != "" {
		prec, err := strconv.Atoi(precStr)
		if err != nil || prec < 0 {
			return cfg, fmt.Errorf("invalid CURRENCY_PRECISION: %q", precStr)
		}
		cfg.CurrencyPrecision = int32(prec)
	}
	if sizeStr := os.Getenv("SETTLEMENT_PAGE_SIZE"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size < 1 {
			return cfg, fmt.Errorf("invalid SETTLEMENT_PAGE_SIZE: %q", sizeStr)
		}
		cfg.PageSize = size
	}
	if intervalStr := os.Getenv("FORCED_RUN_MIN_INTERVAL"); intervalStr != "" {
		interval, err := time.ParseDuration(intervalStr)
		if err != nil || interval < 0 {
			return cfg, fmt.Errorf("invalid FORCED_RUN_MIN_INTERVAL: %q", intervalStr)
		}
		cfg.ForcedRunMinInterval = interval
	}
	if hourStr := os.Getenv("SETTLEMENT_HOUR_UTC"); hourStr != "" {
		hour, err := strconv.Atoi(hourStr)
		if err != nil || hour < 0 || hour > 23 {
			return cfg, fmt.Errorf("invalid SETTLEMENT_HOUR_UTC: %q", hourStr)
		}
		cfg.DailyRunHourUTC = hour
	}

	return cfg, nil
}
