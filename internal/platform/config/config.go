package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// TreasuryConfig names the two well-known system accounts used by the dev minter.
type TreasuryConfig struct {
	TreasuryOwnerID int64
	IssuerOwnerID   int64
	Currency        string
}

// Config holds application configuration.
type Config struct {
	DatabaseURL      string
	Port             string
	IsProduction     bool
	EnableDBCheck    bool
	RunMigrations    bool
	StorageDriver    string
	LogLevel         string
	DBMaxConns       int32
	DBConnectTimeout time.Duration

	AuthEnabled bool
	JWTSecret   string

	RateLimit          string   // ulule/limiter format, e.g. "100-M"
	CORSAllowedOrigins []string // Empty disables CORS handling

	Treasury TreasuryConfig
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("RATE_LIMIT", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("TREASURY_OWNER_ID", 0)
	v.SetDefault("ISSUER_OWNER_ID", -1)
	v.SetDefault("TREASURY_CURRENCY", "USD")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:   v.GetString("PGSQL_URL"),
		Port:          v.GetString("PORT"),
		IsProduction:  v.GetBool("IS_PRODUCTION"),
		EnableDBCheck: v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations: v.GetBool("RUN_MIGRATIONS"),
		StorageDriver: strings.ToLower(v.GetString("STORAGE_DRIVER")),
		LogLevel:      v.GetString("LOG_LEVEL"),
		DBMaxConns:    v.GetInt32("DB_MAX_CONNS"),
		AuthEnabled:   v.GetBool("AUTH_ENABLED"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		RateLimit:     v.GetString("RATE_LIMIT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	timeoutStr := v.GetString("DB_CONNECT_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 5 * time.Second
		log.Printf("Warning: Invalid value for DB_CONNECT_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.DBConnectTimeout = timeout

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	currency, err := domain.NormalizeCurrency(v.GetString("TREASURY_CURRENCY"))
	if err != nil {
		return nil, fmt.Errorf("invalid TREASURY_CURRENCY: %w", err)
	}
	cfg.Treasury = TreasuryConfig{
		TreasuryOwnerID: v.GetInt64("TREASURY_OWNER_ID"),
		IssuerOwnerID:   v.GetInt64("ISSUER_OWNER_ID"),
		Currency:        currency,
	}
	if cfg.Treasury.TreasuryOwnerID == cfg.Treasury.IssuerOwnerID {
		return nil, fmt.Errorf("TREASURY_OWNER_ID and ISSUER_OWNER_ID must differ")
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER=%s", StorageDriverPostgres)
		}
	case StorageDriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.AuthEnabled && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required when AUTH_ENABLED is true")
	}

	return cfg, nil
}
