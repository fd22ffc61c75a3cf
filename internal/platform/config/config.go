package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends accepted by STORAGE_BACKEND.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StorageBackend string

	// Tokens are issued by the external identity provider; only verification happens here.
	JWTSecret string
	JWTIssuer string

	TxMaxRetries           int
	MaxInstallments        int
	BalanceEvolutionMonths int
	AllowInterestOnPending bool
	Timezone               string
	Location               *time.Location
	CurrencyCode           string

	RateLimit          string
	CORSAllowedOrigins []string

	// Bill notifications. Publishing is disabled when AMQPURL is empty.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	LogLevel slog.Level
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_BACKEND", StoragePostgres)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("TX_MAX_RETRIES", 5)
	v.SetDefault("MAX_INSTALLMENTS", 120)
	v.SetDefault("BALANCE_EVOLUTION_MONTHS", 6)
	v.SetDefault("ALLOW_INTEREST_ON_PENDING", false)
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("CURRENCY_CODE", "BRL")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "contas.bills")
	v.SetDefault("AMQP_QUEUE", "contas.bill-notifications")
	v.SetDefault("LOG_LEVEL", "info")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:            v.GetString("PGSQL_URL"),
		Port:                   v.GetString("PORT"),
		IsProduction:           v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:          v.GetBool("ENABLE_DB_CHECK"),
		StorageBackend:         strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_BACKEND"))),
		JWTSecret:              v.GetString("JWT_SECRET"),
		JWTIssuer:              v.GetString("JWT_ISSUER"),
		TxMaxRetries:           v.GetInt("TX_MAX_RETRIES"),
		MaxInstallments:        v.GetInt("MAX_INSTALLMENTS"),
		BalanceEvolutionMonths: v.GetInt("BALANCE_EVOLUTION_MONTHS"),
		AllowInterestOnPending: v.GetBool("ALLOW_INTEREST_ON_PENDING"),
		Timezone:               v.GetString("TIMEZONE"),
		CurrencyCode:           strings.ToUpper(v.GetString("CURRENCY_CODE")),
		RateLimit:              v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		AMQPURL:                v.GetString("AMQP_URL"),
		AMQPExchange:           v.GetString("AMQP_EXCHANGE"),
		AMQPQueue:              v.GetString("AMQP_QUEUE"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageBackend {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_BACKEND is %q", StoragePostgres)
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q, expected %q or %q", cfg.StorageBackend, StoragePostgres, StorageMemory)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.TxMaxRetries < 1 {
		return nil, fmt.Errorf("TX_MAX_RETRIES must be at least 1, got %d", cfg.TxMaxRetries)
	}
	if cfg.MaxInstallments < 1 {
		return nil, fmt.Errorf("MAX_INSTALLMENTS must be at least 1, got %d", cfg.MaxInstallments)
	}
	if cfg.BalanceEvolutionMonths < 1 {
		return nil, fmt.Errorf("BALANCE_EVOLUTION_MONTHS must be at least 1, got %d", cfg.BalanceEvolutionMonths)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
