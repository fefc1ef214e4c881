package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName        = "RupeePay"
	defaultAppEnv         = "development"
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultCurrency       = "INR"
	defaultWithdrawalFee  = 300 // paise
	defaultReferralReward = 300 // paise
	defaultShutdownDelay  = 10 * time.Second
	defaultIdempotencyTTL = 24 * time.Hour
	defaultReferralLink   = "https://t.me/rupeepay_bot?start="
	defaultResolveURL     = "http://localhost:8080/api/v1/withdrawals/resolve"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName          string
	AppEnv           string
	Port             string
	LogLevel         string
	DatabaseURL      string
	RedisURL         string
	Currency         string
	WithdrawalFee    int64 // paise, deducted from the requested amount on success
	ReferralReward   int64 // paise, credited to the inviter per referred user
	ReferralLinkBase string
	ResolveBaseURL   string
	BotToken         string
	OperatorChatID   string
	ShutdownPeriod   time.Duration
	IdempotencyTTL   time.Duration
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:          getEnv("APP_NAME", defaultAppName),
		AppEnv:           getEnv("APP_ENV", defaultAppEnv),
		Port:             getEnv("PORT", defaultPort),
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		Currency:         getEnv("WALLET_CURRENCY", defaultCurrency),
		ReferralLinkBase: getEnv("REFERRAL_LINK_BASE", defaultReferralLink),
		ResolveBaseURL:   getEnv("WITHDRAW_RESOLVE_URL", defaultResolveURL),
		BotToken:         os.Getenv("TELEGRAM_BOT_TOKEN"),
		OperatorChatID:   os.Getenv("OPERATOR_CHAT_ID"),
		ShutdownPeriod:   defaultShutdownDelay,
		IdempotencyTTL:   defaultIdempotencyTTL,
	}

	var err error
	if cfg.WithdrawalFee, err = paiseEnv("WITHDRAWAL_FEE", defaultWithdrawalFee); err != nil {
		return Config{}, err
	}
	if cfg.ReferralReward, err = paiseEnv("REFERRAL_REWARD", defaultReferralReward); err != nil {
		return Config{}, err
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownPeriod = d
	}

	if v := os.Getenv("IDEMPOTENCY_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid IDEMPOTENCY_TTL: %w", err)
		}
		cfg.IdempotencyTTL = d
	}

	if cfg.WithdrawalFee < 0 {
		return Config{}, fmt.Errorf("WITHDRAWAL_FEE must not be negative")
	}
	if cfg.ReferralReward <= 0 {
		return Config{}, fmt.Errorf("REFERRAL_REWARD must be positive")
	}

	// Outside of dev every backing store must be configured; in dev the
	// service falls back to in-memory stores when these are empty.
	if !cfg.IsDev() {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
	}

	return cfg, nil
}

// IsDev reports whether the service runs in a development environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// paiseEnv reads a major-unit decimal amount (e.g. "3.00") and converts it to paise.
func paiseEnv(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return int64(f*100 + 0.5), nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
