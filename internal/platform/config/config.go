package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL          string
	DatabaseURLSecondary string
	Port                 string
	IsProduction         bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Data gateway tuning.
	DBCallTimeout    time.Duration
	DBMaxAttempts    int
	DBRetryBaseDelay time.Duration

	// Domain tuning.
	LockoutThreshold  int
	LowStockThreshold int
	BcryptCost        int

	// Login rate limit in ulule/limiter format, e.g. "10-M" (10 per minute).
	LoginRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DATABASE_URL_SECONDARY", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "8h")
	viper.SetDefault("JWT_ISSUER", "vendas-pos")
	viper.SetDefault("DB_CALL_TIMEOUT", "30s")
	viper.SetDefault("DB_MAX_ATTEMPTS", 3)
	viper.SetDefault("DB_RETRY_BASE_DELAY", "250ms")
	viper.SetDefault("LOGIN_LOCKOUT_THRESHOLD", 10)
	viper.SetDefault("LOW_STOCK_THRESHOLD", 10)
	viper.SetDefault("BCRYPT_COST", 12)
	viper.SetDefault("LOGIN_RATE_LIMIT", "10-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL environment variable not set.")
	}
	cfg.DatabaseURLSecondary = viper.GetString("DATABASE_URL_SECONDARY")

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = 8 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION (%q). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry

	callTimeoutStr := viper.GetString("DB_CALL_TIMEOUT")
	callTimeout, err := time.ParseDuration(callTimeoutStr)
	if err != nil {
		callTimeout = 30 * time.Second
		log.Printf("Warning: Invalid value for DB_CALL_TIMEOUT (%q). Defaulting to %s.\n", callTimeoutStr, callTimeout)
	}
	cfg.DBCallTimeout = callTimeout

	cfg.DBMaxAttempts = viper.GetInt("DB_MAX_ATTEMPTS")
	if cfg.DBMaxAttempts < 1 {
		cfg.DBMaxAttempts = 3
	}

	baseDelayStr := viper.GetString("DB_RETRY_BASE_DELAY")
	baseDelay, err := time.ParseDuration(baseDelayStr)
	if err != nil {
		baseDelay = 250 * time.Millisecond
		log.Printf("Warning: Invalid value for DB_RETRY_BASE_DELAY (%q). Defaulting to %s.\n", baseDelayStr, baseDelay)
	}
	cfg.DBRetryBaseDelay = baseDelay

	cfg.LockoutThreshold = viper.GetInt("LOGIN_LOCKOUT_THRESHOLD")
	if cfg.LockoutThreshold < 1 {
		cfg.LockoutThreshold = 10
	}
	cfg.LowStockThreshold = viper.GetInt("LOW_STOCK_THRESHOLD")
	if cfg.LowStockThreshold < 0 {
		cfg.LowStockThreshold = 10
	}
	cfg.BcryptCost = viper.GetInt("BCRYPT_COST")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	return cfg, nil
}
