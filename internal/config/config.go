package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Custody  CustodyConfig
	Networks map[string]NetworkConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// CustodyConfig holds the secrets and policy knobs of the deposit subsystem.
// The mnemonic and vault passphrase are process-wide secrets; neither is ever
// written anywhere by this service.
type CustodyConfig struct {
	Mnemonic        string
	VaultPassphrase string
	QuoteLockWindow time.Duration
	MaxFiatAmount   float64
	SweepInterval   time.Duration
	PriceCacheTTL   time.Duration
}

// NetworkConfig holds per-network endpoints, secrets and sweep policy.
// Keys of Config.Networks are entities.Network values.
type NetworkConfig struct {
	RPCURL string
	// WebhookSecret is the shared HMAC secret of the notification provider.
	WebhookSecret string
	// SweepThresholdWei is the minimum confirmed balance (wei, decimal
	// string) before a hot address is swept.
	SweepThresholdWei string
	ColdWalletAddress string
	// ConfirmationsOverride replaces the network's built-in confirmation
	// requirement when > 0.
	ConfirmationsOverride int
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "coincustody"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Custody: CustodyConfig{
			Mnemonic:        getEnv("HD_WALLET_MNEMONIC", ""),
			VaultPassphrase: getEnv("VAULT_PASSPHRASE", ""),
			QuoteLockWindow: getEnvAsDuration("QUOTE_LOCK_WINDOW", 15*time.Minute),
			MaxFiatAmount:   getEnvAsFloat("MAX_FIAT_AMOUNT", 10000),
			SweepInterval:   getEnvAsDuration("SWEEP_INTERVAL", 60*time.Second),
			PriceCacheTTL:   getEnvAsDuration("PRICE_CACHE_TTL", time.Minute),
		},
		Networks: map[string]NetworkConfig{
			"ETH_MAINNET": {
				RPCURL:                getEnv("ETH_MAINNET_RPC_URL", "https://eth-mainnet.g.alchemy.com/v2/demo"),
				WebhookSecret:         getEnv("ETH_MAINNET_WEBHOOK_SECRET", ""),
				SweepThresholdWei:     getEnv("ETH_MAINNET_SWEEP_THRESHOLD_WEI", "10000000000000000"), // 0.01 ETH
				ColdWalletAddress:     getEnv("ETH_MAINNET_COLD_WALLET", ""),
				ConfirmationsOverride: getEnvAsInt("ETH_MAINNET_CONFIRMATIONS", 0),
			},
			"POLYGON_MAINNET": {
				RPCURL:                getEnv("POLYGON_MAINNET_RPC_URL", "https://polygon-mainnet.g.alchemy.com/v2/demo"),
				WebhookSecret:         getEnv("POLYGON_MAINNET_WEBHOOK_SECRET", ""),
				SweepThresholdWei:     getEnv("POLYGON_MAINNET_SWEEP_THRESHOLD_WEI", "1000000000000000000"), // 1 MATIC
				ColdWalletAddress:     getEnv("POLYGON_MAINNET_COLD_WALLET", ""),
				ConfirmationsOverride: getEnvAsInt("POLYGON_MAINNET_CONFIRMATIONS", 0),
			},
			"BSC_MAINNET": {
				RPCURL:                getEnv("BSC_MAINNET_RPC_URL", "https://bnb-mainnet.g.alchemy.com/v2/demo"),
				WebhookSecret:         getEnv("BSC_MAINNET_WEBHOOK_SECRET", ""),
				SweepThresholdWei:     getEnv("BSC_MAINNET_SWEEP_THRESHOLD_WEI", "10000000000000000"), // 0.01 BNB
				ColdWalletAddress:     getEnv("BSC_MAINNET_COLD_WALLET", ""),
				ConfirmationsOverride: getEnvAsInt("BSC_MAINNET_CONFIRMATIONS", 0),
			},
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
