package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"betsim/database"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// HTTP configuration
	HTTPPort    string
	MetricsPort string

	// Admin configuration
	AdminToken string // Bearer token required for settlement and admin credit

	// Wallet limits (cents)
	MinDeposit  int64
	MaxDeposit  int64
	MinWithdraw int64
	MaxWithdraw int64

	// Deposit payment references expire after this many minutes
	DepositExpiryMinutes int

	// Starting balance granted at signup (cents)
	StartingBalance int64

	// Crash game configuration
	CrashHouseEdge float64

	// NATS configuration
	NATSServers string

	// Kafka configuration
	KafkaBrokers         string
	WithdrawalTopic      string
	PaymentWorkerGroupID string

	// Redis configuration
	RedisAddr string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// HTTP
		HTTPPort:    getEnvWithDefault("HTTP_PORT", "8080"),
		MetricsPort: getEnvWithDefault("METRICS_PORT", "9091"),

		// Admin
		AdminToken: os.Getenv("ADMIN_TOKEN"),

		// Wallet limits, amounts in cents
		MinDeposit:  1000,    // $10
		MaxDeposit:  1000000, // $10,000
		MinWithdraw: 2000,    // $20
		MaxWithdraw: 5000000, // $50,000

		DepositExpiryMinutes: 15,

		StartingBalance: 0,

		CrashHouseEdge: 0.04,

		// NATS
		NATSServers: getEnvWithDefault("NATS_SERVERS", "nats://nats:4222"),

		// Kafka
		KafkaBrokers:         getEnvWithDefault("KAFKA_BROKERS", "kafka:9092"),
		WithdrawalTopic:      getEnvWithDefault("WITHDRAWAL_TOPIC", "payments.withdrawals"),
		PaymentWorkerGroupID: getEnvWithDefault("PAYMENT_WORKER_GROUP_ID", "payment-worker"),

		// Redis
		RedisAddr: getEnvWithDefault("REDIS_ADDR", "redis:6379"),

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		if parsed, err := strconv.ParseInt(balance, 10, 64); err == nil {
			config.StartingBalance = parsed
		}
	}
	if edge := os.Getenv("CRASH_HOUSE_EDGE"); edge != "" {
		if parsed, err := strconv.ParseFloat(edge, 64); err == nil && parsed >= 0 && parsed < 1 {
			config.CrashHouseEdge = parsed
		}
	}
	for _, limit := range []struct {
		env  string
		dest *int64
	}{
		{"MIN_DEPOSIT", &config.MinDeposit},
		{"MAX_DEPOSIT", &config.MaxDeposit},
		{"MIN_WITHDRAW", &config.MinWithdraw},
		{"MAX_WITHDRAW", &config.MaxWithdraw},
	} {
		if v := os.Getenv(limit.env); v != "" {
			if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
				*limit.dest = parsed
			}
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.AdminToken == "" {
			return nil, fmt.Errorf("ADMIN_TOKEN is required")
		}
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:          "test",
		AdminToken:           "test-admin-token",
		MinDeposit:           1000,
		MaxDeposit:           1000000,
		MinWithdraw:          2000,
		MaxWithdraw:          5000000,
		DepositExpiryMinutes: 15,
		CrashHouseEdge:       0.04,
		StartingBalance:      0,
	}
}
