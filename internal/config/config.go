package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// Minimum time between alert evaluation passes.
	CheckInterval time.Duration

	// Budget utilization percentage at which a warning alert fires.
	NearLimitThreshold decimal.Decimal

	// Multiple of the trailing-week daily average above which today's
	// spending counts as a spike.
	SpendingSpikeFactor decimal.Decimal

	// Single-expense amount above which an informational alert fires.
	LargeExpenseThreshold decimal.Decimal

	// When true, an alert is skipped if an unread notification with the
	// same type and message is already in the store.
	SuppressDuplicates bool

	SeedDemoData bool
	LogLevel     string
}

func ProcessEnvironmentVariables() (*Config, error) {
	env := Config{
		CheckInterval:         time.Hour,
		NearLimitThreshold:    decimal.NewFromInt(80),
		SpendingSpikeFactor:   decimal.RequireFromString("1.5"),
		LargeExpenseThreshold: decimal.NewFromInt(500),
		SuppressDuplicates:    false,
		SeedDemoData:          true,
		LogLevel:              "info",
	}

	var err error
	if env.CheckInterval, err = getEnvDuration("ALERT_CHECK_INTERVAL", env.CheckInterval); err != nil {
		return nil, err
	}
	if env.NearLimitThreshold, err = getEnvDecimal("NEAR_LIMIT_THRESHOLD", env.NearLimitThreshold); err != nil {
		return nil, err
	}
	if env.SpendingSpikeFactor, err = getEnvDecimal("SPENDING_SPIKE_FACTOR", env.SpendingSpikeFactor); err != nil {
		return nil, err
	}
	if env.LargeExpenseThreshold, err = getEnvDecimal("LARGE_EXPENSE_THRESHOLD", env.LargeExpenseThreshold); err != nil {
		return nil, err
	}
	if env.SuppressDuplicates, err = getEnvBool("SUPPRESS_DUPLICATE_ALERTS", env.SuppressDuplicates); err != nil {
		return nil, err
	}
	if env.SeedDemoData, err = getEnvBool("SEED_DEMO_DATA", env.SeedDemoData); err != nil {
		return nil, err
	}
	env.LogLevel = getEnv("LOG_LEVEL", env.LogLevel)

	if err := env.Validate(); err != nil {
		return nil, err
	}

	return &env, nil
}

// Validate returns an error describing every invalid setting.
func (c *Config) Validate() error {
	var problems []string

	if c.CheckInterval <= 0 {
		problems = append(problems, fmt.Sprintf("check interval %v: must be positive", c.CheckInterval))
	}
	if c.NearLimitThreshold.IsNegative() {
		problems = append(problems, fmt.Sprintf("near-limit threshold %v: must not be negative", c.NearLimitThreshold))
	}
	if c.SpendingSpikeFactor.IsNegative() {
		problems = append(problems, fmt.Sprintf("spending spike factor %v: must not be negative", c.SpendingSpikeFactor))
	}
	if c.LargeExpenseThreshold.IsNegative() {
		problems = append(problems, fmt.Sprintf("large expense threshold %v: must not be negative", c.LargeExpenseThreshold))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("log level %q: %v", c.LogLevel, err))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); len(value) != 0 {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

func getEnvDecimal(key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback, nil
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}
