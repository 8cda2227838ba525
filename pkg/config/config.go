// Package config loads and validates calculator configuration.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"eurocalc/pkg/domain"
)

type Config struct {
	Calculator CalculatorConfig
	Log        LogConfig
}

type CalculatorConfig struct {
	Profile         string `validate:"oneof=fixed editable"`
	Rate            string `validate:"required"`
	PrimaryCode     string `validate:"required,nefield=SecondaryCode"`
	PrimarySymbol   string
	SecondaryCode   string `validate:"required"`
	SecondarySymbol string
	Color           bool
}

type LogConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Output string `validate:"oneof=stderr stdout none"`
}

// Load reads configuration from the environment. Variables from the given
// env files (".env" when none are given) are loaded first; missing files
// are ignored and variables already set in the environment win.
func Load(envFiles ...string) *Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}

	return &Config{
		Calculator: CalculatorConfig{
			Profile:         strings.ToLower(getEnv("CALC_PROFILE", domain.ProfileFixed)),
			Rate:            getEnv("CALC_RATE", domain.DefaultRate.String()),
			PrimaryCode:     strings.ToUpper(getEnv("CALC_PRIMARY_CODE", domain.EUR.Code)),
			PrimarySymbol:   getEnv("CALC_PRIMARY_SYMBOL", domain.EUR.Symbol),
			SecondaryCode:   strings.ToUpper(getEnv("CALC_SECONDARY_CODE", domain.BGN.Code)),
			SecondarySymbol: getEnv("CALC_SECONDARY_SYMBOL", domain.BGN.Symbol),
			Color:           getBoolEnv("CALC_COLOR", true),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Output: strings.ToLower(getEnv("LOG_OUTPUT", "stderr")),
		},
	}
}

// Profile builds the calculator profile described by the configuration.
// Call ValidateCore first; an unparseable rate falls back to the default.
func (c *Config) Profile() domain.Profile {
	primary := domain.Unit{Code: c.Calculator.PrimaryCode, Symbol: c.Calculator.PrimarySymbol}
	secondary := domain.Unit{Code: c.Calculator.SecondaryCode, Symbol: c.Calculator.SecondarySymbol}

	rate, err := parseRate(c.Calculator.Rate)
	if err != nil || !rate.IsPositive() {
		rate = domain.DefaultRate
	}

	if c.Calculator.Profile == domain.ProfileEditable {
		return domain.EditableRateProfile(primary, secondary, rate)
	}
	return domain.FixedRateProfile(primary, secondary, rate)
}

func parseRate(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.Replace(strings.TrimSpace(s), ",", ".", 1))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultValue
}
