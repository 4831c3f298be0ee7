// Package config reads the pcf settings from the environment. A .env file in
// the working directory, if any, is loaded first and never overrides
// variables already set.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Environment variables.
const (
	EnvLogLevel       = "PCF_LOG_LEVEL"
	EnvFailFast       = "PCF_FAIL_FAST"
	EnvLegacyRollover = "PCF_LEGACY_ROLLOVER"
	EnvStrictWeek     = "PCF_STRICT_WEEK"
	EnvRatePrefix     = "PCF_RATE_" // followed by the currency code, e.g. PCF_RATE_USD
)

// Load loads the variables of the given .env files, ".env" by default.
// Missing files are not an error.
func Load(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, f := range filenames {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return err
		}
	}
	return nil
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}
	return defaultVal
}

// GetBool returns a boolean environment variable or a default value. Invalid
// values are ignored.
func GetBool(key string, defaultVal bool) bool {
	if b, err := strconv.ParseBool(GetEnv(key, "")); err == nil {
		return b
	}
	return defaultVal
}

// GetDecimal returns a decimal environment variable or a default value.
// Invalid values are ignored.
func GetDecimal(key string, defaultVal decimal.Decimal) decimal.Decimal {
	if d, err := decimal.NewFromString(GetEnv(key, "")); err == nil {
		return d
	}
	return defaultVal
}

// LogLevel returns PCF_LOG_LEVEL, "warn" by default.
func LogLevel() string { return GetEnv(EnvLogLevel, "warn") }

// FailFast returns PCF_FAIL_FAST, false by default.
func FailFast() bool { return GetBool(EnvFailFast, false) }

// LegacyRollover returns PCF_LEGACY_ROLLOVER, false by default.
func LegacyRollover() bool { return GetBool(EnvLegacyRollover, false) }

// StrictWeek returns PCF_STRICT_WEEK, false by default.
func StrictWeek() bool { return GetBool(EnvStrictWeek, false) }

// Rate returns PCF_RATE_<code>, or def.
func Rate(code string, def decimal.Decimal) decimal.Decimal {
	return GetDecimal(EnvRatePrefix+strings.ToUpper(code), def)
}
