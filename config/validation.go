package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	var errs ValidationErrors

	required := []struct {
		field string
		value string
	}{
		{"ServerPort", cfg.ServerPort},
		{"DBHost", cfg.DBHost},
		{"DBPort", cfg.DBPort},
		{"DBUser", cfg.DBUser},
		{"DBName", cfg.DBName},
		{"JWTSecret", cfg.JWTSecret},
	}
	// Local databases may run without a password
	if env == CI || env == Production {
		required = append(required, struct {
			field string
			value string
		}{"DBPassword", cfg.DBPassword})
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, ValidationError{Field: r.field, Message: "is required"})
		}
	}

	if cfg.ServerPort != "" {
		if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
			errs = append(errs, ValidationError{Field: "ServerPort", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)})
		}
	}
	if cfg.GenerateRateLimit <= 0 {
		errs = append(errs, ValidationError{Field: "GenerateRateLimit", Message: "must be positive"})
	}
	if cfg.GenerateRateWindow <= 0 {
		errs = append(errs, ValidationError{Field: "GenerateRateWindow", Message: "must be positive"})
	}
	if cfg.TrackedNutrientsCacheTTL < 0 {
		errs = append(errs, ValidationError{Field: "TrackedNutrientsCacheTTL", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
