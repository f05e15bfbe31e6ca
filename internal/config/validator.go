package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "azure.command_timeout_seconds")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateAzure()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateAzure validates the AzureConfig
func (c *Config) validateAzure() []ValidationError {
	var errors []ValidationError

	if c.Azure.CommandTimeoutSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "azure.command_timeout_seconds",
			Value:   c.Azure.CommandTimeoutSeconds,
			Message: "must be positive",
		})
	}
	if c.Azure.ProbeTimeoutSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "azure.probe_timeout_seconds",
			Value:   c.Azure.ProbeTimeoutSeconds,
			Message: "must be positive",
		})
	}
	if c.Azure.ProbeTimeoutSeconds < c.Azure.CommandTimeoutSeconds {
		errors = append(errors, ValidationError{
			Field:   "azure.probe_timeout_seconds",
			Value:   c.Azure.ProbeTimeoutSeconds,
			Message: "must not be shorter than command_timeout_seconds",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be non-negative",
		})
	}
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}
