package domain

import "fmt"

// ConfigurationError is an invalid parameter combination caught before any
// simulation work starts. It always rejects the whole run.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func NewConfigurationError(field, format string, args ...interface{}) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ScopeNotFoundError means the analysis target entity does not exist.
type ScopeNotFoundError struct {
	Scope AnalysisScope
}

func (e *ScopeNotFoundError) Error() string {
	return fmt.Sprintf("analysis scope not found: %s", e.Scope)
}

func NewScopeNotFoundError(scope AnalysisScope) error {
	return &ScopeNotFoundError{Scope: scope}
}
