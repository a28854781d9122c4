package models

import "fmt"

// ValidationError marks a bookmaker quote that cannot be used
type ValidationError struct {
	FixtureID string
	Bookmaker string
	Field     string
	Reason    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid quote from %s for fixture %s: %s %s", e.Bookmaker, e.FixtureID, e.Field, e.Reason)
}

// UpstreamError is returned when the odds source or Polymarket cannot be used
type UpstreamError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s unavailable (status %d): %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s unavailable: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ConfigurationError is returned when a required secret is missing
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("environment variable %s is required", e.Key)
}
