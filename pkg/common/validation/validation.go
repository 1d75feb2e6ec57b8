package validation

import (
	"time"

	tferrors "github.com/forgelabs/taskforge/pkg/common/errors"
)

// ValidatePositive validates that an integer value is positive (> 0).
// Returns a ValidationError if the value is not positive.
func ValidatePositive(module, field string, value int) error {
	if value <= 0 {
		return tferrors.NewValidationError(module, field, value, "must be positive").
			WithHint("value must be greater than 0")
	}
	return nil
}

// ValidatePositiveDuration validates that a duration is positive (> 0).
// Returns a ValidationError if the duration is not positive.
func ValidatePositiveDuration(module, field string, value time.Duration) error {
	if value <= 0 {
		return tferrors.NewValidationError(module, field, value, "must be positive").
			WithHint("duration must be greater than 0")
	}
	return nil
}

// ValidateNonNegativeDuration validates that a duration is not negative.
// Returns a ValidationError if the duration is negative.
func ValidateNonNegativeDuration(module, field string, value time.Duration) error {
	if value < 0 {
		return tferrors.NewValidationError(module, field, value, "cannot be negative").
			WithHint("use 0 for the default")
	}
	return nil
}

// ValidateNotEmpty validates that a string value is not empty.
// Returns a ValidationError if the string is empty.
func ValidateNotEmpty(module, field string, value string) error {
	if value == "" {
		return tferrors.NewValidationError(module, field, value, "cannot be empty").
			WithHint("provide a non-empty " + field)
	}
	return nil
}
