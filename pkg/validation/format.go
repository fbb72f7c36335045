// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/young626-jang/LTV-Calculator/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateRatio checks that an LTV ratio percentage is within the accepted
// range.
func ValidateRatio(ratio int) error {
	if ratio < constants.MinLtvRatio || ratio > constants.MaxLtvRatio {
		return fmt.Errorf("expected LTV ratio in [%d,%d], got %d",
			constants.MinLtvRatio, constants.MaxLtvRatio, ratio)
	}
	return nil
}

// ValidateHistoryBackend checks that the configured history backend is one
// this build knows how to construct.
func ValidateHistoryBackend(backend string) error {
	switch backend {
	case "", "memory", "redis":
		return nil
	}
	return fmt.Errorf("expected history backend of memory or redis, got %s", backend)
}
