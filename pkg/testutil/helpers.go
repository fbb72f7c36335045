// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/young626-jang/LTV-Calculator/internal/ltv"
)

// FindResult finds the result for the given ratio in a results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindResult(results []ltv.Result, ratio int) *ltv.Result {
	for i := range results {
		if results[i].Ratio == ratio {
			return &results[i]
		}
	}
	return nil
}
