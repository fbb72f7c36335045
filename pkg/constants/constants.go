// Package constants provides shared constants for the LTV calculator.
// All monetary amounts in this module are integers in units of 10,000 KRW
// (만원) unless noted otherwise.
package constants

// Domain constants
const (
	// DefaultSetRatio is the registration ratio (%) pre-filled for a lien
	// row; claim ceilings are typically registered at 120% of principal.
	DefaultSetRatio = 120

	// FallbackSetRatio replaces a zero or missing registration ratio
	// before the principal derivation divides by it.
	FallbackSetRatio = 100

	// TruncationUnit truncates limit and available amounts to whole units
	// of 100,000 KRW.
	TruncationUnit = 10

	// DefaultRoundingUnit floors the reported figures to whole units of
	// 1,000,000 KRW.
	DefaultRoundingUnit = 100

	// DefaultLtvRatio is used when a profile selects no valid ratio.
	DefaultLtvRatio = 80

	// MinLtvRatio and MaxLtvRatio bound an accepted LTV ratio percentage.
	MinLtvRatio = 1
	MaxLtvRatio = 100

	// MaxLienItems caps the number of lien rows per estimate.
	MaxLienItems = 10

	// LowFloorCutoff is the highest floor still classified as low-floor
	// pricing (하안가).
	LowFloorCutoff = 2
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size
	// for estimate documents (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// History defaults
const (
	// DefaultHistoryRetentionDays is how long saved sessions are kept
	// before cleanup removes them.
	DefaultHistoryRetentionDays = 30
)
