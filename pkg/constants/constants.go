// Package constants provides shared constants for the loan-calculator application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxPrincipal keeps every schedule figure an exactly representable integer
	// in a float64.
	MaxPrincipal = 1_000_000_000_000.0

	// MaxInterestRate is the largest accepted annual rate in percent
	MaxInterestRate = 1000.0

	// MaxTermYears is the longest accepted loan term
	MaxTermYears = 50
)

// Input defaults, matching the values the calculator form starts with.
const (
	DefaultPrincipal    = "50000000"
	DefaultInterestRate = "3.00"
	DefaultTermYears    = "25"
	DefaultLanguage     = "hu-HU"
	DefaultCurrency     = "HUF"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatHTML renders the summary and schedule as an HTML fragment
	OutputFormatHTML = "html"

	// OutputFormatJSON is the machine-readable JSON output format
	OutputFormatJSON = "json"

	// OutputFormatYAML is the machine-readable YAML output format
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment variable overrides, e.g. LOANCALC_DISPLAY_CURRENCY
	EnvPrefix = "LOANCALC"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (64 KB)
	DefaultMaxUploadSizeBytes int64 = 64 * 1024

	// DefaultReadTimeout is the default server read timeout
	DefaultReadTimeout = "10s"

	// DefaultWriteTimeout is the default server write timeout
	DefaultWriteTimeout = "10s"

	// DefaultShutdownTimeout bounds graceful shutdown
	DefaultShutdownTimeout = "30s"
)
