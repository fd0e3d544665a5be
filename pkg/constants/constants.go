// Package constants provides shared constants for the carbon-forecast application.
package constants

// Engine defaults
const (
	// DefaultProjectYears is the projection horizon used when none is configured
	DefaultProjectYears = 30

	// DefaultDiscountRate is the discount rate in percent used when none is configured
	DefaultDiscountRate = 8.0

	// DefaultCarbonPrice is the flat credit price per tCO2e used when none is configured
	DefaultCarbonPrice = 25.0

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// KilogramsPerTonne converts kg CO2e to tCO2e
	KilogramsPerTonne = 1000.0

	// KWhPerMWh converts energy savings to MWh for grid factors
	KWhPerMWh = 1000.0

	// HoursPerYear is used to turn a capacity factor into annual generation
	HoursPerYear = 8760.0
)

// IRR search parameters. The bounds are rates expressed as fractions.
const (
	IRRLowerBound     = -0.99
	IRRUpperBound     = 1.0
	IRRInitialGuess   = 0.1
	IRRMaxIterations  = 100
	IRRConvergenceNPV = 0.001
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatXLSX is the Excel workbook output format; it requires an output file
	OutputFormatXLSX = "xlsx"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment overrides read by viper
	EnvPrefix = "CARBON_FORECAST"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// StoreBackendMemory keeps scenarios in process memory
	StoreBackendMemory = "memory"

	// StoreBackendRedis keeps scenarios in Redis
	StoreBackendRedis = "redis"

	// DefaultRedisAddress is used when the redis backend has no address configured
	DefaultRedisAddress = "localhost:6379"
)

// Price solver defaults
const (
	DefaultSolverMaxPrice      = 500.0
	DefaultSolverTolerance     = 0.01
	DefaultSolverMaxIterations = 100
)
