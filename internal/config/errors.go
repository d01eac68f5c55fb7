package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoSatellites is returned when the satellite list is empty.
	// Without satellites there is nothing to predict.
	ErrNoSatellites = errors.New("no satellites configured: add at least one entry under 'satellites'")

	// ErrNoAPIKey is returned when the N2YO API key is missing.
	// All prediction requests require a key.
	ErrNoAPIKey = errors.New("no API key configured: set 'api_key' (https://www.n2yo.com/api/)")

	// ErrInvalidLatitude is returned when the station latitude is outside
	// the range [-90, 90] degrees.
	ErrInvalidLatitude = errors.New("invalid station latitude: must be between -90 and 90 degrees")

	// ErrInvalidLongitude is returned when the station longitude is
	// outside the range [-180, 180] degrees.
	ErrInvalidLongitude = errors.New("invalid station longitude: must be between -180 and 180 degrees")

	// ErrInvalidDays is returned when the lookahead window is not at
	// least one day.
	ErrInvalidDays = errors.New("invalid days: lookahead window must be at least 1")

	// ErrInvalidMinElevation is returned when the minimum elevation is
	// outside the range [0, 90] degrees.
	ErrInvalidMinElevation = errors.New("invalid min_elevation: must be between 0 and 90 degrees")

	// ErrNoOutputPath is returned when the report output path is empty.
	ErrNoOutputPath = errors.New("no output path configured: set 'output'")

	// ErrNoLogFile is returned when the log file path is empty.
	ErrNoLogFile = errors.New("no log file configured: set 'log_file'")

	// ErrInvalidTimezone is returned when the timezone is not a valid
	// IANA zone name resolvable on this system.
	ErrInvalidTimezone = errors.New("invalid timezone: must be an IANA zone name such as 'Europe/Berlin'")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a
	// time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
