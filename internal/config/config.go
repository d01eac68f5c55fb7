package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These match the behavior of typical amateur-radio pass trackers and can
// all be overridden in the configuration file.
const (
	// DefaultDays is the prediction lookahead window. The N2YO API caps
	// radio pass predictions at 10 days; 3 days keeps reports short and
	// is the window most operators plan around.
	DefaultDays = 3

	// DefaultMinElevation is the minimum maximum-elevation (degrees) a
	// pass must reach to be included. Below 10 degrees most ground
	// stations are blocked by terrain and buildings.
	DefaultMinElevation = 10.0

	// DefaultTimezone is the IANA zone name used to localize pass times
	// in the report when the configuration does not name one.
	DefaultTimezone = "UTC"

	// AppName is the application name used for XDG directory paths.
	AppName = "satpass"
)

// Config holds all configuration options for satpass.
// It is populated from the YAML configuration file, optionally overridden
// by CLI flags, and passed through the application via dependency injection
// rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for everything except the ground station, which is a natural unit that
// the N2YO client also needs. The number of options is manageable, and
// further nesting would add complexity without benefit.
type Config struct {
	// Station is the observer location all predictions are computed for.
	Station Station `yaml:"station"`

	// Days is the prediction lookahead window in days.
	Days int `yaml:"days"`

	// MinElevation is the minimum acceptable max elevation in degrees.
	// Passes peaking below this angle are excluded by the API.
	MinElevation float64 `yaml:"min_elevation"`

	// APIKey is the N2YO API key. It is a static externally supplied
	// credential; satpass never stores or rotates it, and the logging
	// layer masks it in log output.
	APIKey string `yaml:"api_key"`

	// Timezone is the IANA zone name used to localize pass times in the
	// rendered report (e.g. "Europe/Berlin").
	Timezone string `yaml:"timezone"`

	// Output is the file path the rendered report is written to.
	// Any existing file at this path is overwritten.
	Output string `yaml:"output"`

	// LogFile is the append-only log file path.
	LogFile string `yaml:"log_file"`

	// Satellites is the ordered list of satellites to fetch predictions
	// for. Order is preserved: fetches happen in this order and sorting
	// ties keep it.
	Satellites []Satellite `yaml:"satellites"`

	// Verbose enables debug-level log output. Set from the CLI, not the
	// configuration file.
	Verbose bool `yaml:"-"`

	// MarkdownReport renders the report as Markdown instead of HTML.
	// Set from the CLI. Mutually exclusive with JSONReport.
	MarkdownReport bool `yaml:"-"`

	// JSONReport renders the report as JSON instead of HTML.
	// Set from the CLI. Mutually exclusive with MarkdownReport.
	JSONReport bool `yaml:"-"`
}

// Station is the ground-station location in the configuration file.
type Station struct {
	// Latitude in decimal degrees, north positive.
	Latitude float64 `yaml:"latitude"`

	// Longitude in decimal degrees, east positive.
	Longitude float64 `yaml:"longitude"`

	// Elevation in meters above sea level.
	Elevation float64 `yaml:"elevation"`
}

// Satellite is one configured satellite: its NORAD catalog number and the
// display color used for its rows in the report. The display name is not
// configured; it comes from the prediction API response.
type Satellite struct {
	// ID is the NORAD catalog number (e.g. 25544 for the ISS).
	// It is passed through to the API unvalidated; unknown ids simply
	// yield no passes.
	ID int `yaml:"id"`

	// Color is an HTML color used as the row background for this
	// satellite (e.g. "#ffcc99" or "lightblue").
	Color string `yaml:"color"`
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults; the API key and satellite
// list have no defaults and must come from the configuration file.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (days, minimum elevation,
// output paths). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Days:         DefaultDays,
		MinElevation: DefaultMinElevation,
		Timezone:     DefaultTimezone,
		Output:       filepath.Join(XDGDataDir(), "passes.html"),
		LogFile:      filepath.Join(XDGStateDir(), "satpass.log"),
	}
}

// XDGDataDir returns the XDG data directory for satpass.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/satpass
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGStateDir returns the XDG state directory for satpass, used for the
// default log file location.
// On Linux: ~/.local/state/satpass
func XDGStateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// XDGConfigDir returns the XDG config directory for satpass.
// On Linux: ~/.config/satpass
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after loading, before any network requests.
//
// We return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// At least one satellite, or the report would always be empty
	if len(c.Satellites) == 0 {
		return ErrNoSatellites
	}

	// The API rejects keyless requests, so fail before the first fetch
	if c.APIKey == "" {
		return ErrNoAPIKey
	}

	if c.Station.Latitude < -90 || c.Station.Latitude > 90 {
		return ErrInvalidLatitude
	}

	if c.Station.Longitude < -180 || c.Station.Longitude > 180 {
		return ErrInvalidLongitude
	}

	if c.Days < 1 {
		return ErrInvalidDays
	}

	if c.MinElevation < 0 || c.MinElevation > 90 {
		return ErrInvalidMinElevation
	}

	if c.Output == "" {
		return ErrNoOutputPath
	}

	// Markdown and JSON output are mutually exclusive
	if c.MarkdownReport && c.JSONReport {
		return ErrConflictingReportFormats
	}

	if c.LogFile == "" {
		return ErrNoLogFile
	}

	// Verify the zone name resolves against the IANA database now so a
	// typo fails the run before any API quota is spent.
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return ErrInvalidTimezone
	}

	return nil
}
