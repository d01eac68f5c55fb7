package model

import "time"

// GroundStation is the fixed observer location used for all pass predictions.
// Latitude and longitude are in decimal degrees, elevation in meters above
// sea level.
type GroundStation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
}

// PassRecord is a single predicted overpass of one satellite as seen from
// the ground station. Timestamps are UTC epoch seconds exactly as delivered
// by the prediction API; conversion to the display timezone happens at
// render time.
//
// A record is enriched once during aggregation (satellite id, color, and
// display name are injected) and never mutated afterwards.
type PassRecord struct {
	// SatelliteID is the NORAD catalog number of the satellite.
	SatelliteID int `json:"satellite_id"`

	// SatelliteName is the display name reported by the prediction API.
	// It is untrusted upstream data and must be escaped before embedding
	// in HTML output.
	SatelliteName string `json:"satellite_name"`

	// Color is the configured display color for this satellite's rows.
	Color string `json:"color"`

	// StartUTC is the time the satellite rises above the minimum elevation.
	StartUTC int64 `json:"start_utc"`

	// MaxUTC is the time of maximum elevation.
	MaxUTC int64 `json:"max_utc"`

	// EndUTC is the time the satellite drops below the minimum elevation.
	EndUTC int64 `json:"end_utc"`

	// MaxElevation is the highest elevation angle reached during the pass,
	// in degrees above the horizon.
	MaxElevation float64 `json:"max_elevation"`

	// StartAzCompass and EndAzCompass are the compass points where the
	// pass begins and ends (e.g. "NNW"). Optional; empty if the API did
	// not provide them.
	StartAzCompass string `json:"start_az_compass,omitempty"`
	EndAzCompass   string `json:"end_az_compass,omitempty"`
}

// StartTime returns the pass start as a UTC time.
func (p PassRecord) StartTime() time.Time {
	return time.Unix(p.StartUTC, 0).UTC()
}

// MaxTime returns the time of maximum elevation as a UTC time.
func (p PassRecord) MaxTime() time.Time {
	return time.Unix(p.MaxUTC, 0).UTC()
}

// EndTime returns the pass end as a UTC time.
func (p PassRecord) EndTime() time.Time {
	return time.Unix(p.EndUTC, 0).UTC()
}

// Duration returns the length of the pass. It is computed from the epoch
// timestamps, so it is unaffected by daylight-saving transitions in the
// display timezone.
func (p PassRecord) Duration() time.Duration {
	return time.Duration(p.EndUTC-p.StartUTC) * time.Second
}

// SkippedSatellite records a configured satellite that contributed no pass
// records, together with a human-readable reason. Skips are informational:
// they appear in logs and in the report footer but never fail the run.
type SkippedSatellite struct {
	SatelliteID int    `json:"satellite_id"`
	Reason      string `json:"reason"`
}

// PassReport accumulates the result of one report generation run. It is
// created empty, filled by the pipeline steps in order (fetch, sort,
// render), and discarded when the run ends.
type PassReport struct {
	// Station echoes the ground-station parameters the predictions were
	// computed for.
	Station GroundStation `json:"station"`

	// GeneratedAt is the wall-clock time the report was rendered.
	GeneratedAt time.Time `json:"generated_at"`

	// Records holds the merged pass records of all satellites. After the
	// sort step they are ordered ascending by StartUTC.
	Records []PassRecord `json:"records"`

	// Skipped lists satellites whose fetch failed or returned no usable
	// pass data.
	Skipped []SkippedSatellite `json:"skipped,omitempty"`

	// Rendered is the final report document produced by the render step.
	// It is excluded from JSON output since it duplicates the records.
	Rendered []byte `json:"-"`
}

// NewPassReport creates an empty report for the given ground station.
func NewPassReport(station GroundStation) *PassReport {
	return &PassReport{
		Station: station,
		Records: make([]PassRecord, 0),
	}
}

// AddRecord appends a pass record in encounter order.
func (r *PassReport) AddRecord(rec PassRecord) {
	r.Records = append(r.Records, rec)
}

// AddSkip notes that a satellite contributed no records.
func (r *PassReport) AddSkip(satelliteID int, reason string) {
	r.Skipped = append(r.Skipped, SkippedSatellite{
		SatelliteID: satelliteID,
		Reason:      reason,
	})
}
