package n2yo

import (
	"errors"
	"fmt"
)

// Errors reported when a response decodes cleanly but does not carry
// usable pass data. Both are recoverable: the affected satellite is
// skipped and the run continues.
var (
	// ErrAPIError is returned when the API delivers an error payload
	// instead of predictions (invalid key, unknown satellite id).
	ErrAPIError = errors.New("prediction API error")

	// ErrNoPasses is returned when the response has no passes field at
	// all. This usually means the API changed shape or the satellite id
	// is not tracked.
	ErrNoPasses = errors.New("response has no passes field")

	// ErrMalformedPass is returned when a pass entry is missing its
	// required timestamps. A malformed entry invalidates the whole
	// response for that satellite rather than silently dropping rows.
	ErrMalformedPass = errors.New("malformed pass entry")
)

// PassResponse is the typed upstream contract of the radiopasses endpoint:
//
//	{
//	  "info":   { "satid": 25544, "satname": "SPACE STATION", ... },
//	  "passes": [ { "startUTC": ..., "maxEl": ..., "endUTC": ..., ... } ]
//	}
//
// Error responses carry an "error" string instead.
type PassResponse struct {
	Info   PassInfo `json:"info"`
	Passes []Pass   `json:"passes"`
	Error  string   `json:"error,omitempty"`
}

// PassInfo is the satellite metadata block of a pass response.
type PassInfo struct {
	// SatID is the NORAD catalog number echoed by the API.
	SatID int `json:"satid"`

	// SatName is the satellite display name. Upstream data; treat as
	// untrusted when embedding in HTML.
	SatName string `json:"satname"`

	// TransactionsCount is the number of API transactions used by this
	// key in the current window. Useful for quota logging.
	TransactionsCount int `json:"transactionscount"`

	// PassesCount is the number of passes in this response.
	PassesCount int `json:"passescount"`
}

// Pass is one predicted radio pass. All angles are degrees, all
// timestamps UTC epoch seconds.
type Pass struct {
	StartAz        float64 `json:"startAz"`
	StartAzCompass string  `json:"startAzCompass"`
	StartUTC       int64   `json:"startUTC"`
	MaxAz          float64 `json:"maxAz"`
	MaxAzCompass   string  `json:"maxAzCompass"`
	MaxEl          float64 `json:"maxEl"`
	MaxUTC         int64   `json:"maxUTC"`
	EndAz          float64 `json:"endAz"`
	EndAzCompass   string  `json:"endAzCompass"`
	EndUTC         int64   `json:"endUTC"`
}

// Validate checks that the response carries usable pass data.
//
// A nil passes slice means the field was absent from the JSON and returns
// ErrNoPasses. An empty slice is valid: the satellite simply has no passes
// in the window. Entries missing their start or end timestamp return
// ErrMalformedPass with the offending index.
//
// Design decision: validating here, at the API boundary, turns a
// malformed entry into a per-satellite skip instead of letting a zero
// timestamp surface as a nonsense row (or worse, a sort anomaly) deep in
// the render path.
func (r *PassResponse) Validate() error {
	if r.Passes == nil {
		return ErrNoPasses
	}

	for i, p := range r.Passes {
		if p.StartUTC == 0 || p.EndUTC == 0 {
			return fmt.Errorf("%w: passes[%d] missing start or end timestamp", ErrMalformedPass, i)
		}
		if p.EndUTC < p.StartUTC {
			return fmt.Errorf("%w: passes[%d] ends before it starts", ErrMalformedPass, i)
		}
	}

	return nil
}
