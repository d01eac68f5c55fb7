package n2yo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// DefaultBaseURL is the N2YO REST API base URL.
const DefaultBaseURL = "https://api.n2yo.com/rest/v1/satellite"

// Default prediction parameters, used when the caller does not override
// them via options. They mirror the configuration defaults.
const (
	defaultDays         = 3
	defaultMinElevation = 10.0
	defaultUserAgent    = "satpass/1.0 (+https://github.com/nao1215/satpass)"
)

// Observer is the ground-station location sent with every prediction
// request. Altitude is in meters above sea level.
type Observer struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
}

// Client is a typed client for the N2YO radio pass prediction API.
//
// Design decision: We use a struct holding the http.Client rather than
// passing one on each call because:
//  1. Request parameters (observer, window, credential) are fixed per run
//  2. Connection pooling works better with a shared client
//  3. Easier to test with a custom client or base URL
type Client struct {
	// baseURL is the API endpoint prefix, overridable for tests.
	baseURL string

	// apiKey is the N2YO API credential appended to every request.
	apiKey string

	// observer is the ground station predictions are computed for.
	observer Observer

	// days is the prediction lookahead window in days.
	days int

	// minElevation is the minimum acceptable max elevation in degrees.
	minElevation float64

	// userAgent identifies satpass in HTTP requests.
	userAgent string

	// httpClient performs the requests. By default it has no timeout
	// override; the transport defaults apply.
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used in tests to point the
// client at a local fake server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client. This makes the
// transport swappable for testing.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets a request timeout on the underlying HTTP client.
// Zero leaves the transport default in place.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithDays sets the prediction lookahead window in days.
func WithDays(days int) Option {
	return func(c *Client) {
		c.days = days
	}
}

// WithMinElevation sets the minimum acceptable max elevation in degrees.
// Passes peaking below this angle are excluded by the API.
func WithMinElevation(minElevation float64) Option {
	return func(c *Client) {
		c.minElevation = minElevation
	}
}

// NewClient creates a Client for the given API key and observer location.
func NewClient(apiKey string, observer Observer, opts ...Option) *Client {
	c := &Client{
		baseURL:      DefaultBaseURL,
		apiKey:       apiKey,
		observer:     observer,
		days:         defaultDays,
		minElevation: defaultMinElevation,
		userAgent:    defaultUserAgent,
		httpClient:   &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// requestURL builds the radiopasses URL for one satellite. The path embeds
// every parameter, ending in the API's slightly odd "/&apiKey=" suffix:
//
//	{base}/radiopasses/{id}/{lat}/{lon}/{alt}/{days}/{minEl}/&apiKey={key}
func (c *Client) requestURL(satelliteID int) string {
	return fmt.Sprintf("%s/radiopasses/%d/%s/%s/%s/%d/%s/&apiKey=%s",
		c.baseURL,
		satelliteID,
		strconv.FormatFloat(c.observer.Latitude, 'f', -1, 64),
		strconv.FormatFloat(c.observer.Longitude, 'f', -1, 64),
		strconv.FormatFloat(c.observer.Altitude, 'f', -1, 64),
		c.days,
		strconv.FormatFloat(c.minElevation, 'f', -1, 64),
		c.apiKey,
	)
}

// RadioPasses fetches radio pass predictions for one satellite.
//
// Transport errors and non-200 statuses are returned as errors; the caller
// decides whether they are fatal. The response body is decoded into the
// typed PassResponse; use PassResponse.Validate to check that it actually
// carries usable pass data before building records from it.
//
// There is no retry. A failed request costs nothing but that satellite's
// contribution to the report.
func (c *Client) RadioPasses(ctx context.Context, satelliteID int) (*PassResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(satelliteID), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for satellite %d: %w", satelliteID, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting radio passes for satellite %d: %w", satelliteID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("satellite %d: unexpected status %d from prediction API", satelliteID, resp.StatusCode)
	}

	var pr PassResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decoding radio passes for satellite %d: %w", satelliteID, err)
	}

	// The API reports problems (bad key, unknown satellite) with a 200
	// status and an error field in the body.
	if pr.Error != "" {
		return nil, fmt.Errorf("satellite %d: %w: %s", satelliteID, ErrAPIError, pr.Error)
	}

	return &pr, nil
}
