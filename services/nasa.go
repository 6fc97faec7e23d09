package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/marsconnect/mars-quest-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultNASABaseURL is the public NASA API host.
	DefaultNASABaseURL = "https://api.nasa.gov"

	// DemoAPIKey is NASA's shared throttled key, used when no key is
	// configured.
	DemoAPIKey = "DEMO_KEY"

	nasaRequestTimeout = 10 * time.Second

	// maxRateLimitRetries retries apply only to HTTP 429 responses.
	maxRateLimitRetries = 3
)

// NASAClient forwards parameterized GET requests to the NASA public API.
// It is stateless apart from its configuration; there is no caching layer.
type NASAClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger

	// backoffUnit is the linear backoff step between 429 retries. Tests
	// shrink it.
	backoffUnit time.Duration
}

func NewNASAClient(baseURL, apiKey string) *NASAClient {
	if baseURL == "" {
		baseURL = DefaultNASABaseURL
	}
	if apiKey == "" {
		log.Warn().Msg("NASA_API_KEY not configured, falling back to DEMO_KEY")
		apiKey = DemoAPIKey
	}

	return &NASAClient{
		baseURL:     baseURL,
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: nasaRequestTimeout},
		logger:      log.With().Str("service", "nasa").Logger(),
		backoffUnit: time.Second,
	}
}

// get performs one proxied GET, retrying up to maxRateLimitRetries times with
// linear backoff when the upstream answers 429. The response body is passed
// through untouched as raw JSON.
func (c *NASAClient) get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	fullURL := c.baseURL + endpoint + "?" + params.Encode()

	var lastStatus int
	for attempt := 0; attempt <= maxRateLimitRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * c.backoffUnit
			c.logger.Warn().
				Str("endpoint", endpoint).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("NASA API rate limited, backing off")

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, errs.NewUpstreamTimeoutError(endpoint, nasaRequestTimeout)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, errs.NewInternalError(fmt.Sprintf("building NASA API request for %s", endpoint))
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			var urlErr *url.Error
			if errors.As(err, &urlErr) && urlErr.Timeout() {
				return nil, errs.NewUpstreamTimeoutError(endpoint, nasaRequestTimeout)
			}
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, errs.NewUpstreamTimeoutError(endpoint, nasaRequestTimeout)
			}
			return nil, errs.NewUpstreamError(endpoint, 0)
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		lastStatus = resp.StatusCode
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			continue
		case resp.StatusCode == http.StatusForbidden:
			return nil, errs.NewInvalidAPIKeyError(endpoint)
		case resp.StatusCode == http.StatusNotFound:
			return nil, errs.NewUpstreamNotFoundError(endpoint)
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return nil, errs.NewUpstreamError(endpoint, resp.StatusCode)
		}

		if readErr != nil {
			return nil, errs.NewUpstreamError(endpoint, resp.StatusCode)
		}
		return json.RawMessage(body), nil
	}

	c.logger.Error().Str("endpoint", endpoint).Int("status", lastStatus).Msg("NASA API retry budget exhausted")
	return nil, errs.NewRateLimitError(endpoint, maxRateLimitRetries+1)
}

// MarsPhotos queries the Mars rover photos feed. sol, earthDate and camera
// are optional filters; page must be positive (validated by the handler).
func (c *NASAClient) MarsPhotos(ctx context.Context, rover string, sol *int, earthDate, camera string, page int) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("/mars-photos/api/v1/rovers/%s/photos", rover)

	params := url.Values{}
	params.Set("page", fmt.Sprint(page))
	if sol != nil {
		params.Set("sol", fmt.Sprint(*sol))
	}
	if earthDate != "" {
		params.Set("earth_date", earthDate)
	}
	if camera != "" {
		params.Set("camera", camera)
	}

	return c.get(ctx, endpoint, params)
}

// MarsWeather queries the InSight Mars weather feed.
func (c *NASAClient) MarsWeather(ctx context.Context) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("feedtype", "json")
	params.Set("ver", "1.0")
	return c.get(ctx, "/insight_weather/", params)
}

// APOD queries the astronomy picture of the day.
func (c *NASAClient) APOD(ctx context.Context, date string, hd bool) (json.RawMessage, error) {
	params := url.Values{}
	if date != "" {
		params.Set("date", date)
	}
	if hd {
		params.Set("hd", "true")
	}
	return c.get(ctx, "/planetary/apod", params)
}

// RoverManifest queries the mission manifest for a rover.
func (c *NASAClient) RoverManifest(ctx context.Context, rover string) (json.RawMessage, error) {
	return c.get(ctx, "/mars-photos/api/v1/manifests/"+rover, nil)
}

// RandomMarsPhoto picks a random rover and returns a random photo from the
// first page of its feed, or null when the feed is empty.
func (c *NASAClient) RandomMarsPhoto(ctx context.Context) (json.RawMessage, error) {
	rovers := AvailableRovers()
	rover := rovers[rand.Intn(len(rovers))]

	raw, err := c.MarsPhotos(ctx, rover, nil, "", "", 1)
	if err != nil {
		return nil, err
	}

	var page struct {
		Photos []json.RawMessage `json:"photos"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, errs.NewUpstreamError("/mars-photos", http.StatusOK)
	}
	if len(page.Photos) == 0 {
		return json.RawMessage("null"), nil
	}

	return page.Photos[rand.Intn(len(page.Photos))], nil
}

// AvailableRovers lists the rover names the photos API accepts.
func AvailableRovers() []string {
	return []string{"curiosity", "opportunity", "spirit", "perseverance"}
}

var roverCameras = map[string][]string{
	"curiosity":   {"FHAZ", "RHAZ", "MAST", "CHEMCAM", "MAHLI", "MARDI", "NAVCAM"},
	"opportunity": {"FHAZ", "RHAZ", "NAVCAM", "PANCAM", "MINITES"},
	"spirit":      {"FHAZ", "RHAZ", "NAVCAM", "PANCAM", "MINITES"},
	"perseverance": {
		"EDL_RUCAM", "EDL_RDCAM", "EDL_DDCAM", "EDL_PUCAM1", "EDL_PUCAM2",
		"NAVCAM_LEFT", "NAVCAM_RIGHT", "MCZ_LEFT", "MCZ_RIGHT",
		"FRONT_HAZCAM_LEFT_A", "FRONT_HAZCAM_RIGHT_A", "REAR_HAZCAM_LEFT",
		"REAR_HAZCAM_RIGHT", "EDL_WATSON", "SHERLOC_WATSON", "SUPERCAM_RMI", "LCAM",
	},
}

// AvailableCameras lists camera codes for a rover, empty for unknown rovers.
func AvailableCameras(rover string) []string {
	return roverCameras[rover]
}

// IsValidRover reports whether the photos API accepts the rover name.
func IsValidRover(rover string) bool {
	for _, r := range AvailableRovers() {
		if r == rover {
			return true
		}
	}
	return false
}
