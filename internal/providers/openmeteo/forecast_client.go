package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// API Docs: https://open-meteo.com/en/docs
// Sample requests:
// - https://api.open-meteo.com/v1/forecast?latitude=51.5074&longitude=-0.1278&current=temperature_2m,rain,weather_code&timezone=auto
// - https://api.open-meteo.com/v1/forecast?latitude=51.5074&longitude=-0.1278&daily=temperature_2m_max,temperature_2m_min,rain_sum,weather_code&timezone=Europe/London&start_date=2025-01-01&end_date=2025-01-07
const (
	baseForecastURL = "https://api.open-meteo.com/v1/forecast"

	// TimezoneAuto lets the provider resolve the timezone from the coordinates
	TimezoneAuto = "auto"
)

var (
	currentVars = []string{
		"temperature_2m",
		"rain",
		"weather_code",
	}

	dailyVars = []string{
		"temperature_2m_max",
		"temperature_2m_min",
		"rain_sum",
		"weather_code",
	}
)

// APIError is returned when the provider answers with a non-200 status
type APIError struct {
	StatusCode int
	Reason     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fetch returned status %d: %s", e.StatusCode, e.Reason)
}

type ForecastClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewForecastClient creates a client for the forecast endpoint. An empty baseURL
// selects the public endpoint; a zero timeout leaves the HTTP client without one.
func NewForecastClient(baseURL string, timeout time.Duration, logger *slog.Logger) *ForecastClient {
	if baseURL == "" {
		baseURL = baseForecastURL
	}
	return &ForecastClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger.With("component", "openmeteo-client"),
	}
}

// GetCurrent fetches current conditions for the given coordinates
func (c *ForecastClient) GetCurrent(ctx context.Context, latitude, longitude float64, timezone string) (*CurrentAPIResponse, error) {
	q := url.Values{}
	q.Set("current", strings.Join(currentVars, ","))

	var apiResp CurrentAPIResponse
	if err := c.get(ctx, latitude, longitude, timezone, q, &apiResp); err != nil {
		return nil, err
	}

	return &apiResp, nil
}

// GetDaily fetches daily aggregates for the inclusive date range, dates formatted as YYYY-MM-DD
func (c *ForecastClient) GetDaily(ctx context.Context, latitude, longitude float64, timezone, startDate, endDate string) (*DailyAPIResponse, error) {
	q := url.Values{}
	q.Set("daily", strings.Join(dailyVars, ","))
	q.Set("start_date", startDate)
	q.Set("end_date", endDate)

	var apiResp DailyAPIResponse
	if err := c.get(ctx, latitude, longitude, timezone, q, &apiResp); err != nil {
		return nil, err
	}

	return &apiResp, nil
}

func (c *ForecastClient) get(ctx context.Context, latitude, longitude float64, timezone string, params url.Values, target any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse base URL: %w", err)
	}

	if timezone == "" {
		timezone = TimezoneAuto
	}

	q := u.Query()
	q.Set("latitude", fmt.Sprintf("%f", latitude))
	q.Set("longitude", fmt.Sprintf("%f", longitude))
	q.Set("timezone", timezone)
	for key, values := range params {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	u.RawQuery = q.Encode()

	c.logger.Debug("fetching Open-Meteo forecast", "url", u.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		reason := string(body)
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Reason != "" {
			reason = errResp.Reason
		}
		c.logger.Error("Open-Meteo API returned error",
			"status_code", resp.StatusCode,
			"reason", reason,
		)
		return &APIError{StatusCode: resp.StatusCode, Reason: reason}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
