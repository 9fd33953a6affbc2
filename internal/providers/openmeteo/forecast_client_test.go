package openmeteo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *ForecastClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewForecastClient(server.URL, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestForecastClient_GetCurrent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("latitude"); got != "51.507400" {
			t.Errorf("latitude = %q, want 51.507400", got)
		}
		if got := q.Get("longitude"); got != "-0.127800" {
			t.Errorf("longitude = %q, want -0.127800", got)
		}
		if got := q.Get("current"); got != "temperature_2m,rain,weather_code" {
			t.Errorf("current = %q", got)
		}
		if got := q.Get("timezone"); got != "Europe/London" {
			t.Errorf("timezone = %q, want Europe/London", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"latitude": 51.5,
			"longitude": -0.12,
			"timezone": "Europe/London",
			"current": {"time": "2025-01-15T10:30", "interval": 900, "temperature_2m": 10.0, "rain": 0.0, "weather_code": 3}
		}`)
	})

	resp, err := client.GetCurrent(context.Background(), 51.5074, -0.1278, "Europe/London")
	if err != nil {
		t.Fatalf("GetCurrent() unexpected error = %v", err)
	}
	if resp.Current == nil {
		t.Fatal("Current block is nil")
	}
	if resp.Current.Temperature2M == nil || *resp.Current.Temperature2M != 10.0 {
		t.Errorf("Temperature2M = %v, want 10.0", resp.Current.Temperature2M)
	}
	if resp.Current.Rain == nil || *resp.Current.Rain != 0.0 {
		t.Errorf("Rain = %v, want 0.0", resp.Current.Rain)
	}
	if resp.Current.WeatherCode == nil || *resp.Current.WeatherCode != 3 {
		t.Errorf("WeatherCode = %v, want 3", resp.Current.WeatherCode)
	}
}

func TestForecastClient_GetCurrent_MissingFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"current": {"time": "2025-01-15T10:30"}}`)
	})

	resp, err := client.GetCurrent(context.Background(), 0, 0, "")
	if err != nil {
		t.Fatalf("GetCurrent() unexpected error = %v", err)
	}
	if resp.Current.Temperature2M != nil || resp.Current.Rain != nil || resp.Current.WeatherCode != nil {
		t.Errorf("expected nil fields for missing values, got %+v", resp.Current)
	}
}

func TestForecastClient_GetDaily(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("daily"); got != "temperature_2m_max,temperature_2m_min,rain_sum,weather_code" {
			t.Errorf("daily = %q", got)
		}
		if got := q.Get("start_date"); got != "2025-01-01" {
			t.Errorf("start_date = %q, want 2025-01-01", got)
		}
		if got := q.Get("end_date"); got != "2025-01-02" {
			t.Errorf("end_date = %q, want 2025-01-02", got)
		}
		if got := q.Get("timezone"); got != TimezoneAuto {
			t.Errorf("timezone = %q, want %q", got, TimezoneAuto)
		}
		_, _ = io.WriteString(w, `{
			"timezone": "GMT",
			"daily": {
				"time": ["2025-01-01", "2025-01-02"],
				"temperature_2m_max": [8.1, 9.4],
				"temperature_2m_min": [2.0, 3.5],
				"rain_sum": [0.0, 4.2],
				"weather_code": [3, 61]
			}
		}`)
	})

	resp, err := client.GetDaily(context.Background(), 51.5074, -0.1278, "", "2025-01-01", "2025-01-02")
	if err != nil {
		t.Fatalf("GetDaily() unexpected error = %v", err)
	}
	if resp.Daily == nil {
		t.Fatal("Daily block is nil")
	}
	if len(resp.Daily.Time) != 2 {
		t.Fatalf("len(Daily.Time) = %d, want 2", len(resp.Daily.Time))
	}
	if rain := resp.Daily.RainSum[1]; rain == nil || *rain != 4.2 {
		t.Errorf("RainSum[1] = %v, want 4.2", rain)
	}
	if code := resp.Daily.WeatherCode[1]; code == nil || *code != 61 {
		t.Errorf("WeatherCode[1] = %v, want 61", code)
	}
}

func TestForecastClient_GetDaily_NullEntries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{
			"timezone": "Europe/London",
			"daily": {
				"time": ["2025-03-10", "2025-03-11"],
				"temperature_2m_max": [null, 12.0],
				"temperature_2m_min": [3.0, null],
				"rain_sum": [null, 0.4],
				"weather_code": [null, 3]
			}
		}`)
	})

	resp, err := client.GetDaily(context.Background(), 51.5074, -0.1278, "", "2025-03-10", "2025-03-11")
	if err != nil {
		t.Fatalf("GetDaily() unexpected error = %v", err)
	}
	if resp.Daily.Temperature2MMax[0] != nil || resp.Daily.RainSum[0] != nil || resp.Daily.WeatherCode[0] != nil {
		t.Errorf("null entries decoded as values: %+v", resp.Daily)
	}
	if resp.Daily.Temperature2MMin[1] != nil {
		t.Errorf("Temperature2MMin[1] = %v, want nil", *resp.Daily.Temperature2MMin[1])
	}
	if code := resp.Daily.WeatherCode[1]; code == nil || *code != 3 {
		t.Errorf("WeatherCode[1] = %v, want 3", code)
	}
}

func TestForecastClient_Errors(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantStatus  int
		errContains string
	}{
		{
			name: "bad request with reason",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, `{"error": true, "reason": "Latitude must be in range of -90 to 90°."}`)
			},
			wantStatus:  http.StatusBadRequest,
			errContains: "Latitude must be in range",
		},
		{
			name: "server error with plain body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = io.WriteString(w, "upstream down")
			},
			wantStatus:  http.StatusServiceUnavailable,
			errContains: "upstream down",
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{"current": `)
			},
			errContains: "failed to decode response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			_, err := client.GetCurrent(context.Background(), 1, 2, "")
			if err == nil {
				t.Fatal("GetCurrent() expected error but got none")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("GetCurrent() error = %v, want error containing %q", err, tt.errContains)
			}

			var apiErr *APIError
			if tt.wantStatus != 0 {
				if !errors.As(err, &apiErr) {
					t.Fatalf("GetCurrent() error = %T, want *APIError", err)
				}
				if apiErr.StatusCode != tt.wantStatus {
					t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.wantStatus)
				}
			} else if errors.As(err, &apiErr) {
				t.Errorf("GetCurrent() unexpected *APIError for %q", tt.name)
			}
		})
	}
}

func TestForecastClient_ContextCanceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetDaily(ctx, 1, 2, "", "2025-01-01", "2025-01-07")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("GetDaily() error = %v, want context.Canceled", err)
	}
}
