package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"weather-dashboard/internal/config"
	"weather-dashboard/internal/storage"
	"weather-dashboard/internal/types"
	"weather-dashboard/internal/weather"
)

// Mock providers for testing

type mockLocationReader struct {
	locations []types.Location
}

func (m *mockLocationReader) List(ctx context.Context) ([]types.Location, error) {
	return m.locations, nil
}

func (m *mockLocationReader) Get(ctx context.Context, id int64) (*types.Location, error) {
	for _, loc := range m.locations {
		if loc.ID == id {
			return &loc, nil
		}
	}
	return nil, storage.ErrNotFound
}

type mockWeatherService struct {
	mu        sync.Mutex
	current   map[string]*weather.CurrentWeather
	failing   map[string]bool
	forecast  *weather.Forecast
	err       error
	delay     time.Duration
	inFlight  atomic.Int32
	maxFlight atomic.Int32
	calls     atomic.Int32
	gotDays   int
}

func (m *mockWeatherService) FetchCurrent(ctx context.Context, coords types.Coords) (*weather.CurrentWeather, error) {
	m.calls.Add(1)
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		peak := m.maxFlight.Load()
		if n <= peak || m.maxFlight.CompareAndSwap(peak, n) {
			break
		}
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	key := coords.String()
	if m.failing[key] {
		return nil, &weather.UpstreamError{Op: "fetch current weather", StatusCode: 503, Err: errors.New("unavailable")}
	}
	if m.err != nil {
		return nil, m.err
	}
	if cw, ok := m.current[key]; ok {
		return cw, nil
	}
	cw := weather.NewCurrentWeather(10.0, 0.0, 3)
	return &cw, nil
}

func (m *mockWeatherService) FetchForecast(ctx context.Context, coords types.Coords, days int) (*weather.Forecast, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.gotDays = days
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.forecast, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(concurrency int, policy string) *config.Config {
	return &config.Config{
		Weather: config.WeatherConfig{ForecastDays: 7},
		App:     config.AppConfig{WeatherConcurrency: concurrency, ListFailurePolicy: policy},
	}
}

var (
	london = types.Location{ID: 1, Name: "London", Latitude: 51.5074, Longitude: -0.1278}
	paris  = types.Location{ID: 2, Name: "Paris", Latitude: 48.8566, Longitude: 2.3522}
	tokyo  = types.Location{ID: 3, Name: "Tokyo", Latitude: 35.6762, Longitude: 139.6503}
)

func TestDashboardService_ListWithWeather(t *testing.T) {
	reader := &mockLocationReader{locations: []types.Location{london}}
	weatherSvc := &mockWeatherService{}
	svc := NewDashboardService(reader, weatherSvc, testConfig(4, config.ListFailurePlaceholder), discardLogger())

	got, err := svc.ListWithWeather(context.Background())
	if err != nil {
		t.Fatalf("ListWithWeather() unexpected error = %v", err)
	}

	want := []LocationWithWeather{{
		Location: london,
		Current: weather.CurrentWeather{
			Temperature: 10.0,
			Rainfall:    0.0,
			WeatherCode: 3,
			Description: "Overcast",
			Icon:        "cloud",
		},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ListWithWeather() mismatch (-want +got):\n%s", diff)
	}
}

func TestDashboardService_ListWithWeather_Empty(t *testing.T) {
	weatherSvc := &mockWeatherService{}
	svc := NewDashboardService(&mockLocationReader{}, weatherSvc, testConfig(4, config.ListFailurePlaceholder), discardLogger())

	got, err := svc.ListWithWeather(context.Background())
	if err != nil {
		t.Fatalf("ListWithWeather() unexpected error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d entries", len(got))
	}
	if weatherSvc.calls.Load() != 0 {
		t.Errorf("expected no weather calls, got %d", weatherSvc.calls.Load())
	}
}

func TestDashboardService_ListWithWeather_Failures(t *testing.T) {
	tests := []struct {
		name        string
		policy      string
		concurrency int
		wantErr     bool
	}{
		{name: "placeholder sequential", policy: config.ListFailurePlaceholder, concurrency: 1},
		{name: "placeholder concurrent", policy: config.ListFailurePlaceholder, concurrency: 4},
		{name: "fail sequential", policy: config.ListFailureFail, concurrency: 1, wantErr: true},
		{name: "fail concurrent", policy: config.ListFailureFail, concurrency: 4, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &mockLocationReader{locations: []types.Location{london, paris, tokyo}}
			weatherSvc := &mockWeatherService{failing: map[string]bool{paris.Coords().String(): true}}
			svc := NewDashboardService(reader, weatherSvc, testConfig(tt.concurrency, tt.policy), discardLogger())

			got, err := svc.ListWithWeather(context.Background())

			// a failing fetch never cancels the others
			if calls := weatherSvc.calls.Load(); calls != 3 {
				t.Errorf("weather calls = %d, want 3", calls)
			}

			if tt.wantErr {
				if !errors.Is(err, ErrBadGateway) {
					t.Fatalf("ListWithWeather() error = %v, want ErrBadGateway", err)
				}
				if !errors.Is(err, weather.ErrUpstream) {
					t.Errorf("ListWithWeather() error = %v, want wrapped ErrUpstream", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ListWithWeather() unexpected error = %v", err)
			}
			if len(got) != 3 {
				t.Fatalf("expected 3 entries, got %d", len(got))
			}
			for i, want := range []types.Location{london, paris, tokyo} {
				if got[i].ID != want.ID {
					t.Errorf("entry %d id = %d, want %d", i, got[i].ID, want.ID)
				}
			}
			if diff := cmp.Diff(weather.CurrentWeather{}, got[1].Current); diff != "" {
				t.Errorf("expected zero placeholder for Paris (-want +got):\n%s", diff)
			}
			if got[0].Current.WeatherCode != 3 || got[2].Current.WeatherCode != 3 {
				t.Errorf("expected real weather for London and Tokyo, got %+v / %+v", got[0].Current, got[2].Current)
			}
		})
	}
}

func TestDashboardService_ListWithWeather_BoundedConcurrency(t *testing.T) {
	var locations []types.Location
	for i := int64(1); i <= 12; i++ {
		locations = append(locations, types.Location{ID: i, Name: "City", Latitude: float64(i), Longitude: float64(i)})
	}
	weatherSvc := &mockWeatherService{delay: 20 * time.Millisecond}
	svc := NewDashboardService(&mockLocationReader{locations: locations}, weatherSvc, testConfig(3, config.ListFailurePlaceholder), discardLogger())

	got, err := svc.ListWithWeather(context.Background())
	if err != nil {
		t.Fatalf("ListWithWeather() unexpected error = %v", err)
	}
	if peak := weatherSvc.maxFlight.Load(); peak > 3 {
		t.Errorf("peak in-flight fetches = %d, want at most 3", peak)
	}
	for i, entry := range got {
		if entry.ID != int64(i+1) {
			t.Errorf("entry %d id = %d, order not preserved", i, entry.ID)
		}
	}
}

func sevenDays() []weather.DailyForecast {
	days := make([]weather.DailyForecast, 0, 7)
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	for i := range 7 {
		days = append(days, weather.DailyForecast{
			Date:           start.AddDate(0, 0, i).Format(time.DateOnly),
			TemperatureMax: 15,
			TemperatureMin: 5,
			WeatherCode:    1,
			Description:    "Mainly clear",
			Icon:           "sun",
		})
	}
	return days
}

func TestDashboardService_ForecastFor(t *testing.T) {
	reader := &mockLocationReader{locations: []types.Location{london}}
	weatherSvc := &mockWeatherService{forecast: &weather.Forecast{Timezone: "Europe/London", Days: sevenDays()}}
	svc := NewDashboardService(reader, weatherSvc, testConfig(4, config.ListFailurePlaceholder), discardLogger())

	got, err := svc.ForecastFor(context.Background(), london.ID)
	if err != nil {
		t.Fatalf("ForecastFor() unexpected error = %v", err)
	}

	if got.LocationID != 1 || got.LocationName != "London" || got.Timezone != "Europe/London" {
		t.Errorf("ForecastFor() header = %+v", got)
	}
	if weatherSvc.gotDays != 7 {
		t.Errorf("requested %d days, want 7", weatherSvc.gotDays)
	}
	if len(got.Daily) != 7 {
		t.Fatalf("expected 7 days, got %d", len(got.Daily))
	}
	seen := make(map[string]bool)
	for i, day := range got.Daily {
		if seen[day.Date] {
			t.Errorf("duplicate date %s", day.Date)
		}
		seen[day.Date] = true
		if i > 0 && day.Date <= got.Daily[i-1].Date {
			t.Errorf("dates not ascending at %d", i)
		}
	}
}

func TestDashboardService_ForecastFor_NotFound(t *testing.T) {
	weatherSvc := &mockWeatherService{}
	svc := NewDashboardService(&mockLocationReader{}, weatherSvc, testConfig(4, config.ListFailurePlaceholder), discardLogger())

	_, err := svc.ForecastFor(context.Background(), 999)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("ForecastFor() error = %v, want ErrNotFound", err)
	}
	if calls := weatherSvc.calls.Load(); calls != 0 {
		t.Errorf("weather calls = %d, want 0", calls)
	}
}

func TestDashboardService_ForecastFor_UpstreamFailure(t *testing.T) {
	reader := &mockLocationReader{locations: []types.Location{london}}
	weatherSvc := &mockWeatherService{err: &weather.UpstreamError{Op: "fetch forecast", StatusCode: 500, Err: errors.New("boom")}}
	// the placeholder policy only applies to the list
	svc := NewDashboardService(reader, weatherSvc, testConfig(4, config.ListFailurePlaceholder), discardLogger())

	_, err := svc.ForecastFor(context.Background(), london.ID)
	if !errors.Is(err, ErrBadGateway) {
		t.Fatalf("ForecastFor() error = %v, want ErrBadGateway", err)
	}
	var upstreamErr *weather.UpstreamError
	if !errors.As(err, &upstreamErr) || upstreamErr.StatusCode != 500 {
		t.Errorf("expected wrapped UpstreamError with status 500, got %v", err)
	}
}
