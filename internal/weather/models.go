package weather

import "weather-dashboard/internal/types"

// DefaultForecastDays is the forecast window used when callers pass no length
const DefaultForecastDays = 7

// CurrentWeather is derived on every read and never persisted.
// The zero value is the placeholder used when the provider fails.
type CurrentWeather struct {
	Temperature float64 `json:"temperature" doc:"Air temperature at 2m in °C"`
	Rainfall    float64 `json:"rainfall" doc:"Rain over the preceding interval in mm"`
	WeatherCode int     `json:"weather_code" doc:"WMO weather interpretation code"`
	Description string  `json:"description,omitempty"`
	Icon        string  `json:"icon,omitempty"`
}

func NewCurrentWeather(temperature, rainfall float64, code int) CurrentWeather {
	wc := types.WeatherCode(code)
	return CurrentWeather{
		Temperature: temperature,
		Rainfall:    rainfall,
		WeatherCode: code,
		Description: wc.Description(),
		Icon:        wc.Icon(),
	}
}

// DailyForecast is one calendar day's summary
type DailyForecast struct {
	Date           string  `json:"date" doc:"Calendar day, YYYY-MM-DD, in the location's timezone"`
	TemperatureMax float64 `json:"temperature_max"`
	TemperatureMin float64 `json:"temperature_min"`
	RainfallSum    float64 `json:"rainfall_sum"`
	WeatherCode    int     `json:"weather_code"`
	Description    string  `json:"description,omitempty"`
	Icon           string  `json:"icon,omitempty"`
}

// Forecast is an ordered run of days starting today
type Forecast struct {
	Timezone string          `json:"timezone"`
	Days     []DailyForecast `json:"daily"`
}
