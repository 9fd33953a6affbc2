package openmeteo

// CurrentAPIResponse is the subset of the forecast endpoint response returned
// when requesting the "current" block. Pointer fields stay nil when the
// provider omits them so callers can reject incomplete payloads.
type CurrentAPIResponse struct {
	Latitude         float64       `json:"latitude"`
	Longitude        float64       `json:"longitude"`
	GenerationtimeMs float64       `json:"generationtime_ms"`
	UtcOffsetSeconds int           `json:"utc_offset_seconds"`
	Timezone         string        `json:"timezone"`
	Elevation        float64       `json:"elevation"`
	CurrentUnits     *CurrentUnits `json:"current_units"`
	Current          *Current      `json:"current"`
}

type CurrentUnits struct {
	Time          string `json:"time"`
	Temperature2M string `json:"temperature_2m"`
	Rain          string `json:"rain"`
	WeatherCode   string `json:"weather_code"`
}

type Current struct {
	Time          string   `json:"time"`
	Interval      int      `json:"interval"`
	Temperature2M *float64 `json:"temperature_2m"`
	Rain          *float64 `json:"rain"`
	WeatherCode   *int     `json:"weather_code"`
}

// DailyAPIResponse holds the "daily" block. Arrays are parallel and indexed by day.
type DailyAPIResponse struct {
	Latitude         float64     `json:"latitude"`
	Longitude        float64     `json:"longitude"`
	GenerationtimeMs float64     `json:"generationtime_ms"`
	UtcOffsetSeconds int         `json:"utc_offset_seconds"`
	Timezone         string      `json:"timezone"`
	Elevation        float64     `json:"elevation"`
	DailyUnits       *DailyUnits `json:"daily_units"`
	Daily            *Daily      `json:"daily"`
}

type DailyUnits struct {
	Time             string `json:"time"`
	Temperature2MMax string `json:"temperature_2m_max"`
	Temperature2MMin string `json:"temperature_2m_min"`
	RainSum          string `json:"rain_sum"`
	WeatherCode      string `json:"weather_code"`
}

// Daily values are nil where Open-Meteo sent null
type Daily struct {
	Time             []string   `json:"time"`
	Temperature2MMax []*float64 `json:"temperature_2m_max"`
	Temperature2MMin []*float64 `json:"temperature_2m_min"`
	RainSum          []*float64 `json:"rain_sum"`
	WeatherCode      []*int     `json:"weather_code"`
}

// errorResponse is the body Open-Meteo sends with a 400 status
type errorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}
