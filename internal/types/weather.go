package types

// WeatherCode is a WMO weather interpretation code as reported by Open-Meteo
type WeatherCode int

// Weather code constants
const (
	ClearSky                     WeatherCode = 0
	MainlyClear                  WeatherCode = 1
	PartlyCloudy                 WeatherCode = 2
	Overcast                     WeatherCode = 3
	Fog                          WeatherCode = 45
	DepositingRimeFog            WeatherCode = 48
	DrizzleLight                 WeatherCode = 51
	DrizzleModerate              WeatherCode = 53
	DrizzleDense                 WeatherCode = 55
	FreezingDrizzleLight         WeatherCode = 56
	FreezingDrizzleDense         WeatherCode = 57
	RainSlight                   WeatherCode = 61
	RainModerate                 WeatherCode = 63
	RainHeavy                    WeatherCode = 65
	FreezingRainLight            WeatherCode = 66
	FreezingRainHeavy            WeatherCode = 67
	SnowFallSlight               WeatherCode = 71
	SnowFallModerate             WeatherCode = 73
	SnowFallHeavy                WeatherCode = 75
	SnowGrains                   WeatherCode = 77
	RainShowersSlight            WeatherCode = 80
	RainShowersModerate          WeatherCode = 81
	RainShowersViolent           WeatherCode = 82
	SnowShowersSlight            WeatherCode = 85
	SnowShowersHeavy             WeatherCode = 86
	ThunderstormSlightOrModerate WeatherCode = 95
	ThunderstormWithSlightHail   WeatherCode = 96
	ThunderstormWithHeavyHail    WeatherCode = 99
)

type codeInfo struct {
	description string
	icon        string
}

var weatherCodes = map[WeatherCode]codeInfo{
	ClearSky:                     {"Clear sky", "sun"},
	MainlyClear:                  {"Mainly clear", "sun"},
	PartlyCloudy:                 {"Partly cloudy", "cloud-sun"},
	Overcast:                     {"Overcast", "cloud"},
	Fog:                          {"Fog", "fog"},
	DepositingRimeFog:            {"Depositing rime fog", "fog"},
	DrizzleLight:                 {"Drizzle: Light intensity", "cloud-drizzle"},
	DrizzleModerate:              {"Drizzle: Moderate intensity", "cloud-drizzle"},
	DrizzleDense:                 {"Drizzle: Dense intensity", "cloud-drizzle"},
	FreezingDrizzleLight:         {"Freezing Drizzle: Light intensity", "cloud-snow"},
	FreezingDrizzleDense:         {"Freezing Drizzle: Dense intensity", "cloud-snow"},
	RainSlight:                   {"Rainfall: Slight intensity", "cloud-rain"},
	RainModerate:                 {"Rainfall: Moderate intensity", "cloud-rain"},
	RainHeavy:                    {"Rainfall: Heavy intensity", "cloud-rain"},
	FreezingRainLight:            {"Freezing Rainfall: Light intensity", "cloud-rain"},
	FreezingRainHeavy:            {"Freezing Rainfall: Heavy intensity", "cloud-rain"},
	SnowFallSlight:               {"Snow fall: Slight intensity", "cloud-snow"},
	SnowFallModerate:             {"Snow fall: Moderate intensity", "cloud-snow"},
	SnowFallHeavy:                {"Snow fall: Heavy intensity", "cloud-snow"},
	SnowGrains:                   {"Snow grains", "cloud-snow"},
	RainShowersSlight:            {"Rainfall showers: Slight", "cloud-rain"},
	RainShowersModerate:          {"Rainfall showers: Moderate", "cloud-rain"},
	RainShowersViolent:           {"Rainfall showers: Violent", "cloud-rain"},
	SnowShowersSlight:            {"Snow showers: Slight", "cloud-snow"},
	SnowShowersHeavy:             {"Snow showers: Heavy", "cloud-snow"},
	ThunderstormSlightOrModerate: {"Thunderstorm: Slight or moderate", "cloud-lightning"},
	ThunderstormWithSlightHail:   {"Thunderstorm with slight hail", "cloud-lightning"},
	ThunderstormWithHeavyHail:    {"Thunderstorm with heavy hail", "cloud-lightning"},
}

// Description returns the human readable text for the code, or "Unknown"
func (c WeatherCode) Description() string {
	if info, ok := weatherCodes[c]; ok {
		return info.description
	}
	return "Unknown"
}

// Icon returns the dashboard icon name for the code. Unknown codes render as a cloud.
func (c WeatherCode) Icon() string {
	if info, ok := weatherCodes[c]; ok {
		return info.icon
	}
	return "cloud"
}
