package urls

import "fmt"

// CurrentWeatherAPI is the OpenWeatherMap current-conditions endpoint.
const CurrentWeatherAPI = "https://api.openweathermap.org/data/2.5/weather"

// IconBase is the OpenWeatherMap condition icon CDN.
// Icons are addressed as <IconBase>/<code>@2x.png.
const IconBase = "https://openweathermap.org/img/wn"

// APIKeySignup is where users obtain an OpenWeatherMap API key.
const APIKeySignup = "https://home.openweathermap.org/api_keys"

// ConditionCodes documents the provider's condition groups and icon ids.
const ConditionCodes = "https://openweathermap.org/weather-conditions"

// IconURL returns the 2x PNG icon URL for a provider icon id (e.g. "04d").
// An empty id yields an empty string.
func IconURL(code string) string {
	if code == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s@2x.png", IconBase, code)
}
