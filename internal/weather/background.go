package weather

import "strings"

// Background is the themed backdrop chosen from the condition category.
type Background string

const (
	BackgroundClear        Background = "clear"
	BackgroundClouds       Background = "clouds"
	BackgroundRain         Background = "rain"
	BackgroundSnow         Background = "snow"
	BackgroundThunderstorm Background = "thunderstorm"
	BackgroundDefault      Background = "default"
)

// backgroundRules is evaluated in order and the first match wins. Provider
// vocabulary overlaps ("thunderstorm with light rain"), so the order is part
// of the behaviour and must not be changed.
var backgroundRules = []struct {
	keywords   []string
	background Background
}{
	{[]string{"clear"}, BackgroundClear},
	{[]string{"cloud"}, BackgroundClouds},
	{[]string{"rain", "drizzle"}, BackgroundRain},
	{[]string{"snow"}, BackgroundSnow},
	{[]string{"thunder"}, BackgroundThunderstorm},
}

// BackgroundFor selects a background by case-insensitive substring match.
func BackgroundFor(condition string) Background {
	c := strings.ToLower(condition)
	for _, rule := range backgroundRules {
		for _, kw := range rule.keywords {
			if strings.Contains(c, kw) {
				return rule.background
			}
		}
	}
	return BackgroundDefault
}
