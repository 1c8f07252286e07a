// Package weather implements the current-conditions lookup against the
// OpenWeatherMap API.
//
// The package covers three concerns:
//   - Query: trimming and validating free-text location input
//   - Client: one HTTP GET per lookup, envelope validation, and error
//     classification into a fixed taxonomy
//   - Reading: the normalized result plus its derived display values
//     (rounded temperatures, km/h wind speed, background category)
//
// # Usage Example
//
//	client := weather.NewClient(apiKey)
//
//	q, err := weather.NewQuery("  Paris ")
//	if err != nil {
//	    return err // weather.ErrEmptyInput
//	}
//
//	reading, err := client.FetchWeather(ctx, q)
//	if err != nil {
//	    fmt.Println(weather.UserMessage(err))
//	    return err
//	}
//	fmt.Printf("%d°C, wind %d km/h\n", reading.DisplayTemperature(), reading.WindSpeedKMH())
//
// # Error Handling
//
// Every failure from FetchWeather is a *WeatherError. Its Kind separates
// provider responses (Unauthorized, NotFound, RateLimited,
// ServiceUnavailable, Unknown), structurally invalid payloads
// (MalformedResponse), and transport failures (Network). UserMessage maps any
// of them to the text shown to the user. Nothing is retried automatically.
//
// # Thread Safety
//
// Client holds no mutable state after construction and is safe for
// concurrent use. Every call performs its own round trip; nothing is cached.
package weather
