// Package urls provides centralized constants for the external URLs used
// throughout the application: the weather provider endpoint, its icon CDN,
// and documentation links shown in help text.
//
// Usage:
//
//	import "github.com/sravani-1304/weather-application/internal/urls"
//
//	fmt.Printf("Get an API key at %s\n", urls.APIKeySignup)
package urls
