// Package common contains shared constants and sentinel errors used across
// ResQSync client components.
package common

const (
	// AuthorizationHeaderName carries the bearer token on outbound requests and
	// the freshly issued token on the login response.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token inside the Authorization header.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName tags every outbound API call.
	RequestIDHeaderName = "X-Request-ID"
)

// Keys of the durable credential entries.
const (
	TokenKey  = "token"
	ExpiryKey = "expiry"
)

// LandingRoute is where unauthenticated users are sent.
const LandingRoute = "landing"
