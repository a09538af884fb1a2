package config

import (
	"strconv"
	"time"
)

const (
	authorizeURLEnvVar = "OAUTH_AUTH_URL"
	clientIDEnvVar     = "OAUTH_CLIENT_ID"
	stateExpiryEnvVar  = "STATE_EXPIRE_MINUTES"

	defaultAuthorizeURL = "https://auth.augmentcode.com/authorize"
	defaultClientID     = "v"
)

type OAuthConfig interface {
	GetAuthorizeURL() string
	GetClientID() string
	GetStateExpiry() time.Duration
	GetExchangeTimeout() time.Duration
	GetSweepInterval() time.Duration
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetAuthorizeURL() string {
	return GetEnv(authorizeURLEnvVar, defaultAuthorizeURL)
}

func (OAuth) GetClientID() string {
	return GetEnv(clientIDEnvVar, defaultClientID)
}

// GetStateExpiry returns how long a pending authorization stays usable.
// Invalid or missing values fall back to 30 minutes.
func (OAuth) GetStateExpiry() time.Duration {
	minutes, err := strconv.Atoi(GetEnv(stateExpiryEnvVar, "30"))
	if err != nil || minutes <= 0 {
		minutes = 30
	}
	return time.Duration(minutes) * time.Minute
}

func (OAuth) GetExchangeTimeout() time.Duration {
	return 30 * time.Second
}

func (OAuth) GetSweepInterval() time.Duration {
	return 5 * time.Minute
}
