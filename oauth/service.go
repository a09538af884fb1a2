package oauth

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/caigq99/augment-oauth-service/internal/config"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Service orchestrates the relay flow: it creates pending authorizations,
// renders authorize URLs for the provider, and exchanges authorization codes
// for access tokens against tenant token endpoints.
type Service struct {
	store      *StateStore
	oauthCfg   oauth2.Config
	httpClient *http.Client
}

// NewService validates the configured authorize endpoint and builds the
// service. A malformed authorize URL is a startup failure.
func NewService(cfg config.OAuthConfig, store *StateStore) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("[NewService] state store is required")
	}

	authorizeURL := cfg.GetAuthorizeURL()
	parsed, err := url.Parse(authorizeURL)
	if err != nil {
		return nil, fmt.Errorf("[NewService] invalid authorize URL %q: %w", authorizeURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("[NewService] authorize URL %q must be absolute", authorizeURL)
	}

	return &Service{
		store: store,
		oauthCfg: oauth2.Config{
			ClientID: cfg.GetClientID(),
			Endpoint: oauth2.Endpoint{AuthURL: authorizeURL},
		},
		httpClient: &http.Client{Timeout: cfg.GetExchangeTimeout()},
	}, nil
}

// GenerateAuthURL creates a new pending authorization and returns the fully
// rendered authorize URL together with its state token. The code verifier
// stays in the store and is never returned. prompt=login forces the provider
// to re-authenticate rather than reuse an existing session.
func (s *Service) GenerateAuthURL() (string, string) {
	record := s.store.Create()

	authURL := s.oauthCfg.AuthCodeURL(record.StateToken,
		oauth2.SetAuthURLParam("code_challenge", record.CodeChallenge),
		oauth2.SetAuthURLParam("prompt", "login"),
	)

	log.Info().Str("state", record.StateToken).Msg("Generated authorization URL")
	return authURL, record.StateToken
}
