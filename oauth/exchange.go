package oauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// maxErrorBodyBytes caps how much of an upstream error body is read back.
const maxErrorBodyBytes = 8 * 1024

// tokenExchangeRequest is the JSON body sent to a tenant token endpoint.
type tokenExchangeRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	CodeVerifier string `json:"code_verifier"`
	RedirectURI  string `json:"redirect_uri"`
	Code         string `json:"code"`
}

// tokenExchangeResponse is the token endpoint's response. Only access_token
// is required; the remaining fields are part of the expected shape but
// currently unused.
type tokenExchangeResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// TokenEndpointURL normalizes a tenant base URL to its token endpoint,
// avoiding a double separator when the input already ends with one.
func TokenEndpointURL(tenantURL string) string {
	if strings.HasSuffix(tenantURL, "/") {
		return tenantURL + "token"
	}
	return tenantURL + "/token"
}

// ExchangeToken validates the pending authorization identified by stateToken
// and exchanges the authorization code for an access token against the
// tenant's token endpoint. The state is consumed before the outbound call is
// made, so a token can be exchanged at most once per authorization attempt,
// whether or not the upstream exchange succeeds.
func (s *Service) ExchangeToken(ctx context.Context, tenantURL, stateToken, code string) (string, error) {
	if code == "" || stateToken == "" || tenantURL == "" {
		return "", fmt.Errorf("[Service ExchangeToken] code, state and tenant_url are required: %w", ErrInvalidRequest)
	}

	record, err := s.store.GetAndValidate(stateToken)
	if err != nil {
		return "", err
	}
	s.store.Remove(stateToken)

	body, err := json.Marshal(tokenExchangeRequest{
		GrantType:    "authorization_code",
		ClientID:     s.oauthCfg.ClientID,
		CodeVerifier: record.CodeVerifier,
		RedirectURI:  "",
		Code:         code,
	})
	if err != nil {
		return "", fmt.Errorf("[Service ExchangeToken] marshal request: %w", err)
	}

	tokenURL := TokenEndpointURL(tenantURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("[Service ExchangeToken] build request for %q: %w", tokenURL, err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Info().Str("token_url", tokenURL).Msg("Requesting token exchange")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("[Service ExchangeToken] token endpoint request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		log.Error().Int("status", resp.StatusCode).Str("body", string(errBody)).Msg("Token exchange failed")
		return "", &UpstreamError{Status: resp.StatusCode, Body: string(errBody)}
	}

	var tokenResp tokenExchangeResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", &UpstreamError{Status: resp.StatusCode, Body: fmt.Sprintf("malformed token response: %v", err)}
	}
	if tokenResp.AccessToken == "" {
		return "", &UpstreamError{Status: resp.StatusCode, Body: "token response missing access_token"}
	}

	log.Info().Msg("Token exchange succeeded")
	return tokenResp.AccessToken, nil
}
