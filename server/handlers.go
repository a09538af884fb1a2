package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/caigq99/augment-oauth-service/oauth"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AuthURLData is the payload returned by the auth-url endpoint.
type AuthURLData struct {
	AuthorizeURL string `json:"authorize_url"`
	State        string `json:"state"`
}

// CompleteAuthRequest is the body of the complete-auth endpoint.
type CompleteAuthRequest struct {
	Code      string `json:"code"`
	State     string `json:"state"`
	TenantURL string `json:"tenant_url"`
}

// CompleteAuthData is the payload returned on a successful exchange.
type CompleteAuthData struct {
	Status    string    `json:"status"`
	Token     string    `json:"token"`
	TenantURL string    `json:"tenant_url"`
	TokenInfo TokenInfo `json:"token_info"`
}

// TokenInfo identifies an issued token for client-side bookkeeping.
type TokenInfo struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthURLHandler returns a fresh authorization URL and its state token.
func (s *Server) AuthURLHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if userID := r.URL.Query().Get("user_id"); userID != "" {
			log.Info().Str("user_id", userID).Msg("Authorization URL requested")
		}

		authURL, state := s.oauth.GenerateAuthURL()

		respondSuccess(w, AuthURLData{
			AuthorizeURL: authURL,
			State:        state,
		}, "authorization URL generated")
	}
}

// CompleteAuthHandler exchanges an authorization code for an access token
// using the pending authorization identified by the state token.
func (s *Server) CompleteAuthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CompleteAuthRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if req.Code == "" || req.State == "" || req.TenantURL == "" {
			respondError(w, http.StatusBadRequest, "code, state and tenant_url are required")
			return
		}

		token, err := s.oauth.ExchangeToken(r.Context(), req.TenantURL, req.State, req.Code)
		if err != nil {
			status, message := exchangeErrorResponse(err)
			respondError(w, status, message)
			return
		}

		tokenInfo := TokenInfo{
			ID:        uuid.New().String(),
			CreatedAt: time.Now().UTC(),
		}

		log.Info().Str("token_id", tokenInfo.ID).Msg("OAuth authorization completed")

		respondSuccess(w, CompleteAuthData{
			Status:    "success",
			Token:     token,
			TenantURL: req.TenantURL,
			TokenInfo: tokenInfo,
		}, "OAuth authorization completed")
	}
}

// exchangeErrorResponse maps core errors to an HTTP status and user-visible
// message. Client mistakes (bad input, unknown or expired state) are 400s;
// upstream failures are 500s since the relay could not complete the
// delegated operation.
func exchangeErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, oauth.ErrInvalidRequest):
		return http.StatusBadRequest, "code, state and tenant_url are required"
	case errors.Is(err, oauth.ErrStateNotFound):
		return http.StatusBadRequest, "OAuth state not found, request a new authorization URL"
	case errors.Is(err, oauth.ErrStateExpired):
		return http.StatusBadRequest, "OAuth state expired, request a new authorization URL"
	default:
		return http.StatusInternalServerError, "token exchange failed: " + err.Error()
	}
}

// HealthHandler reports process liveness.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		respondSuccess(w, map[string]any{
			"status":    "ok",
			"service":   "augment-oauth-service",
			"timestamp": time.Now().UTC(),
		}, "service is running")
	}
}
