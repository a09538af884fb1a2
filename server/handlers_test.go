package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/caigq99/augment-oauth-service/internal/config"
	"github.com/caigq99/augment-oauth-service/server"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	t.Setenv("ENV", "TEST")

	srv, err := server.New(config.New())
	require.NoError(t, err)
	return srv
}

func doRequest(t *testing.T, srv *server.Server, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestAuthURLHandler(t *testing.T) {
	srv := newTestServer(t)

	rec, env := doRequest(t, srv, http.MethodGet, server.RouteAPIAuthURL, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	var data server.AuthURLData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.State)
	require.Contains(t, data.AuthorizeURL, "state="+data.State)
	require.Contains(t, data.AuthorizeURL, "response_type=code")
	require.Contains(t, data.AuthorizeURL, "code_challenge=")
}

func TestCompleteAuthHandler(t *testing.T) {
	t.Run("missing fields is a 400 error envelope", func(t *testing.T) {
		srv := newTestServer(t)

		rec, env := doRequest(t, srv, http.MethodPost, server.RouteAPICompleteAuth,
			`{"code":"","state":"s","tenant_url":"https://t.example.com"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.False(t, env.Success)
		require.Equal(t, "{}", string(env.Data))
		require.NotEmpty(t, env.Message)
	})

	t.Run("malformed body is a 400 error envelope", func(t *testing.T) {
		srv := newTestServer(t)

		rec, env := doRequest(t, srv, http.MethodPost, server.RouteAPICompleteAuth, "not-json")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.False(t, env.Success)
	})

	t.Run("unknown state is a 400 error envelope", func(t *testing.T) {
		srv := newTestServer(t)

		rec, env := doRequest(t, srv, http.MethodPost, server.RouteAPICompleteAuth,
			`{"code":"abc","state":"unknown","tenant_url":"https://t.example.com"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.False(t, env.Success)
		require.Contains(t, env.Message, "not found")
	})

	t.Run("full flow against a fake tenant returns the token", func(t *testing.T) {
		srv := newTestServer(t)

		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/token", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "token-789"})
		}))
		defer upstream.Close()

		_, authEnv := doRequest(t, srv, http.MethodGet, server.RouteAPIAuthURL, "")
		var authData server.AuthURLData
		require.NoError(t, json.Unmarshal(authEnv.Data, &authData))

		body, err := json.Marshal(server.CompleteAuthRequest{
			Code:      "abc",
			State:     authData.State,
			TenantURL: upstream.URL,
		})
		require.NoError(t, err)

		rec, env := doRequest(t, srv, http.MethodPost, server.RouteAPICompleteAuth, string(body))
		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, env.Success)

		var data server.CompleteAuthData
		require.NoError(t, json.Unmarshal(env.Data, &data))
		require.Equal(t, "success", data.Status)
		require.Equal(t, "token-789", data.Token)
		require.Equal(t, upstream.URL, data.TenantURL)
		require.False(t, data.TokenInfo.CreatedAt.IsZero())

		_, err = uuid.Parse(data.TokenInfo.ID)
		require.NoError(t, err)

		// The state was consumed; replaying the completion fails
		rec, env = doRequest(t, srv, http.MethodPost, server.RouteAPICompleteAuth, string(body))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.False(t, env.Success)
	})

	t.Run("upstream failure is a 500 error envelope", func(t *testing.T) {
		srv := newTestServer(t)

		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "server error", http.StatusInternalServerError)
		}))
		defer upstream.Close()

		_, authEnv := doRequest(t, srv, http.MethodGet, server.RouteAPIAuthURL, "")
		var authData server.AuthURLData
		require.NoError(t, json.Unmarshal(authEnv.Data, &authData))

		rec, env := doRequest(t, srv, http.MethodPost, server.RouteAPICompleteAuth,
			`{"code":"abc","state":"`+authData.State+`","tenant_url":"`+upstream.URL+`"}`)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.False(t, env.Success)
		require.Equal(t, "{}", string(env.Data))
	})
}

func TestHealthHandler(t *testing.T) {
	srv := newTestServer(t)

	rec, env := doRequest(t, srv, http.MethodGet, server.RouteHealth, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, "ok", data["status"])
	require.Equal(t, "augment-oauth-service", data["service"])
	require.NotEmpty(t, data["timestamp"])
}

func TestCorsHeaders(t *testing.T) {
	srv := newTestServer(t)

	t.Run("preflight gets wildcard origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, server.RouteAPIAuthURL, nil)
		req.Header.Set("Origin", "https://client.example.com")

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		require.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("actual request gets wildcard origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, server.RouteAPIAuthURL, nil)
		req.Header.Set("Origin", "https://client.example.com")

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
