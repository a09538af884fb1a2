package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/caigq99/augment-oauth-service/internal/config"
	"github.com/caigq99/augment-oauth-service/oauth"
)

type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	mux    *http.ServeMux
	routes []string
	config config.Config
	oauth  *oauth.Service
	states *oauth.StateStore
}

func New(config config.Config) (*Server, error) {
	states := oauth.NewStateStore(config.GetStateExpiry())

	oauthService, err := oauth.NewService(config, states)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create oauth service: %w", err)
	}

	s := &Server{
		mux:    http.NewServeMux(),
		config: config,
		oauth:  oauthService,
		states: states,
	}
	s.env = config.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// RunStateSweeper periodically removes expired pending authorizations until
// the context is cancelled. Run it in its own goroutine.
func (s *Server) RunStateSweeper(ctx context.Context) {
	s.states.RunSweeper(ctx, s.config.GetSweepInterval())
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := MethodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
