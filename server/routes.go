package server

import "net/http"

func (s *Server) initRoutes() {
	// API routes
	s.RegisterRouteHandler("GET "+RouteAPIAuthURL, ChainMiddleware(s.AuthURLHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPICompleteAuth, ChainMiddleware(s.CompleteAuthHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS /api/{endpoint}", ChainMiddleware(s.preflightHandler(), s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))
}

// preflightHandler terminates CORS preflight requests. The CORS middleware
// writes the full preflight response, so nothing is left to do here.
func (s *Server) preflightHandler() http.HandlerFunc {
	return func(http.ResponseWriter, *http.Request) {}
}
