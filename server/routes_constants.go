package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// API Routes
	RouteAPIAuthURL      = "/api/auth-url"
	RouteAPICompleteAuth = "/api/complete-auth"

	// Liveness
	RouteHealth = "/health"
)
