package config

import (
	"fmt"
	"log"
	"net"
)

// IsPortAvailable reports whether host:port can currently be bound.
func IsPortAvailable(host, port string) bool {
	listener, err := net.Listen("tcp", net.JoinHostPort(host, port))
	if err != nil {
		return false
	}
	listener.Close()
	return true
}

// FindAvailablePort scans upward from startPort for a port that can be bound,
// trying at most maxAttempts ports.
func FindAvailablePort(host string, startPort, maxAttempts int) (string, error) {
	for port := startPort; port < startPort+maxAttempts; port++ {
		candidate := fmt.Sprintf("%d", port)
		if IsPortAvailable(host, candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("[FindAvailablePort] no available port in range %d-%d", startPort, startPort+maxAttempts-1)
}

// ResolveServerAddr returns host:port for the configured address, falling
// back to the next available port when the configured one is already taken.
func ResolveServerAddr(cfg EnvConfig) (string, error) {
	host := cfg.GetHost()
	port := cfg.GetPort()

	if IsPortAvailable(host, port) {
		return net.JoinHostPort(host, port), nil
	}

	log.Printf("Port %s is in use, scanning for an available port\n", port)

	start := 0
	if _, err := fmt.Sscanf(port, "%d", &start); err != nil {
		return "", fmt.Errorf("[ResolveServerAddr] invalid port %q: %w", port, err)
	}

	available, err := FindAvailablePort(host, start+1, 100)
	if err != nil {
		return "", fmt.Errorf("[ResolveServerAddr] %w", err)
	}
	return net.JoinHostPort(host, available), nil
}
