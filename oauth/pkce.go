// Package oauth implements the PKCE authorization relay: verifier/challenge
// generation, the pending-authorization state store, authorize URL rendering
// and the code-for-token exchange against tenant token endpoints.
package oauth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
)

const (
	codeVerifierLength = 32 // bytes of entropy, 43 chars base64url
	stateTokenLength   = 8  // lookup key, not a secret
)

// GenerateCodeVerifier creates a PKCE code verifier (RFC 7636): 32 bytes from
// a CSPRNG, base64url encoded without padding.
func GenerateCodeVerifier() string {
	return randomURLString(codeVerifierLength)
}

// DeriveCodeChallenge computes the S256 code challenge for a verifier.
func DeriveCodeChallenge(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

// GenerateStateToken creates the opaque state parameter used to correlate an
// authorize request with its completion callback.
func GenerateStateToken() string {
	return randomURLString(stateTokenLength)
}

func randomURLString(length int) string {
	b := make([]byte, length)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
