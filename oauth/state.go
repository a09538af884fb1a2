package oauth

import "time"

// PendingAuthorization tracks one in-flight authorization attempt. The state
// token is the lookup key and CSRF binding; the verifier never leaves the
// store layer. Records are immutable after creation.
type PendingAuthorization struct {
	StateToken    string
	CodeVerifier  string
	CodeChallenge string
	CreatedAt     time.Time
}

// NewPendingAuthorization generates a fresh verifier/challenge pair bound to a
// new state token.
func NewPendingAuthorization(now time.Time) PendingAuthorization {
	verifier := GenerateCodeVerifier()
	return PendingAuthorization{
		StateToken:    GenerateStateToken(),
		CodeVerifier:  verifier,
		CodeChallenge: DeriveCodeChallenge(verifier),
		CreatedAt:     now,
	}
}

// Expired reports whether the record is past the expiry window. A record
// exactly at the window is still valid.
func (p PendingAuthorization) Expired(now time.Time, window time.Duration) bool {
	return now.Sub(p.CreatedAt) > window
}
