package oauth

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultExpiryWindow is how long a pending authorization stays usable.
const DefaultExpiryWindow = 30 * time.Minute

// StateStore is the authoritative registry of pending authorizations, keyed
// by state token. Safe for concurrent use; all reads return copies.
type StateStore struct {
	mu      sync.RWMutex
	states  map[string]PendingAuthorization
	window  time.Duration
	nowTime func() time.Time // injectable for testing
}

// StateStoreOption modifies a StateStore at construction.
type StateStoreOption func(*StateStore)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) StateStoreOption {
	return func(s *StateStore) {
		s.nowTime = nowFunc
	}
}

// NewStateStore creates a state store with the given expiry window. A zero or
// negative window falls back to DefaultExpiryWindow.
func NewStateStore(window time.Duration, options ...StateStoreOption) *StateStore {
	if window <= 0 {
		window = DefaultExpiryWindow
	}
	s := &StateStore{
		states:  make(map[string]PendingAuthorization),
		window:  window,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Create generates a new pending authorization and inserts it keyed by its
// state token. The returned record includes the verifier; callers above the
// relay core must not re-expose it.
func (s *StateStore) Create() PendingAuthorization {
	record := NewPendingAuthorization(s.nowTime())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[record.StateToken] = record
	return record
}

// GetAndValidate looks up a record by state token. Unknown tokens fail with
// ErrStateNotFound. Expired records are removed and fail with ErrStateExpired.
// A valid record is returned as a copy and left in place; removal after use
// is the caller's responsibility.
func (s *StateStore) GetAndValidate(stateToken string) (PendingAuthorization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.states[stateToken]
	if !ok {
		return PendingAuthorization{}, ErrStateNotFound
	}
	if record.Expired(s.nowTime(), s.window) {
		delete(s.states, stateToken)
		return PendingAuthorization{}, ErrStateExpired
	}
	return record, nil
}

// Remove deletes the record for a state token. Removing an absent token is
// not an error.
func (s *StateStore) Remove(stateToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, stateToken)
}

// SweepExpired removes every record older than the expiry window and returns
// how many were removed. Bounds memory growth from abandoned flows.
func (s *StateStore) SweepExpired() int {
	now := s.nowTime()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, record := range s.states {
		if record.Expired(now, s.window) {
			delete(s.states, token)
			removed++
		}
	}
	return removed
}

// Count returns the number of currently held records.
func (s *StateStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}

// RunSweeper invokes SweepExpired on the given interval until the context is
// cancelled. Intended to run in its own goroutine, decoupled from request
// traffic.
func (s *StateStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.SweepExpired(); removed > 0 {
				log.Info().Int("removed", removed).Int("active", s.Count()).Msg("Swept expired oauth states")
			}
		}
	}
}
