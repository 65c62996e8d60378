package memory

import (
	"context"
	"sync"
	"time"
)

// sweepEvery bounds how many revocations go by between expiry sweeps.
const sweepEvery = 64

// RevocationStore keeps revoked token ids until the token's own expiry.
type RevocationStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
	writes  int
	now     func() time.Time
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{entries: make(map[string]time.Time), now: time.Now}
}

func (s *RevocationStore) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[tokenID] = expiresAt
	s.writes++
	if s.writes%sweepEvery == 0 {
		s.sweepLocked()
	}
	return nil
}

func (s *RevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.entries[tokenID]
	if !ok {
		return false, nil
	}
	if !exp.IsZero() && !s.now().Before(exp) {
		// Expired tokens are rejected by signature validation anyway.
		delete(s.entries, tokenID)
		return false, nil
	}
	return true, nil
}

// Len reports the number of tracked entries.
func (s *RevocationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *RevocationStore) sweepLocked() {
	now := s.now()
	for id, exp := range s.entries {
		if !exp.IsZero() && !now.Before(exp) {
			delete(s.entries, id)
		}
	}
}
