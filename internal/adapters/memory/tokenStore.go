package memory

import (
	"context"
	"sync"
	"time"
)

// TokenStoreMemory جایگزین Redis برای تست و اجرای بدون Redis
type TokenStoreMemory struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewTokenStoreMemory() *TokenStoreMemory {
	return &TokenStoreMemory{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *TokenStoreMemory) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.revoked[tokenID] = s.now().Add(ttl)
	return nil
}

func (s *TokenStoreMemory) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(expiresAt) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
