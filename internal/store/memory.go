package store

import (
	"context"
	"sync"
	"time"

	domain "github.com/donaldgifford/sellerlink/pkg/types"
)

// MemoryStore is an in-process Store for local development against the mock
// server and for tests. Data does not survive a restart.
type MemoryStore struct {
	mu          sync.Mutex
	credentials map[string]domain.Credential
	locks       map[string]memoryLock
	nowFunc     func() time.Time
}

type memoryLock struct {
	holder    string
	expiresAt time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		credentials: make(map[string]domain.Credential),
		locks:       make(map[string]memoryLock),
		nowFunc:     time.Now,
	}
}

// GetCredential returns a copy of the stored credential.
func (s *MemoryStore) GetCredential(_ context.Context, accountID string) (*domain.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.credentials[accountID]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

// SaveCredential upserts c, keeping ConnectedAt from an existing record.
func (s *MemoryStore) SaveCredential(_ context.Context, c *domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	saved := *c

	if existing, ok := s.credentials[c.AccountID]; ok {
		if existing.ConnectedAt != nil {
			saved.ConnectedAt = existing.ConnectedAt
		}
		if saved.SellerID == "" {
			saved.SellerID = existing.SellerID
		}
	}
	if saved.ConnectedAt == nil {
		saved.ConnectedAt = &now
	}
	saved.UpdatedAt = now

	s.credentials[c.AccountID] = saved
	c.ConnectedAt = saved.ConnectedAt
	c.UpdatedAt = saved.UpdatedAt
	return nil
}

// UpdateTokens replaces the token fields of an existing credential whose
// refresh token is still previousRefreshToken.
func (s *MemoryStore) UpdateTokens(
	_ context.Context,
	accountID, previousRefreshToken, accessToken, refreshToken string,
	expiresAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.credentials[accountID]
	if !ok {
		return ErrNotFound
	}
	if c.RefreshToken != previousRefreshToken {
		return ErrStaleCredential
	}
	c.AccessToken = accessToken
	c.RefreshToken = refreshToken
	c.TokenExpiresAt = expiresAt
	c.UpdatedAt = s.nowFunc()
	s.credentials[accountID] = c
	return nil
}

// DeleteCredential removes the credential.
func (s *MemoryStore) DeleteCredential(_ context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.credentials, accountID)
	return nil
}

// AcquireRefreshLock takes the lock when it is free or expired.
func (s *MemoryStore) AcquireRefreshLock(
	_ context.Context,
	accountID, holder string,
	ttl time.Duration,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	if l, ok := s.locks[accountID]; ok && now.Before(l.expiresAt) {
		return false, nil
	}
	s.locks[accountID] = memoryLock{holder: holder, expiresAt: now.Add(ttl)}
	return true, nil
}

// ReleaseRefreshLock releases the lock if holder owns it.
func (s *MemoryStore) ReleaseRefreshLock(_ context.Context, accountID, holder string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.locks[accountID]; ok && l.holder == holder {
		delete(s.locks, accountID)
	}
	return nil
}

// Migrate is a no-op.
func (*MemoryStore) Migrate(context.Context) error { return nil }

// Ping always succeeds.
func (*MemoryStore) Ping(context.Context) error { return nil }
