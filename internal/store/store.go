// Package store defines the credential datastore abstraction for sellerlink.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables mock-based testing without a running database.
package store

import (
	"context"
	"errors"
	"time"

	domain "github.com/donaldgifford/sellerlink/pkg/types"
)

var (
	// ErrNotFound is returned when no credential exists for an account.
	ErrNotFound = errors.New("credential not found")

	// ErrStaleCredential is returned by UpdateTokens when the stored refresh
	// token is no longer the one the caller read, e.g. after a reconnect.
	ErrStaleCredential = errors.New("credential changed since it was read")
)

// Store defines all data access operations for sellerlink.
type Store interface {
	// Credentials
	GetCredential(ctx context.Context, accountID string) (*domain.Credential, error)
	// SaveCredential upserts the whole record. ConnectedAt is kept from an
	// existing row when one exists.
	SaveCredential(ctx context.Context, c *domain.Credential) error
	// UpdateTokens replaces the token fields of an existing credential, but
	// only while its refresh token is still previousRefreshToken. It returns
	// ErrNotFound when the credential was removed and ErrStaleCredential when
	// it was replaced.
	UpdateTokens(
		ctx context.Context,
		accountID, previousRefreshToken, accessToken, refreshToken string,
		expiresAt time.Time,
	) error
	// DeleteCredential removes the whole record. Deleting a missing record is
	// not an error.
	DeleteCredential(ctx context.Context, accountID string) error

	// Refresh locks
	AcquireRefreshLock(ctx context.Context, accountID, holder string, ttl time.Duration) (bool, error)
	ReleaseRefreshLock(ctx context.Context, accountID, holder string) error

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
