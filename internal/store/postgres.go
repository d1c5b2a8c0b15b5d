package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/sellerlink/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
// Token columns are encrypted when a TokenCipher is configured.
type PostgresStore struct {
	pool   *pgxpool.Pool
	cipher *TokenCipher
}

// PostgresOption configures the PostgresStore.
type PostgresOption func(*PostgresStore)

// WithTokenCipher encrypts access and refresh tokens at rest.
func WithTokenCipher(c *TokenCipher) PostgresOption {
	return func(s *PostgresStore) {
		s.cipher = c
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(
	ctx context.Context,
	connString string,
	poolSize int,
	opts ...PostgresOption,
) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	cfg.MaxConns = int32(min(poolSize, 1000)) //nolint:gosec // bounded above

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// GetCredential retrieves the credential for an account.
func (s *PostgresStore) GetCredential(
	ctx context.Context,
	accountID string,
) (*domain.Credential, error) {
	c := &domain.Credential{}
	err := s.pool.QueryRow(ctx, queryGetCredential, accountID).Scan(
		&c.AccountID, &c.AccessToken, &c.RefreshToken, &c.TokenExpiresAt,
		&c.SellerID, &c.ConnectedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting credential: %w", err)
	}

	if c.AccessToken, err = s.cipher.Decrypt(c.AccessToken); err != nil {
		return nil, fmt.Errorf("decrypting access token: %w", err)
	}
	if c.RefreshToken, err = s.cipher.Decrypt(c.RefreshToken); err != nil {
		return nil, fmt.Errorf("decrypting refresh token: %w", err)
	}
	return c, nil
}

// SaveCredential inserts or replaces the credential for c.AccountID.
func (s *PostgresStore) SaveCredential(ctx context.Context, c *domain.Credential) error {
	access, refresh, err := s.seal(c.AccessToken, c.RefreshToken)
	if err != nil {
		return err
	}

	args := pgx.NamedArgs{
		"account_id":       c.AccountID,
		"access_token":     access,
		"refresh_token":    refresh,
		"token_expires_at": c.TokenExpiresAt,
		"seller_id":        c.SellerID,
		"connected_at":     c.ConnectedAt,
	}

	if err := s.pool.QueryRow(ctx, querySaveCredential, args).Scan(
		&c.ConnectedAt, &c.UpdatedAt,
	); err != nil {
		return fmt.Errorf("saving credential: %w", err)
	}
	return nil
}

// UpdateTokens replaces the token fields of an existing credential whose
// refresh token is still previousRefreshToken. Tokens may be sealed with a
// random nonce, so the check decrypts the row under FOR UPDATE instead of
// comparing ciphertext in SQL.
func (s *PostgresStore) UpdateTokens(
	ctx context.Context,
	accountID, previousRefreshToken, accessToken, refreshToken string,
	expiresAt time.Time,
) error {
	access, refresh, err := s.seal(accessToken, refreshToken)
	if err != nil {
		return err
	}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var current string
		err := tx.QueryRow(ctx, queryLockRefreshToken, accountID).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("locking credential: %w", err)
		}

		if current, err = s.cipher.Decrypt(current); err != nil {
			return fmt.Errorf("decrypting refresh token: %w", err)
		}
		if current != previousRefreshToken {
			return ErrStaleCredential
		}

		if _, err := tx.Exec(ctx, queryUpdateTokens, accountID, access, refresh, expiresAt); err != nil {
			return fmt.Errorf("updating tokens: %w", err)
		}
		return nil
	})
}

// DeleteCredential removes the whole credential in a single statement.
func (s *PostgresStore) DeleteCredential(ctx context.Context, accountID string) error {
	if _, err := s.pool.Exec(ctx, queryDeleteCredential, accountID); err != nil {
		return fmt.Errorf("deleting credential: %w", err)
	}
	return nil
}

// AcquireRefreshLock attempts to take the refresh lock for an account.
// Returns true if the lock was acquired, false if another holder owns it.
func (s *PostgresStore) AcquireRefreshLock(
	ctx context.Context,
	accountID string,
	holder string,
	ttl time.Duration,
) (bool, error) {
	expiresAt := time.Now().Add(ttl)

	var got string
	err := s.pool.QueryRow(ctx, queryAcquireRefreshLock, accountID, holder, expiresAt).Scan(&got)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil // held by another; conflict not replaced
	}
	if err != nil {
		return false, fmt.Errorf("acquiring refresh lock: %w", err)
	}
	return true, nil
}

// ReleaseRefreshLock deletes the lock row for the given account and holder.
func (s *PostgresStore) ReleaseRefreshLock(
	ctx context.Context,
	accountID string,
	holder string,
) error {
	if _, err := s.pool.Exec(ctx, queryReleaseRefreshLock, accountID, holder); err != nil {
		return fmt.Errorf("releasing refresh lock: %w", err)
	}
	return nil
}

func (s *PostgresStore) seal(accessToken, refreshToken string) (string, string, error) {
	access, err := s.cipher.Encrypt(accessToken)
	if err != nil {
		return "", "", fmt.Errorf("encrypting access token: %w", err)
	}
	refresh, err := s.cipher.Encrypt(refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("encrypting refresh token: %w", err)
	}
	return access, refresh, nil
}
