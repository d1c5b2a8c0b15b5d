package credential

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/donaldgifford/sellerlink/internal/store"
)

const (
	defaultLockTTL  = 30 * time.Second
	defaultLockPoll = 100 * time.Millisecond
	releaseTimeout  = 5 * time.Second
)

// Locker serializes token refresh for one account across instances. The
// returned unlock func must be called exactly once.
type Locker interface {
	Lock(ctx context.Context, accountID string) (unlock func(), err error)
}

type nopLocker struct{}

func (nopLocker) Lock(context.Context, string) (func(), error) {
	return func() {}, nil
}

// RefreshLockStore is the part of store.Store a StoreLocker needs.
type RefreshLockStore interface {
	AcquireRefreshLock(ctx context.Context, accountID, holder string, ttl time.Duration) (bool, error)
	ReleaseRefreshLock(ctx context.Context, accountID, holder string) error
}

var _ RefreshLockStore = (store.Store)(nil)

// StoreLocker keeps the refresh lock in the credential database.
type StoreLocker struct {
	store  RefreshLockStore
	ttl    time.Duration
	poll   time.Duration
	logger *slog.Logger
}

// NewStoreLocker creates a StoreLocker. A zero ttl uses the default.
func NewStoreLocker(s RefreshLockStore, ttl time.Duration, logger *slog.Logger) *StoreLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreLocker{store: s, ttl: ttl, poll: defaultLockPoll, logger: logger}
}

// Lock polls until the lock is taken or ctx is done.
func (l *StoreLocker) Lock(ctx context.Context, accountID string) (func(), error) {
	holder := uuid.NewString()

	err := pollUntil(ctx, l.poll, func() (bool, error) {
		return l.store.AcquireRefreshLock(ctx, accountID, holder, l.ttl)
	})
	if err != nil {
		return nil, err
	}

	return func() {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()
		if err := l.store.ReleaseRefreshLock(rctx, accountID, holder); err != nil {
			l.logger.Warn("releasing refresh lock", "account_id", accountID, "error", err)
		}
	}, nil
}

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker keeps the refresh lock in Redis using SET NX PX.
type RedisLocker struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
	poll      time.Duration
	logger    *slog.Logger
}

// NewRedisLocker creates a RedisLocker. A zero ttl uses the default.
func NewRedisLocker(client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisLocker{
		client:    client,
		keyPrefix: "sellerlink:refresh-lock:",
		ttl:       ttl,
		poll:      defaultLockPoll,
		logger:    logger,
	}
}

// Lock polls until the key is set or ctx is done.
func (l *RedisLocker) Lock(ctx context.Context, accountID string) (func(), error) {
	key := l.keyPrefix + accountID
	token := uuid.NewString()

	err := pollUntil(ctx, l.poll, func() (bool, error) {
		return l.client.SetNX(ctx, key, token, l.ttl).Result()
	})
	if err != nil {
		return nil, err
	}

	return func() {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()
		if err := releaseScript.Run(rctx, l.client, []string{key}, token).Err(); err != nil {
			l.logger.Warn("releasing refresh lock", "account_id", accountID, "error", err)
		}
	}, nil
}

func pollUntil(ctx context.Context, every time.Duration, try func() (bool, error)) error {
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		ok, err := try()
		if err != nil {
			return fmt.Errorf("taking lock: %w", err)
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for lock: %w", ctx.Err())
		case <-t.C:
		}
	}
}
