package credential

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultStateTTL bounds how long a user has to complete the consent flow.
const DefaultStateTTL = 15 * time.Minute

// ErrInvalidState is returned when an OAuth state value fails verification.
var ErrInvalidState = errors.New("invalid oauth state")

// StateCodec issues and verifies the signed state parameter that ties an
// OAuth callback back to the local account that started it.
type StateCodec struct {
	secret  []byte
	ttl     time.Duration
	nowFunc func() time.Time
}

// StateOption configures a StateCodec.
type StateOption func(*StateCodec)

// WithStateNowFunc overrides the time function for testing.
func WithStateNowFunc(f func() time.Time) StateOption {
	return func(c *StateCodec) {
		c.nowFunc = f
	}
}

// NewStateCodec creates a StateCodec. A zero ttl uses DefaultStateTTL.
func NewStateCodec(secret string, ttl time.Duration, opts ...StateOption) (*StateCodec, error) {
	if len(secret) < 32 {
		return nil, errors.New("state secret must be at least 32 bytes")
	}
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}
	c := &StateCodec{secret: []byte(secret), ttl: ttl, nowFunc: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue returns a state value bound to accountID.
func (c *StateCodec) Issue(accountID string) (string, error) {
	now := c.nowFunc()
	claims := jwt.RegisteredClaims{
		Subject:   accountID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		ID:        uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing state: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of state and returns the account
// it was issued for.
func (c *StateCodec) Verify(state string) (string, error) {
	if state == "" {
		return "", fmt.Errorf("%w: missing", ErrInvalidState)
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(state, claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.nowFunc),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: no subject", ErrInvalidState)
	}
	return claims.Subject, nil
}

// AuthorizationURL builds the seller consent URL. Draft applications must
// carry version=beta.
func AuthorizationURL(authURL, applicationID, state string, draft bool) (string, error) {
	u, err := url.Parse(authURL)
	if err != nil {
		return "", fmt.Errorf("parsing auth url: %w", err)
	}
	q := u.Query()
	q.Set("application_id", applicationID)
	q.Set("state", state)
	if draft {
		q.Set("version", "beta")
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
