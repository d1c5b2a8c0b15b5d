package spapi

import (
	"errors"
	"fmt"
	"net"
	"net/http"
)

var (
	// ErrConfiguration marks a fatal deployment-level configuration problem.
	// It is never retried.
	ErrConfiguration = errors.New("configuration error")

	// ErrDisconnected is returned when no usable credential exists and the
	// account must be re-authorized.
	ErrDisconnected = errors.New("account not connected: reconnect required")

	// ErrAuthentication is returned on a 401 from a data endpoint. The token
	// passed the local freshness check, so the authorization was most likely
	// revoked upstream.
	ErrAuthentication = errors.New("access token rejected: reconnect required")

	// ErrRateLimited is returned on a 429. Callers should retry later.
	ErrRateLimited = errors.New("upstream rate limit exceeded: retry later")

	// ErrForbidden is returned on a 403 from a data endpoint.
	ErrForbidden = errors.New("upstream denied access")
)

// APIError is a non-2xx response from a data endpoint. It unwraps to the
// sentinel matching its status class so callers can use errors.Is.
type APIError struct {
	StatusCode int
	Endpoint   string
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	return fmt.Sprintf("SP-API error (status %d, endpoint %s): %s", e.StatusCode, e.Endpoint, msg)
}

// Unwrap maps the status code onto the error taxonomy.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrAuthentication
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return nil
	}
}

// AuthExchangeError is returned when the authorization-code grant fails.
// Authorization codes are single use, so it is never retried.
type AuthExchangeError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *AuthExchangeError) Error() string {
	return fmt.Sprintf(
		"authorization code exchange failed (status %d): %s - %s",
		e.StatusCode, e.Code, e.Description,
	)
}

// RefreshError is returned when the refresh-token grant is rejected. It
// usually means the external authorization was revoked.
type RefreshError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf(
		"token refresh failed (status %d): %s - %s: reconnect required",
		e.StatusCode, e.Code, e.Description,
	)
}

// AccessDeniedError is returned when the orders endpoint denies access and no
// fallback was possible.
type AccessDeniedError struct {
	Scope string
	Err   error
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf(
		"access denied: the connected account lacks the %s role; grant it in the app registration and reconnect",
		e.Scope,
	)
}

func (e *AccessDeniedError) Unwrap() error {
	return e.Err
}

// NetworkError wraps a transport-level failure (DNS, connection reset,
// timeout). It is transient; the whole operation is safe to retry.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a timeout.
func (e *NetworkError) Timeout() bool {
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// ReconnectRequired reports whether err means the user has to go through the
// authorization flow again.
func ReconnectRequired(err error) bool {
	if errors.Is(err, ErrDisconnected) || errors.Is(err, ErrAuthentication) {
		return true
	}
	var exErr *AuthExchangeError
	var rfErr *RefreshError
	return errors.As(err, &exErr) || errors.As(err, &rfErr)
}
