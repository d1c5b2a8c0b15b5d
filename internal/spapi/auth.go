package spapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTokenURL = "https://api.amazon.com/auth/o2/token" //nolint:gosec // not a credential

// TokenBundle is the result of a successful token grant.
type TokenBundle struct {
	AccessToken  string
	RefreshToken string // empty when the grant did not rotate it
	ExpiresIn    int
	SellerID     string
	ReceivedAt   time.Time
}

// ExpiresAt returns the absolute expiry of the access token, measured from
// when the response was received.
func (b *TokenBundle) ExpiresAt() time.Time {
	return b.ReceivedAt.Add(time.Duration(b.ExpiresIn) * time.Second)
}

// LWAClient performs OAuth grants against the Login with Amazon token
// endpoint. It holds no token state; callers own persistence.
type LWAClient struct {
	clientID     string
	clientSecret string
	redirectURI  string
	tokenURL     string
	client       *http.Client
	nowFunc      func() time.Time
}

// LWAOption configures the LWAClient.
type LWAOption func(*LWAClient)

// WithTokenURL overrides the default token endpoint.
func WithTokenURL(u string) LWAOption {
	return func(c *LWAClient) {
		c.tokenURL = u
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) LWAOption {
	return func(c *LWAClient) {
		c.client = hc
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) LWAOption {
	return func(c *LWAClient) {
		c.nowFunc = f
	}
}

// NewLWAClient creates a token endpoint client. All three values are
// required; a missing one is an ErrConfiguration.
func NewLWAClient(
	clientID, clientSecret, redirectURI string,
	opts ...LWAOption,
) (*LWAClient, error) {
	switch {
	case clientID == "":
		return nil, fmt.Errorf("%w: client id is required", ErrConfiguration)
	case clientSecret == "":
		return nil, fmt.Errorf("%w: client secret is required", ErrConfiguration)
	case redirectURI == "":
		return nil, fmt.Errorf("%w: redirect uri is required", ErrConfiguration)
	}

	c := &LWAClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		tokenURL:     defaultTokenURL,
		client:       &http.Client{Timeout: 10 * time.Second},
		nowFunc:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

type tokenErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ExchangeAuthorizationCode trades a single-use authorization code for an
// access and refresh token.
func (c *LWAClient) ExchangeAuthorizationCode(
	ctx context.Context,
	code string,
) (*TokenBundle, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {c.redirectURI},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	bundle, status, errResp, err := c.postForm(ctx, "exchanging authorization code", form)
	if err != nil {
		return nil, err
	}
	if errResp != nil {
		return nil, &AuthExchangeError{
			StatusCode:  status,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}
	if bundle.RefreshToken == "" {
		return nil, &AuthExchangeError{
			StatusCode:  status,
			Code:        "invalid_response",
			Description: "token response did not include a refresh token",
		}
	}
	return bundle, nil
}

// RefreshAccessToken mints a new access token. The returned bundle carries a
// refresh token only when the endpoint rotated it.
func (c *LWAClient) RefreshAccessToken(
	ctx context.Context,
	refreshToken string,
) (*TokenBundle, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	bundle, status, errResp, err := c.postForm(ctx, "refreshing access token", form)
	if err != nil {
		return nil, err
	}
	if errResp != nil {
		return nil, &RefreshError{
			StatusCode:  status,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}
	return bundle, nil
}

// postForm sends a grant. A non-200 response is returned as errResp so each
// grant can pick its own error type; transport failures are NetworkErrors.
func (c *LWAClient) postForm(
	ctx context.Context,
	op string,
	form url.Values,
) (*TokenBundle, int, *tokenErrorResponse, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.tokenURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, nil, &NetworkError{Op: op, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		errResp := &tokenErrorResponse{}
		_ = json.Unmarshal(body, errResp) //nolint:errcheck // best-effort error parsing
		if errResp.Error == "" {
			errResp.Error = http.StatusText(resp.StatusCode)
		}
		return nil, resp.StatusCode, errResp, nil
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, resp.StatusCode, nil, fmt.Errorf("parsing token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return nil, resp.StatusCode, &tokenErrorResponse{
			Error:            "invalid_response",
			ErrorDescription: "token response did not include an access token",
		}, nil
	}

	return &TokenBundle{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
		ExpiresIn:    tokenResp.ExpiresIn,
		ReceivedAt:   c.nowFunc(),
	}, resp.StatusCode, nil, nil
}
