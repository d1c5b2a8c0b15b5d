package client

import (
	"context"
	"net/url"

	domain "github.com/donaldgifford/sellerlink/pkg/types"
)

// Authorization is the start of the consent flow.
type Authorization struct {
	AuthorizationURL string `json:"authorization_url"`
	State            string `json:"state"`
}

func accountPath(accountID string) string {
	return "/api/v1/accounts/" + url.PathEscape(accountID)
}

// Connect returns the consent page the seller must visit for accountID.
func (c *Client) Connect(ctx context.Context, accountID string) (*Authorization, error) {
	var a Authorization
	if err := c.get(ctx, accountPath(accountID)+"/connect", &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Connection returns the link status of accountID.
func (c *Client) Connection(ctx context.Context, accountID string) (*domain.ConnectionStatus, error) {
	var st domain.ConnectionStatus
	if err := c.get(ctx, accountPath(accountID)+"/connection", &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Disconnect removes the stored credential of accountID.
func (c *Client) Disconnect(ctx context.Context, accountID string) error {
	return c.del(ctx, accountPath(accountID)+"/connection")
}
