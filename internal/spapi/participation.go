package spapi

import (
	"context"
	"net/http"
)

const participationsPath = "/sellers/v1/marketplaceParticipations"

type participationsResponse struct {
	Payload []struct {
		Marketplace struct {
			ID                  string `json:"id"`
			CountryCode         string `json:"countryCode"`
			DefaultCurrencyCode string `json:"defaultCurrencyCode"`
		} `json:"marketplace"`
		Participation struct {
			IsParticipating      bool `json:"isParticipating"`
			HasSuspendedListings bool `json:"hasSuspendedListings"`
		} `json:"participation"`
	} `json:"payload"`
}

// GetMarketplaceParticipations implements ParticipationLister. It is used as
// a cheap probe that the access token is valid for the seller.
func (c *Client) GetMarketplaceParticipations(
	ctx context.Context,
	accessToken string,
) ([]Participation, error) {
	var apiResp participationsResponse
	err := c.do(
		ctx, "get_marketplace_participations", http.MethodGet, participationsPath,
		nil, accessToken, nil, &apiResp,
	)
	if err != nil {
		return nil, err
	}

	out := make([]Participation, 0, len(apiResp.Payload))
	for i := range apiResp.Payload {
		p := &apiResp.Payload[i]
		out = append(out, Participation{
			MarketplaceID:        p.Marketplace.ID,
			CountryCode:          p.Marketplace.CountryCode,
			DefaultCurrencyCode:  p.Marketplace.DefaultCurrencyCode,
			IsParticipating:      p.Participation.IsParticipating,
			HasSuspendedListings: p.Participation.HasSuspendedListings,
		})
	}
	return out, nil
}
