package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"context"

	"github.com/aegntic/growth-service/internal/domain"
)

// HTTPIdentityClient reads owner tier and referral age from the
// identity/subscription service.
type HTTPIdentityClient struct {
	Address string
	client  *http.Client
}

func NewHTTPIdentityClient(address string) *HTTPIdentityClient {
	return &HTTPIdentityClient{
		Address: address,
		client:  &http.Client{Timeout: 3 * time.Second},
	}
}

type tierResponse struct {
	OwnerID string `json:"owner_id"`
	Tier    string `json:"tier"`
}

type relationshipAgeResponse struct {
	ReferrerID string `json:"referrer_id"`
	RefereeID  string `json:"referee_id"`
	AgeMonths  int    `json:"age_months"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPIdentityClient) OwnerTier(ctx context.Context, ownerID string) (domain.Tier, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/owners/%s/tier", c.Address, ownerID))
	if err != nil {
		return "", err
	}

	var resp tierResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}

	tier := domain.Tier(resp.Tier)
	if !tier.Valid() {
		return "", domain.ErrUnknownOwnerTier
	}
	return tier, nil
}

func (c *HTTPIdentityClient) RelationshipAge(ctx context.Context, referrerID, refereeID string) (int, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/referrals/%s/%s/age", c.Address, referrerID, refereeID))
	if err != nil {
		return 0, err
	}

	var resp relationshipAgeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, err
	}
	return resp.AgeMonths, nil
}

func (c *HTTPIdentityClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	response, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return body, nil
	}

	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return nil, fmt.Errorf("identity service: %s", errResp.Error)
	}
	return nil, fmt.Errorf("identity service: unexpected status %d", response.StatusCode)
}
