package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/thumbforge/thumbforge/internal/config"
	"github.com/thumbforge/thumbforge/pkg/clients"
)

var ErrLineItemsUnavailable = errors.New("can't fetch checkout line items")

// Client covers the one Stripe API call the webhook reconciler needs:
// resolving a checkout session's line items to find the purchased price.
type Client struct {
	baseURL   string
	secretKey string
	client    clients.HTTPClientI
}

func New(cfg *config.Config, client clients.HTTPClientI) *Client {
	return &Client{
		baseURL:   cfg.StripeAPIURL,
		secretKey: cfg.StripeSecretKey,
		client:    client,
	}
}

type lineItemsResponse struct {
	Data []struct {
		Price struct {
			ID string `json:"id"`
		} `json:"price"`
	} `json:"data"`
}

// FirstLineItemPriceID returns the price id of the session's first line
// item. Checkout sessions for credit packs always carry exactly one item.
func (c *Client) FirstLineItemPriceID(ctx context.Context, sessionID string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	url := fmt.Sprintf("%s/v1/checkout/sessions/%s/line_items", c.baseURL, sessionID)
	headers := http.Header{"Authorization": []string{"Bearer " + c.secretKey}}

	statusCode, respBody, _, err := c.client.Get(url, headers)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrLineItemsUnavailable, err)
	}
	if statusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrLineItemsUnavailable, statusCode)
	}

	var response lineItemsResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return "", fmt.Errorf("%w: %s", ErrLineItemsUnavailable, err)
	}
	if len(response.Data) == 0 || response.Data[0].Price.ID == "" {
		return "", fmt.Errorf("%w: no price id in session %s", ErrLineItemsUnavailable, sessionID)
	}
	return response.Data[0].Price.ID, nil
}
