// Package clover is a minimal client for the two Clover surfaces the bakery
// uses: the hosted invoicing checkout service (payment redirect) and the
// orders API (history for the prep dashboard and the local order mirror).
package clover

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultCheckoutURL = "https://checkout.clover.com/invoicingcheckoutservice/v1/checkouts"
	apiBaseURL         = "https://api.clover.com"
)

type Credentials struct {
	APIKey     string
	MerchantID string
}

type Client struct {
	hc          *http.Client
	creds       Credentials
	baseURL     string
	checkoutURL string
}

func New(creds Credentials) *Client {
	return &Client{
		hc:          &http.Client{Timeout: 10 * time.Second},
		creds:       creds,
		baseURL:     apiBaseURL,
		checkoutURL: defaultCheckoutURL,
	}
}

// Enabled reports whether credentials were configured. Without them the
// checkout and order-sync features are off but the rest of the site works.
func (c *Client) Enabled() bool {
	return c.creds.APIKey != "" && c.creds.MerchantID != ""
}

// CheckoutRequest carries only server-trusted data: line item prices come
// from the rule catalog, never from the browser.
type CheckoutRequest struct {
	Customer struct {
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"customer"`
	ShoppingCart struct {
		LineItems []CheckoutLineItem `json:"lineItems"`
	} `json:"shoppingCart"`
}

type CheckoutLineItem struct {
	Name       string `json:"name"`
	PriceCents int    `json:"price"`
	UnitQty    int    `json:"unitQty"`
}

// CreateCheckout opens a hosted checkout session and returns the URL to
// redirect the customer to.
func (c *Client) CreateCheckout(ctx context.Context, req CheckoutRequest) (string, error) {
	if !c.Enabled() {
		return "", errors.New("clover: credentials not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	status, respBody, err := c.do(ctx, http.MethodPost, c.checkoutURL, body)
	if err != nil {
		return "", err
	}
	if status >= 400 {
		return "", fmt.Errorf("clover: checkout failed (status=%d): %s", status, truncate(respBody))
	}

	var resp struct {
		Href string `json:"href"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", err
	}
	if resp.Href == "" {
		return "", errors.New("clover: no checkout URL in response")
	}
	return resp.Href, nil
}

// Order is the slice of Clover's order shape this service reads.
type Order struct {
	ID          string `json:"id"`
	CreatedTime int64  `json:"createdTime"` // unix millis
	Note        string `json:"note"`
	LineItems   struct {
		Elements []LineItem `json:"elements"`
	} `json:"lineItems"`
}

type LineItem struct {
	Name       string `json:"name"`
	PriceCents int    `json:"price"`
	// Clover stores unitQty as quantity*1000 (1 item = 1000); older orders
	// carry a plain quantity instead.
	UnitQty  *int64 `json:"unitQty"`
	Quantity *int   `json:"quantity"`
}

// EffectiveQuantity normalizes the two quantity encodings, never below 1.
func (li LineItem) EffectiveQuantity() int {
	q := 1
	if li.UnitQty != nil {
		q = int((*li.UnitQty + 500) / 1000)
	} else if li.Quantity != nil {
		q = *li.Quantity
	}
	if q < 1 {
		q = 1
	}
	return q
}

// ListOrders fetches paid orders created in [from, to] with line items
// expanded.
func (c *Client) ListOrders(ctx context.Context, from, to time.Time) ([]Order, error) {
	if !c.Enabled() {
		return nil, errors.New("clover: credentials not configured")
	}

	url := fmt.Sprintf(
		"%s/v3/merchants/%s/orders?expand=lineItems&filter=payType!=null&filter=createdTime>=%d&filter=createdTime<=%d&limit=500",
		c.baseURL, c.creds.MerchantID, from.UnixMilli(), to.UnixMilli())

	status, body, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, fmt.Errorf("clover: list orders failed (status=%d): %s", status, truncate(body))
	}

	var resp struct {
		Elements []Order `json:"elements"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	return resp.Elements, nil
}

func (c *Client) do(ctx context.Context, method, rawURL string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.creds.APIKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds.MerchantID != "" {
		req.Header.Set("X-Clover-Merchant-Id", c.creds.MerchantID)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, err
	}
	return res.StatusCode, b, nil
}

func truncate(b []byte) string {
	const max = 256
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
