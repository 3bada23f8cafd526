package handoffsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client is a typed HTTP client for the handoff token service. The bearer
// token is the platform-issued caller JWT; the service derives the caller
// identity from its subject.
type Client struct {
	BaseURL     string
	BearerToken string
	HTTPClient  *http.Client
}

// NewClient creates a client with a sane default timeout.
func NewClient(baseURL, bearerToken string) *Client {
	return &Client{
		BaseURL:     strings.TrimSuffix(baseURL, "/"),
		BearerToken: bearerToken,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// IssueTokens mints a fresh handover/return token pair for a booking.
func (c *Client) IssueTokens(ctx context.Context, req IssueTokensRequest) (*IssueTokensResponse, error) {
	var resp IssueTokensResponse
	if err := c.post(ctx, "/v1/tokens/issue", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ReissueTokens replaces the live token pair, invalidating any outstanding
// tokens for the booking even if unexpired.
func (c *Client) ReissueTokens(ctx context.Context, req IssueTokensRequest) (*IssueTokensResponse, error) {
	var resp IssueTokensResponse
	if err := c.post(ctx, "/v1/tokens/reissue", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyToken checks a token without consuming it.
func (c *Client) VerifyToken(ctx context.Context, req VerifyTokenRequest) (*VerifyTokenResponse, error) {
	var resp VerifyTokenResponse
	if err := c.post(ctx, "/v1/tokens/verify", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RedeemToken consumes a token, marking its booking action redeemed.
func (c *Client) RedeemToken(ctx context.Context, req RedeemTokenRequest) (*RedeemTokenResponse, error) {
	var resp RedeemTokenResponse
	if err := c.post(ctx, "/v1/tokens/redeem", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateBooking registers a booking so tokens can be issued against it.
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResponse, error) {
	var resp CreateBookingResponse
	if err := c.post(ctx, "/v1/bookings", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListEvents returns a booking's redemption audit trail.
func (c *Client) ListEvents(ctx context.Context, ownerUserID, bookingID string) (*ListEventsResponse, error) {
	url := fmt.Sprintf("%s/v1/bookings/%s/events?owner_user_id=%s", c.BaseURL, bookingID, ownerUserID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	var resp ListEventsResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetLiveness checks the service liveness probe.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/livez", nil)
	if err != nil {
		return nil, err
	}

	var resp HealthResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.BearerToken)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
			apiErr.Code = body.Error
			apiErr.Description = body.ErrorDescription
		}
		if apiErr.Code == "" {
			apiErr.Code = ErrorCodeServerError
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
