package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"lendgate/pkg/domain"
)

// HTTPClient is the live identity provider implementation. It queries a
// KYC lookup API over HTTPS with a bounded per-call timeout.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient constructs a live provider client.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// entity mirrors the provider's wire format. Lookups return the identity
// payload nested under an "entity" key.
type entity struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	MiddleName  string `json:"middle_name"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
	PhoneNumber string `json:"phone_number"`
}

type lookupResponse struct {
	Entity *entity `json:"entity"`
}

func (c *HTTPClient) VerifyNIN(ctx context.Context, nin domain.NIN) (*Record, error) {
	return c.lookup(ctx, "/api/v1/kyc/nin", "nin", nin.String())
}

func (c *HTTPClient) VerifyBVN(ctx context.Context, bvn domain.BVN) (*Record, error) {
	return c.lookup(ctx, "/api/v1/kyc/bvn", "bvn", bvn.String())
}

func (c *HTTPClient) lookup(ctx context.Context, path, param, value string) (*Record, error) {
	endpoint := fmt.Sprintf("%s%s?%s=%s", c.baseURL, path, param, url.QueryEscape(value))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewError(CategoryInternal, "build lookup request", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, NewError(CategoryTimeout, param+" lookup timed out", err)
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, NewError(CategoryTimeout, param+" lookup timed out", err)
		}
		return nil, NewError(CategoryOutage, param+" lookup failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s %s: %w", param, value, ErrRecordNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, NewError(CategoryOutage,
			fmt.Sprintf("%s lookup returned status %d", param, resp.StatusCode), nil)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, NewError(CategoryBadData, "decode "+param+" lookup response", err)
	}
	if body.Entity == nil {
		return nil, NewError(CategoryBadData, param+" lookup returned empty payload", nil)
	}

	return &Record{
		FirstName:   body.Entity.FirstName,
		LastName:    body.Entity.LastName,
		MiddleName:  body.Entity.MiddleName,
		Gender:      body.Entity.Gender,
		DateOfBirth: body.Entity.DateOfBirth,
		PhoneNumber: body.Entity.PhoneNumber,
	}, nil
}
