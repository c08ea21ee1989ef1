// Package geo resolves delivery streets into grid locations by calling the
// geocoding service over HTTP.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultTimeout = 3 * time.Second

	// Retry policy for transient failures: up to 5 attempts with exponential
	// backoff between 1s and 5s.
	maxRetries      = 4
	initialInterval = 1 * time.Second
	maxInterval     = 5 * time.Second
)

var ErrGeoBaseURLIsRequired = errors.New("geo base url is required")

// Client implements ports.GeoClient against the geo service's HTTP API.
// Transient failures (transport errors, 5xx, 429) are retried with capped
// exponential backoff; any other status fails immediately.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a geo client for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, ErrGeoBaseURLIsRequired
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

type locationResponse struct {
	X kernel.Coordinate `json:"x"`
	Y kernel.Coordinate `json:"y"`
}

// Resolve returns the grid location for the given street.
func (c *Client) Resolve(ctx context.Context, street string) (kernel.Location, error) {
	if street == "" {
		return kernel.Location{}, errs.NewValueIsRequiredError("street")
	}

	var location kernel.Location

	operation := func() error {
		resolved, err := c.fetch(ctx, street)
		if err != nil {
			return err
		}
		location = resolved
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = initialInterval
	policy.MaxInterval = maxInterval

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, maxRetries), ctx))
	if err != nil {
		return kernel.Location{}, fmt.Errorf("resolve street %q: %w", street, err)
	}

	return location, nil
}

func (c *Client) fetch(ctx context.Context, street string) (kernel.Location, error) {
	endpoint := fmt.Sprintf("%s/locations?street=%s", c.baseURL, url.QueryEscape(street))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return kernel.Location{}, backoff.Permanent(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return kernel.Location{}, err
	}
	defer resp.Body.Close()

	if retryable(resp.StatusCode) {
		return kernel.Location{}, fmt.Errorf("geo service returned %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return kernel.Location{}, backoff.Permanent(fmt.Errorf("geo service returned %s", resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return kernel.Location{}, err
	}

	var payload locationResponse
	if err = json.Unmarshal(body, &payload); err != nil {
		return kernel.Location{}, backoff.Permanent(err)
	}

	location, err := kernel.NewLocation(payload.X, payload.Y)
	if err != nil {
		return kernel.Location{}, backoff.Permanent(err)
	}

	return location, nil
}

func retryable(statusCode int) bool {
	return statusCode >= http.StatusInternalServerError || statusCode == http.StatusTooManyRequests
}
