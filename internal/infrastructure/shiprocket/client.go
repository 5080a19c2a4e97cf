// Package shiprocket implements the courier gateway against the Shiprocket
// external API. Authentication happens once per token lifetime: the bearer
// token is cached in process memory and refreshed shortly before expiry.
package shiprocket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aslamtailor/storefront-api/internal/core/domain"
	"github.com/aslamtailor/storefront-api/internal/core/ports"
	"github.com/aslamtailor/storefront-api/internal/metrics"
)

const (
	// tokenTTL is the provider-documented token lifetime (15 days).
	tokenTTL = 1_296_000 * time.Second
	// refreshBuffer forces a refresh this long before nominal expiry so an
	// in-flight relay never carries a token that dies mid-request.
	refreshBuffer = 60 * time.Second

	defaultDimensionCm = 10
	defaultWeightKg    = 0.5
)

// Config captures the settings for the Shiprocket client.
type Config struct {
	BaseURL        string
	Email          string
	Password       string
	PickupLocation string
}

// Client talks to the Shiprocket API. It is safe for concurrent use; the
// token slot is mutex-guarded but the credential exchange itself is not
// single-flighted, so two callers racing an expired token may both refresh.
// The second write simply replaces the first with an equally valid token.
type Client struct {
	baseURL        string
	email          string
	password       string
	pickupLocation string
	httpClient     *http.Client
	logger         zerolog.Logger
	now            func() time.Time

	mu         sync.Mutex
	token      string
	obtainedAt time.Time
}

// Option customises a Client. Used by tests to inject a fake clock and a
// stub HTTP client.
type Option func(*Client)

// WithHTTPClient overrides the outbound HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock overrides the time source used for token expiry decisions.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a Shiprocket client. No network call is made until the first
// relay operation needs a token.
func New(cfg Config, logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:        cfg.BaseURL,
		email:          cfg.Email,
		password:       cfg.Password,
		pickupLocation: cfg.PickupLocation,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		logger:         logger,
		now:            time.Now,
	}
	if c.pickupLocation == "" {
		c.pickupLocation = "Primary"
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EnsureToken returns the cached bearer token when it is still outside the
// refresh buffer, otherwise exchanges credentials for a fresh one. A failed
// exchange leaves the existing cache untouched so the next caller retries.
func (c *Client) EnsureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && c.now().Before(c.obtainedAt.Add(tokenTTL-refreshBuffer)) {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	token, err := c.login(ctx)
	if err != nil {
		metrics.ShippingTokenRefreshTotal.WithLabelValues("error").Inc()
		return "", err
	}

	c.mu.Lock()
	c.token = token
	c.obtainedAt = c.now()
	c.mu.Unlock()

	metrics.ShippingTokenRefreshTotal.WithLabelValues("ok").Inc()
	c.logger.Info().Msg("shiprocket token refreshed")
	return token, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (c *Client) login(ctx context.Context) (string, error) {
	body, err := json.Marshal(loginRequest{Email: c.email, Password: c.password})
	if err != nil {
		return "", fmt.Errorf("%w: encode credentials: %v", domain.ErrShippingAuth, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrShippingAuth, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrShippingAuth, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", domain.ErrShippingAuth, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: provider returned %d: %s", domain.ErrShippingAuth, resp.StatusCode, string(raw))
	}

	var lr loginResponse
	if err := json.Unmarshal(raw, &lr); err != nil || lr.Token == "" {
		return "", fmt.Errorf("%w: response missing token", domain.ErrShippingAuth)
	}
	return lr.Token, nil
}

// CreateOrder relays an adhoc order to the provider and returns its raw
// response body untouched.
func (c *Client) CreateOrder(ctx context.Context, input ports.ShippingOrderInput) (json.RawMessage, error) {
	token, err := c.EnsureToken(ctx)
	if err != nil {
		return nil, err
	}

	payload := buildOrderPayload(input, c.pickupLocation)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &UpstreamError{Op: OpCreateOrder, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders/create/adhoc", bytes.NewReader(body))
	if err != nil {
		return nil, &UpstreamError{Op: OpCreateOrder, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	return c.do(req, OpCreateOrder)
}

// CheckServiceability asks the provider which couriers can serve a route.
// Package dimensions default to 10x10x10 cm when absent. The amount is sent
// as cod for cash-on-delivery orders and as declared_value for prepaid ones.
func (c *Client) CheckServiceability(ctx context.Context, input ports.ServiceabilityInput) (json.RawMessage, error) {
	token, err := c.EnsureToken(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("pickup_postcode", input.PickupPostcode)
	q.Set("delivery_postcode", input.DeliveryPostcode)
	q.Set("weight", formatFloat(input.Weight))
	if input.CashOnDelivery {
		q.Set("cod", "1")
		q.Set("cod_amount", formatFloat(input.Amount))
	} else {
		q.Set("cod", "0")
		q.Set("declared_value", formatFloat(input.Amount))
	}
	q.Set("length", formatFloat(orDefault(input.Length)))
	q.Set("breadth", formatFloat(orDefault(input.Breadth)))
	q.Set("height", formatFloat(orDefault(input.Height)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/courier/serviceability/?"+q.Encode(), nil)
	if err != nil {
		return nil, &UpstreamError{Op: OpServiceability, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	return c.do(req, OpServiceability)
}

// do executes a relay request and applies the shared error contract: the
// provider's error body is carried when available, otherwise the transport
// error text. No retry.
func (c *Client) do(req *http.Request, op string) (json.RawMessage, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Op: op, Status: resp.StatusCode, Details: string(raw)}
	}
	return json.RawMessage(raw), nil
}

func orDefault(v float64) float64 {
	if v <= 0 {
		return defaultDimensionCm
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
