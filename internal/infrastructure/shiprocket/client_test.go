package shiprocket

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aslamtailor/storefront-api/internal/core/domain"
	"github.com/aslamtailor/storefront-api/internal/core/ports"
	"github.com/aslamtailor/storefront-api/internal/metrics"
)

// fakeClock is a settable time source for expiry-boundary tests.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

type providerStub struct {
	*httptest.Server
	loginCalls   atomic.Int64
	loginStatus  int
	loginBody    string
	lastOrderRaw []byte
	lastQuery    string
}

func newProviderStub(t *testing.T) *providerStub {
	t.Helper()
	p := &providerStub{loginStatus: http.StatusOK, loginBody: `{"token":"tok-1"}`}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		p.loginCalls.Add(1)
		w.WriteHeader(p.loginStatus)
		_, _ = w.Write([]byte(p.loginBody))
	})
	mux.HandleFunc("POST /orders/create/adhoc", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, _ := io.ReadAll(r.Body)
		p.lastOrderRaw = body
		_, _ = w.Write([]byte(`{"order_id":12345,"shipment_id":67890}`))
	})
	mux.HandleFunc("GET /courier/serviceability/", func(w http.ResponseWriter, r *http.Request) {
		p.lastQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"status":200,"data":{"available_courier_companies":[]}}`))
	})
	p.Server = httptest.NewServer(mux)
	t.Cleanup(p.Server.Close)
	return p
}

func newTestClient(p *providerStub, clock *fakeClock) *Client {
	return New(
		Config{BaseURL: p.URL, Email: "shop@example.com", Password: "secret"},
		zerolog.Nop(),
		WithClock(clock.Now),
	)
}

func TestEnsureToken_ReusesFreshToken(t *testing.T) {
	p := newProviderStub(t)
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := newTestClient(p, clock)

	first, err := c.EnsureToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", first)

	clock.Advance(100 * time.Second)
	second, err := c.EnsureToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), p.loginCalls.Load(), "fresh token must be reused without a network call")
}

func TestEnsureToken_RefreshBoundary(t *testing.T) {
	p := newProviderStub(t)
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := newTestClient(p, clock)

	_, err := c.EnsureToken(context.Background())
	require.NoError(t, err)

	// Just outside the 60s buffer: no refresh.
	clock.Advance(tokenTTL - 61*time.Second)
	_, err = c.EnsureToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.loginCalls.Load())

	// Inside the buffer: refresh.
	clock.Advance(2 * time.Second)
	p.loginBody = `{"token":"tok-2"}`
	token, err := c.EnsureToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
	assert.Equal(t, int64(2), p.loginCalls.Load())
}

func TestEnsureToken_RefreshMetricCountsExchangesOnly(t *testing.T) {
	p := newProviderStub(t)
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := newTestClient(p, clock)

	okBefore := testutil.ToFloat64(metrics.ShippingTokenRefreshTotal.WithLabelValues("ok"))
	errBefore := testutil.ToFloat64(metrics.ShippingTokenRefreshTotal.WithLabelValues("error"))

	// First call exchanges credentials; second is served from cache.
	_, err := c.EnsureToken(context.Background())
	require.NoError(t, err)
	clock.Advance(100 * time.Second)
	_, err = c.EnsureToken(context.Background())
	require.NoError(t, err)

	okAfter := testutil.ToFloat64(metrics.ShippingTokenRefreshTotal.WithLabelValues("ok"))
	assert.Equal(t, 1.0, okAfter-okBefore, "cache hits must not count as refreshes")

	// A failed exchange counts on the error label.
	clock.Advance(tokenTTL)
	p.loginStatus = http.StatusUnauthorized
	p.loginBody = `{"message":"wrong password"}`
	_, err = c.EnsureToken(context.Background())
	require.ErrorIs(t, err, domain.ErrShippingAuth)

	errAfter := testutil.ToFloat64(metrics.ShippingTokenRefreshTotal.WithLabelValues("error"))
	assert.Equal(t, 1.0, errAfter-errBefore)
}

func TestEnsureToken_FailureLeavesNoPoisonedCache(t *testing.T) {
	p := newProviderStub(t)
	p.loginStatus = http.StatusUnauthorized
	p.loginBody = `{"message":"wrong password"}`
	clock := &fakeClock{t: time.Now()}
	c := newTestClient(p, clock)

	_, err := c.EnsureToken(context.Background())
	require.ErrorIs(t, err, domain.ErrShippingAuth)

	// The failed attempt must not block a later retry.
	p.loginStatus = http.StatusOK
	p.loginBody = `{"token":"tok-after-retry"}`
	token, err := c.EnsureToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-after-retry", token)
	assert.Equal(t, int64(2), p.loginCalls.Load())
}

func TestEnsureToken_FailureKeepsStaleToken(t *testing.T) {
	p := newProviderStub(t)
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := newTestClient(p, clock)

	_, err := c.EnsureToken(context.Background())
	require.NoError(t, err)

	clock.Advance(tokenTTL) // expired
	p.loginStatus = http.StatusInternalServerError
	p.loginBody = `{"message":"upstream down"}`
	_, err = c.EnsureToken(context.Background())
	require.ErrorIs(t, err, domain.ErrShippingAuth)

	// The stale token is left in place and a later refresh still succeeds.
	p.loginStatus = http.StatusOK
	p.loginBody = `{"token":"tok-3"}`
	token, err := c.EnsureToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-3", token)
}

func TestEnsureToken_MissingTokenFieldIsAuthError(t *testing.T) {
	p := newProviderStub(t)
	p.loginBody = `{"message":"ok but no token"}`
	c := newTestClient(p, &fakeClock{t: time.Now()})

	_, err := c.EnsureToken(context.Background())
	require.ErrorIs(t, err, domain.ErrShippingAuth)
}

func TestCreateOrder_BuildsProviderPayload(t *testing.T) {
	p := newProviderStub(t)
	c := newTestClient(p, &fakeClock{t: time.Now()})

	raw, err := c.CreateOrder(context.Background(), ports.ShippingOrderInput{
		OrderID:   "ord_123",
		OrderDate: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		Recipient: ports.ShippingRecipientInput{
			Name:       "Aslam",
			Line1:      "12 Tailor Street",
			City:       "Kolkata",
			State:      "West Bengal",
			PostalCode: "700001",
			Country:    "India",
			Phone:      "9000000000",
			Email:      "aslam@example.com",
		},
		Items: []ports.ShippingItemInput{
			{Name: "Custom Kurta", SKU: "KUR-01", Units: 2, Price: 1200},
		},
		SubTotal:       2400,
		CashOnDelivery: true,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"order_id":12345,"shipment_id":67890}`, string(raw))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(p.lastOrderRaw, &payload))
	assert.Equal(t, "ord_123", payload["order_id"])
	assert.Equal(t, "2026-03-02 09:30", payload["order_date"])
	assert.Equal(t, "Primary", payload["pickup_location"])
	assert.Equal(t, "COD", payload["payment_method"])
	assert.Equal(t, true, payload["shipping_is_billing"])
	assert.Equal(t, float64(10), payload["length"])
	assert.Equal(t, 0.5, payload["weight"])

	items, ok := payload["order_items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "KUR-01", item["sku"])
	assert.Equal(t, float64(0), item["discount"])
	assert.Equal(t, float64(0), item["tax"])
}

func TestCreateOrder_UpstreamErrorCarriesProviderBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"token":"tok"}`))
	})
	mux.HandleFunc("POST /orders/create/adhoc", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"pincode not serviceable"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Email: "e", Password: "p"}, zerolog.Nop())
	_, err := c.CreateOrder(context.Background(), ports.ShippingOrderInput{OrderID: "ord_9"})

	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, OpCreateOrder, ue.Op)
	assert.Equal(t, http.StatusUnprocessableEntity, ue.Status)
	assert.Contains(t, ue.Detail(), "pincode not serviceable")
}

func TestCreateOrder_AuthFailurePropagates(t *testing.T) {
	p := newProviderStub(t)
	p.loginStatus = http.StatusForbidden
	c := newTestClient(p, &fakeClock{t: time.Now()})

	_, err := c.CreateOrder(context.Background(), ports.ShippingOrderInput{OrderID: "ord_1"})
	require.ErrorIs(t, err, domain.ErrShippingAuth)
}

func TestCheckServiceability_CODSendsCodAmount(t *testing.T) {
	p := newProviderStub(t)
	c := newTestClient(p, &fakeClock{t: time.Now()})

	_, err := c.CheckServiceability(context.Background(), ports.ServiceabilityInput{
		PickupPostcode:   "700001",
		DeliveryPostcode: "110001",
		Weight:           0.8,
		CashOnDelivery:   true,
		Amount:           1500,
	})
	require.NoError(t, err)

	assert.Contains(t, p.lastQuery, "cod=1")
	assert.Contains(t, p.lastQuery, "cod_amount=1500")
	assert.NotContains(t, p.lastQuery, "declared_value")
	// Dimensions defaulted when absent.
	assert.Contains(t, p.lastQuery, "length=10")
	assert.Contains(t, p.lastQuery, "breadth=10")
	assert.Contains(t, p.lastQuery, "height=10")
}

func TestCheckServiceability_PrepaidSendsDeclaredValue(t *testing.T) {
	p := newProviderStub(t)
	c := newTestClient(p, &fakeClock{t: time.Now()})

	_, err := c.CheckServiceability(context.Background(), ports.ServiceabilityInput{
		PickupPostcode:   "700001",
		DeliveryPostcode: "110001",
		Weight:           1.2,
		CashOnDelivery:   false,
		Amount:           900,
		Length:           20,
		Breadth:          15,
		Height:           5,
	})
	require.NoError(t, err)

	assert.Contains(t, p.lastQuery, "cod=0")
	assert.Contains(t, p.lastQuery, "declared_value=900")
	assert.NotContains(t, p.lastQuery, "cod_amount")
	assert.Contains(t, p.lastQuery, "length=20")
}
