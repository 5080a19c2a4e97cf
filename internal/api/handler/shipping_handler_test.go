package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/aslamtailor/storefront-api/internal/core/domain"
	"github.com/aslamtailor/storefront-api/internal/core/ports"
	"github.com/aslamtailor/storefront-api/internal/infrastructure/shiprocket"
)

type stubShippingService struct {
	loginFn func(ctx context.Context) (string, error)
	relayFn func(ctx context.Context, input ports.ShippingOrderInput) (json.RawMessage, error)
	checkFn func(ctx context.Context, input ports.ServiceabilityInput) (json.RawMessage, error)
}

func (s *stubShippingService) Login(ctx context.Context) (string, error) {
	return s.loginFn(ctx)
}

func (s *stubShippingService) RelayOrder(ctx context.Context, input ports.ShippingOrderInput) (json.RawMessage, error) {
	return s.relayFn(ctx, input)
}

func (s *stubShippingService) CheckCourier(ctx context.Context, input ports.ServiceabilityInput) (json.RawMessage, error) {
	return s.checkFn(ctx, input)
}

const validRelayOrder = `{
	"order_id": "ord_1",
	"order_date": "2026-03-05T15:00:00Z",
	"recipient": {
		"name": "Asha Rao",
		"address": "12 MG Road",
		"city": "Bengaluru",
		"state": "Karnataka",
		"postal_code": "560001",
		"phone": "9876543210",
		"email": "asha@example.com"
	},
	"items": [{"name": "Linen kurta", "sku": "LK-1", "quantity": 2, "price": 1499}],
	"sub_total": 2998,
	"cod": true
}`

func TestShippingHandler_Login_ReturnsToken(t *testing.T) {
	e := newTestEcho()
	h := NewShippingHandler(&stubShippingService{
		loginFn: func(ctx context.Context) (string, error) { return "tok-1", nil },
	})

	req := httptest.NewRequest(http.MethodPost, "/login-shiprocket", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok-1" || resp["message"] == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestShippingHandler_Login_Failure(t *testing.T) {
	e := newTestEcho()
	h := NewShippingHandler(&stubShippingService{
		loginFn: func(ctx context.Context) (string, error) { return "", domain.ErrShippingAuth },
	})

	req := httptest.NewRequest(http.MethodPost, "/login-shiprocket", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestShippingHandler_CreateOrder_PassesProviderBodyThrough(t *testing.T) {
	e := newTestEcho()
	providerBody := `{"order_id":123,"shipment_id":456,"status":"NEW"}`

	h := NewShippingHandler(&stubShippingService{
		relayFn: func(ctx context.Context, input ports.ShippingOrderInput) (json.RawMessage, error) {
			if input.OrderID != "ord_1" {
				t.Fatalf("unexpected order id: %s", input.OrderID)
			}
			if len(input.Items) != 1 || input.Items[0].Units != 2 {
				t.Fatalf("items not mapped: %+v", input.Items)
			}
			if !input.CashOnDelivery {
				t.Fatalf("cod flag lost")
			}
			return json.RawMessage(providerBody), nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/create-order", strings.NewReader(validRelayOrder))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateOrder(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != providerBody {
		t.Fatalf("provider body altered: %s", rec.Body.String())
	}
}

func TestShippingHandler_CreateOrder_UpstreamFailure(t *testing.T) {
	e := newTestEcho()
	h := NewShippingHandler(&stubShippingService{
		relayFn: func(ctx context.Context, input ports.ShippingOrderInput) (json.RawMessage, error) {
			return nil, &shiprocket.UpstreamError{
				Op:      "create_order",
				Status:  http.StatusBadRequest,
				Details: `{"message":"pickup location not found"}`,
			}
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/create-order", strings.NewReader(validRelayOrder))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateOrder(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] == "" {
		t.Fatalf("missing message: %+v", resp)
	}
	if !strings.Contains(resp["details"], "pickup location not found") {
		t.Fatalf("provider details not surfaced: %+v", resp)
	}
}

func TestShippingHandler_CreateOrder_Duplicate(t *testing.T) {
	e := newTestEcho()
	h := NewShippingHandler(&stubShippingService{
		relayFn: func(ctx context.Context, input ports.ShippingOrderInput) (json.RawMessage, error) {
			return nil, domain.ErrDuplicateRelay
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/create-order", strings.NewReader(validRelayOrder))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateOrder(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestShippingHandler_CreateOrder_MissingItems(t *testing.T) {
	e := newTestEcho()
	h := NewShippingHandler(&stubShippingService{
		relayFn: func(ctx context.Context, input ports.ShippingOrderInput) (json.RawMessage, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	body := strings.NewReader(`{"order_id":"ord_2","order_date":"2026-03-05T15:00:00Z","sub_total":100}`)
	req := httptest.NewRequest(http.MethodPost, "/create-order", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = h.CreateOrder(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestShippingHandler_CheckCourier_PassesProviderBodyThrough(t *testing.T) {
	e := newTestEcho()
	providerBody := `{"status":200,"data":{"available_courier_companies":[]}}`

	h := NewShippingHandler(&stubShippingService{
		checkFn: func(ctx context.Context, input ports.ServiceabilityInput) (json.RawMessage, error) {
			if input.PickupPostcode != "560001" || input.DeliveryPostcode != "110001" {
				t.Fatalf("postcodes not mapped: %+v", input)
			}
			if input.CashOnDelivery || input.Amount != 2500 {
				t.Fatalf("amount fields not mapped: %+v", input)
			}
			return json.RawMessage(providerBody), nil
		},
	})

	body := strings.NewReader(`{"pickup_postcode":"560001","delivery_postcode":"110001","weight":0.5,"cod":false,"amount":2500}`)
	req := httptest.NewRequest(http.MethodPost, "/check-courier", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CheckCourier(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != providerBody {
		t.Fatalf("provider body altered: %s", rec.Body.String())
	}
}

func TestShippingHandler_CheckCourier_TransportFailure(t *testing.T) {
	e := newTestEcho()
	h := NewShippingHandler(&stubShippingService{
		checkFn: func(ctx context.Context, input ports.ServiceabilityInput) (json.RawMessage, error) {
			return nil, errors.New("connection refused")
		},
	})

	body := strings.NewReader(`{"pickup_postcode":"560001","delivery_postcode":"110001","weight":0.5}`)
	req := httptest.NewRequest(http.MethodPost, "/check-courier", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CheckCourier(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !strings.Contains(resp["details"], "connection refused") {
		t.Fatalf("transport error not surfaced: %+v", resp)
	}
}
