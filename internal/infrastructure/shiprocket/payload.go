package shiprocket

import "github.com/aslamtailor/storefront-api/internal/core/ports"

// orderDateFormat is the timestamp layout the provider expects.
const orderDateFormat = "2006-01-02 15:04"

type orderItemPayload struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Units        int     `json:"units"`
	SellingPrice float64 `json:"selling_price"`
	Discount     float64 `json:"discount"`
	Tax          float64 `json:"tax"`
}

// orderPayload mirrors the provider's adhoc order schema. Billing and
// shipping are identical here since a storefront order has one recipient.
type orderPayload struct {
	OrderID           string             `json:"order_id"`
	OrderDate         string             `json:"order_date"`
	PickupLocation    string             `json:"pickup_location"`
	BillingName       string             `json:"billing_customer_name"`
	BillingAddress    string             `json:"billing_address"`
	BillingAddress2   string             `json:"billing_address_2,omitempty"`
	BillingCity       string             `json:"billing_city"`
	BillingState      string             `json:"billing_state"`
	BillingPincode    string             `json:"billing_pincode"`
	BillingCountry    string             `json:"billing_country"`
	BillingPhone      string             `json:"billing_phone"`
	BillingEmail      string             `json:"billing_email"`
	ShippingIsBilling bool               `json:"shipping_is_billing"`
	OrderItems        []orderItemPayload `json:"order_items"`
	PaymentMethod     string             `json:"payment_method"`
	SubTotal          float64            `json:"sub_total"`
	Length            float64            `json:"length"`
	Breadth           float64            `json:"breadth"`
	Height            float64            `json:"height"`
	Weight            float64            `json:"weight"`
}

// buildOrderPayload maps a relay input deterministically onto the provider
// schema: address fields 1:1, discount and tax zeroed, fixed placeholder
// package dimensions.
func buildOrderPayload(input ports.ShippingOrderInput, pickupLocation string) orderPayload {
	items := make([]orderItemPayload, len(input.Items))
	for i, it := range input.Items {
		items[i] = orderItemPayload{
			Name:         it.Name,
			SKU:          it.SKU,
			Units:        it.Units,
			SellingPrice: it.Price,
		}
	}

	method := "Prepaid"
	if input.CashOnDelivery {
		method = "COD"
	}

	return orderPayload{
		OrderID:           input.OrderID,
		OrderDate:         input.OrderDate.Format(orderDateFormat),
		PickupLocation:    pickupLocation,
		BillingName:       input.Recipient.Name,
		BillingAddress:    input.Recipient.Line1,
		BillingAddress2:   input.Recipient.Line2,
		BillingCity:       input.Recipient.City,
		BillingState:      input.Recipient.State,
		BillingPincode:    input.Recipient.PostalCode,
		BillingCountry:    input.Recipient.Country,
		BillingPhone:      input.Recipient.Phone,
		BillingEmail:      input.Recipient.Email,
		ShippingIsBilling: true,
		OrderItems:        items,
		PaymentMethod:     method,
		SubTotal:          input.SubTotal,
		Length:            defaultDimensionCm,
		Breadth:           defaultDimensionCm,
		Height:            defaultDimensionCm,
		Weight:            defaultWeightKg,
	}
}
