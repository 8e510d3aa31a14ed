package models

import (
	"encoding/json"
	"errors"
	"time"
)

type OrderItem struct {
	ProductID int64 `json:"productId"`
	Qty       int   `json:"qty"`
}

// OrderRequest is the order payload posted to the backend.
type OrderRequest struct {
	CompanyID     int64         `json:"companyId"`
	Phone         string        `json:"phone"`
	DeliveryLat   float64       `json:"deliveryLat"`
	DeliveryLng   float64       `json:"deliveryLng"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Items         []OrderItem   `json:"items"`
}

// OrderResult is the backend's response to a created order.
type OrderResult struct {
	ID            int64  `json:"id"`
	TotalAmount   int64  `json:"totalAmount"`
	PaymentStatus string `json:"paymentStatus"`
}

// UnmarshalJSON normalizes the order id at the boundary: older backend
// builds return it as "orderId" instead of "id".
func (r *OrderResult) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID            *int64 `json:"id"`
		OrderID       *int64 `json:"orderId"`
		TotalAmount   int64  `json:"totalAmount"`
		PaymentStatus string `json:"paymentStatus"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch {
	case raw.ID != nil:
		r.ID = *raw.ID
	case raw.OrderID != nil:
		r.ID = *raw.OrderID
	default:
		return errors.New("order response missing id")
	}
	r.TotalAmount = raw.TotalAmount
	r.PaymentStatus = raw.PaymentStatus
	return nil
}

// Order is the admin-facing order record used for reporting.
type Order struct {
	ID          int64     `json:"id"`
	TotalAmount int64     `json:"totalAmount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UnmarshalJSON accepts createdAt either as an RFC3339 string or as unix
// milliseconds; an unparsable value leaves CreatedAt zero rather than
// failing the whole listing.
func (o *Order) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID          int64           `json:"id"`
		TotalAmount int64           `json:"totalAmount"`
		Status      string          `json:"status"`
		CreatedAt   json.RawMessage `json:"createdAt"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	o.ID = raw.ID
	o.TotalAmount = raw.TotalAmount
	o.Status = raw.Status
	o.CreatedAt = time.Time{}

	if len(raw.CreatedAt) != 0 {
		var millis int64
		if err := json.Unmarshal(raw.CreatedAt, &millis); err == nil {
			o.CreatedAt = time.UnixMilli(millis)
			return nil
		}
		var s string
		if err := json.Unmarshal(raw.CreatedAt, &s); err == nil {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				o.CreatedAt = t
			}
		}
	}
	return nil
}
