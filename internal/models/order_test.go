package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderResultNormalizesID(t *testing.T) {
	var r OrderResult
	require.NoError(t, json.Unmarshal([]byte(`{"id": 42, "totalAmount": 25000, "paymentStatus": "PENDING"}`), &r))
	assert.Equal(t, int64(42), r.ID)

	// older backend builds answer with orderId
	require.NoError(t, json.Unmarshal([]byte(`{"orderId": 43, "totalAmount": 100, "paymentStatus": "PAID"}`), &r))
	assert.Equal(t, int64(43), r.ID)
	assert.Equal(t, PaymentStatusPaid, r.PaymentStatus)

	err := json.Unmarshal([]byte(`{"totalAmount": 100}`), &r)
	assert.EqualError(t, err, "order response missing id")
}

func TestOrderCreatedAtShapes(t *testing.T) {
	var o Order
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "createdAt": "2026-08-20T10:00:00Z"}`), &o))
	assert.Equal(t, time.Date(2026, time.August, 20, 10, 0, 0, 0, time.UTC), o.CreatedAt)

	require.NoError(t, json.Unmarshal([]byte(`{"id": 2, "createdAt": 1755684000000}`), &o))
	assert.Equal(t, time.UnixMilli(1755684000000), o.CreatedAt)

	// an unparsable timestamp degrades to zero instead of failing the listing
	require.NoError(t, json.Unmarshal([]byte(`{"id": 3, "createdAt": "yesterday"}`), &o))
	assert.True(t, o.CreatedAt.IsZero())
}

func TestPaymentMethodValid(t *testing.T) {
	assert.True(t, PaymentCash.Valid())
	assert.True(t, PaymentOnline.Valid())
	assert.False(t, PaymentMethod("CRYPTO").Valid())
	assert.False(t, PaymentMethod("").Valid())
}
