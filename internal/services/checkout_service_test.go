package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckout(ms *store.MemoryStore) *CheckoutService {
	return NewCheckoutService(NewCatalogService(ms), ms, "rzp_test_key", "INR")
}

func TestDescriptor(t *testing.T) {
	svc := newCheckout(store.NewMemoryStore())

	d, err := svc.Descriptor(context.Background(), "band")
	require.NoError(t, err)
	assert.Equal(t, "rzp_test_key", d.Key)
	assert.Equal(t, int64(29900), d.Amount)
	assert.Equal(t, "INR", d.Currency)
	assert.Equal(t, "RESQR", d.Name)
	assert.Equal(t, "Payment for QR Band", d.Description)
	assert.Equal(t, "#e11d48", d.Theme.Color)
}

func TestDescriptor_UnknownProduct(t *testing.T) {
	_, err := newCheckout(store.NewMemoryStore()).Descriptor(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCheckoutSuccessAndFailure(t *testing.T) {
	ctx := context.Background()
	ms := store.NewMemoryStore()
	svc := newCheckout(ms)

	o, err := svc.Success(ctx, "jane-doe", &dto.CheckoutSuccessRequest{ProductID: "digital", PaymentID: "pay_123"})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusUnverified, o.Status)
	assert.Equal(t, int64(9900), o.AmountMinor)
	assert.Equal(t, "pay_123", o.PaymentID)

	f, err := svc.Failure(ctx, "jane-doe", &dto.CheckoutFailureRequest{ProductID: "digital", Reason: "card declined"})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusFailed, f.Status)

	orders, err := svc.Orders(ctx, "jane-doe")
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	others, err := svc.Orders(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, others)
}
