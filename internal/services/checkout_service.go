package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/store"
)

const (
	CheckoutName      = "RESQR"
	CheckoutTheme     = "#e11d48"
	CheckoutLogo      = "/logo.png"
	CheckoutSuccessTo = "/success"
)

// CheckoutService builds hosted checkout descriptors and records the
// client-reported outcome. Nothing here verifies a payment with the
// provider.
type CheckoutService struct {
	catalog  *CatalogService
	orders   store.OrderStore
	keyID    string
	currency string
}

func NewCheckoutService(catalog *CatalogService, orders store.OrderStore, keyID, currency string) *CheckoutService {
	return &CheckoutService{catalog: catalog, orders: orders, keyID: keyID, currency: currency}
}

// Descriptor prices productID in minor units (price × 100).
func (s *CheckoutService) Descriptor(ctx context.Context, productID string) (*dto.CheckoutDescriptor, error) {
	p, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &dto.CheckoutDescriptor{
		Key:         s.keyID,
		Amount:      p.Price * 100,
		Currency:    s.currency,
		Name:        CheckoutName,
		Description: "Payment for " + p.Title,
		Image:       CheckoutLogo,
		ProductID:   p.ID,
		Theme:       dto.CheckoutTheme{Color: CheckoutTheme},
	}, nil
}

func (s *CheckoutService) newOrder(ctx context.Context, slug, productID string) (*models.Order, error) {
	p, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &models.Order{
		Slug:        slug,
		ProductID:   p.ID,
		Title:       p.Title,
		AmountMinor: p.Price * 100,
		Currency:    s.currency,
	}, nil
}

// Success records an unverified order for the active slug.
func (s *CheckoutService) Success(ctx context.Context, slug string, req *dto.CheckoutSuccessRequest) (*models.Order, error) {
	o, err := s.newOrder(ctx, slug, req.ProductID)
	if err != nil {
		return nil, err
	}
	o.PaymentID = req.PaymentID
	o.Status = models.OrderStatusUnverified
	if err := s.orders.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("record order: %w", err)
	}
	slog.Info("checkout completed", "slug", slug, "product_id", o.ProductID, "payment_id", o.PaymentID, "action", "checkout_success")
	return o, nil
}

// Failure records a failed attempt so it shows up in the order history.
func (s *CheckoutService) Failure(ctx context.Context, slug string, req *dto.CheckoutFailureRequest) (*models.Order, error) {
	o, err := s.newOrder(ctx, slug, req.ProductID)
	if err != nil {
		return nil, err
	}
	o.Status = models.OrderStatusFailed
	o.Reason = req.Reason
	if err := s.orders.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("record failed order: %w", err)
	}
	slog.Warn("checkout failed", "slug", slug, "product_id", o.ProductID, "reason", req.Reason, "action", "checkout_failure")
	return o, nil
}

func (s *CheckoutService) Orders(ctx context.Context, slug string) ([]models.Order, error) {
	return s.orders.ListOrders(ctx, slug)
}
