package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unavailableCatalog struct {
	*store.MemoryStore
}

func (unavailableCatalog) ListProducts(context.Context) ([]models.Product, error) {
	return nil, errors.New("permission denied")
}

func TestProducts_DefaultsWhenEmpty(t *testing.T) {
	svc := NewCatalogService(store.NewMemoryStore())
	products := svc.Products(context.Background())

	require.Len(t, products, 4)
	assert.Equal(t, "digital", products[0].ID)
	assert.Equal(t, int64(99), products[0].Price)
	assert.True(t, products[0].Best)
	assert.Equal(t, "digital", BestProduct(products).ID)
}

func TestProducts_DefaultsWhenBackendFails(t *testing.T) {
	svc := NewCatalogService(unavailableCatalog{store.NewMemoryStore()})
	products := svc.Products(context.Background())
	assert.Equal(t, models.DefaultProducts(), products)
}

func TestProductCRUD(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(store.NewMemoryStore())

	var req dto.ProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":" Sticker ","price":49,"features":"Waterproof, ,Vinyl"}`), &req))

	p, err := svc.CreateProduct(ctx, &req)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Sticker", p.Title)
	assert.Equal(t, []string{"Waterproof", "Vinyl"}, []string(p.Features))

	products := svc.Products(ctx)
	require.Len(t, products, 1, "stored catalog replaces defaults")
	assert.Equal(t, p.ID, BestProduct(products).ID, "first product when none is best")

	req.Price = 59
	updated, err := svc.UpdateProduct(ctx, p.ID, &req)
	require.NoError(t, err)
	assert.Equal(t, int64(59), updated.Price)

	_, err = svc.UpdateProduct(ctx, "missing", &req)
	assert.ErrorIs(t, err, ErrProductNotFound)

	require.NoError(t, svc.DeleteProduct(ctx, p.ID))
	assert.ErrorIs(t, svc.DeleteProduct(ctx, p.ID), ErrProductNotFound)
}

func TestCreateProduct_Validation(t *testing.T) {
	svc := NewCatalogService(store.NewMemoryStore())
	_, err := svc.CreateProduct(context.Background(), &dto.ProductRequest{Title: "  "})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = svc.CreateProduct(context.Background(), &dto.ProductRequest{Title: "x", Price: -1})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestPromotedAd(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(store.NewMemoryStore())

	_, err := svc.PromotedAd(ctx)
	assert.ErrorIs(t, err, ErrNoActiveAds)

	_, err = svc.CreateAd(ctx, &dto.AdRequest{ImageURL: "https://img/1", LinkURL: "https://l/1", Active: false})
	require.NoError(t, err)
	second, err := svc.CreateAd(ctx, &dto.AdRequest{ImageURL: "https://img/2", LinkURL: "https://l/2", Text: "Helmets", Active: true})
	require.NoError(t, err)
	third, err := svc.CreateAd(ctx, &dto.AdRequest{ImageURL: "https://img/3", LinkURL: "https://l/3", Active: true})
	require.NoError(t, err)

	svc.pick = func(n int) int {
		assert.Equal(t, 2, n, "only active ads are candidates")
		return 1
	}
	ad, err := svc.PromotedAd(ctx)
	require.NoError(t, err)
	assert.Contains(t, []string{second.ID, third.ID}, ad.ID)
	assert.True(t, ad.Active)
}

func TestAdValidationAndMissing(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(store.NewMemoryStore())

	_, err := svc.CreateAd(ctx, &dto.AdRequest{ImageURL: "https://img"})
	assert.ErrorIs(t, err, ErrAdURLsRequired)

	_, err = svc.UpdateAd(ctx, "missing", &dto.AdRequest{ImageURL: "a", LinkURL: "b"})
	assert.ErrorIs(t, err, ErrAdNotFound)
	assert.ErrorIs(t, svc.DeleteAd(ctx, "missing"), ErrAdNotFound)
}
