package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/store"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrAdNotFound       = errors.New("ad not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrInvalidPrice     = errors.New("price must not be negative")
	ErrAdURLsRequired   = errors.New("imageUrl and linkUrl are required")
	ErrNoActiveAds      = errors.New("no active ads")
)

type CatalogService struct {
	store store.CatalogStore
	pick  func(n int) int
}

func NewCatalogService(cs store.CatalogStore) *CatalogService {
	return &CatalogService{store: cs, pick: rand.IntN}
}

// Products returns the stored catalog, or the built-in defaults when the
// catalog is empty or cannot be read.
func (s *CatalogService) Products(ctx context.Context) []models.Product {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		slog.Warn("product catalog unavailable, serving defaults", "error", err)
		return models.DefaultProducts()
	}
	if len(products) == 0 {
		return models.DefaultProducts()
	}
	return products
}

// Product finds id in the same list Products serves.
func (s *CatalogService) Product(ctx context.Context, id string) (*models.Product, error) {
	for _, p := range s.Products(ctx) {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

// BestProduct is the product preselected at checkout.
func BestProduct(products []models.Product) *models.Product {
	for i := range products {
		if products[i].Best {
			return &products[i]
		}
	}
	if len(products) == 0 {
		return nil
	}
	return &products[0]
}

func productFromRequest(req *dto.ProductRequest) (*models.Product, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if req.Price < 0 {
		return nil, ErrInvalidPrice
	}
	features := []string(req.Features)
	if features == nil {
		features = []string{}
	}
	return &models.Product{Title: title, Price: req.Price, Features: features, Best: req.Best}, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req *dto.ProductRequest) (*models.Product, error) {
	p, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	slog.Info("product created", "product_id", p.ID, "action", "create_product")
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, req *dto.ProductRequest) (*models.Product, error) {
	p, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}
	p.ID = id
	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return nil, mapNotFound(err, ErrProductNotFound)
	}
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return mapNotFound(err, ErrProductNotFound)
	}
	slog.Info("product deleted", "product_id", id, "action", "delete_product")
	return nil
}

func (s *CatalogService) Ads(ctx context.Context) ([]models.Ad, error) {
	return s.store.ListAds(ctx)
}

// PromotedAd picks one active ad at random.
func (s *CatalogService) PromotedAd(ctx context.Context) (*models.Ad, error) {
	ads, err := s.store.ListAds(ctx)
	if err != nil {
		return nil, err
	}
	var active []models.Ad
	for _, ad := range ads {
		if ad.Active {
			active = append(active, ad)
		}
	}
	if len(active) == 0 {
		return nil, ErrNoActiveAds
	}
	ad := active[s.pick(len(active))]
	return &ad, nil
}

func adFromRequest(req *dto.AdRequest) (*models.Ad, error) {
	ad := &models.Ad{
		ImageURL: strings.TrimSpace(req.ImageURL),
		LinkURL:  strings.TrimSpace(req.LinkURL),
		Text:     req.Text,
		Active:   req.Active,
	}
	if ad.ImageURL == "" || ad.LinkURL == "" {
		return nil, ErrAdURLsRequired
	}
	return ad, nil
}

func (s *CatalogService) CreateAd(ctx context.Context, req *dto.AdRequest) (*models.Ad, error) {
	ad, err := adFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateAd(ctx, ad); err != nil {
		return nil, err
	}
	slog.Info("ad created", "ad_id", ad.ID, "action", "create_ad")
	return ad, nil
}

func (s *CatalogService) UpdateAd(ctx context.Context, id string, req *dto.AdRequest) (*models.Ad, error) {
	ad, err := adFromRequest(req)
	if err != nil {
		return nil, err
	}
	ad.ID = id
	if err := s.store.UpdateAd(ctx, ad); err != nil {
		return nil, mapNotFound(err, ErrAdNotFound)
	}
	return ad, nil
}

func (s *CatalogService) DeleteAd(ctx context.Context, id string) error {
	if err := s.store.DeleteAd(ctx, id); err != nil {
		return mapNotFound(err, ErrAdNotFound)
	}
	slog.Info("ad deleted", "ad_id", id, "action", "delete_ad")
	return nil
}

func mapNotFound(err, target error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %w", target, err)
	}
	return err
}
