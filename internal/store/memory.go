package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/models"
	"github.com/google/uuid"
)

// MemoryStore keeps every collection in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]models.Profile
	products map[string]models.Product
	ads      map[string]models.Ad
	orders   []models.Order
	scans    []models.ScanEvent
	broker   *Broker
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]models.Profile),
		products: make(map[string]models.Product),
		ads:      make(map[string]models.Ad),
		broker:   NewBroker(),
		now:      time.Now,
	}
}

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Write(_ context.Context, key string, p models.Profile) error {
	if key == "" {
		return ErrEmptyKey
	}
	// keys may alias request buffers
	key = strings.Clone(key)
	s.mu.Lock()
	s.profiles[key] = p
	s.mu.Unlock()

	s.broker.Publish(key, &p)
	return nil
}

func (s *MemoryStore) ReadOnce(_ context.Context, key string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) Subscribe(ctx context.Context, key string, fn func(*models.Profile)) (Subscription, error) {
	sub := s.broker.subscribe(key, fn)

	current, err := s.ReadOnce(ctx, key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		sub.Unsubscribe()
		return nil, err
	}
	fn(current)

	return bindContext(ctx, sub), nil
}

func (s *MemoryStore) List(context.Context) ([]ProfileEntry, error) {
	s.mu.RLock()
	entries := make([]ProfileEntry, 0, len(s.profiles))
	for k, p := range s.profiles {
		entries = append(entries, ProfileEntry{Slug: k, Profile: p})
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].Slug < entries[j].Slug })
	return entries, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	_, ok := s.profiles[key]
	delete(s.profiles, key)
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	s.broker.Publish(key, nil)
	return nil
}

func (s *MemoryStore) ListProducts(context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return createdFirst(products[i].CreatedAt, products[j].CreatedAt, products[i].ID, products[j].ID) })
	return products, nil
}

func (s *MemoryStore) GetProduct(_ context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) CreateProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt
	s.products[p.ID] = *p
	return nil
}

func (s *MemoryStore) UpdateProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.products[p.ID]
	if !ok {
		return fmt.Errorf("product %s: %w", p.ID, ErrNotFound)
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = s.now()
	s.products[p.ID] = *p
	return nil
}

func (s *MemoryStore) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	delete(s.products, id)
	return nil
}

func (s *MemoryStore) ListAds(context.Context) ([]models.Ad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ads := make([]models.Ad, 0, len(s.ads))
	for _, ad := range s.ads {
		ads = append(ads, ad)
	}
	sort.Slice(ads, func(i, j int) bool { return createdFirst(ads[i].CreatedAt, ads[j].CreatedAt, ads[i].ID, ads[j].ID) })
	return ads, nil
}

func (s *MemoryStore) CreateAd(_ context.Context, ad *models.Ad) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ad.ID == "" {
		ad.ID = uuid.NewString()
	}
	ad.CreatedAt = s.now()
	ad.UpdatedAt = ad.CreatedAt
	s.ads[ad.ID] = *ad
	return nil
}

func (s *MemoryStore) UpdateAd(_ context.Context, ad *models.Ad) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.ads[ad.ID]
	if !ok {
		return fmt.Errorf("ad %s: %w", ad.ID, ErrNotFound)
	}
	ad.CreatedAt = existing.CreatedAt
	ad.UpdatedAt = s.now()
	s.ads[ad.ID] = *ad
	return nil
}

func (s *MemoryStore) DeleteAd(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ads[id]; !ok {
		return fmt.Errorf("ad %s: %w", id, ErrNotFound)
	}
	delete(s.ads, id)
	return nil
}

func (s *MemoryStore) CreateOrder(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.CreatedAt = s.now()
	o.Slug = strings.Clone(o.Slug)
	s.orders = append(s.orders, *o)
	return nil
}

func (s *MemoryStore) ListOrders(_ context.Context, slug string) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var orders []models.Order
	for i := len(s.orders) - 1; i >= 0; i-- {
		if o := s.orders[i]; slug == "" || o.Slug == slug {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (s *MemoryStore) RecordScan(_ context.Context, e *models.ScanEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	e.Slug = strings.Clone(e.Slug)
	e.IP = strings.Clone(e.IP)
	e.UserAgent = strings.Clone(e.UserAgent)
	s.scans = append(s.scans, *e)
	return nil
}

func (s *MemoryStore) RecentScans(_ context.Context, slug string, limit int) ([]models.ScanEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var scans []models.ScanEvent
	for i := len(s.scans) - 1; i >= 0 && (limit <= 0 || len(scans) < limit); i-- {
		if s.scans[i].Slug == slug {
			scans = append(scans, s.scans[i])
		}
	}
	return scans, nil
}

func createdFirst(a, b time.Time, aID, bID string) bool {
	if a.Equal(b) {
		return aID < bID
	}
	return a.Before(b)
}
