// Package store persists profiles, the product/ad catalog, orders and scan
// events. Profiles are keyed by slug; there is no transactional guarantee
// across keys and no validation beyond rejecting an empty key.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrEmptyKey = errors.New("empty record key")
)

// ProfileEntry pairs a stored profile with its key.
type ProfileEntry struct {
	Slug    string         `json:"slug"`
	Profile models.Profile `json:"profile"`
}

// Subscription is the handle returned by ProfileStore.Subscribe.
type Subscription interface {
	Unsubscribe()
}

// ProfileStore is the keyed record store behind the wizard, the dashboard and
// the emergency page.
type ProfileStore interface {
	// Write replaces the record at key. Last writer wins.
	Write(ctx context.Context, key string, p models.Profile) error
	// ReadOnce returns ErrNotFound when nothing is stored at key.
	ReadOnce(ctx context.Context, key string) (*models.Profile, error)
	// Subscribe calls fn with the current record (nil when absent) and again
	// after every change, until Unsubscribe is called or ctx is done.
	Subscribe(ctx context.Context, key string, fn func(*models.Profile)) (Subscription, error)
	List(ctx context.Context) ([]ProfileEntry, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

type CatalogStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error

	ListAds(ctx context.Context) ([]models.Ad, error)
	CreateAd(ctx context.Context, ad *models.Ad) error
	UpdateAd(ctx context.Context, ad *models.Ad) error
	DeleteAd(ctx context.Context, id string) error
}

type OrderStore interface {
	CreateOrder(ctx context.Context, o *models.Order) error
	ListOrders(ctx context.Context, slug string) ([]models.Order, error)
}

type ScanStore interface {
	RecordScan(ctx context.Context, e *models.ScanEvent) error
	RecentScans(ctx context.Context, slug string, limit int) ([]models.ScanEvent, error)
}

// Backend bundles every collection a single backend serves.
type Backend interface {
	ProfileStore
	CatalogStore
	OrderStore
	ScanStore
	Name() string
	Close() error
}

type subscription struct {
	once   sync.Once
	cancel func()
}

func (s *subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

// bindContext makes sub end when ctx is done.
func bindContext(ctx context.Context, sub *subscription) *subscription {
	stop := context.AfterFunc(ctx, sub.Unsubscribe)
	cancel := sub.cancel
	sub.cancel = func() {
		stop()
		cancel()
	}
	return sub
}
