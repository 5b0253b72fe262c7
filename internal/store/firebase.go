package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/models"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

const (
	profilesPath = "profiles"
	productsPath = "config/products"
	adsPath      = "config/ads"
	ordersPath   = "orders"
	scansPath    = "scans"
)

// OpenFirebase connects to a Realtime Database. Without a credentials file
// application default credentials are used.
func OpenFirebase(ctx context.Context, databaseURL, credentialsFile string) (*db.Client, error) {
	conf := &firebase.Config{DatabaseURL: databaseURL}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	} else {
		slog.Info("FIREBASE_CREDENTIALS_FILE not set, using application default credentials")
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase database: %w", err)
	}
	return client, nil
}

// FirebaseStore keeps the original realtime database layout:
// profiles/{slug}, config/products/{id}, config/ads/{id}. The Admin SDK has
// no change listeners, so Subscribe polls.
type FirebaseStore struct {
	client       *db.Client
	pollInterval time.Duration
}

func NewFirebaseStore(client *db.Client, pollInterval time.Duration) *FirebaseStore {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}
	return &FirebaseStore{client: client, pollInterval: pollInterval}
}

func (s *FirebaseStore) Name() string { return "firebase" }

func (s *FirebaseStore) Close() error { return nil }

func (s *FirebaseStore) Ping(ctx context.Context) error {
	var v interface{}
	return s.client.NewRef(profilesPath).GetShallow(ctx, &v)
}

func (s *FirebaseStore) ref(parts ...string) *db.Ref {
	return s.client.NewRef(strings.Join(parts, "/"))
}

func (s *FirebaseStore) Write(ctx context.Context, key string, p models.Profile) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := s.ref(profilesPath, key).Set(ctx, p); err != nil {
		return fmt.Errorf("write profile %s: %w", key, err)
	}
	return nil
}

func (s *FirebaseStore) ReadOnce(ctx context.Context, key string) (*models.Profile, error) {
	if key == "" {
		return nil, ErrNotFound
	}
	var p *models.Profile
	if err := s.ref(profilesPath, key).Get(ctx, &p); err != nil {
		return nil, fmt.Errorf("read profile %s: %w", key, err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *FirebaseStore) Subscribe(ctx context.Context, key string, fn func(*models.Profile)) (Subscription, error) {
	current, err := s.ReadOnce(ctx, key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	fn(current)

	pollCtx, cancel := context.WithCancel(ctx)
	go s.poll(pollCtx, key, current, fn)

	return &subscription{cancel: cancel}, nil
}

func (s *FirebaseStore) poll(ctx context.Context, key string, last *models.Profile, fn func(*models.Profile)) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			next, err := s.ReadOnce(ctx, key)
			if err != nil && !errors.Is(err, ErrNotFound) {
				if ctx.Err() == nil {
					slog.Warn("profile poll failed", "slug", key, "error", err)
				}
				continue
			}
			if sameProfile(last, next) {
				continue
			}
			last = next
			fn(cloneProfile(next))
		}
	}
}

func sameProfile(a, b *models.Profile) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *FirebaseStore) List(ctx context.Context) ([]ProfileEntry, error) {
	var m map[string]models.Profile
	if err := s.ref(profilesPath).Get(ctx, &m); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	entries := make([]ProfileEntry, 0, len(m))
	for k, p := range m {
		entries = append(entries, ProfileEntry{Slug: k, Profile: p})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Slug < entries[j].Slug })
	return entries, nil
}

func (s *FirebaseStore) Delete(ctx context.Context, key string) error {
	if _, err := s.ReadOnce(ctx, key); err != nil {
		return err
	}
	if err := s.ref(profilesPath, key).Delete(ctx); err != nil {
		return fmt.Errorf("delete profile %s: %w", key, err)
	}
	return nil
}

func (s *FirebaseStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	var m map[string]models.Product
	if err := s.ref(productsPath).Get(ctx, &m); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]models.Product, 0, len(m))
	for id, p := range m {
		p.ID = id
		products = append(products, p)
	}
	// Push keys sort chronologically.
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (s *FirebaseStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p *models.Product
	if err := s.ref(productsPath, id).Get(ctx, &p); err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	if p == nil {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	p.ID = id
	return p, nil
}

func (s *FirebaseStore) CreateProduct(ctx context.Context, p *models.Product) error {
	child, err := s.ref(productsPath).Push(ctx, nil)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	p.ID = child.Key
	if err := child.Set(ctx, p); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (s *FirebaseStore) UpdateProduct(ctx context.Context, p *models.Product) error {
	if _, err := s.GetProduct(ctx, p.ID); err != nil {
		return err
	}
	if err := s.ref(productsPath, p.ID).Set(ctx, p); err != nil {
		return fmt.Errorf("update product %s: %w", p.ID, err)
	}
	return nil
}

func (s *FirebaseStore) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.ref(productsPath, id).Delete(ctx); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}

func (s *FirebaseStore) ListAds(ctx context.Context) ([]models.Ad, error) {
	var m map[string]models.Ad
	if err := s.ref(adsPath).Get(ctx, &m); err != nil {
		return nil, fmt.Errorf("list ads: %w", err)
	}

	ads := make([]models.Ad, 0, len(m))
	for id, ad := range m {
		ad.ID = id
		ads = append(ads, ad)
	}
	sort.Slice(ads, func(i, j int) bool { return ads[i].ID < ads[j].ID })
	return ads, nil
}

func (s *FirebaseStore) getAd(ctx context.Context, id string) error {
	var ad *models.Ad
	if err := s.ref(adsPath, id).Get(ctx, &ad); err != nil {
		return fmt.Errorf("get ad %s: %w", id, err)
	}
	if ad == nil {
		return fmt.Errorf("ad %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *FirebaseStore) CreateAd(ctx context.Context, ad *models.Ad) error {
	child, err := s.ref(adsPath).Push(ctx, nil)
	if err != nil {
		return fmt.Errorf("create ad: %w", err)
	}
	ad.ID = child.Key
	if err := child.Set(ctx, ad); err != nil {
		return fmt.Errorf("create ad: %w", err)
	}
	return nil
}

func (s *FirebaseStore) UpdateAd(ctx context.Context, ad *models.Ad) error {
	if err := s.getAd(ctx, ad.ID); err != nil {
		return err
	}
	if err := s.ref(adsPath, ad.ID).Set(ctx, ad); err != nil {
		return fmt.Errorf("update ad %s: %w", ad.ID, err)
	}
	return nil
}

func (s *FirebaseStore) DeleteAd(ctx context.Context, id string) error {
	if err := s.getAd(ctx, id); err != nil {
		return err
	}
	if err := s.ref(adsPath, id).Delete(ctx); err != nil {
		return fmt.Errorf("delete ad %s: %w", id, err)
	}
	return nil
}

func (s *FirebaseStore) CreateOrder(ctx context.Context, o *models.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.CreatedAt = time.Now().UTC()
	if err := s.ref(ordersPath, o.ID.String()).Set(ctx, o); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (s *FirebaseStore) ListOrders(ctx context.Context, slug string) ([]models.Order, error) {
	var m map[string]models.Order
	if err := s.ref(ordersPath).Get(ctx, &m); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	var orders []models.Order
	for _, o := range m {
		if slug == "" || o.Slug == slug {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (s *FirebaseStore) RecordScan(ctx context.Context, e *models.ScanEvent) error {
	if e.Slug == "" {
		return ErrEmptyKey
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if err := s.ref(scansPath, e.Slug, e.ID.String()).Set(ctx, e); err != nil {
		return fmt.Errorf("record scan: %w", err)
	}
	return nil
}

func (s *FirebaseStore) RecentScans(ctx context.Context, slug string, limit int) ([]models.ScanEvent, error) {
	if slug == "" {
		return nil, nil
	}
	var m map[string]models.ScanEvent
	if err := s.ref(scansPath, slug).Get(ctx, &m); err != nil {
		return nil, fmt.Errorf("recent scans for %s: %w", slug, err)
	}

	scans := make([]models.ScanEvent, 0, len(m))
	for _, e := range m {
		scans = append(scans, e)
	}
	sort.Slice(scans, func(i, j int) bool { return scans[i].CreatedAt.After(scans[j].CreatedAt) })
	if limit > 0 && len(scans) > limit {
		scans = scans[:limit]
	}
	return scans, nil
}
