package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type profileRow struct {
	Slug           string `gorm:"size:255;primaryKey"`
	models.Profile `gorm:"embedded"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (profileRow) TableName() string {
	return "profiles"
}

var profileColumns = []string{
	"name", "blood_group", "dob", "phone",
	"allergies", "medications", "medical_conditions",
	"emergency_contact_name", "emergency_contact_phone", "emergency_contact_relation",
	"updated_at",
}

// GormStore serves every collection from a SQL database. Profile changes are
// published to an in-process broker, so subscribers only see writes made
// through this instance.
type GormStore struct {
	db     *gorm.DB
	broker *Broker
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, broker: NewBroker()}
}

// Models returns the tables this store needs migrated.
func (s *GormStore) Models() []interface{} {
	return []interface{}{
		&profileRow{},
		&models.Product{},
		&models.Ad{},
		&models.Order{},
		&models.ScanEvent{},
	}
}

func (s *GormStore) Name() string { return "postgres" }

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Write(ctx context.Context, key string, p models.Profile) error {
	if key == "" {
		return ErrEmptyKey
	}

	row := profileRow{Slug: key, Profile: p}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns(profileColumns),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("write profile %s: %w", key, err)
	}

	s.broker.Publish(key, &p)
	return nil
}

func (s *GormStore) ReadOnce(ctx context.Context, key string) (*models.Profile, error) {
	var row profileRow
	if err := s.db.WithContext(ctx).Where("slug = ?", key).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read profile %s: %w", key, err)
	}
	return &row.Profile, nil
}

func (s *GormStore) Subscribe(ctx context.Context, key string, fn func(*models.Profile)) (Subscription, error) {
	sub := s.broker.subscribe(key, fn)

	current, err := s.ReadOnce(ctx, key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		sub.Unsubscribe()
		return nil, err
	}
	fn(current)

	return bindContext(ctx, sub), nil
}

func (s *GormStore) List(ctx context.Context) ([]ProfileEntry, error) {
	var rows []profileRow
	if err := s.db.WithContext(ctx).Order("slug ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	entries := make([]ProfileEntry, len(rows))
	for i, r := range rows {
		entries[i] = ProfileEntry{Slug: r.Slug, Profile: r.Profile}
	}
	return entries, nil
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	result := s.db.WithContext(ctx).Where("slug = ?", key).Delete(&profileRow{})
	if result.Error != nil {
		return fmt.Errorf("delete profile %s: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	s.broker.Publish(key, nil)
	return nil
}

func (s *GormStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *GormStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return &p, nil
}

func (s *GormStore) CreateProduct(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (s *GormStore) UpdateProduct(ctx context.Context, p *models.Product) error {
	result := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"title":    p.Title,
		"price":    p.Price,
		"features": p.Features,
		"best":     p.Best,
	})
	if result.Error != nil {
		return fmt.Errorf("update product %s: %w", p.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", p.ID, ErrNotFound)
	}
	return nil
}

func (s *GormStore) DeleteProduct(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if result.Error != nil {
		return fmt.Errorf("delete product %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *GormStore) ListAds(ctx context.Context) ([]models.Ad, error) {
	var ads []models.Ad
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&ads).Error; err != nil {
		return nil, fmt.Errorf("list ads: %w", err)
	}
	return ads, nil
}

func (s *GormStore) CreateAd(ctx context.Context, ad *models.Ad) error {
	if ad.ID == "" {
		ad.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(ad).Error; err != nil {
		return fmt.Errorf("create ad: %w", err)
	}
	return nil
}

func (s *GormStore) UpdateAd(ctx context.Context, ad *models.Ad) error {
	result := s.db.WithContext(ctx).Model(&models.Ad{}).Where("id = ?", ad.ID).Updates(map[string]interface{}{
		"image_url": ad.ImageURL,
		"link_url":  ad.LinkURL,
		"text":      ad.Text,
		"active":    ad.Active,
	})
	if result.Error != nil {
		return fmt.Errorf("update ad %s: %w", ad.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("ad %s: %w", ad.ID, ErrNotFound)
	}
	return nil
}

func (s *GormStore) DeleteAd(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Ad{})
	if result.Error != nil {
		return fmt.Errorf("delete ad %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("ad %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *GormStore) CreateOrder(ctx context.Context, o *models.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(o).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (s *GormStore) ListOrders(ctx context.Context, slug string) ([]models.Order, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if slug != "" {
		q = q.Where("slug = ?", slug)
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *GormStore) RecordScan(ctx context.Context, e *models.ScanEvent) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("record scan: %w", err)
	}
	return nil
}

func (s *GormStore) RecentScans(ctx context.Context, slug string, limit int) ([]models.ScanEvent, error) {
	q := s.db.WithContext(ctx).Where("slug = ?", slug).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var scans []models.ScanEvent
	if err := q.Find(&scans).Error; err != nil {
		return nil, fmt.Errorf("recent scans for %s: %w", slug, err)
	}
	return scans, nil
}
