package models

import (
	"time"

	"gorm.io/datatypes"
)

// Product is a purchasable tag variant (config/products/{id}). Price is in
// major currency units.
type Product struct {
	ID        string                      `gorm:"size:64;primaryKey" json:"id"`
	Title     string                      `gorm:"size:255;not null" json:"title"`
	Price     int64                       `gorm:"not null" json:"price"`
	Features  datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"features"`
	Best      bool                        `gorm:"default:false" json:"best"`
	CreatedAt time.Time                   `json:"-"`
	UpdatedAt time.Time                   `json:"-"`
}

// Ad is a promoted banner shown on the dashboard (config/ads/{id}).
type Ad struct {
	ID        string    `gorm:"size:64;primaryKey" json:"id"`
	ImageURL  string    `gorm:"type:text;not null" json:"imageUrl"`
	LinkURL   string    `gorm:"type:text;not null" json:"linkUrl"`
	Text      string    `gorm:"type:text" json:"text"`
	Active    bool      `gorm:"default:false;index" json:"active"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// DefaultProducts is served when the catalog is empty or unreachable.
func DefaultProducts() []Product {
	return []Product{
		{ID: "digital", Title: "Digital QR", Price: 99, Features: []string{"Digital Dashboard", "Instant Access"}, Best: true},
		{ID: "band", Title: "QR Band", Price: 299, Features: []string{"Waterproof Silicon", "Wearable Safety"}},
		{ID: "bracelet", Title: "QR Bracelet", Price: 399, Features: []string{"Stainless Steel", "Premium Finish"}},
		{ID: "keychain", Title: "Key Chain", Price: 199, Features: []string{"Durable TPU", "Attach to Keys"}},
	}
}
