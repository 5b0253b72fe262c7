package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusUnverified = "unverified"
	OrderStatusFailed     = "failed"
)

// Order records a hosted-checkout result as reported by the client. Payment
// ids are stored but never verified against the provider.
type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Slug        string    `gorm:"size:255;index" json:"slug"`
	ProductID   string    `gorm:"size:64;not null" json:"product_id"`
	Title       string    `gorm:"size:255" json:"title"`
	AmountMinor int64     `gorm:"not null" json:"amount_minor"`
	Currency    string    `gorm:"size:3;not null" json:"currency"`
	PaymentID   string    `gorm:"size:255;index" json:"payment_id"`
	Status      string    `gorm:"size:20;not null;default:'unverified'" json:"status"`
	Reason      string    `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ScanEvent is written each time an emergency page is resolved.
type ScanEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Slug      string    `gorm:"size:255;not null;index" json:"slug"`
	Found     bool      `json:"found"`
	IP        string    `gorm:"size:64" json:"-"`
	UserAgent string    `gorm:"type:text" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
