package dto

import (
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/emergency"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/store"
)

type DashboardResponse struct {
	Slug        string             `json:"slug,omitempty"`
	Profile     *models.Profile    `json:"profile"`
	DisplayName string             `json:"display_name"`
	BloodGroup  string             `json:"blood_group"`
	ContactName string             `json:"contact_name"`
	Status      string             `json:"status"`
	SafetyIndex string             `json:"safety_index"`
	QRURL       string             `json:"qr_url"`
	TotalScans  int                `json:"total_scans"`
	RecentScans []models.ScanEvent `json:"recent_scans"`
	Orders      []models.Order     `json:"orders"`
}

type QRURLResponse struct {
	URL  string `json:"url"`
	Slug string `json:"slug"`
	Demo bool   `json:"demo"`
}

type LocationResponse struct {
	URL string `json:"url"`
}

type AdminStatsResponse struct {
	TotalUsers      int   `json:"total_users"`
	PlatformRevenue int64 `json:"platform_revenue"`
	LiveProducts    int   `json:"live_products"`
	ActiveAds       int   `json:"active_ads"`
}

type ProfileListResponse struct {
	Profiles []store.ProfileEntry `json:"profiles"`
	Total    int                  `json:"total"`
}

type EmergencyResponse struct {
	emergency.View
	CallURI string `json:"call_uri"`
	Message string `json:"message,omitempty"`
}
