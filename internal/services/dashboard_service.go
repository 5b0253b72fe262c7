package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/qr"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/session"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/store"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/wizard"
)

const recentScanLimit = 5

var (
	ErrNotProfileOwner = errors.New("profile is not the active profile of this session")
	ErrNoActiveProfile = errors.New("no active profile")
)

type DashboardService struct {
	backend store.Backend
	origin  string
}

func NewDashboardService(backend store.Backend, origin string) *DashboardService {
	return &DashboardService{backend: backend, origin: origin}
}

// Load builds the dashboard for the session's active profile. A missing
// pointer or record yields the "Incomplete" dashboard rather than an error.
func (s *DashboardService) Load(ctx context.Context, ptr session.Pointer) (*dto.DashboardResponse, error) {
	key, _ := ptr.Slug()
	resp := &dto.DashboardResponse{
		Slug:        key,
		DisplayName: "User",
		BloodGroup:  "--",
		ContactName: "--",
		Status:      "Incomplete",
		SafetyIndex: "Low",
		QRURL:       qr.TargetURL(s.origin, key),
		RecentScans: []models.ScanEvent{},
		Orders:      []models.Order{},
	}
	if key == "" {
		return resp, nil
	}

	p, err := s.backend.ReadOnce(ctx, key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// pointer to a deleted or never-written profile
	case err != nil:
		return nil, err
	default:
		resp.Profile = p
		resp.Status = "Verified"
		resp.SafetyIndex = "High"
		if p.Name != "" {
			resp.DisplayName = p.Name
		}
		if p.BloodGroup != "" {
			resp.BloodGroup = string(p.BloodGroup)
		}
		if p.EmergencyContactName != "" {
			resp.ContactName = p.EmergencyContactName
		}
	}

	scans, err := s.backend.RecentScans(ctx, key, 0)
	if err != nil {
		slog.Warn("failed to load scans", "slug", key, "error", err)
	} else {
		resp.TotalScans = len(scans)
		if len(scans) > recentScanLimit {
			scans = scans[:recentScanLimit]
		}
		if scans != nil {
			resp.RecentScans = scans
		}
	}

	orders, err := s.backend.ListOrders(ctx, key)
	if err != nil {
		slog.Warn("failed to load orders", "slug", key, "error", err)
	} else if orders != nil {
		resp.Orders = orders
	}
	return resp, nil
}

// UpdateProfile edits the stored record in place. The key never changes,
// even when the name does.
func (s *DashboardService) UpdateProfile(ctx context.Context, ptr session.Pointer, key string, patch wizard.Patch) (*models.Profile, error) {
	active, ok := ptr.Slug()
	if !ok {
		return nil, ErrNoActiveProfile
	}
	if active != key {
		return nil, ErrNotProfileOwner
	}

	p, err := s.backend.ReadOnce(ctx, key)
	if err != nil {
		return nil, err
	}
	patch.Apply(p)
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", wizard.ErrInvalidProfile, err)
	}
	if err := s.backend.Write(ctx, key, *p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	slog.Info("profile updated", "slug", key, "action", "dashboard_edit")
	return p, nil
}
