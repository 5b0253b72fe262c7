package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/store"
)

// RevenuePerUser is the flat per-profile figure behind the revenue stat.
const RevenuePerUser = 99

type AdminService struct {
	profiles store.ProfileStore
	catalog  store.CatalogStore
}

func NewAdminService(profiles store.ProfileStore, catalog store.CatalogStore) *AdminService {
	return &AdminService{profiles: profiles, catalog: catalog}
}

func (s *AdminService) Stats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	ads, err := s.catalog.ListAds(ctx)
	if err != nil {
		return nil, err
	}

	active := 0
	for _, ad := range ads {
		if ad.Active {
			active++
		}
	}
	return &dto.AdminStatsResponse{
		TotalUsers:      len(profiles),
		PlatformRevenue: int64(len(profiles)) * RevenuePerUser,
		LiveProducts:    len(products),
		ActiveAds:       active,
	}, nil
}

// SearchProfiles filters by case-insensitive name substring. An empty query
// returns every profile.
func (s *AdminService) SearchProfiles(ctx context.Context, query string) ([]store.ProfileEntry, error) {
	all, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}

	matches := []store.ProfileEntry{}
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.Profile.Name), q) {
			matches = append(matches, e)
		}
	}
	return matches, nil
}

func (s *AdminService) DeleteProfile(ctx context.Context, slug string) error {
	if err := s.profiles.Delete(ctx, slug); err != nil {
		return err
	}
	slog.Info("profile deleted", "slug", slug, "action", "admin_delete_profile")
	return nil
}
