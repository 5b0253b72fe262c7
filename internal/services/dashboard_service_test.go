package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/session"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/store"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_NoPointer(t *testing.T) {
	svc := NewDashboardService(store.NewMemoryStore(), "https://resqr.app")

	d, err := svc.Load(context.Background(), session.NewMemoryPointer(""))
	require.NoError(t, err)
	assert.Nil(t, d.Profile)
	assert.Equal(t, "User", d.DisplayName)
	assert.Equal(t, "--", d.BloodGroup)
	assert.Equal(t, "Incomplete", d.Status)
	assert.Equal(t, "https://resqr.app/e/demo", d.QRURL)
}

func TestDashboard_WithProfile(t *testing.T) {
	ctx := context.Background()
	ms := store.NewMemoryStore()
	require.NoError(t, ms.Write(ctx, "jane-doe", models.Profile{
		Name: "Jane Doe", BloodGroup: models.BloodGroupOPos, EmergencyContactName: "John",
	}))
	for i := 0; i < 7; i++ {
		require.NoError(t, ms.RecordScan(ctx, &models.ScanEvent{Slug: "jane-doe", Found: true}))
	}

	d, err := NewDashboardService(ms, "https://resqr.app").Load(ctx, session.NewMemoryPointer("jane-doe"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", d.DisplayName)
	assert.Equal(t, "O+", d.BloodGroup)
	assert.Equal(t, "John", d.ContactName)
	assert.Equal(t, "Verified", d.Status)
	assert.Equal(t, "https://resqr.app/e/jane-doe", d.QRURL)
	assert.Equal(t, 7, d.TotalScans)
	assert.Len(t, d.RecentScans, 5)
}

func TestDashboard_PointerToMissingProfile(t *testing.T) {
	d, err := NewDashboardService(store.NewMemoryStore(), "https://resqr.app").
		Load(context.Background(), session.NewMemoryPointer("ghost"))
	require.NoError(t, err)
	assert.Nil(t, d.Profile)
	assert.Equal(t, "Incomplete", d.Status)
	assert.Equal(t, "https://resqr.app/e/ghost", d.QRURL)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	ms := store.NewMemoryStore()
	require.NoError(t, ms.Write(ctx, "jane-doe", models.Profile{Name: "Jane Doe"}))
	svc := NewDashboardService(ms, "https://resqr.app")

	allergies := "Peanuts"
	p, err := svc.UpdateProfile(ctx, session.NewMemoryPointer("jane-doe"), "jane-doe", wizard.Patch{Allergies: &allergies})
	require.NoError(t, err)
	assert.Equal(t, "Peanuts", p.Allergies)
	assert.Equal(t, "Jane Doe", p.Name)

	_, err = svc.UpdateProfile(ctx, session.NewMemoryPointer("john-smith"), "jane-doe", wizard.Patch{})
	assert.ErrorIs(t, err, ErrNotProfileOwner)

	_, err = svc.UpdateProfile(ctx, session.NewMemoryPointer(""), "jane-doe", wizard.Patch{})
	assert.ErrorIs(t, err, ErrNoActiveProfile)

	bad := "Z+"
	_, err = svc.UpdateProfile(ctx, session.NewMemoryPointer("jane-doe"), "jane-doe", wizard.Patch{BloodGroup: &bad})
	assert.ErrorIs(t, err, wizard.ErrInvalidProfile)

	stored, err := ms.ReadOnce(ctx, "jane-doe")
	require.NoError(t, err)
	assert.Empty(t, stored.BloodGroup, "invalid edit is not written")
}
