package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/session"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	*store.MemoryStore
}

var errUnavailable = errors.New("database unavailable")

func (failingStore) Write(context.Context, string, models.Profile) error {
	return errUnavailable
}

func strp(s string) *string { return &s }

func runToReview(t *testing.T, svc *Service, patch Patch) *Wizard {
	t.Helper()
	ctx := context.Background()

	w, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.Update(ctx, w.ID, patch)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		out, err := svc.Next(ctx, w.ID, session.NewMemoryPointer(""), false)
		require.NoError(t, err)
		require.False(t, out.Submitted)
	}
	w, err = svc.Get(ctx, w.ID)
	require.NoError(t, err)
	require.Equal(t, StepReview, w.Step)
	return w
}

func TestService_SubmitWritesProfile(t *testing.T) {
	profiles := store.NewMemoryStore()
	svc := NewService(NewMemoryDrafts(time.Hour), profiles)
	ctx := context.Background()

	w := runToReview(t, svc, Patch{
		Name:                  strp("Jane Doe"),
		BloodGroup:            strp("O+"),
		EmergencyContactPhone: strp("+91 9876543210"),
	})

	ptr := session.NewMemoryPointer("")
	out, err := svc.Next(ctx, w.ID, ptr, false)
	require.NoError(t, err)

	assert.True(t, out.Submitted)
	assert.Equal(t, "jane-doe", out.Slug)
	assert.Equal(t, NextLogin, out.Next)

	active, ok := ptr.Slug()
	assert.True(t, ok)
	assert.Equal(t, "jane-doe", active)

	stored, err := profiles.ReadOnce(ctx, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, models.BloodGroupOPos, stored.BloodGroup)
	assert.Equal(t, "+91 9876543210", stored.EmergencyContactPhone)

	_, err = svc.Get(ctx, w.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestService_AuthenticatedGoesToPayment(t *testing.T) {
	svc := NewService(NewMemoryDrafts(time.Hour), store.NewMemoryStore())
	w := runToReview(t, svc, Patch{Name: strp("Jane Doe")})

	out, err := svc.Next(context.Background(), w.ID, session.NewMemoryPointer(""), true)
	require.NoError(t, err)
	assert.Equal(t, NextPayment, out.Next)
}

func TestService_WriteFailureStaysOnReview(t *testing.T) {
	svc := NewService(NewMemoryDrafts(time.Hour), failingStore{store.NewMemoryStore()})
	ctx := context.Background()
	w := runToReview(t, svc, Patch{Name: strp("Jane Doe")})

	ptr := session.NewMemoryPointer("previous")
	out, err := svc.Next(ctx, w.ID, ptr, true)
	require.ErrorIs(t, err, errUnavailable)
	assert.False(t, out.Submitted)
	assert.Empty(t, out.Next)
	assert.Equal(t, StepReview, out.Wizard.Step)

	active, _ := ptr.Slug()
	assert.Equal(t, "previous", active, "pointer unchanged on failure")

	kept, err := svc.Get(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, StepReview, kept.Step)
}

func TestService_RejectsEmptyName(t *testing.T) {
	svc := NewService(NewMemoryDrafts(time.Hour), store.NewMemoryStore())
	w := runToReview(t, svc, Patch{Name: strp("   ")})

	_, err := svc.Next(context.Background(), w.ID, session.NewMemoryPointer(""), false)
	assert.ErrorIs(t, err, ErrInvalidProfile)
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestService_RejectsInvalidBloodGroup(t *testing.T) {
	svc := NewService(NewMemoryDrafts(time.Hour), store.NewMemoryStore())
	w := runToReview(t, svc, Patch{Name: strp("Jane"), BloodGroup: strp("C+")})

	_, err := svc.Next(context.Background(), w.ID, session.NewMemoryPointer(""), false)
	assert.ErrorIs(t, err, ErrInvalidProfile)
	assert.ErrorIs(t, err, models.ErrInvalidBloodGroup)
}

func TestService_CollidingNamesOverwrite(t *testing.T) {
	profiles := store.NewMemoryStore()
	svc := NewService(NewMemoryDrafts(time.Hour), profiles)
	ctx := context.Background()

	first := runToReview(t, svc, Patch{Name: strp("John Smith"), EmergencyContactPhone: strp("111")})
	_, err := svc.Next(ctx, first.ID, session.NewMemoryPointer(""), false)
	require.NoError(t, err)

	second := runToReview(t, svc, Patch{Name: strp("john   smith"), EmergencyContactPhone: strp("222")})
	out, err := svc.Next(ctx, second.ID, session.NewMemoryPointer(""), false)
	require.NoError(t, err)
	assert.Equal(t, "john-smith", out.Slug)

	stored, err := profiles.ReadOnce(ctx, "john-smith")
	require.NoError(t, err)
	assert.Equal(t, "john   smith", stored.Name)
	assert.Equal(t, "222", stored.EmergencyContactPhone)
}

func TestService_BackAndUnknownDraft(t *testing.T) {
	svc := NewService(NewMemoryDrafts(time.Hour), store.NewMemoryStore())
	ctx := context.Background()

	w, err := svc.Start(ctx)
	require.NoError(t, err)
	w, err = svc.Back(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, StepPersonal, w.Step)

	_, err = svc.Next(ctx, New().ID, session.NewMemoryPointer(""), false)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
