package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDrafts_Expiry(t *testing.T) {
	d := NewMemoryDrafts(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }
	ctx := context.Background()

	w := New()
	require.NoError(t, d.Save(ctx, w))

	_, err := d.Load(ctx, w.ID)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = d.Load(ctx, w.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestMemoryDrafts_Sweep(t *testing.T) {
	d := NewMemoryDrafts(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, d.Save(ctx, New()))
	require.NoError(t, d.Save(ctx, New()))
	now = now.Add(time.Hour)
	require.NoError(t, d.Save(ctx, New()))

	assert.Equal(t, 2, d.Sweep())
	assert.Equal(t, 0, d.Sweep())
}

func TestRedisDrafts_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(mr.Addr(), "", 0)
	d := NewRedisDrafts(client, time.Hour)
	ctx := context.Background()

	w := New()
	w.Advance()
	w.Form.Name = "Jane Doe"
	require.NoError(t, d.Save(ctx, w))

	assert.True(t, mr.Exists(draftKey(w.ID)))
	assert.Equal(t, time.Hour, mr.TTL(draftKey(w.ID)))

	got, err := d.Load(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, StepMedical, got.Step)
	assert.Equal(t, "Jane Doe", got.Form.Name)

	require.NoError(t, d.Delete(ctx, w.ID))
	_, err = d.Load(ctx, w.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestRedisDrafts_Expires(t *testing.T) {
	mr := miniredis.RunT(t)
	d := NewRedisDrafts(NewRedisClient(mr.Addr(), "", 0), time.Minute)
	ctx := context.Background()

	w := New()
	require.NoError(t, d.Save(ctx, w))
	mr.FastForward(2 * time.Minute)

	_, err := d.Load(ctx, w.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
