package store

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBroker_PublishOnlyToKey(t *testing.T) {
	b := NewBroker()

	var a, other int
	b.subscribe("a", func(*models.Profile) { a++ })
	b.subscribe("b", func(*models.Profile) { other++ })

	b.Publish("a", &models.Profile{Name: "x"})

	assert.Equal(t, 1, a)
	assert.Equal(t, 0, other)
}

func TestBroker_CallbacksGetCopies(t *testing.T) {
	b := NewBroker()
	p := &models.Profile{Name: "orig"}

	b.subscribe("a", func(got *models.Profile) { got.Name = "mutated" })
	var second string
	b.subscribe("a", func(got *models.Profile) { second = got.Name })

	b.Publish("a", p)

	assert.Equal(t, "orig", p.Name)
	assert.Equal(t, "orig", second)
}

func TestBroker_UnsubscribeIdempotent(t *testing.T) {
	b := NewBroker()
	sub := b.subscribe("a", func(*models.Profile) {})

	sub.Unsubscribe()
	sub.Unsubscribe()

	assert.Equal(t, 0, b.count("a"))
}

func TestSameProfile(t *testing.T) {
	assert.True(t, sameProfile(nil, nil))
	assert.False(t, sameProfile(nil, &models.Profile{}))
	assert.True(t, sameProfile(&models.Profile{Name: "a"}, &models.Profile{Name: "a"}))
	assert.False(t, sameProfile(&models.Profile{Name: "a"}, &models.Profile{Name: "b"}))
}
