package store

import (
	"sync"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/models"
)

// Broker fans profile changes out to in-process subscribers.
type Broker struct {
	mu   sync.Mutex
	next uint64
	subs map[string]map[uint64]func(*models.Profile)
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[uint64]func(*models.Profile))}
}

func (b *Broker) subscribe(key string, fn func(*models.Profile)) *subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	id := b.next
	if b.subs[key] == nil {
		b.subs[key] = make(map[uint64]func(*models.Profile))
	}
	b.subs[key][id] = fn

	return &subscription{cancel: func() { b.remove(key, id) }}
}

func (b *Broker) remove(key string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs[key], id)
	if len(b.subs[key]) == 0 {
		delete(b.subs, key)
	}
}

// Publish delivers p (nil for a deletion) to every subscriber of key. Each
// callback receives its own copy. Callbacks run outside the lock.
func (b *Broker) Publish(key string, p *models.Profile) {
	b.mu.Lock()
	fns := make([]func(*models.Profile), 0, len(b.subs[key]))
	for _, fn := range b.subs[key] {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(cloneProfile(p))
	}
}

func (b *Broker) count(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[key])
}

func cloneProfile(p *models.Profile) *models.Profile {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
