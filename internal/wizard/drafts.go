package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrDraftNotFound = errors.New("wizard draft not found")

// DraftStore keeps in-progress wizards between requests.
type DraftStore interface {
	Save(ctx context.Context, w *Wizard) error
	Load(ctx context.Context, id uuid.UUID) (*Wizard, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type MemoryDrafts struct {
	mu     sync.Mutex
	ttl    time.Duration
	drafts map[uuid.UUID]Wizard
	now    func() time.Time
}

func NewMemoryDrafts(ttl time.Duration) *MemoryDrafts {
	return &MemoryDrafts{ttl: ttl, drafts: make(map[uuid.UUID]Wizard), now: time.Now}
}

func (m *MemoryDrafts) Save(_ context.Context, w *Wizard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w.UpdatedAt = m.now().UTC()
	m.drafts[w.ID] = *w
	return nil
}

func (m *MemoryDrafts) Load(_ context.Context, id uuid.UUID) (*Wizard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.drafts[id]
	if !ok || m.expired(w) {
		delete(m.drafts, id)
		return nil, ErrDraftNotFound
	}
	return &w, nil
}

func (m *MemoryDrafts) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, id)
	return nil
}

func (m *MemoryDrafts) expired(w Wizard) bool {
	return m.ttl > 0 && m.now().Sub(w.UpdatedAt) > m.ttl
}

// Sweep drops expired drafts and returns how many were removed.
func (m *MemoryDrafts) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, w := range m.drafts {
		if m.expired(w) {
			delete(m.drafts, id)
			n++
		}
	}
	return n
}
