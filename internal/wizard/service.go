package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/session"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/slug"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/store"
	"github.com/google/uuid"
)

var (
	ErrInvalidProfile = errors.New("invalid profile")
	ErrNameRequired   = errors.New("name is required to create a profile link")
)

const (
	NextPayment = "payment"
	NextLogin   = "login"
)

// Outcome is the result of Next. Submitted is set only after the profile
// write has completed successfully.
type Outcome struct {
	Wizard    *Wizard `json:"wizard"`
	Submitted bool    `json:"submitted"`
	Slug      string  `json:"slug,omitempty"`
	Next      string  `json:"next,omitempty"`
}

type Service struct {
	drafts   DraftStore
	profiles store.ProfileStore
}

func NewService(drafts DraftStore, profiles store.ProfileStore) *Service {
	return &Service{drafts: drafts, profiles: profiles}
}

func (s *Service) Start(ctx context.Context) (*Wizard, error) {
	w := New()
	if err := s.drafts.Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Wizard, error) {
	return s.drafts.Load(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Wizard, error) {
	w, err := s.drafts.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(&w.Form)
	if err := s.drafts.Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) Back(ctx context.Context, id uuid.UUID) (*Wizard, error) {
	w, err := s.drafts.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.Back() {
		if err := s.drafts.Save(ctx, w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Next advances the wizard. From Review it submits: the slug is derived, the
// record validated and written, and only after the write returns is the
// session pointer set and the next route chosen. On any failure the wizard
// stays at Review and the draft is kept.
func (s *Service) Next(ctx context.Context, id uuid.UUID, ptr session.Pointer, authenticated bool) (*Outcome, error) {
	w, err := s.drafts.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	if w.Advance() {
		if err := s.drafts.Save(ctx, w); err != nil {
			return nil, err
		}
		return &Outcome{Wizard: w}, nil
	}

	key, err := s.Submit(ctx, w)
	if err != nil {
		return &Outcome{Wizard: w}, err
	}

	ptr.SetSlug(key)
	if err := s.drafts.Delete(ctx, w.ID); err != nil {
		slog.Warn("failed to delete submitted draft", "draft_id", w.ID, "error", err)
	}

	next := NextLogin
	if authenticated {
		next = NextPayment
	}
	return &Outcome{Wizard: w, Submitted: true, Slug: key, Next: next}, nil
}

// Submit validates the wizard form and writes it at its derived slug.
func (s *Service) Submit(ctx context.Context, w *Wizard) (string, error) {
	key := slug.Derive(w.Form.Name)
	if key == "" {
		return "", fmt.Errorf("%w: %w", ErrInvalidProfile, ErrNameRequired)
	}
	if err := w.Form.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	if err := s.profiles.Write(ctx, key, w.Form); err != nil {
		slog.Error("profile write failed", "slug", key, "action", "wizard_submit", "error", err)
		return "", fmt.Errorf("save profile: %w", err)
	}

	slog.Info("profile created", "slug", key, "action", "wizard_submit")
	return key, nil
}
