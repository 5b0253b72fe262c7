// Package emergency turns a scanned slug into the responder view and builds
// the two responder actions: calling the emergency contact and sending the
// responder's location.
package emergency

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/store"
)

const (
	UnknownName        = "UNKNOWN"
	NoValue            = "--"
	NoAllergies        = "None reported"
	NoConditions       = "No chronic conditions reported"
	ProfileNotFoundMsg = "Profile not found"
)

type Contact struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Phone    string `json:"phone"`
}

// View is the display form of a profile. It is always renderable; Found
// reports whether a record backed it.
type View struct {
	Slug        string  `json:"slug"`
	Found       bool    `json:"found"`
	Name        string  `json:"name"`
	BloodGroup  string  `json:"bloodGroup"`
	Allergies   string  `json:"allergies"`
	Conditions  string  `json:"conditions"`
	Medications string  `json:"medications,omitempty"`
	Contact     Contact `json:"emergencyContact"`
}

// CallURI dials the stored contact phone verbatim.
func (v View) CallURI() string {
	return "tel:" + v.Contact.Phone
}

func placeholder(slug string) View {
	return View{
		Slug:       slug,
		Name:       UnknownName,
		BloodGroup: NoValue,
		Allergies:  NoAllergies,
		Conditions: NoConditions,
		Contact:    Contact{Name: NoValue, Relation: NoValue},
	}
}

// NewView maps a stored profile to its display form.
func NewView(slug string, p *models.Profile) View {
	if p == nil {
		return placeholder(slug)
	}
	v := View{
		Slug:        slug,
		Found:       true,
		Name:        strings.ToUpper(p.Name),
		BloodGroup:  string(p.BloodGroup),
		Allergies:   p.Allergies,
		Conditions:  p.MedicalConditions,
		Medications: p.Medications,
		Contact: Contact{
			Name:     p.EmergencyContactName,
			Relation: p.EmergencyContactRelation,
			Phone:    p.EmergencyContactPhone,
		},
	}
	if v.Allergies == "" {
		v.Allergies = NoAllergies
	}
	if v.Conditions == "" {
		v.Conditions = NoConditions
	}
	return v
}

type Resolver struct {
	profiles store.ProfileStore
	scans    store.ScanStore
	now      func() time.Time
}

// NewResolver returns a resolver. scans may be nil to skip scan recording.
func NewResolver(profiles store.ProfileStore, scans store.ScanStore) *Resolver {
	return &Resolver{profiles: profiles, scans: scans, now: time.Now}
}

// Resolve reads the profile once. The returned view is usable even when err
// is non-nil: an absent record yields store.ErrNotFound and placeholders,
// and a backend failure yields the wrapped error and the same placeholders.
func (r *Resolver) Resolve(ctx context.Context, slug string) (View, error) {
	p, err := r.profiles.ReadOnce(ctx, slug)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error("emergency lookup failed", "slug", slug, "error", err)
		}
		return placeholder(slug), err
	}
	return NewView(slug, p), nil
}

// ScanMeta describes who opened the emergency page.
type ScanMeta struct {
	IP        string
	UserAgent string
}

// Record stores a scan event for the dashboard. Failures are logged and
// never surface to the responder.
func (r *Resolver) Record(ctx context.Context, v View, meta ScanMeta) {
	if r.scans == nil || v.Slug == "" {
		return
	}
	e := &models.ScanEvent{
		Slug:      v.Slug,
		Found:     v.Found,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		CreatedAt: r.now().UTC(),
	}
	if err := r.scans.RecordScan(ctx, e); err != nil {
		slog.Warn("failed to record scan", "slug", v.Slug, "error", err)
	}
}
