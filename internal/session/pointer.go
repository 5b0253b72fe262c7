// Package session remembers which profile a browser currently represents.
package session

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieName is the durable client-side key holding the active slug.
const CookieName = "resqr_active_slug"

const cookieMaxAge = 365 * 24 * time.Hour

// Pointer holds the active slug for one client. It is passed explicitly to
// the views that need it.
type Pointer interface {
	Slug() (string, bool)
	SetSlug(slug string)
	Clear()
}

// CookiePointer stores the slug in a long-lived cookie on the response.
type CookiePointer struct {
	c      *fiber.Ctx
	secure bool
}

func FromRequest(c *fiber.Ctx) *CookiePointer {
	return &CookiePointer{c: c, secure: c.Protocol() == "https"}
}

func (p *CookiePointer) Slug() (string, bool) {
	if s, ok := p.c.Locals(CookieName).(string); ok {
		return s, s != ""
	}
	s := p.c.Cookies(CookieName)
	return s, s != ""
}

func (p *CookiePointer) SetSlug(slug string) {
	p.c.Locals(CookieName, slug)
	p.c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    slug,
		Path:     "/",
		Expires:  time.Now().Add(cookieMaxAge),
		Secure:   p.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (p *CookiePointer) Clear() {
	p.c.Locals(CookieName, "")
	p.c.ClearCookie(CookieName)
}

// MemoryPointer is an in-process Pointer.
type MemoryPointer struct {
	mu   sync.Mutex
	slug string
}

func NewMemoryPointer(slug string) *MemoryPointer {
	return &MemoryPointer{slug: slug}
}

func (p *MemoryPointer) Slug() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.slug, p.slug != ""
}

func (p *MemoryPointer) SetSlug(slug string) {
	p.mu.Lock()
	p.slug = slug
	p.mu.Unlock()
}

func (p *MemoryPointer) Clear() {
	p.SetSlug("")
}
