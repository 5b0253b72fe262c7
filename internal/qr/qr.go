// Package qr renders the printable emergency tag.
package qr

import (
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	// DemoSlug is encoded when no profile is active.
	DemoSlug = "demo"

	DefaultSize  = 256
	MaxSize      = 1024
	DownloadName = "RESQR_Emergency_Tag.png"
)

// TargetURL is the emergency page address encoded in the tag.
func TargetURL(origin, slug string) string {
	if slug == "" {
		slug = DemoSlug
	}
	return strings.TrimRight(origin, "/") + "/e/" + url.PathEscape(slug)
}

// Render encodes content as a PNG of size×size pixels with high error
// correction and a quiet zone.
func Render(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	png, err := qrcode.Encode(content, qrcode.High, size)
	if err != nil {
		return nil, fmt.Errorf("render qr: %w", err)
	}
	return png, nil
}
