package emergency

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
)

var (
	ErrGeolocationUnsupported = errors.New("geolocation is not supported by this browser")
	ErrGeolocationDenied      = errors.New("location permission denied")
	ErrPositionUnavailable    = errors.New("location unavailable")
	ErrNoContactPhone         = errors.New("no emergency contact phone on file")
)

type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Locator yields the responder's device position.
type Locator interface {
	Locate(ctx context.Context) (Position, error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context) (Position, error)

func (f LocatorFunc) Locate(ctx context.Context) (Position, error) { return f(ctx) }

// DeviceResult is the outcome of a browser geolocation request as posted by
// the responder page. Error carries the browser's failure code when set.
type DeviceResult struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Error     string   `json:"error"`
}

func (d DeviceResult) Locate(context.Context) (Position, error) {
	switch strings.ToLower(d.Error) {
	case "":
	case "denied", "permission_denied":
		return Position{}, ErrGeolocationDenied
	case "unsupported":
		return Position{}, ErrGeolocationUnsupported
	default:
		return Position{}, ErrPositionUnavailable
	}
	if d.Latitude == nil || d.Longitude == nil {
		return Position{}, ErrGeolocationUnsupported
	}
	return Position{Latitude: *d.Latitude, Longitude: *d.Longitude}, nil
}

// MapsURL points at pos on Google Maps.
func MapsURL(pos Position) string {
	return "https://www.google.com/maps?q=" + formatCoord(pos.Latitude) + "," + formatCoord(pos.Longitude)
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// DigitsOnly keeps the ASCII digits of a phone number.
func DigitsOnly(phone string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
}

// LocationMessageURL builds the WhatsApp deep link carrying the map URL.
func LocationMessageURL(phone string, pos Position) string {
	msg := "Emergency! My location: " + MapsURL(pos)
	text := strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
	return "https://wa.me/" + DigitsOnly(phone) + "?text=" + text
}

// SendLocation asks loc for a position and returns the messaging link for
// the view's contact. On any failure it returns exactly one error and no
// link.
func SendLocation(ctx context.Context, v View, loc Locator) (string, error) {
	if loc == nil {
		return "", ErrGeolocationUnsupported
	}
	pos, err := loc.Locate(ctx)
	if err != nil {
		return "", err
	}
	if DigitsOnly(v.Contact.Phone) == "" {
		return "", ErrNoContactPhone
	}
	return LocationMessageURL(v.Contact.Phone, pos), nil
}
