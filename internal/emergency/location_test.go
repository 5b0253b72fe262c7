package emergency

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func TestLocationMessageURL(t *testing.T) {
	got := LocationMessageURL("+91 9876543210", Position{Latitude: 12.9716, Longitude: 77.5946})
	assert.Equal(t,
		"https://wa.me/919876543210?text=Emergency%21%20My%20location%3A%20https%3A%2F%2Fwww.google.com%2Fmaps%3Fq%3D12.9716%2C77.5946",
		got)
}

func TestMapsURL(t *testing.T) {
	assert.Equal(t, "https://www.google.com/maps?q=-33.8688,151.2093", MapsURL(Position{-33.8688, 151.2093}))
	assert.Equal(t, "https://www.google.com/maps?q=0,0", MapsURL(Position{}))
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "919876543210", DigitsOnly("+91 (987) 654-3210"))
	assert.Equal(t, "", DigitsOnly("n/a"))
	assert.Equal(t, "91", DigitsOnly("+91 ٩٨٧٦"))
	assert.Equal(t, "", DigitsOnly("１２３"))
}

func TestSendLocation(t *testing.T) {
	v := View{Contact: Contact{Phone: "+1 555 0100"}}
	ctx := context.Background()

	link, err := SendLocation(ctx, v, DeviceResult{Latitude: f64(1.5), Longitude: f64(2)})
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/15550100?text=Emergency%21%20My%20location%3A%20https%3A%2F%2Fwww.google.com%2Fmaps%3Fq%3D1.5%2C2", link)
}

func TestSendLocation_Failures(t *testing.T) {
	v := View{Contact: Contact{Phone: "+1 555 0100"}}
	ctx := context.Background()

	tests := []struct {
		name string
		loc  Locator
		want error
	}{
		{"denied", DeviceResult{Error: "denied"}, ErrGeolocationDenied},
		{"browser code", DeviceResult{Error: "PERMISSION_DENIED"}, ErrGeolocationDenied},
		{"unsupported", DeviceResult{Error: "unsupported"}, ErrGeolocationUnsupported},
		{"no coordinates", DeviceResult{}, ErrGeolocationUnsupported},
		{"timeout", DeviceResult{Error: "timeout"}, ErrPositionUnavailable},
		{"nil locator", nil, ErrGeolocationUnsupported},
		{"func", LocatorFunc(func(context.Context) (Position, error) {
			return Position{}, ErrGeolocationDenied
		}), ErrGeolocationDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, err := SendLocation(ctx, v, tt.loc)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, link)
		})
	}
}

func TestSendLocation_DeniedProducesSingleError(t *testing.T) {
	calls := 0
	loc := LocatorFunc(func(context.Context) (Position, error) {
		calls++
		return Position{}, ErrGeolocationDenied
	})

	link, err := SendLocation(context.Background(), View{Contact: Contact{Phone: "123"}}, loc)
	assert.Equal(t, 1, calls)
	assert.Equal(t, ErrGeolocationDenied, err)
	assert.Empty(t, link)
}

func TestSendLocation_NoPhone(t *testing.T) {
	link, err := SendLocation(context.Background(), View{}, DeviceResult{Latitude: f64(1), Longitude: f64(1)})
	assert.ErrorIs(t, err, ErrNoContactPhone)
	assert.Empty(t, link)
}
