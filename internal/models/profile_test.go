package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBloodGroupValid(t *testing.T) {
	for _, g := range BloodGroups {
		assert.True(t, g.Valid(), g)
	}
	assert.False(t, BloodGroup("").Valid())
	assert.False(t, BloodGroup("C+").Valid())
	assert.False(t, BloodGroup("o+").Valid())
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr error
	}{
		{"empty profile", Profile{}, nil},
		{"free text only", Profile{Name: "Jane Doe", Allergies: "Penicillin, peanuts"}, nil},
		{"valid group and date", Profile{BloodGroup: BloodGroupABNeg, DOB: "1990-04-12"}, nil},
		{"unknown group", Profile{BloodGroup: "C+"}, ErrInvalidBloodGroup},
		{"bad date", Profile{DOB: "12/04/1990"}, ErrInvalidDOB},
		{"impossible date", Profile{DOB: "1990-02-30"}, ErrInvalidDOB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDefaultProducts(t *testing.T) {
	products := DefaultProducts()
	assert.Len(t, products, 4)

	best := 0
	for _, p := range products {
		assert.NotEmpty(t, p.Features, p.ID)
		if p.Best {
			best++
		}
	}
	assert.Equal(t, 1, best)
}
