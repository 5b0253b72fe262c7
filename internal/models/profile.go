package models

import (
	"errors"
	"fmt"
	"time"
)

type BloodGroup string

const (
	BloodGroupAPos  BloodGroup = "A+"
	BloodGroupANeg  BloodGroup = "A-"
	BloodGroupBPos  BloodGroup = "B+"
	BloodGroupBNeg  BloodGroup = "B-"
	BloodGroupABPos BloodGroup = "AB+"
	BloodGroupABNeg BloodGroup = "AB-"
	BloodGroupOPos  BloodGroup = "O+"
	BloodGroupONeg  BloodGroup = "O-"
)

var BloodGroups = []BloodGroup{
	BloodGroupAPos, BloodGroupANeg,
	BloodGroupBPos, BloodGroupBNeg,
	BloodGroupABPos, BloodGroupABNeg,
	BloodGroupOPos, BloodGroupONeg,
}

// Valid reports whether g is one of the eight ABO/Rh groups. The empty group
// is not valid; callers decide whether "unset" is acceptable.
func (g BloodGroup) Valid() bool {
	for _, bg := range BloodGroups {
		if g == bg {
			return true
		}
	}
	return false
}

// DateLayout is the wire format of Profile.DOB (HTML date input).
const DateLayout = "2006-01-02"

var (
	ErrInvalidBloodGroup = errors.New("invalid blood group")
	ErrInvalidDOB        = errors.New("date of birth must be YYYY-MM-DD")
)

// Profile is the medical and emergency-contact record of one user. JSON names
// match the realtime database schema under profiles/{slug}.
type Profile struct {
	Name                     string     `gorm:"size:255;not null" json:"name"`
	BloodGroup               BloodGroup `gorm:"size:3" json:"bloodGroup"`
	DOB                      string     `gorm:"size:10" json:"dob"`
	Phone                    string     `gorm:"size:50" json:"phone"`
	Allergies                string     `gorm:"type:text" json:"allergies"`
	Medications              string     `gorm:"type:text" json:"medications"`
	MedicalConditions        string     `gorm:"type:text" json:"medicalConditions"`
	EmergencyContactName     string     `gorm:"size:255" json:"emergencyContactName"`
	EmergencyContactPhone    string     `gorm:"size:50" json:"emergencyContactPhone"`
	EmergencyContactRelation string     `gorm:"size:100" json:"emergencyContactRelation"`
}

// Validate checks the typed fields. Free-text fields and missing values are
// accepted as-is.
func (p *Profile) Validate() error {
	if p.BloodGroup != "" && !p.BloodGroup.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidBloodGroup, p.BloodGroup)
	}
	if p.DOB != "" {
		if _, err := time.Parse(DateLayout, p.DOB); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDOB, p.DOB)
		}
	}
	return nil
}
