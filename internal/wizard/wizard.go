// Package wizard drives the four-step profile creation flow.
package wizard

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/models"
	"github.com/google/uuid"
)

type Step int

const (
	StepPersonal Step = iota + 1
	StepMedical
	StepContacts
	StepReview
)

var stepTitles = map[Step]string{
	StepPersonal: "Personal",
	StepMedical:  "Medical",
	StepContacts: "Contacts",
	StepReview:   "Review",
}

func (s Step) String() string {
	if t, ok := stepTitles[s]; ok {
		return t
	}
	return "Unknown"
}

// NotProvided is shown at Review for empty fields.
const NotProvided = "Not provided"

// Wizard is one in-progress profile. Step transitions never validate the
// form; validation happens once, on submit.
type Wizard struct {
	ID        uuid.UUID      `json:"id"`
	Step      Step           `json:"step"`
	Form      models.Profile `json:"form"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func New() *Wizard {
	return &Wizard{ID: uuid.New(), Step: StepPersonal, UpdatedAt: time.Now().UTC()}
}

// Advance moves one step forward. It reports false at Review, where the
// caller submits instead.
func (w *Wizard) Advance() bool {
	if w.Step >= StepReview {
		return false
	}
	w.Step++
	return true
}

// Back moves one step backward; a no-op at Personal.
func (w *Wizard) Back() bool {
	if w.Step <= StepPersonal {
		return false
	}
	w.Step--
	return true
}

func (w *Wizard) AtReview() bool {
	return w.Step == StepReview
}

type ReviewField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func (w *Wizard) Review() []ReviewField {
	f := w.Form
	return []ReviewField{
		{"Full Name", orNotProvided(f.Name)},
		{"Blood Group", orNotProvided(string(f.BloodGroup))},
		{"Date of Birth", orNotProvided(f.DOB)},
		{"Phone Number", orNotProvided(f.Phone)},
		{"Allergies", orNotProvided(f.Allergies)},
		{"Medications", orNotProvided(f.Medications)},
		{"Medical Conditions", orNotProvided(f.MedicalConditions)},
		{"Emergency Contact", orNotProvided(f.EmergencyContactName)},
		{"Contact Phone", orNotProvided(f.EmergencyContactPhone)},
		{"Relation", orNotProvided(f.EmergencyContactRelation)},
	}
}

func orNotProvided(s string) string {
	if s == "" {
		return NotProvided
	}
	return s
}

// Patch holds optional field updates; nil fields are left untouched.
type Patch struct {
	Name                     *string `json:"name"`
	BloodGroup               *string `json:"bloodGroup"`
	DOB                      *string `json:"dob"`
	Phone                    *string `json:"phone"`
	Allergies                *string `json:"allergies"`
	Medications              *string `json:"medications"`
	MedicalConditions        *string `json:"medicalConditions"`
	EmergencyContactName     *string `json:"emergencyContactName"`
	EmergencyContactPhone    *string `json:"emergencyContactPhone"`
	EmergencyContactRelation *string `json:"emergencyContactRelation"`
}

func (p Patch) Apply(f *models.Profile) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&f.Name, p.Name)
	if p.BloodGroup != nil {
		f.BloodGroup = models.BloodGroup(*p.BloodGroup)
	}
	set(&f.DOB, p.DOB)
	set(&f.Phone, p.Phone)
	set(&f.Allergies, p.Allergies)
	set(&f.Medications, p.Medications)
	set(&f.MedicalConditions, p.MedicalConditions)
	set(&f.EmergencyContactName, p.EmergencyContactName)
	set(&f.EmergencyContactPhone, p.EmergencyContactPhone)
	set(&f.EmergencyContactRelation, p.EmergencyContactRelation)
}
