package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWizardTransitions(t *testing.T) {
	w := New()
	assert.Equal(t, StepPersonal, w.Step)

	assert.False(t, w.Back(), "back from first step is a no-op")
	assert.Equal(t, StepPersonal, w.Step)

	assert.True(t, w.Advance())
	assert.True(t, w.Advance())
	assert.True(t, w.Advance())
	assert.Equal(t, StepReview, w.Step)
	assert.True(t, w.AtReview())

	assert.False(t, w.Advance(), "review submits instead of advancing")
	assert.Equal(t, StepReview, w.Step)

	assert.True(t, w.Back())
	assert.Equal(t, StepContacts, w.Step)
}

func TestWizardAdvancesWithEmptyForm(t *testing.T) {
	w := New()
	for w.Advance() {
	}
	assert.Equal(t, StepReview, w.Step)
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "Personal", StepPersonal.String())
	assert.Equal(t, "Review", StepReview.String())
	assert.Equal(t, "Unknown", Step(9).String())
}

func TestReviewPlaceholders(t *testing.T) {
	w := New()
	name := "Jane Doe"
	Patch{Name: &name}.Apply(&w.Form)

	fields := w.Review()
	assert.Equal(t, ReviewField{"Full Name", "Jane Doe"}, fields[0])
	assert.Equal(t, ReviewField{"Blood Group", NotProvided}, fields[1])
	for _, f := range fields[2:] {
		assert.Equal(t, NotProvided, f.Value, f.Label)
	}
}

func TestPatchLeavesUnsetFields(t *testing.T) {
	w := New()
	name, bg := "Jane", "O+"
	Patch{Name: &name, BloodGroup: &bg}.Apply(&w.Form)

	phone := "123"
	Patch{Phone: &phone}.Apply(&w.Form)

	assert.Equal(t, "Jane", w.Form.Name)
	assert.Equal(t, "O+", string(w.Form.BloodGroup))
	assert.Equal(t, "123", w.Form.Phone)
}
