package dto

import (
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/wizard"
	"github.com/google/uuid"
)

type WizardResponse struct {
	ID        uuid.UUID            `json:"id"`
	Step      int                  `json:"step"`
	StepTitle string               `json:"step_title"`
	Form      models.Profile       `json:"form"`
	Review    []wizard.ReviewField `json:"review,omitempty"`
	Submitted bool                 `json:"submitted"`
	Slug      string               `json:"slug,omitempty"`
	Next      string               `json:"next,omitempty"`
}

func NewWizardResponse(w *wizard.Wizard) WizardResponse {
	resp := WizardResponse{
		ID:        w.ID,
		Step:      int(w.Step),
		StepTitle: w.Step.String(),
		Form:      w.Form,
	}
	if w.AtReview() {
		resp.Review = w.Review()
	}
	return resp
}

func NewOutcomeResponse(o *wizard.Outcome) WizardResponse {
	resp := NewWizardResponse(o.Wizard)
	resp.Submitted = o.Submitted
	resp.Slug = o.Slug
	resp.Next = o.Next
	return resp
}
