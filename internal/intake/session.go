package intake

import (
	"time"

	"github.com/clinicops/backoffice/internal/backend"
)

// Step is the wizard's position in the walk-in intake flow.
type Step string

const (
	StepSearching  Step = "searching"
	StepConfirming Step = "confirming"
	StepQueueing   Step = "queueing"
)

// DraftPatient holds the editable registration fields used when the national
// ID lookup found no existing record. Validation runs only on that path; a
// matched patient's fields are display-only.
type DraftPatient struct {
	IDCard      string `json:"id_card" validate:"required,len=12,number"`
	FullName    string `json:"full_name" validate:"required"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Phone       string `json:"phone" validate:"required,len=10,number"`
	Gender      string `json:"gender" validate:"omitempty,oneof=male female other"`
	Email       string `json:"email" validate:"omitempty,email"`
}

// Session is the transient state of one walk-in intake. It is discarded on a
// successful queue submission.
type Session struct {
	ID             string           `json:"id"`
	Step           Step             `json:"step"`
	LookupKey      string           `json:"lookup_key,omitempty"`
	MatchedPatient *backend.Patient `json:"matched_patient,omitempty"`
	Draft          DraftPatient     `json:"draft"`
	LocationID     string           `json:"location_id"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// NewRegistration reports whether the session is on the new-registration
// path (no existing record matched the searched national ID).
func (s *Session) NewRegistration() bool {
	return s.MatchedPatient == nil
}
