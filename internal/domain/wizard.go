package domain

import "errors"

var (
	// ErrSubmissionInFlight returned when submit is requested while a submission is pending
	ErrSubmissionInFlight = errors.New("wizard: submission already in flight")

	// ErrNotAtConfirmStep returned when submit is requested before the confirm step
	ErrNotAtConfirmStep = errors.New("wizard: booking can only be submitted from the confirm step")
)

// WizardStep step of the booking wizard
type WizardStep int

const (
	StepSchedules WizardStep = iota
	StepPayment
	StepConfirm
)

// SubmissionStatus three-state submission indicator (plus idle before the first submit)
type SubmissionStatus string

const (
	SubmissionIdle    SubmissionStatus = "idle"
	SubmissionPending SubmissionStatus = "pending"
	SubmissionSuccess SubmissionStatus = "success"
	SubmissionError   SubmissionStatus = "error"
)

// WizardState booking wizard value object. Transitions return a new state.
type WizardState struct {
	Step      WizardStep
	Draft     BookingDraft
	FreeVenue bool
	Status    SubmissionStatus
	BookingID int64
	Err       error
}

// NewWizard starts a wizard for the venue
func NewWizard(venueID int64, freeVenue bool) WizardState {
	return WizardState{
		Step:      StepSchedules,
		Draft:     BookingDraft{VenueID: venueID},
		FreeVenue: freeVenue,
		Status:    SubmissionIdle,
	}
}

// NextStep moves forward; the payment step is skipped for free venues
func (w WizardState) NextStep() WizardState {
	if w.Status == SubmissionPending {
		return w
	}
	switch w.Step {
	case StepSchedules:
		if w.FreeVenue {
			w.Step = StepConfirm
		} else {
			w.Step = StepPayment
		}
	case StepPayment:
		w.Step = StepConfirm
	}
	return w
}

// PrevStep moves back; the payment step is skipped for free venues
func (w WizardState) PrevStep() WizardState {
	if w.Status == SubmissionPending {
		return w
	}
	switch w.Step {
	case StepConfirm:
		if w.FreeVenue {
			w.Step = StepSchedules
		} else {
			w.Step = StepPayment
		}
	case StepPayment:
		w.Step = StepSchedules
	}
	return w
}

// Submit marks the draft as submitted. Only one submission may be in flight.
func (w WizardState) Submit() (WizardState, error) {
	if w.Status == SubmissionPending {
		return w, ErrSubmissionInFlight
	}
	if w.Step != StepConfirm {
		return w, ErrNotAtConfirmStep
	}
	w.Status = SubmissionPending
	w.Err = nil
	return w, nil
}

// Succeed records the created booking
func (w WizardState) Succeed(bookingID int64) WizardState {
	w.Status = SubmissionSuccess
	w.BookingID = bookingID
	w.Err = nil
	return w
}

// Fail records the submission error; the wizard stays on the confirm step for a retry
func (w WizardState) Fail(err error) WizardState {
	w.Status = SubmissionError
	w.Err = err
	return w
}
