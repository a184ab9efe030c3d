package booking

import (
	"fmt"
	"time"
)

// State is the lifecycle position of a form.
type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
)

// ConfirmationMessage replaces the form once it reaches StateSubmitted.
const ConfirmationMessage = "Request received — we’ll confirm shortly."

// Form is one booking form instance. It is a plain value so page-view stores can
// serialize it; callers are expected to serialize access per instance.
type Form struct {
	State       State     `json:"state"`
	Fields      Request   `json:"fields"`
	SubmittedAt time.Time `json:"submitted_at,omitempty"`
}

// NewForm returns an empty form in StateEditing with the package preselected.
func NewForm(defaultPackage string) Form {
	return Form{
		State:  StateEditing,
		Fields: Request{Package: defaultPackage},
	}
}

// Update applies a single field-change event.
func (f *Form) Update(field, value string) error {
	if f.State != StateEditing {
		return ErrNotEditable
	}
	if err := f.Fields.set(field, value); err != nil {
		return fmt.Errorf("%w: %q", err, field)
	}
	return nil
}

// CanSubmit reports whether the submit control is enabled.
func (f Form) CanSubmit() bool {
	return f.State == StateEditing && f.Fields.Complete()
}

// Begin moves Editing -> Submitting and returns the frozen request.
// An incomplete form stays in Editing and returns ErrIncomplete.
func (f *Form) Begin() (Request, error) {
	switch f.State {
	case StateSubmitting:
		return Request{}, ErrSubmissionInFlight
	case StateSubmitted:
		return Request{}, ErrAlreadySubmitted
	}
	if !f.Fields.Complete() {
		return Request{}, ErrIncomplete
	}
	f.State = StateSubmitting
	return f.Fields, nil
}

// Complete moves Submitting -> Submitted. The state is terminal.
func (f *Form) Complete(at time.Time) error {
	if f.State != StateSubmitting {
		return ErrNotSubmitting
	}
	f.State = StateSubmitted
	f.SubmittedAt = at.UTC()
	return nil
}

// Abort moves Submitting back to Editing with the fields intact, for a
// submission that could not be recorded as complete.
func (f *Form) Abort() error {
	if f.State != StateSubmitting {
		return ErrNotSubmitting
	}
	f.State = StateEditing
	return nil
}

// Done reports whether the confirmation should be shown instead of the form.
func (f Form) Done() bool {
	return f.State == StateSubmitted
}
