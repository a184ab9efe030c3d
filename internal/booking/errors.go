package booking

import "errors"

var (
	// ErrUnknownField is returned when a field-change event names a field the form does not have
	ErrUnknownField = errors.New("booking: unknown field")

	// ErrNotEditable is returned when a field update arrives after submission started
	ErrNotEditable = errors.New("booking: form is no longer editable")

	// ErrIncomplete is returned by Begin when a required field is empty
	ErrIncomplete = errors.New("booking: required fields missing")

	// ErrSubmissionInFlight is returned when a submit arrives while a previous one is still settling
	ErrSubmissionInFlight = errors.New("booking: submission already in flight")

	// ErrAlreadySubmitted is returned when a submit arrives after the form reached its terminal state
	ErrAlreadySubmitted = errors.New("booking: request already submitted")

	// ErrNotSubmitting is returned by Complete when no submission is in progress
	ErrNotSubmitting = errors.New("booking: no submission in progress")
)
