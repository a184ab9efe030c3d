package site

import (
	"errors"
	"net/http"

	"github.com/wolfman30/paramount-detail-site/internal/booking"
	"github.com/wolfman30/paramount-detail-site/internal/content"
	"github.com/wolfman30/paramount-detail-site/internal/session"
)

// ErrBookingEmbedded is returned by the form endpoints when the third-party
// scheduler replaces the form.
var ErrBookingEmbedded = errors.New("site: booking form disabled, scheduler embedded")

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrViewNotFound), errors.Is(err, ErrBookingEmbedded):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrSubmissionInFlight),
		errors.Is(err, booking.ErrAlreadySubmitted),
		errors.Is(err, booking.ErrNotEditable):
		return http.StatusConflict
	case errors.Is(err, booking.ErrIncomplete):
		return http.StatusUnprocessableEntity
	case errors.Is(err, booking.ErrUnknownField), errors.Is(err, content.ErrUnknownPackage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
