// Package notify emails the business owner when a booking request comes in.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wolfman30/paramount-detail-site/internal/booking"
	"github.com/wolfman30/paramount-detail-site/pkg/logging"
)

var tracer = otel.Tracer("paramount.internal.notify")

const (
	bookingSubjectTemplate = `New booking request - {{.Request.Name}} ({{.Request.Package}})`

	bookingBodyTemplate = `{{.Request.Name}} asked for a {{.Request.Package}} detail.

Name: {{.Request.Name}}
Phone: {{.Request.Phone}}
Address: {{.Request.Address}}
Preferred date/time: {{.Request.Date}}
Package: {{.Request.Package}}
Received: {{.Received}}
View: {{.ViewID}}

Text the customer to confirm the appointment.

- {{.Business}}`
)

// BookingNotice is the data handed to the email templates.
type BookingNotice struct {
	Request  booking.Request
	ViewID   string
	Received string
	Business string
}

// Service sends owner notifications.
type Service struct {
	email      EmailSender
	recipients []string
	business   string
	renderer   Renderer
	logger     *logging.Logger
}

// NewService creates a notification service. A nil sender or an empty
// recipient list turns every notification into a no-op.
func NewService(email EmailSender, recipients []string, business string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if business == "" {
		business = DefaultFromName
	}
	var cleaned []string
	for _, r := range recipients {
		if r = strings.TrimSpace(r); r != "" {
			cleaned = append(cleaned, r)
		}
	}
	return &Service{
		email:      email,
		recipients: cleaned,
		business:   business,
		logger:     logger,
	}
}

// Enabled reports whether notifications will actually be sent.
func (s *Service) Enabled() bool {
	return s != nil && s.email != nil && len(s.recipients) > 0
}

// NotifyBookingRequest emails every configured recipient. Every recipient is
// attempted; the returned error joins the individual failures.
func (s *Service) NotifyBookingRequest(ctx context.Context, viewID string, req booking.Request, at time.Time) error {
	if !s.Enabled() {
		if s != nil {
			s.logger.Debug("notify: email not configured, skipping booking notification")
		}
		return nil
	}

	ctx, span := tracer.Start(ctx, "notify.booking_request")
	defer span.End()
	span.SetAttributes(
		attribute.String("view.id", viewID),
		attribute.Int("notify.recipients", len(s.recipients)),
	)

	notice := BookingNotice{
		Request:  req,
		ViewID:   viewID,
		Received: at.Format("Monday, January 2 at 3:04 PM MST"),
		Business: s.business,
	}
	subject, err := s.renderer.Render("booking_subject", bookingSubjectTemplate, notice)
	if err != nil {
		return err
	}
	body, err := s.renderer.Render("booking_body", bookingBodyTemplate, notice)
	if err != nil {
		return err
	}

	var errs []error
	for _, recipient := range s.recipients {
		msg := EmailMessage{
			To:            recipient,
			Subject:       subject,
			Body:          body,
			ViewID:        viewID,
			Package:       req.Package,
			CustomerPhone: req.Phone,
		}
		if err := s.email.Send(ctx, msg); err != nil {
			s.logger.Error("notify: failed to send email", "error", err, "to", recipient)
			errs = append(errs, err)
			continue
		}
		s.logger.Info("notify: booking email sent", "to", recipient, "view_id", viewID)
	}

	if len(errs) > 0 {
		err := fmt.Errorf("notify: %d notification(s) failed: %w", len(errs), errors.Join(errs...))
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return err
	}
	return nil
}
