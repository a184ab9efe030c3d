package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wolfman30/paramount-detail-site/internal/booking"
	"github.com/wolfman30/paramount-detail-site/internal/observability/metrics"
	"github.com/wolfman30/paramount-detail-site/internal/toast"
	"github.com/wolfman30/paramount-detail-site/pkg/logging"
)

// Notifier is told about every request that reaches Submitted.
type Notifier interface {
	NotifyBookingRequest(ctx context.Context, viewID string, req booking.Request, at time.Time) error
}

// completeAttempts bounds the store updates that move a forwarded request to
// Submitted before the form is rolled back to Editing.
const completeAttempts = 3

// Outcome describes a submit call that made it past the preconditions.
type Outcome struct {
	View          State
	Forwarded     bool
	ForwardFailed bool
}

// Service drives page views through the store.
type Service struct {
	store          Store
	defaultPackage string
	forwarder      booking.Forwarder
	notifier       Notifier
	metrics        *metrics.BookingMetrics
	logger         *logging.Logger
	now            func() time.Time
	retryDelay     time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithForwarder sets the external submission client. Leave it unset when no
// endpoint is configured.
func WithForwarder(f booking.Forwarder) Option {
	return func(s *Service) {
		s.forwarder = f
	}
}

// WithNotifier sets the owner notifier.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithMetrics sets the booking metrics.
func WithMetrics(m *metrics.BookingMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates the page-view service.
func NewService(store Store, defaultPackage string, opts ...Option) *Service {
	s := &Service{
		store:          store,
		defaultPackage: defaultPackage,
		logger:         logging.Default(),
		now:            time.Now,
		retryDelay:     50 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewView creates and stores a fresh page view.
func (s *Service) NewView(ctx context.Context) (State, error) {
	st := NewState(s.defaultPackage, s.now())
	if err := s.store.Create(ctx, st); err != nil {
		return State{}, fmt.Errorf("session: create view: %w", err)
	}
	s.metrics.ObserveView()
	return st, nil
}

// View returns a stored page view.
func (s *Service) View(ctx context.Context, id string) (State, error) {
	if id == "" {
		return State{}, ErrViewNotFound
	}
	return s.store.Get(ctx, id)
}

// ViewOrNew returns the page view for id, or a fresh one when id is empty,
// unknown or expired.
func (s *Service) ViewOrNew(ctx context.Context, id string) (State, error) {
	st, err := s.View(ctx, id)
	if errors.Is(err, ErrViewNotFound) {
		return s.NewView(ctx)
	}
	return st, err
}

// UpdateField applies one field-change event.
func (s *Service) UpdateField(ctx context.Context, id, field, value string) (State, error) {
	return s.store.Update(ctx, id, func(st *State) error {
		return st.Form.Update(field, value)
	})
}

// UpdateFields applies every field of req in one step, in form order.
func (s *Service) UpdateFields(ctx context.Context, id string, req booking.Request) (State, error) {
	return s.store.Update(ctx, id, func(st *State) error {
		for _, f := range []struct{ name, value string }{
			{booking.FieldName, req.Name},
			{booking.FieldPhone, req.Phone},
			{booking.FieldAddress, req.Address},
			{booking.FieldDate, req.Date},
			{booking.FieldPackage, req.Package},
		} {
			if err := st.Form.Update(f.name, f.value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Submit moves the form Editing -> Submitting, forwards the request when a
// forwarder is set, then moves it to Submitted and shows the toast. Only the
// forward happens outside the store's atomic updates. A failed forward still
// ends in Submitted.
func (s *Service) Submit(ctx context.Context, id string) (Outcome, error) {
	var req booking.Request
	st, err := s.store.Update(ctx, id, func(st *State) error {
		r, err := st.Form.Begin()
		if err != nil {
			return err
		}
		req = r
		return nil
	})
	if err != nil {
		s.metrics.ObserveSubmission(rejectedOutcome(err))
		return Outcome{View: st}, err
	}

	// The request is committed from here on; a client disconnect must not
	// leave the view stuck in Submitting.
	ctx = context.WithoutCancel(ctx)
	logger := s.logger.With("view_id", id, "package", req.Package)

	out := Outcome{}
	if s.forwarder != nil {
		start := s.now()
		ferr := s.forwarder.Forward(ctx, req)
		s.metrics.ObserveForwardLatency(ferr == nil, s.now().Sub(start).Seconds())
		out.Forwarded = true
		if ferr != nil {
			out.ForwardFailed = true
			logger.Warn("booking forward failed", "error", ferr)
		}
	}

	at := s.now()
	st, err = s.complete(ctx, id, at)
	if err != nil {
		logger.Error("booking complete failed", "error", err)
		s.metrics.ObserveSubmission("error")
		if rolled, rerr := s.store.Update(ctx, id, func(st *State) error {
			return st.Form.Abort()
		}); rerr == nil {
			st = rolled
			logger.Warn("booking returned to editing")
		} else {
			logger.Error("booking rollback failed", "error", rerr)
		}
		return Outcome{View: st}, fmt.Errorf("session: complete submission: %w", err)
	}
	out.View = st

	if out.ForwardFailed {
		s.metrics.ObserveSubmission(metrics.OutcomeForwardFailed)
	} else {
		s.metrics.ObserveSubmission(metrics.OutcomeSubmitted)
	}
	logger.Info("booking request submitted", "forwarded", out.Forwarded, "forward_failed", out.ForwardFailed)

	if s.notifier != nil {
		nerr := s.notifier.NotifyBookingRequest(ctx, id, req, at)
		s.metrics.ObserveNotification(nerr == nil)
		if nerr != nil {
			logger.Warn("booking notification failed", "error", nerr)
		}
	}
	return out, nil
}

// complete moves Submitting -> Submitted and shows the toast, retrying
// transient store failures. A missing view or a form no longer in
// Submitting is final.
func (s *Service) complete(ctx context.Context, id string, at time.Time) (State, error) {
	var (
		st  State
		err error
	)
	for attempt := 0; attempt < completeAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * s.retryDelay)
		}
		st, err = s.store.Update(ctx, id, func(st *State) error {
			if err := st.Form.Complete(at); err != nil {
				return err
			}
			st.Toast.ShowNotification(toast.RequestSent)
			return nil
		})
		if err == nil || errors.Is(err, ErrViewNotFound) || errors.Is(err, booking.ErrNotSubmitting) {
			return st, err
		}
	}
	return st, err
}

// CloseToast clears the toast slot.
func (s *Service) CloseToast(ctx context.Context, id string) (State, error) {
	return s.store.Update(ctx, id, func(st *State) error {
		st.Toast.Close()
		return nil
	})
}

// ShowToast overwrites the toast slot.
func (s *Service) ShowToast(ctx context.Context, id string, n toast.Notification) (State, error) {
	return s.store.Update(ctx, id, func(st *State) error {
		st.Toast.ShowNotification(n)
		return nil
	})
}

// ToggleMenu flips the mobile menu.
func (s *Service) ToggleMenu(ctx context.Context, id string) (State, error) {
	return s.store.Update(ctx, id, func(st *State) error {
		st.MenuOpen = !st.MenuOpen
		return nil
	})
}

// CloseMenu closes the mobile menu, as a nav selection does.
func (s *Service) CloseMenu(ctx context.Context, id string) (State, error) {
	return s.store.Update(ctx, id, func(st *State) error {
		st.MenuOpen = false
		return nil
	})
}

func rejectedOutcome(err error) string {
	switch {
	case errors.Is(err, booking.ErrIncomplete):
		return metrics.OutcomeIncomplete
	case errors.Is(err, booking.ErrSubmissionInFlight):
		return metrics.OutcomeInFlight
	case errors.Is(err, booking.ErrAlreadySubmitted):
		return metrics.OutcomeDuplicate
	case errors.Is(err, ErrViewNotFound):
		return metrics.OutcomeNotFound
	default:
		return "error"
	}
}
