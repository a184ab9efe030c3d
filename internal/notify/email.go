package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/wolfman30/paramount-detail-site/pkg/logging"
)

// DefaultFromName is used when a sender is configured without a display name.
const DefaultFromName = "Paramount Mobile Detail"

// bookingCategory labels every booking email at the provider.
const bookingCategory = "booking-request"

// EmailSender delivers one owner notification.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailMessage is one booking notification for one recipient.
type EmailMessage struct {
	To      string
	Subject string
	Body    string

	ViewID        string
	Package       string
	CustomerPhone string
}

var htmlLayout = template.Must(template.New("booking_html").Parse(
	`<pre style="font-family:inherit;white-space:pre-wrap">{{.Body}}</pre>` +
		`{{with .SMS}}<p><a href="{{.}}">Text {{$.Phone}}</a></p>{{end}}`))

// HTML renders the body with a tap-to-text link for the customer's phone.
func (m EmailMessage) HTML() (string, error) {
	var buf bytes.Buffer
	err := htmlLayout.Execute(&buf, struct {
		Body  string
		Phone string
		SMS   template.URL
	}{m.Body, m.CustomerPhone, smsHref(m.CustomerPhone)})
	if err != nil {
		return "", fmt.Errorf("notify: render html body: %w", err)
	}
	return buf.String(), nil
}

// smsHref keeps only digits and a leading plus, so the result is always a
// safe sms: URL. It is empty when nothing dialable remains.
func smsHref(phone string) template.URL {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	digits := strings.TrimPrefix(b.String(), "+")
	if len(digits) < 7 {
		return ""
	}
	return template.URL("sms:" + b.String())
}

// SendGridSender sends notifications through the SendGrid v3 API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	logger    *logging.Logger
}

// SendGridConfig holds configuration for SendGrid.
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// NewSendGridSender returns nil without an API key.
func NewSendGridSender(cfg SendGridConfig, logger *logging.Logger) *SendGridSender {
	if cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FromName == "" {
		cfg.FromName = DefaultFromName
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}
}

// message builds the v3 payload: text and HTML parts, the booking category
// and the view id as a custom arg for the activity feed.
func (s *SendGridSender) message(msg EmailMessage) (*mail.SGMailV3, error) {
	html, err := msg.HTML()
	if err != nil {
		return nil, err
	}
	m := mail.NewV3MailInit(
		mail.NewEmail(s.fromName, s.fromEmail),
		msg.Subject,
		mail.NewEmail("", msg.To),
		mail.NewContent("text/plain", msg.Body),
		mail.NewContent("text/html", html),
	)
	m.AddCategories(bookingCategory)
	if msg.Package != "" {
		m.AddCategories(tagValue(msg.Package))
	}
	if msg.ViewID != "" {
		m.SetCustomArg("view_id", msg.ViewID)
	}
	return m, nil
}

// Send delivers msg via SendGrid.
func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	if s.client == nil {
		return fmt.Errorf("notify: sendgrid client not configured")
	}
	message, err := s.message(msg)
	if err != nil {
		return err
	}

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		s.logger.Error("sendgrid send failed", "error", err, "to", msg.To, "view_id", msg.ViewID)
		return fmt.Errorf("notify: sendgrid send failed: %w", err)
	}
	if response.StatusCode >= 400 {
		s.logger.Error("sendgrid returned error status", "status", response.StatusCode, "body", response.Body, "to", msg.To)
		return fmt.Errorf("notify: sendgrid returned status %d", response.StatusCode)
	}

	s.logger.Info("booking email sent via sendgrid", "to", msg.To, "view_id", msg.ViewID, "status", response.StatusCode)
	return nil
}

// StubEmailSender logs and records notifications instead of sending them.
type StubEmailSender struct {
	logger *logging.Logger

	mu   sync.Mutex
	sent []EmailMessage
}

func NewStubEmailSender(logger *logging.Logger) *StubEmailSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubEmailSender{logger: logger}
}

// Send records msg.
func (s *StubEmailSender) Send(ctx context.Context, msg EmailMessage) error {
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	s.logger.Info("stub email sender: booking email recorded", "to", msg.To, "view_id", msg.ViewID, "package", msg.Package)
	return nil
}

// Sent returns a copy of every recorded message, oldest first.
func (s *StubEmailSender) Sent() []EmailMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]EmailMessage(nil), s.sent...)
}

// tagValue lowercases v and replaces anything outside [a-z0-9_-] with '-',
// which satisfies both SendGrid categories and SES tag values.
func tagValue(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '-'
		}
	}, v)
}

var (
	_ EmailSender = (*SendGridSender)(nil)
	_ EmailSender = (*StubEmailSender)(nil)
)
