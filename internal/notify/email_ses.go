package notify

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/wolfman30/paramount-detail-site/pkg/logging"
)

// sesAPI is the slice of the SES v2 client the sender uses.
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESSender sends notifications through Amazon SES v2.
type SESSender struct {
	client           sesAPI
	from             string
	configurationSet string
	logger           *logging.Logger
}

// SESConfig holds configuration for AWS SES. ConfigurationSet is optional;
// when set, the booking tags reach its event destinations.
type SESConfig struct {
	FromEmail        string
	FromName         string
	ConfigurationSet string
}

// NewSESSender returns nil without a client.
func NewSESSender(client *sesv2.Client, cfg SESConfig, logger *logging.Logger) *SESSender {
	if client == nil {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FromName == "" {
		cfg.FromName = DefaultFromName
	}
	return &SESSender{
		client:           client,
		from:             (&mail.Address{Name: cfg.FromName, Address: cfg.FromEmail}).String(),
		configurationSet: cfg.ConfigurationSet,
		logger:           logger,
	}
}

func utf8Content(data string) *types.Content {
	return &types.Content{Data: aws.String(data), Charset: aws.String("UTF-8")}
}

// input builds the SendEmail request with text and HTML parts and the
// booking tags.
func (s *SESSender) input(msg EmailMessage) (*sesv2.SendEmailInput, error) {
	html, err := msg.HTML()
	if err != nil {
		return nil, err
	}
	tags := []types.MessageTag{{Name: aws.String("kind"), Value: aws.String(tagValue(bookingCategory))}}
	if msg.ViewID != "" {
		tags = append(tags, types.MessageTag{Name: aws.String("view_id"), Value: aws.String(tagValue(msg.ViewID))})
	}
	if msg.Package != "" {
		tags = append(tags, types.MessageTag{Name: aws.String("package"), Value: aws.String(tagValue(msg.Package))})
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: utf8Content(msg.Subject),
				Body: &types.Body{
					Text: utf8Content(msg.Body),
					Html: utf8Content(html),
				},
			},
		},
		EmailTags: tags,
	}
	if s.configurationSet != "" {
		input.ConfigurationSetName = aws.String(s.configurationSet)
	}
	return input, nil
}

// Send delivers msg via SES.
func (s *SESSender) Send(ctx context.Context, msg EmailMessage) error {
	if s.client == nil {
		return fmt.Errorf("notify: SES client not configured")
	}
	input, err := s.input(msg)
	if err != nil {
		return err
	}

	output, err := s.client.SendEmail(ctx, input)
	if err != nil {
		s.logger.Error("SES send failed", "error", err, "to", msg.To, "view_id", msg.ViewID)
		return fmt.Errorf("notify: SES send failed: %w", err)
	}

	s.logger.Info("booking email sent via SES", "to", msg.To, "view_id", msg.ViewID, "message_id", aws.ToString(output.MessageId))
	return nil
}

var _ EmailSender = (*SESSender)(nil)
