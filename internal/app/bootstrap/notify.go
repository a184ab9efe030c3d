package bootstrap

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	appconfig "github.com/wolfman30/paramount-detail-site/internal/config"
	"github.com/wolfman30/paramount-detail-site/internal/notify"
	"github.com/wolfman30/paramount-detail-site/pkg/logging"
)

// AWSConfigLoader builds the AWS SDK config; cmd/mainconfig.LoadAWSConfig in production.
type AWSConfigLoader func(ctx context.Context, cfg *appconfig.Config) (aws.Config, error)

// BuildEmailSender selects the owner-notification sender from
// NOTIFY_EMAIL_PROVIDER. "none" returns nil, which disables notifications.
func BuildEmailSender(ctx context.Context, cfg *appconfig.Config, loadAWS AWSConfigLoader, logger *logging.Logger) (notify.EmailSender, error) {
	switch cfg.NotifyEmailProvider {
	case "", "none":
		return nil, nil
	case "stub":
		return notify.NewStubEmailSender(logger), nil
	case "sendgrid":
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.NotifyFromName,
		}, logger)
		if sender == nil {
			return nil, fmt.Errorf("bootstrap: SENDGRID_API_KEY required for sendgrid notifications")
		}
		return sender, nil
	case "ses":
		if cfg.SESFromEmail == "" {
			return nil, fmt.Errorf("bootstrap: SES_FROM_EMAIL required for ses notifications")
		}
		if loadAWS == nil {
			return nil, fmt.Errorf("bootstrap: aws config loader required for ses notifications")
		}
		awsCfg, err := loadAWS(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: load aws config: %w", err)
		}
		return notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail:        cfg.SESFromEmail,
			FromName:         cfg.NotifyFromName,
			ConfigurationSet: cfg.SESConfigurationSet,
		}, logger), nil
	default:
		return nil, fmt.Errorf("bootstrap: unknown NOTIFY_EMAIL_PROVIDER %q", cfg.NotifyEmailProvider)
	}
}

// BuildNotifier wraps the sender in the booking notification service.
// It returns nil when notifications are disabled.
func BuildNotifier(sender notify.EmailSender, cfg *appconfig.Config, businessName string, logger *logging.Logger) *notify.Service {
	if sender == nil || len(cfg.NotifyEmailTo) == 0 {
		return nil
	}
	return notify.NewService(sender, cfg.NotifyEmailTo, businessName, logger)
}
