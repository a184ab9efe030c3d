// Package mainconfig builds the AWS SDK config for the site binary.
package mainconfig

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	appconfig "github.com/wolfman30/paramount-detail-site/internal/config"
)

// LoadAWSConfig builds the SDK config used by the SES notification sender.
// Static keys take precedence over the default credential chain, and
// AWS_ENDPOINT_OVERRIDE points SES at a local mail sink.
func LoadAWSConfig(ctx context.Context, cfg *appconfig.Config) (aws.Config, error) {
	region := strings.TrimSpace(cfg.AWSRegion)
	if region == "" {
		return aws.Config{}, fmt.Errorf("mainconfig: AWS_REGION required for ses notifications")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	key, secret := strings.TrimSpace(cfg.AWSAccessKeyID), strings.TrimSpace(cfg.AWSSecretAccessKey)
	if key != "" && secret != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("mainconfig: load aws config: %w", err)
	}
	if endpoint := strings.TrimSpace(cfg.AWSEndpointOverride); endpoint != "" {
		awsCfg.BaseEndpoint = aws.String(endpoint)
	}
	return awsCfg, nil
}
