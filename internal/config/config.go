package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string
	LogFormat     string

	// ContentFile optionally points at a YAML file replacing the built-in site copy.
	ContentFile string

	// Booking collaborators. Both are optional; an embed URL bypasses the form entirely.
	BookingEmbedURL       string
	BookingSubmitEndpoint string
	BookingSubmitTimeout  time.Duration
	BookingDefaultPackage string

	// Page-view state
	SessionStore  string
	SessionTTL    time.Duration
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	RateLimitRPS       float64
	RateLimitBurst     int
	CORSAllowedOrigins []string

	// Operator email notifications
	NotifyEmailProvider string
	NotifyEmailTo       []string
	SendGridAPIKey      string
	SendGridFromEmail   string
	NotifyFromName      string
	SESFromEmail        string
	SESConfigurationSet string

	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),

		ContentFile: getEnv("CONTENT_FILE", ""),

		BookingEmbedURL:       strings.TrimSpace(getEnv("BOOKING_EMBED_URL", "")),
		BookingSubmitEndpoint: strings.TrimSpace(getEnv("BOOKING_SUBMIT_ENDPOINT", "")),
		BookingSubmitTimeout:  getEnvAsDuration("BOOKING_SUBMIT_TIMEOUT", 10*time.Second),
		BookingDefaultPackage: getEnv("BOOKING_DEFAULT_PACKAGE", "Standard"),

		SessionStore:  strings.ToLower(strings.TrimSpace(getEnv("SESSION_STORE", "memory"))),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", 30*time.Minute),
		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 5),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),

		NotifyEmailProvider: strings.ToLower(strings.TrimSpace(getEnv("NOTIFY_EMAIL_PROVIDER", "none"))),
		NotifyEmailTo:       getEnvAsList("NOTIFY_EMAIL_TO"),
		SendGridAPIKey:      getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail:   getEnv("SENDGRID_FROM_EMAIL", ""),
		NotifyFromName:      getEnv("NOTIFY_FROM_NAME", "Paramount Mobile Detail"),
		SESFromEmail:        getEnv("SES_FROM_EMAIL", ""),
		SESConfigurationSet: getEnv("SES_CONFIGURATION_SET", ""),

		AWSRegion:           getEnv("AWS_REGION", "us-west-2"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),
	}
}

// UseEmbeddedScheduler reports whether the booking section renders the third-party embed.
func (c *Config) UseEmbeddedScheduler() bool {
	return c.BookingEmbedURL != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping blanks.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
