// Package forwarder posts booking requests to the optional external
// submission endpoint (Formspree or the business's own API).
package forwarder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/paramount-detail-site/internal/booking"
	"github.com/wolfman30/paramount-detail-site/pkg/logging"
)

var tracer = otel.Tracer("paramount.internal.forwarder")

// ErrEndpointRejected wraps non-2xx responses from the endpoint.
var ErrEndpointRejected = errors.New("forwarder: endpoint rejected request")

// Client sends one POST per booking request. It never retries.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *logging.Logger
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout bounds how long one submission may take to settle. It sets the
// timeout on a copy, so a client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d <= 0 {
			return
		}
		hc := http.Client{}
		if c.httpClient != nil {
			hc = *c.httpClient
		}
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient returns nil when endpoint is empty, which callers treat as "not configured".
func NewClient(endpoint string, opts ...ClientOption) *Client {
	if endpoint == "" {
		return nil
	}
	c := &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ booking.Forwarder = (*Client)(nil)

// Forward posts the request as JSON and waits for the response to settle.
// The response body is drained and ignored.
func (c *Client) Forward(ctx context.Context, req booking.Request) error {
	ctx, span := tracer.Start(ctx, "forwarder.submit", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("booking.package", req.Package),
		attribute.String("http.url", c.endpoint),
	)

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("forwarder: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("forwarder: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return fmt.Errorf("forwarder: request failed: %w", err)
	}
	defer resp.Body.Close()
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("%w: status %d: %s", ErrEndpointRejected, resp.StatusCode, bytes.TrimSpace(snippet))
		span.RecordError(err)
		span.SetStatus(codes.Error, "endpoint rejected")
		return err
	}

	c.logger.Debug("booking request forwarded", "status", resp.StatusCode, "package", req.Package)
	return nil
}
