package pubsub

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"authgate/internal/domain/service"

	"github.com/pkg/errors"
)

// maxLoggedResponseBytes caps how much of the sink's reply is logged.
const maxLoggedResponseBytes = 4 << 10

// httpPublisher implements EventPublisher by POSTing each event as JSON to an endpoint.
type httpPublisher struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPPublisher creates a publisher that authenticates with the x-api-key header.
func NewHTTPPublisher(endpoint, apiKey string, timeout time.Duration, logger *slog.Logger) service.EventPublisher {
	return &httpPublisher{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// PublishSigninEvent sends one POST. Any transport error or non-2xx status is a failure.
func (p *httpPublisher) PublishSigninEvent(ctx context.Context, event *service.SigninEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	if event.RequestID != "" {
		req.Header.Set("X-Request-Id", event.RequestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	reply, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedResponseBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("notification endpoint returned status %d: %s", resp.StatusCode, reply)
	}

	p.logger.InfoContext(ctx, "[HTTPPublisher] Sign-in event delivered",
		slog.String("name", event.Name),
		slog.Int("status", resp.StatusCode),
		slog.String("response", string(reply)),
	)

	return nil
}

// Close releases idle connections.
func (p *httpPublisher) Close() error {
	p.httpClient.CloseIdleConnections()

	return nil
}
