package pubsub

import (
	"context"
	"log/slog"

	"authgate/config"
	"authgate/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noopPublisher is used when no notification provider is configured.
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) PublishSigninEvent(ctx context.Context, event *service.SigninEvent) error {
	p.logger.DebugContext(ctx, "[NoopPubSub] Sign-in notifications disabled, skipping",
		slog.String("name", event.Name),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher creates an EventPublisher based on configuration
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.Notification
	logger := params.Logger

	if cfg == nil || cfg.ResolvedProvider() == "" {
		logger.Info("Notification provider not configured, using no-op publisher")

		return &noopPublisher{logger: logger}, nil
	}

	var publisher service.EventPublisher
	var err error

	switch provider := cfg.ResolvedProvider(); provider {
	case config.NotificationProviderHTTP:
		if cfg.Endpoint == "" {
			return nil, errors.New("endpoint is required for http provider")
		}
		logger.Info("Using HTTP publisher for sign-in notifications",
			slog.String("endpoint", cfg.Endpoint),
		)

		publisher = NewHTTPPublisher(cfg.Endpoint, params.Config.APIKey, cfg.Timeout, logger)

	case config.NotificationProviderGoogle:
		if cfg.ProjectID == "" {
			return nil, errors.New("project ID is required for google provider")
		}
		if cfg.TopicID == "" {
			return nil, errors.New("topic ID is required for google provider")
		}
		logger.Info("Using Google Pub/Sub publisher",
			slog.String("project_id", cfg.ProjectID),
			slog.String("topic_id", cfg.TopicID),
		)

		publisher, err = NewGooglePubSubPublisher(params.Ctx, cfg.ProjectID, cfg.TopicID, logger)
		if err != nil {
			return nil, err
		}

	case config.NotificationProviderGoCloud:
		if cfg.TopicURL == "" {
			return nil, errors.New("topic URL is required for gocloud provider")
		}

		publisher, err = NewGoCloudPublisher(params.Ctx, cfg.TopicURL, logger)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.Errorf("unknown notification provider: %s", provider)
	}

	if !cfg.RedactPassword {
		logger.Warn("Sign-in notifications include the plaintext password; set notification.redactPassword to omit it")
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing EventPublisher")

			return publisher.Close()
		},
	})

	return publisher, nil
}

// Module provides the sign-in notification FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(
		NewEventPublisher,
		NewSigninNotifier,
	),
)
