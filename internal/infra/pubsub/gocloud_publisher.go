package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"authgate/internal/domain/lifecycle"
	"authgate/internal/domain/service"

	"github.com/pkg/errors"
	cdkpubsub "gocloud.dev/pubsub"
	_ "gocloud.dev/pubsub/mempubsub" // mem:// topics
)

// goCloudPublisher publishes to any topic gocloud.dev can open by URL.
type goCloudPublisher struct {
	topic  *cdkpubsub.Topic
	url    string
	logger *slog.Logger
}

// NewGoCloudPublisher opens topicURL, e.g. mem://signins.
func NewGoCloudPublisher(ctx context.Context, topicURL string, logger *slog.Logger) (service.EventPublisher, error) {
	topic, err := cdkpubsub.OpenTopic(ctx, topicURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open topic %s", topicURL)
	}

	logger.Info("gocloud publisher initialized", slog.String("topic_url", topicURL))

	return &goCloudPublisher{topic: topic, url: topicURL, logger: logger}, nil
}

// PublishSigninEvent sends the event body with tracing metadata.
func (p *goCloudPublisher) PublishSigninEvent(ctx context.Context, event *service.SigninEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := p.topic.Send(ctx, &cdkpubsub.Message{
		Body:     data,
		Metadata: eventAttributes(event),
	}); err != nil {
		return errors.Wrapf(err, "send to %s", p.url)
	}

	p.logger.DebugContext(ctx, "[GoCloudPubSub] Sign-in event sent", slog.String("topic_url", p.url))

	return nil
}

// Close shuts the topic down, flushing buffered messages.
func (p *goCloudPublisher) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	return errors.WithStack(p.topic.Shutdown(ctx))
}
