package pubsub

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"authgate/config"
	"authgate/internal/domain/service"

	"go.uber.org/fx"
)

const defaultNotifyTimeout = 5 * time.Second

// signinNotifier makes exactly one bounded delivery attempt per sign-in and only logs failures.
type signinNotifier struct {
	publisher service.EventPublisher
	timeout   time.Duration
	async     bool
	redact    bool
	logger    *slog.Logger

	inflight sync.WaitGroup
}

// NotifierParams holds dependencies for SigninNotifier, injected by Fx
type NotifierParams struct {
	fx.In

	Lc        fx.Lifecycle
	Publisher service.EventPublisher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewSigninNotifier wraps the configured publisher with timeout and failure isolation.
func NewSigninNotifier(params NotifierParams) service.SigninNotifier {
	n := &signinNotifier{
		publisher: params.Publisher,
		timeout:   defaultNotifyTimeout,
		logger:    params.Logger,
	}

	if cfg := params.Config.Notification; cfg != nil {
		if cfg.Timeout > 0 {
			n.timeout = cfg.Timeout
		}
		n.async = cfg.Mode == config.NotificationModeAsync
		n.redact = cfg.RedactPassword
	}

	if n.async && params.Lc != nil {
		params.Lc.Append(fx.Hook{
			OnStop: n.drain,
		})
	}

	return n
}

// NotifySignin returns once the attempt resolves, or immediately in async mode.
func (n *signinNotifier) NotifySignin(ctx context.Context, event *service.SigninEvent) {
	ev := *event
	if n.redact {
		ev.Password = ""
	}

	if !n.async {
		n.deliver(ctx, &ev)

		return
	}

	n.inflight.Add(1)
	go func() {
		defer n.inflight.Done()
		n.deliver(context.WithoutCancel(ctx), &ev)
	}()
}

func (n *signinNotifier) deliver(ctx context.Context, event *service.SigninEvent) {
	logger := n.logger.With(slog.String("request_id", event.RequestID))

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "Sign-in notification panicked",
				slog.String("panic", fmt.Sprint(r)),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.publisher.PublishSigninEvent(ctx, event); err != nil {
		logger.WarnContext(ctx, "Sign-in notification failed",
			slog.String("name", event.Name),
			slog.Any("error", err),
		)
	}
}

// drain waits for in-flight async deliveries before the publisher is closed.
func (n *signinNotifier) drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		n.logger.Warn("Gave up waiting for in-flight sign-in notifications")

		return nil
	}
}
