package service

import (
	"context"
)

// SigninSuccessMessage is the fixed message attached to every sign-in event.
const SigninSuccessMessage = "Login successfully"

// SigninEvent is reported to the notification sink after a successful sign-in.
//
// Password carries the plaintext password the caller signed in with. The receiving
// endpoint expects it, but it is a known exposure of user secrets; it is empty when
// notification.redactPassword is set.
type SigninEvent struct {
	RequestID string `json:"-"`
	Name      string `json:"name"`
	Password  string `json:"password,omitempty"`
	Message   string `json:"message"`
}

// EventPublisher delivers sign-in events to an external sink.
type EventPublisher interface {
	// PublishSigninEvent makes a single delivery attempt.
	PublishSigninEvent(ctx context.Context, event *SigninEvent) error

	// Close releases any resources held by the publisher
	Close() error
}

// SigninNotifier reports sign-ins without ever failing the caller.
type SigninNotifier interface {
	NotifySignin(ctx context.Context, event *SigninEvent)
}
