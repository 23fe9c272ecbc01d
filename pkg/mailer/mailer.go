// Package mailer defines the outbound email transport consumed by the
// fan-out engine. Delivery is best-effort and fire-and-forget: each send may
// fail independently and callers never retry inside one invocation.
package mailer

import "context"

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Transport sends email. Implementations must be safe for concurrent use.
type Transport interface {
	Send(ctx context.Context, message Message) error
}
