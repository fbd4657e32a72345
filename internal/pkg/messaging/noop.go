package messaging

import (
	"context"
	"time"
)

// Noop is a Messaging implementation that discards published messages and
// never delivers any. It is useful when a broker is not available.
type Noop struct{}

// NewNoop constructs a no-op messaging client.
func NewNoop() *Noop {
	return &Noop{}
}

// Close is a no-op.
func (*Noop) Close() error { return nil }

// Publish discards the message.
func (*Noop) Publish(ctx context.Context, destination string, _ OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}

	return PublishResult{
		Topic:     destination,
		Timestamp: time.Now(),
	}, nil
}

// Consume blocks until the context is canceled; no messages are delivered.
func (*Noop) Consume(ctx context.Context, _ string, _ Handler, _ ...ConsumeOption) error {
	<-ctx.Done()
	return ctx.Err()
}
