package queue

import "context"

// Client enqueues score refresh requests for workers.
type Client interface {
	Send(ctx context.Context, msg Message) error
}
