package ports

import (
	"context"
)

// Notifier queues a notification for out-of-process delivery to the given
// email address. Publishing is fire-and-forget from the handler's point of
// view: a worker drains the queue and sends the actual emails, so a slow mail
// provider never holds an order transaction open.
type Notifier interface {
	Notify(ctx context.Context, email, message string) error
}
