package queue

import (
	"context"
)

type Broker interface {
	Publish(ctx context.Context, queueName string, message []byte) error
	Subscribe(ctx context.Context, queueName string, handler MessageHandler) error
	// IsClosed reports whether the underlying connection is gone.
	IsClosed() bool
	Close() error
}

type MessageHandler func(ctx context.Context, message []byte) error

const (
	QueueMenuSync     = "pos-menu-sync"
	QueueOrderPull    = "pos-order-pull"
	QueueMenuSyncDLQ  = "pos-menu-sync-dlq"
	QueueOrderPullDLQ = "pos-order-pull-dlq"
)
