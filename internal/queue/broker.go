package queue

import (
	"context"
)

type Broker interface {
	Publish(ctx context.Context, queueName string, message []byte) error
	Subscribe(ctx context.Context, queueName string, handler MessageHandler) error
	Close() error
}

type MessageHandler func(ctx context.Context, message []byte) error

const (
	QueueProductStatus    = "product-status"
	QueueOrderEvents      = "order-events"
	QueueCatalogImport    = "catalog-import"
	QueueProductStatusDLQ = "product-status-dlq"
	QueueOrderEventsDLQ   = "order-events-dlq"
	QueueCatalogImportDLQ = "catalog-import-dlq"
)
