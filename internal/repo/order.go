package repo

import (
	"context"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderRepository interface {
	// Create persists the order and assigns its id. When the idempotency key
	// matches an existing order, that order is returned instead of inserting
	// a duplicate.
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	ListRecent(ctx context.Context, limit int64) ([]domain.Order, error)
	MarkNotified(ctx context.Context, id primitive.ObjectID) error
}
