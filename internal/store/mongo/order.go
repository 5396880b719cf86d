package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		collection: db.Collection(collOrders),
	}
}

type orderDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Customer       string             `bson:"customer"`
	Address        string             `bson:"address,omitempty"`
	Fulfillment    string             `bson:"fulfillment"`
	Total          string             `bson:"total"`
	Details        string             `bson:"details"`
	IdempotencyKey string             `bson:"idempotency_key,omitempty"`
	NotifiedAt     *time.Time         `bson:"notified_at,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
}

func (d orderDoc) toDomain() (domain.Order, error) {
	total, err := decimal.NewFromString(d.Total)
	if err != nil {
		return domain.Order{}, fmt.Errorf("invalid stored total %q: %w", d.Total, err)
	}

	return domain.Order{
		ID:             d.ID,
		Customer:       d.Customer,
		Address:        d.Address,
		Fulfillment:    domain.Fulfillment(d.Fulfillment),
		Total:          total,
		Details:        d.Details,
		IdempotencyKey: d.IdempotencyKey,
		NotifiedAt:     d.NotifiedAt,
		CreatedAt:      d.CreatedAt,
	}, nil
}

// Create inserts the order and assigns its id. A repeated idempotency key
// returns the order persisted by the first attempt instead of a duplicate.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if order.IdempotencyKey != "" {
		var existing orderDoc
		err := r.collection.FindOne(ctx, bson.M{"idempotency_key": order.IdempotencyKey}).Decode(&existing)
		if err == nil {
			found, convErr := existing.toDomain()
			if convErr != nil {
				return convErr
			}
			*order = found
			return nil
		}
		if err != mongo.ErrNoDocuments {
			return fmt.Errorf("failed to check idempotency key: %w", err)
		}
	}

	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()

	doc := orderDoc{
		ID:             order.ID,
		Customer:       order.Customer,
		Address:        order.Address,
		Fulfillment:    string(order.Fulfillment),
		Total:          order.Total.String(),
		Details:        order.Details,
		IdempotencyKey: order.IdempotencyKey,
		CreatedAt:      order.CreatedAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc orderDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	order, err := doc.toDomain()
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *OrderRepository) ListRecent(ctx context.Context, limit int64) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []orderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(docs))
	for _, doc := range docs {
		order, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (r *OrderRepository) MarkNotified(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{"notified_at": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to mark order notified: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("order not found")
	}

	return nil
}
