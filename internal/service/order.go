package service

import (
	"context"
	"fmt"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type OrderService struct {
	orderRepo repo.OrderRepository
	logger    *zap.SugaredLogger
}

func NewOrderService(orderRepo repo.OrderRepository, logger *zap.SugaredLogger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

func (s *OrderService) ListRecent(ctx context.Context, limit int64) ([]domain.Order, error) {
	orders, err := s.orderRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// ProcessOrderCreated is the worker side of the order-events queue: it marks
// the order as notified so the admin dashboard can tell which orders already
// reached the kitchen channel.
func (s *OrderService) ProcessOrderCreated(ctx context.Context, event domain.OrderCreatedEvent) error {
	orderID, err := primitive.ObjectIDFromHex(event.OrderID)
	if err != nil {
		return fmt.Errorf("invalid order ID: %w", err)
	}

	if err := s.orderRepo.MarkNotified(ctx, orderID); err != nil {
		s.logger.Errorw("failed to mark order notified", "order_id", event.OrderID, "error", err)
		return err
	}

	s.logger.Infow("new order received",
		"order_id", event.OrderID,
		"customer", event.Customer,
		"fulfillment", event.Fulfillment,
		"total", event.Total,
	)

	return nil
}
