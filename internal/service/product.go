package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/catalog"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/queue"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/repo"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/store/mongo"
	"go.uber.org/zap"
)

type ProductService struct {
	productRepo repo.ProductRepository
	auditRepo   repo.StatusAuditRepository
	store       *catalog.Store
	broker      queue.Broker
	storage     *mongo.Storage
	logger      *zap.SugaredLogger
}

func NewProductService(
	productRepo repo.ProductRepository,
	auditRepo repo.StatusAuditRepository,
	store *catalog.Store,
	broker queue.Broker,
	storage *mongo.Storage,
	logger *zap.SugaredLogger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		auditRepo:   auditRepo,
		store:       store,
		broker:      broker,
		storage:     storage,
		logger:      logger,
	}
}

// UpdateStatus flips availability on the storefront immediately and queues
// the durable write. If the event cannot be queued the snapshot change is
// reverted with the inverse apply, so the projection never drifts from what
// will actually be persisted.
func (s *ProductService) UpdateStatus(ctx context.Context, productID string, newStatus domain.ProductStatus, reason, userID string) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to find product: %w", err)
	}

	oldStatus, applied := s.store.ApplyStatus(productID, newStatus)
	if !applied {
		oldStatus = product.Status
	}

	event := domain.ProductStatusEvent{
		EventType: domain.EventProductStatusChanged,
		ProductID: productID,
		OldStatus: product.Status,
		NewStatus: newStatus,
		Reason:    reason,
		UserID:    userID,
		Timestamp: time.Now(),
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		s.revertStatus(productID, oldStatus, applied)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := s.broker.Publish(ctx, queue.QueueProductStatus, eventBytes); err != nil {
		s.revertStatus(productID, oldStatus, applied)
		s.logger.Errorw("failed to publish status change event", "product_id", productID, "error", err)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	s.logger.Infow("product status change queued",
		"product_id", productID,
		"old_status", product.Status,
		"new_status", newStatus,
	)

	return nil
}

func (s *ProductService) revertStatus(productID string, oldStatus domain.ProductStatus, applied bool) {
	if applied {
		s.store.ApplyStatus(productID, oldStatus)
	}
}

// ProcessStatusEvent is the worker side: persist the status and the audit
// record in one transaction.
func (s *ProductService) ProcessStatusEvent(ctx context.Context, event domain.ProductStatusEvent) error {
	session, err := s.storage.StartSession()
	if err != nil {
		s.logger.Errorw("failed to start session", "product_id", event.ProductID, "error", err)
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	if err := session.StartTransaction(); err != nil {
		s.logger.Errorw("failed to start transaction", "product_id", event.ProductID, "error", err)
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	if err := s.productRepo.UpdateStatus(ctx, event.ProductID, event.NewStatus); err != nil {
		s.logger.Errorw("failed to update product status", "product_id", event.ProductID, "error", err)
		session.AbortTransaction(ctx)
		return fmt.Errorf("failed to update product status: %w", err)
	}

	audit := &domain.StatusAudit{
		ProductID: event.ProductID,
		EventType: event.EventType,
		OldStatus: event.OldStatus,
		NewStatus: event.NewStatus,
		Reason:    event.Reason,
		UserID:    event.UserID,
		Timestamp: event.Timestamp,
	}

	if err := s.auditRepo.Create(ctx, audit); err != nil {
		s.logger.Errorw("failed to create audit record", "product_id", event.ProductID, "error", err)
		session.AbortTransaction(ctx)
		return fmt.Errorf("failed to create audit record: %w", err)
	}

	if err := session.CommitTransaction(ctx); err != nil {
		s.logger.Errorw("failed to commit transaction", "product_id", event.ProductID, "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	// converge the snapshot in case the optimistic apply was lost (e.g.
	// the API restarted between publish and consume)
	s.store.ApplyStatus(event.ProductID, event.NewStatus)

	s.logger.Infow("product status updated", "product_id", event.ProductID, "new_status", event.NewStatus)

	return nil
}

func (s *ProductService) GetByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

func (s *ProductService) GetAudit(ctx context.Context, productID string, limit int) ([]domain.StatusAudit, error) {
	audits, err := s.auditRepo.GetByProductID(ctx, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get product audit: %w", err)
	}

	return audits, nil
}
