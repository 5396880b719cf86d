package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/parser"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/queue"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/repo"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/store/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ImportService queues and executes catalog imports from a Google Sheet.
// The import replaces the whole catalog in one transaction, so a half-parsed
// sheet never reaches the storefront.
type ImportService struct {
	taskRepo     repo.ImportTaskRepository
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	catalog      *CatalogService
	parser       *parser.GoogleSheetsParser
	broker       queue.Broker
	storage      *mongo.Storage
	logger       *zap.SugaredLogger
}

func NewImportService(
	taskRepo repo.ImportTaskRepository,
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	catalog *CatalogService,
	parser *parser.GoogleSheetsParser,
	broker queue.Broker,
	storage *mongo.Storage,
	logger *zap.SugaredLogger,
) *ImportService {
	return &ImportService{
		taskRepo:     taskRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		catalog:      catalog,
		parser:       parser,
		broker:       broker,
		storage:      storage,
		logger:       logger,
	}
}

func (s *ImportService) CreateImportTask(ctx context.Context, spreadsheetID, restaurantName string) (primitive.ObjectID, error) {
	task := &domain.ImportTask{
		Status:         domain.ImportQueued,
		SpreadsheetID:  spreadsheetID,
		RestaurantName: restaurantName,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create import task: %w", err)
	}

	message := domain.CatalogImportMessage{
		TaskID:         task.ID.Hex(),
		SpreadsheetID:  spreadsheetID,
		RestaurantName: restaurantName,
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := s.broker.Publish(ctx, queue.QueueCatalogImport, messageBytes); err != nil {
		_ = s.taskRepo.UpdateStatus(ctx, task.ID, domain.ImportFailed, err.Error())
		return primitive.NilObjectID, fmt.Errorf("failed to publish message: %w", err)
	}

	s.logger.Infow("import task created", "task_id", task.ID.Hex(), "spreadsheet_id", spreadsheetID)

	return task.ID, nil
}

func (s *ImportService) GetTaskStatus(ctx context.Context, taskID primitive.ObjectID) (*domain.ImportTask, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get import task: %w", err)
	}

	return task, nil
}

func (s *ImportService) ProcessImportTask(ctx context.Context, taskID primitive.ObjectID) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	if err := s.taskRepo.UpdateStatus(ctx, taskID, domain.ImportProcessing, ""); err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}

	s.logger.Infow("processing import task", "task_id", taskID.Hex())

	products, categories, err := s.parser.ParseCatalog(ctx, task.SpreadsheetID)
	if err != nil {
		s.logger.Errorw("failed to parse catalog", "task_id", taskID.Hex(), "error", err)
		_ = s.taskRepo.UpdateStatus(ctx, taskID, domain.ImportFailed, err.Error())
		return fmt.Errorf("failed to parse catalog: %w", err)
	}

	session, err := s.storage.StartSession()
	if err != nil {
		s.logger.Errorw("failed to start session", "task_id", taskID.Hex(), "error", err)
		_ = s.taskRepo.UpdateStatus(ctx, taskID, domain.ImportFailed, "failed to start transaction")
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	if err := session.StartTransaction(); err != nil {
		s.logger.Errorw("failed to start transaction", "task_id", taskID.Hex(), "error", err)
		_ = s.taskRepo.UpdateStatus(ctx, taskID, domain.ImportFailed, "failed to start transaction")
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	if err := s.categoryRepo.ReplaceAll(ctx, categories); err != nil {
		s.logger.Errorw("failed to save categories", "task_id", taskID.Hex(), "error", err)
		session.AbortTransaction(ctx)
		_ = s.taskRepo.UpdateStatus(ctx, taskID, domain.ImportFailed, err.Error())
		return fmt.Errorf("failed to save categories: %w", err)
	}

	if err := s.productRepo.ReplaceAll(ctx, products); err != nil {
		s.logger.Errorw("failed to save products", "task_id", taskID.Hex(), "error", err)
		session.AbortTransaction(ctx)
		_ = s.taskRepo.UpdateStatus(ctx, taskID, domain.ImportFailed, err.Error())
		return fmt.Errorf("failed to save products: %w", err)
	}

	if err := s.taskRepo.Complete(ctx, taskID, len(products), len(categories)); err != nil {
		s.logger.Errorw("failed to complete task", "task_id", taskID.Hex(), "error", err)
		session.AbortTransaction(ctx)
		return fmt.Errorf("failed to complete task: %w", err)
	}

	if err := session.CommitTransaction(ctx); err != nil {
		s.logger.Errorw("failed to commit transaction", "task_id", taskID.Hex(), "error", err)
		_ = s.taskRepo.UpdateStatus(ctx, taskID, domain.ImportFailed, "failed to commit transaction")
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	if err := s.catalog.Refresh(ctx); err != nil {
		// catalog reloads on next restart; the import itself succeeded
		s.logger.Warnw("failed to refresh catalog after import", "task_id", taskID.Hex(), "error", err)
	}

	s.logger.Infow("import task completed",
		"task_id", taskID.Hex(),
		"products", len(products),
		"categories", len(categories),
	)

	return nil
}
