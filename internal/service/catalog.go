package service

import (
	"context"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/catalog"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/repo"
	"go.uber.org/zap"
)

// CatalogService keeps the storefront snapshot in sync with the admin-side
// repositories. Reads go to the snapshot, writes go to Mongo and then
// trigger a refresh.
type CatalogService struct {
	store        *catalog.Store
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	logger       *zap.SugaredLogger
}

func NewCatalogService(
	store *catalog.Store,
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	logger *zap.SugaredLogger,
) *CatalogService {
	return &CatalogService{
		store:        store,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

func (s *CatalogService) Store() *catalog.Store {
	return s.store
}

func (s *CatalogService) Refresh(ctx context.Context) error {
	if err := s.store.Load(ctx, s.productRepo, s.categoryRepo); err != nil {
		s.logger.Errorw("failed to refresh catalog", "error", err)
		return err
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := s.productRepo.Create(ctx, product); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if err := s.productRepo.Update(ctx, product); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, category *domain.Category) error {
	if category.Emoji == "" {
		category.Emoji = catalog.EmojiFor(category.Name)
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, category *domain.Category) error {
	if category.Emoji == "" {
		category.Emoji = catalog.EmojiFor(category.Name)
	}
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// DeleteCategory refuses to orphan products: a category that still has
// products returns ErrCategoryInUse carrying their names for the admin UI.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	names, err := s.productRepo.NamesByCategory(ctx, id)
	if err != nil {
		return err
	}

	if len(names) > 0 {
		return &CategoryInUseError{CategoryID: id, Products: names}
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

type CategoryInUseError struct {
	CategoryID string
	Products   []string
}

func (e *CategoryInUseError) Error() string {
	return "category still has products"
}
