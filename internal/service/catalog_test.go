package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/catalog"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProductRepo struct {
	CreateFunc          func(ctx context.Context, product *domain.Product) error
	GetByIDFunc         func(ctx context.Context, id string) (*domain.Product, error)
	ListFunc            func(ctx context.Context) ([]domain.Product, error)
	UpdateFunc          func(ctx context.Context, product *domain.Product) error
	DeleteFunc          func(ctx context.Context, id string) error
	NamesByCategoryFunc func(ctx context.Context, categoryID string) ([]string, error)
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error {
	return f.CreateFunc(ctx, product)
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return f.GetByIDFunc(ctx, id)
}

func (f *fakeProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx)
	}
	return nil, nil
}

func (f *fakeProductRepo) ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error {
	return f.UpdateFunc(ctx, product)
}

func (f *fakeProductRepo) UpdateStatus(ctx context.Context, id string, status domain.ProductStatus) error {
	return nil
}

func (f *fakeProductRepo) ReplaceAll(ctx context.Context, products []domain.Product) error {
	return nil
}

func (f *fakeProductRepo) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	return 0, nil
}

func (f *fakeProductRepo) NamesByCategory(ctx context.Context, categoryID string) ([]string, error) {
	return f.NamesByCategoryFunc(ctx, categoryID)
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) error {
	return f.DeleteFunc(ctx, id)
}

type fakeCategoryRepo struct {
	CreateFunc func(ctx context.Context, category *domain.Category) error
	ListFunc   func(ctx context.Context) ([]domain.Category, error)
	UpdateFunc func(ctx context.Context, category *domain.Category) error
	DeleteFunc func(ctx context.Context, id string) error
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	return f.CreateFunc(ctx, category)
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return nil, nil
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx)
	}
	return nil, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, category *domain.Category) error {
	return f.UpdateFunc(ctx, category)
}

func (f *fakeCategoryRepo) ReplaceAll(ctx context.Context, categories []domain.Category) error {
	return nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	return f.DeleteFunc(ctx, id)
}

func TestDeleteCategoryRefusedWhileInUse(t *testing.T) {
	deleted := false

	products := &fakeProductRepo{
		NamesByCategoryFunc: func(ctx context.Context, categoryID string) ([]string, error) {
			return []string{"Burger", "Milanesa"}, nil
		},
	}
	categories := &fakeCategoryRepo{
		DeleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}

	svc := NewCatalogService(catalog.NewStore(), products, categories, zap.NewNop().Sugar())

	err := svc.DeleteCategory(context.Background(), "principales")

	var inUse *CategoryInUseError
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, "principales", inUse.CategoryID)
	assert.Equal(t, []string{"Burger", "Milanesa"}, inUse.Products)
	assert.False(t, deleted)
}

func TestDeleteEmptyCategory(t *testing.T) {
	deleted := ""

	products := &fakeProductRepo{
		NamesByCategoryFunc: func(ctx context.Context, categoryID string) ([]string, error) {
			return nil, nil
		},
	}
	categories := &fakeCategoryRepo{
		DeleteFunc: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}

	svc := NewCatalogService(catalog.NewStore(), products, categories, zap.NewNop().Sugar())

	err := svc.DeleteCategory(context.Background(), "postres")
	require.NoError(t, err)
	assert.Equal(t, "postres", deleted)
}

func TestCreateCategoryDerivesEmoji(t *testing.T) {
	var created *domain.Category

	categories := &fakeCategoryRepo{
		CreateFunc: func(ctx context.Context, category *domain.Category) error {
			created = category
			return nil
		},
	}

	svc := NewCatalogService(catalog.NewStore(), &fakeProductRepo{}, categories, zap.NewNop().Sugar())

	err := svc.CreateCategory(context.Background(), &domain.Category{ID: "postres", Name: "Postres"})
	require.NoError(t, err)
	assert.Equal(t, "🍰", created.Emoji)
}

func TestCreateProductRefreshesSnapshot(t *testing.T) {
	store := catalog.NewStore()

	products := &fakeProductRepo{
		CreateFunc: func(ctx context.Context, product *domain.Product) error {
			return nil
		},
		ListFunc: func(ctx context.Context) ([]domain.Product, error) {
			return []domain.Product{{ID: "1", Name: "Burger"}}, nil
		},
	}
	categories := &fakeCategoryRepo{}

	svc := NewCatalogService(store, products, categories, zap.NewNop().Sugar())

	err := svc.CreateProduct(context.Background(), &domain.Product{ID: "1", Name: "Burger"})
	require.NoError(t, err)

	require.True(t, store.Loaded())
	_, ok := store.Product("1")
	assert.True(t, ok)
}

func TestCreateProductPropagatesRepoError(t *testing.T) {
	repoErr := errors.New("write failed")

	products := &fakeProductRepo{
		CreateFunc: func(ctx context.Context, product *domain.Product) error {
			return repoErr
		},
	}

	svc := NewCatalogService(catalog.NewStore(), products, &fakeCategoryRepo{}, zap.NewNop().Sugar())

	err := svc.CreateProduct(context.Background(), &domain.Product{ID: "1"})
	assert.ErrorIs(t, err, repoErr)
}
