package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	ListFunc func(ctx context.Context) ([]domain.Product, error)
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error { return nil }
func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	return f.ListFunc(ctx)
}
func (f *fakeProductRepo) ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error { return nil }
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
	return nil, nil
}
func (f *fakeProductRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeCategoryRepo struct {
	ListFunc func(ctx context.Context) ([]domain.Category, error)
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *domain.Category) error { return nil }
func (f *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return nil, nil
}
func (f *fakeCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	return f.ListFunc(ctx)
}
func (f *fakeCategoryRepo) Update(ctx context.Context, category *domain.Category) error { return nil }
func (f *fakeCategoryRepo) ReplaceAll(ctx context.Context, categories []domain.Category) error {
	return nil
}
func (f *fakeCategoryRepo) Delete(ctx context.Context, id string) error { return nil }

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Burger", Category: "principales", Price: decimal.RequireFromString("18.90"), Status: domain.StatusAvailable, IsDailySpecial: true},
		{ID: "2", Name: "Pizza", Category: "pizzas", Price: decimal.RequireFromString("22.50"), Status: domain.StatusAvailable},
		{ID: "3", Name: "Flan", Category: "postres", Price: decimal.RequireFromString("7.00"), Status: domain.StatusAvailable, IsDailySpecial: true},
		{ID: "4", Name: "Milanesa", Category: "principales", Price: decimal.RequireFromString("15.00"), Status: domain.StatusSoldOut},
	}
}

func loadedStore(t *testing.T) *Store {
	t.Helper()

	s := NewStore()
	err := s.Load(context.Background(),
		&fakeProductRepo{ListFunc: func(ctx context.Context) ([]domain.Product, error) {
			return testProducts(), nil
		}},
		&fakeCategoryRepo{ListFunc: func(ctx context.Context) ([]domain.Category, error) {
			return []domain.Category{
				{ID: "principales", Name: "Platos Principales"},
				{ID: "pizzas", Name: "Pizzas", Emoji: "🍕"},
				{ID: "postres", Name: "Postres"},
			}, nil
		}},
	)
	require.NoError(t, err)
	return s
}

func TestLoadFailureWrapsCause(t *testing.T) {
	cause := errors.New("network down")
	s := NewStore()

	err := s.Load(context.Background(),
		&fakeProductRepo{ListFunc: func(ctx context.Context) ([]domain.Product, error) {
			return nil, cause
		}},
		&fakeCategoryRepo{ListFunc: func(ctx context.Context) ([]domain.Category, error) {
			return nil, nil
		}},
	)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "unable to load menu")
	assert.False(t, s.Loaded())
}

func TestProductsByCategoryAllReturnsEverything(t *testing.T) {
	s := loadedStore(t)

	all := s.ProductsByCategory(domain.CategoryAll)
	require.Len(t, all, 4)

	// catalog order is preserved
	assert.Equal(t, "1", all[0].ID)
	assert.Equal(t, "4", all[3].ID)
}

func TestProductsByCategoryFilters(t *testing.T) {
	s := loadedStore(t)

	principales := s.ProductsByCategory("principales")
	require.Len(t, principales, 2)
	assert.Equal(t, "Burger", principales[0].Name)
	assert.Equal(t, "Milanesa", principales[1].Name)

	assert.Empty(t, s.ProductsByCategory("bebidas"))
}

func TestFilterIsIdempotent(t *testing.T) {
	s := loadedStore(t)

	first := s.ProductsByCategory("principales")
	second := s.ProductsByCategory("principales")

	assert.Equal(t, first, second)
}

func TestDailySpecials(t *testing.T) {
	s := loadedStore(t)

	specials := s.DailySpecials()
	require.Len(t, specials, 2)
	assert.Equal(t, "Burger", specials[0].Name)
	assert.Equal(t, "Flan", specials[1].Name)
}

func TestCategoriesPrependAllSentinel(t *testing.T) {
	s := loadedStore(t)

	cats := s.Categories()
	require.Len(t, cats, 4)
	assert.Equal(t, domain.CategoryAll, cats[0].ID)
	assert.Equal(t, "Todos", cats[0].Name)
	assert.Equal(t, "principales", cats[1].ID)
}

func TestLoadDerivesMissingEmojis(t *testing.T) {
	s := loadedStore(t)

	cats := s.Categories()
	byID := make(map[string]domain.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}

	assert.Equal(t, "🍕", byID["pizzas"].Emoji)
	assert.Equal(t, "🍰", byID["postres"].Emoji)
	assert.Equal(t, "🍖", byID["principales"].Emoji)
}

func TestProductLookup(t *testing.T) {
	s := loadedStore(t)

	p, ok := s.Product("2")
	require.True(t, ok)
	assert.Equal(t, "Pizza", p.Name)

	_, ok = s.Product("missing")
	assert.False(t, ok)
}

func TestApplyStatusReturnsPreviousForRevert(t *testing.T) {
	s := loadedStore(t)

	old, applied := s.ApplyStatus("1", domain.StatusSoldOut)
	require.True(t, applied)
	assert.Equal(t, domain.StatusAvailable, old)

	p, _ := s.Product("1")
	assert.Equal(t, domain.StatusSoldOut, p.Status)

	// the inverse apply restores the original state
	s.ApplyStatus("1", old)
	p, _ = s.Product("1")
	assert.Equal(t, domain.StatusAvailable, p.Status)
}

func TestApplyStatusUnknownProduct(t *testing.T) {
	s := loadedStore(t)

	_, applied := s.ApplyStatus("missing", domain.StatusSoldOut)
	assert.False(t, applied)
}

func TestEmojiFor(t *testing.T) {
	assert.Equal(t, "🍕", EmojiFor("Pizzas"))
	assert.Equal(t, "🍰", EmojiFor("Postres caseros"))
	assert.Equal(t, "🥤", EmojiFor("Bebidas"))
	assert.Equal(t, "🍽️", EmojiFor("Especiales"))
}
