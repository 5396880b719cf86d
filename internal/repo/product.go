package repo

import (
	"context"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	UpdateStatus(ctx context.Context, id string, status domain.ProductStatus) error
	ReplaceAll(ctx context.Context, products []domain.Product) error
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	NamesByCategory(ctx context.Context, categoryID string) ([]string, error)
	Delete(ctx context.Context, id string) error
}
