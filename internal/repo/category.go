package repo

import (
	"context"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	ReplaceAll(ctx context.Context, categories []domain.Category) error
	Delete(ctx context.Context, id string) error
}
