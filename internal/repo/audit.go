package repo

import (
	"context"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
)

type StatusAuditRepository interface {
	Create(ctx context.Context, audit *domain.StatusAudit) error
	GetByProductID(ctx context.Context, productID string, limit int) ([]domain.StatusAudit, error)
}
