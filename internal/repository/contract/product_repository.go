package contract

import (
	"context"

	"foodiebot-be/internal/entity"
	"foodiebot-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ProductRepository is the read-only catalog accessor the core consumes.
// Create/Update exist for the seeding tool only; the core never mutates
// product records.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
