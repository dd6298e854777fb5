package unitofwork

import (
	"context"

	"foodiebot-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ProductRepository() contract.ProductRepository
	InteractionEventRepository() contract.InteractionEventRepository
}
