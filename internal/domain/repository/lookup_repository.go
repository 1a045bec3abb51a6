package repository

import (
	"context"

	"github.com/jhoicas/inventaris-api/internal/domain/entity"
)

// LookupRepository define el puerto para los catálogos auxiliares (tipos, unidades, categorías).
// kind es una de entity.LookupKinds.
type LookupRepository interface {
	Create(ctx context.Context, lookup *entity.Lookup) error
	GetByID(ctx context.Context, kind, id string) (*entity.Lookup, error)
	List(ctx context.Context, kind string) ([]*entity.Lookup, error)
	Count(ctx context.Context, kind string) (int, error)
	Delete(ctx context.Context, kind, id string) error
}
