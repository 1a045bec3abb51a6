package repository

import (
	"context"

	"github.com/jhoicas/inventaris-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// Las lecturas devuelven (nil, nil) cuando el item no existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	// GetByID ignora los items eliminados lógicamente.
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetByIDWithDeleted incluye los eliminados (para restaurar o purgar).
	GetByIDWithDeleted(ctx context.Context, id string) (*entity.Item, error)
	// ExistsByName busca el nombre en todos los items (incluidos eliminados) salvo excludeID.
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	// ExistsBySlug igual que ExistsByName pero sobre el slug derivado del nombre.
	ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error)
	Update(ctx context.Context, item *entity.Item) error
	List(ctx context.Context, limit, offset int) ([]*entity.Item, error)
	ListAll(ctx context.Context) ([]*entity.Item, error)
	Count(ctx context.Context) (int, error)
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	// ForceDelete borra la fila; las StockEntry del item caen en cascada.
	ForceDelete(ctx context.Context, id string) error
}
