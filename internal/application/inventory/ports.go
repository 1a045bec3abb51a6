package inventory

import (
	"context"

	"github.com/jhoicas/inventaris-api/internal/domain/repository"
)

// Repos agrupa los repositorios que participan en una operación del libro de stock.
// Dentro de TxRunner.Run todos quedan atados a la misma transacción.
type Repos struct {
	Items      repository.ItemRepository
	Warehouses repository.WarehouseRepository
	Stock      repository.StockEntryRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y ninguna fila queda creada ni modificada.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}

// Recorder recibe el resultado de cada operación del libro (métricas).
type Recorder interface {
	StockOperation(op, result string)
}

type noopRecorder struct{}

func (noopRecorder) StockOperation(string, string) {}
