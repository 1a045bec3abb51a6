package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/inventaris-api/internal/domain"
	"github.com/jhoicas/inventaris-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Operaciones y resultados reportados al Recorder.
const (
	OpAttach = "attach"
	OpRemove = "remove"

	ResultCreated  = "created"
	ResultUpdated  = "updated"
	ResultRetried  = "retried" // perdió la carrera del insert y se aplicó como update
	ResultRemoved  = "removed"
	ResultInvalid  = "invalid"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Ledger mantiene las filas StockEntry de cada par (item, bodega).
// No guarda estado propio: cada llamada lee y escribe a través de Repos.
type Ledger struct {
	repos Repos
	rec   Recorder
	now   func() time.Time
}

// Option configura un Ledger.
type Option func(*Ledger)

// WithRecorder registra el resultado de cada operación (p. ej. contadores Prometheus).
func WithRecorder(r Recorder) Option {
	return func(l *Ledger) {
		if r != nil {
			l.rec = r
		}
	}
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// NewLedger construye el libro de stock sobre los repositorios dados.
func NewLedger(repos Repos, opts ...Option) *Ledger {
	l := &Ledger{repos: repos, rec: noopRecorder{}, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WithRepos devuelve una copia del Ledger que usa otros repositorios (los de una transacción).
func (l *Ledger) WithRepos(repos Repos) *Ledger {
	cp := *l
	cp.repos = repos
	return &cp
}

// Repos devuelve los repositorios con los que trabaja el Ledger.
func (l *Ledger) Repos() Repos {
	return l.repos
}

// AttachOrUpdate asigna el item a la bodega con la cantidad disponible indicada.
// Si el par no existe se crea con Borrowed y UnderMaintenance en cero; si existe solo se
// sobrescribe Available. Aplicar dos veces el mismo valor deja el mismo estado.
//
// Errores:
//   - domain.ErrInvalidInput si available es negativo, no cabe en NUMERIC(15,2) o falta algún ID.
//   - domain.ErrNotFound si el item (no eliminado) o la bodega no existen.
func (l *Ledger) AttachOrUpdate(ctx context.Context, itemID, warehouseID string, available decimal.Decimal) (*entity.StockEntry, error) {
	entry, result, err := l.attachOrUpdate(ctx, itemID, warehouseID, available)
	l.rec.StockOperation(OpAttach, result)
	return entry, err
}

func (l *Ledger) attachOrUpdate(ctx context.Context, itemID, warehouseID string, available decimal.Decimal) (*entity.StockEntry, string, error) {
	if itemID == "" || warehouseID == "" {
		return nil, ResultInvalid, fmt.Errorf("%w: item_id y warehouse_id son requeridos", domain.ErrInvalidInput)
	}
	if available.IsNegative() {
		return nil, ResultInvalid, fmt.Errorf("%w: la cantidad disponible no puede ser negativa", domain.ErrInvalidInput)
	}
	if !entity.AmountFits(available) {
		return nil, ResultInvalid, fmt.Errorf("%w: la cantidad disponible admite %d decimales y debe ser menor que %s",
			domain.ErrInvalidInput, entity.AmountScale, entity.AmountLimit)
	}
	if err := l.ensurePair(ctx, itemID, warehouseID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ResultNotFound, err
		}
		return nil, ResultError, err
	}

	existing, err := l.repos.Stock.Get(ctx, itemID, warehouseID)
	if err != nil {
		return nil, ResultError, err
	}
	result := ResultUpdated
	if existing == nil {
		entry := entity.NewStockEntry(itemID, warehouseID, available, l.now())
		err := l.repos.Stock.Insert(ctx, entry)
		if err == nil {
			return entry, ResultCreated, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, ResultError, err
		}
		// Otra petición creó el par entre Get e Insert: se aplica como update.
		result = ResultRetried
	}

	entry, err := l.repos.Stock.UpdateAvailable(ctx, itemID, warehouseID, available)
	if err != nil {
		return nil, ResultError, err
	}
	return entry, result, nil
}

func (l *Ledger) ensurePair(ctx context.Context, itemID, warehouseID string) error {
	item, err := l.repos.Items.GetByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("buscar item: %w", err)
	}
	if item == nil {
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, itemID)
	}
	wh, err := l.repos.Warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return fmt.Errorf("buscar bodega: %w", err)
	}
	if wh == nil {
		return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, warehouseID)
	}
	return nil
}

// Get devuelve la fila del par o nil si el item no está asignado a esa bodega.
func (l *Ledger) Get(ctx context.Context, itemID, warehouseID string) (*entity.StockEntry, error) {
	return l.repos.Stock.Get(ctx, itemID, warehouseID)
}

// ListForItem devuelve las filas del item enriquecidas con los datos de cada bodega.
// Un item sin asignaciones devuelve una lista vacía.
func (l *Ledger) ListForItem(ctx context.Context, itemID string) ([]*entity.WarehouseStock, error) {
	item, err := l.repos.Items.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("buscar item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, itemID)
	}
	list, err := l.repos.Stock.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.WarehouseStock{}
	}
	return list, nil
}

// ListForItems agrupa por item las filas de varios items en una sola consulta.
func (l *Ledger) ListForItems(ctx context.Context, itemIDs []string) (map[string][]*entity.WarehouseStock, error) {
	if len(itemIDs) == 0 {
		return map[string][]*entity.WarehouseStock{}, nil
	}
	return l.repos.Stock.ListByItems(ctx, itemIDs)
}

// Remove elimina la asignación del item a la bodega. Si no existía no hace nada.
func (l *Ledger) Remove(ctx context.Context, itemID, warehouseID string) error {
	if itemID == "" || warehouseID == "" {
		l.rec.StockOperation(OpRemove, ResultInvalid)
		return fmt.Errorf("%w: item_id y warehouse_id son requeridos", domain.ErrInvalidInput)
	}
	if err := l.repos.Stock.Delete(ctx, itemID, warehouseID); err != nil {
		l.rec.StockOperation(OpRemove, ResultError)
		return err
	}
	l.rec.StockOperation(OpRemove, ResultRemoved)
	return nil
}
