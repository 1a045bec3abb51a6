package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventaris-api/internal/domain"
	"github.com/jhoicas/inventaris-api/internal/domain/entity"
	"github.com/jhoicas/inventaris-api/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

// StockEntryRepo implementación de StockEntryRepository sobre PostgreSQL (usable con pool o tx).
type StockEntryRepo struct {
	q Querier
}

// NewStockEntryRepository construye el adaptador del libro de stock. Pasar pool o tx (Querier).
func NewStockEntryRepository(q Querier) *StockEntryRepo {
	return &StockEntryRepo{q: q}
}

const stockEntryColumns = `item_id, warehouse_id, available, borrowed, under_maintenance, created_at, updated_at`

// Get obtiene la fila del par o nil si el item no está asignado a la bodega.
func (r *StockEntryRepo) Get(ctx context.Context, itemID, warehouseID string) (*entity.StockEntry, error) {
	if !validID(itemID) || !validID(warehouseID) {
		return nil, nil
	}
	query := `SELECT ` + stockEntryColumns + `
		FROM stock_entries WHERE item_id = $1 AND warehouse_id = $2`
	var e entity.StockEntry
	err := r.q.QueryRow(ctx, query, itemID, warehouseID).Scan(
		&e.ItemID, &e.WarehouseID, &e.Available, &e.Borrowed, &e.UnderMaintenance, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock entry: %w", err)
	}
	return &e, nil
}

// Insert crea la fila del par. ON CONFLICT DO NOTHING evita abortar la transacción cuando
// otra petición ya insertó el mismo par; en ese caso se devuelve domain.ErrConflict.
func (r *StockEntryRepo) Insert(ctx context.Context, e *entity.StockEntry) error {
	query := `
		INSERT INTO stock_entries (item_id, warehouse_id, available, borrowed, under_maintenance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (item_id, warehouse_id) DO NOTHING`
	cmd, err := r.q.Exec(ctx, query,
		e.ItemID, e.WarehouseID, e.Available, e.Borrowed, e.UnderMaintenance, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: item o bodega inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert stock entry: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// UpdateAvailable sobrescribe solo available; borrowed y under_maintenance no se tocan.
func (r *StockEntryRepo) UpdateAvailable(ctx context.Context, itemID, warehouseID string, available decimal.Decimal) (*entity.StockEntry, error) {
	query := `
		UPDATE stock_entries SET available = $3, updated_at = now()
		WHERE item_id = $1 AND warehouse_id = $2
		RETURNING ` + stockEntryColumns
	var e entity.StockEntry
	err := r.q.QueryRow(ctx, query, itemID, warehouseID, available).Scan(
		&e.ItemID, &e.WarehouseID, &e.Available, &e.Borrowed, &e.UnderMaintenance, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%w: stock de item %s en bodega %s", domain.ErrNotFound, itemID, warehouseID)
		}
		return nil, fmt.Errorf("update stock entry: %w", err)
	}
	return &e, nil
}

const warehouseStockQuery = `
	SELECT s.item_id, s.warehouse_id,
	       COALESCE(s.available, 0), COALESCE(s.borrowed, 0), COALESCE(s.under_maintenance, 0),
	       s.created_at, s.updated_at,
	       w.name, w.slug, w.description
	FROM stock_entries s
	JOIN warehouses w ON w.id = s.warehouse_id`

func scanWarehouseStock(rows pgx.Rows) (*entity.WarehouseStock, error) {
	var ws entity.WarehouseStock
	err := rows.Scan(
		&ws.ItemID, &ws.WarehouseID,
		&ws.Available, &ws.Borrowed, &ws.UnderMaintenance,
		&ws.CreatedAt, &ws.UpdatedAt,
		&ws.WarehouseName, &ws.WarehouseSlug, &ws.WarehouseDescription,
	)
	if err != nil {
		return nil, fmt.Errorf("scan stock entry: %w", err)
	}
	return &ws, nil
}

// ListByItem lista las filas del item con los datos de cada bodega, ordenadas por nombre de bodega.
func (r *StockEntryRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.WarehouseStock, error) {
	if !validID(itemID) {
		return []*entity.WarehouseStock{}, nil
	}
	rows, err := r.q.Query(ctx, warehouseStockQuery+` WHERE s.item_id = $1 ORDER BY w.name`, itemID)
	if err != nil {
		return nil, fmt.Errorf("list stock entries: %w", err)
	}
	defer rows.Close()
	list := []*entity.WarehouseStock{}
	for rows.Next() {
		ws, err := scanWarehouseStock(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, ws)
	}
	return list, rows.Err()
}

// ListByItems lista en una sola consulta las filas de varios items, agrupadas por item.
// Cada ID pedido aparece en el mapa aunque no tenga filas.
func (r *StockEntryRepo) ListByItems(ctx context.Context, itemIDs []string) (map[string][]*entity.WarehouseStock, error) {
	out := make(map[string][]*entity.WarehouseStock, len(itemIDs))
	for _, id := range itemIDs {
		out[id] = []*entity.WarehouseStock{}
	}
	ids := validIDs(itemIDs)
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, warehouseStockQuery+` WHERE s.item_id = ANY($1) ORDER BY s.item_id, w.name`, ids)
	if err != nil {
		return nil, fmt.Errorf("list stock entries by items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		ws, err := scanWarehouseStock(rows)
		if err != nil {
			return nil, err
		}
		out[ws.ItemID] = append(out[ws.ItemID], ws)
	}
	return out, rows.Err()
}

// Delete elimina el par; si no existía no hace nada.
func (r *StockEntryRepo) Delete(ctx context.Context, itemID, warehouseID string) error {
	if !validID(itemID) || !validID(warehouseID) {
		return nil
	}
	_, err := r.q.Exec(ctx, `DELETE FROM stock_entries WHERE item_id = $1 AND warehouse_id = $2`, itemID, warehouseID)
	if err != nil {
		return fmt.Errorf("delete stock entry: %w", err)
	}
	return nil
}
