package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventaris-api/internal/domain"
	"github.com/jhoicas/inventaris-api/internal/domain/entity"
	"github.com/jhoicas/inventaris-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para items.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, code, name, slug, classification, price, type_id, unit_id, category_id,
	image, user_id, deleted_at, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.Code, &it.Name, &it.Slug, &it.Classification, &it.Price,
		&it.TypeID, &it.UnitID, &it.CategoryID,
		&it.Image, &it.UserID, &it.DeletedAt, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un nuevo item.
func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	query := `
		INSERT INTO items (id, code, name, slug, classification, price, type_id, unit_id, category_id,
			image, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.Code, it.Name, it.Slug, it.Classification, it.Price,
		it.TypeID, it.UnitID, it.CategoryID, it.Image, it.UserID, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: item %q", domain.ErrDuplicate, it.Name)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un item no eliminado por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.get(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1 AND deleted_at IS NULL`, id)
}

// GetByIDWithDeleted obtiene un item por ID aunque esté eliminado lógicamente.
func (r *ItemRepo) GetByIDWithDeleted(ctx context.Context, id string) (*entity.Item, error) {
	return r.get(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

func (r *ItemRepo) get(ctx context.Context, query, id string) (*entity.Item, error) {
	if !validID(id) {
		return nil, nil
	}
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// ExistsByName comprueba si otro item (incluidos los eliminados) ya usa el nombre.
func (r *ItemRepo) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM items WHERE name = $1 AND ($2::uuid IS NULL OR id <> $2::uuid))`
	var exists bool
	if err := r.q.QueryRow(ctx, query, name, nullIfEmpty(excludeID)).Scan(&exists); err != nil {
		return false, fmt.Errorf("item exists by name: %w", err)
	}
	return exists, nil
}

// ExistsBySlug comprueba si otro item (incluidos los eliminados) ya usa el slug.
func (r *ItemRepo) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM items WHERE slug = $1 AND ($2::uuid IS NULL OR id <> $2::uuid))`
	var exists bool
	if err := r.q.QueryRow(ctx, query, slug, nullIfEmpty(excludeID)).Scan(&exists); err != nil {
		return false, fmt.Errorf("item exists by slug: %w", err)
	}
	return exists, nil
}

// Update actualiza los datos del item (no el código ni el stock).
func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	query := `
		UPDATE items SET name = $2, slug = $3, classification = $4, price = $5,
			type_id = $6, unit_id = $7, category_id = $8, image = $9, updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(ctx, query,
		it.ID, it.Name, it.Slug, it.Classification, it.Price,
		it.TypeID, it.UnitID, it.CategoryID, it.Image, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: item %q", domain.ErrDuplicate, it.Name)
		}
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, it.ID)
	}
	return nil
}

// List lista items no eliminados, más recientes primero.
func (r *ItemRepo) List(ctx context.Context, limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE deleted_at IS NULL
		ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

// ListAll lista todos los items no eliminados (generación masiva de QR).
func (r *ItemRepo) ListAll(ctx context.Context) ([]*entity.Item, error) {
	return r.list(ctx, `SELECT `+itemColumns+` FROM items WHERE deleted_at IS NULL ORDER BY created_at DESC, id`)
}

func (r *ItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	list := []*entity.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Count cuenta los items no eliminados.
func (r *ItemRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM items WHERE deleted_at IS NULL`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// SoftDelete marca el item como eliminado; su stock se conserva.
func (r *ItemRepo) SoftDelete(ctx context.Context, id string) error {
	return r.execOne(ctx, "soft delete item",
		`UPDATE items SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
}

// Restore revierte un SoftDelete.
func (r *ItemRepo) Restore(ctx context.Context, id string) error {
	return r.execOne(ctx, "restore item",
		`UPDATE items SET deleted_at = NULL, updated_at = now() WHERE id = $1 AND deleted_at IS NOT NULL`, id)
}

// ForceDelete borra la fila; stock_entries cae por ON DELETE CASCADE.
func (r *ItemRepo) ForceDelete(ctx context.Context, id string) error {
	return r.execOne(ctx, "force delete item", `DELETE FROM items WHERE id = $1`, id)
}

func (r *ItemRepo) execOne(ctx context.Context, op, query, id string) error {
	if !validID(id) {
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}
	cmd, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}
	return nil
}
