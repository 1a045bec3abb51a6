package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventaris-api/internal/domain"
	"github.com/jhoicas/inventaris-api/internal/domain/entity"
	"github.com/jhoicas/inventaris-api/internal/domain/repository"
)

var _ repository.LookupRepository = (*LookupRepo)(nil)

// LookupRepo persiste los catálogos (item_types, units, item_categories).
// Las tres tablas comparten esquema; kind es el nombre de la tabla.
type LookupRepo struct {
	q Querier
}

// NewLookupRepository construye el adaptador de catálogos.
func NewLookupRepository(q Querier) *LookupRepo {
	return &LookupRepo{q: q}
}

// table valida kind contra la lista blanca antes de interpolarlo en SQL.
func table(kind string) (string, error) {
	if !entity.IsLookupKind(kind) {
		return "", fmt.Errorf("%w: catálogo desconocido %q", domain.ErrInvalidInput, kind)
	}
	return kind, nil
}

// Create persiste una entrada de catálogo.
func (r *LookupRepo) Create(ctx context.Context, l *entity.Lookup) error {
	t, err := table(l.Kind)
	if err != nil {
		return err
	}
	query := `INSERT INTO ` + t + ` (id, name, slug, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, l.ID, l.Name, l.Slug, l.CreatedAt, l.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s %q", domain.ErrDuplicate, t, l.Name)
		}
		return fmt.Errorf("insert %s: %w", t, err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *LookupRepo) GetByID(ctx context.Context, kind, id string) (*entity.Lookup, error) {
	t, err := table(kind)
	if err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, nil
	}
	l := entity.Lookup{Kind: kind}
	err = r.q.QueryRow(ctx, `SELECT id, name, slug, created_at, updated_at FROM `+t+` WHERE id = $1`, id).
		Scan(&l.ID, &l.Name, &l.Slug, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", t, err)
	}
	return &l, nil
}

// List lista todas las entradas del catálogo por nombre.
func (r *LookupRepo) List(ctx context.Context, kind string) ([]*entity.Lookup, error) {
	t, err := table(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, `SELECT id, name, slug, created_at, updated_at FROM `+t+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t, err)
	}
	defer rows.Close()
	list := []*entity.Lookup{}
	for rows.Next() {
		l := entity.Lookup{Kind: kind}
		if err := rows.Scan(&l.ID, &l.Name, &l.Slug, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t, err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Count cuenta las entradas del catálogo.
func (r *LookupRepo) Count(ctx context.Context, kind string) (int, error) {
	t, err := table(kind)
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM `+t).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", t, err)
	}
	return n, nil
}

// Delete elimina una entrada; los items que la usaban quedan con la referencia en NULL.
func (r *LookupRepo) Delete(ctx context.Context, kind, id string) error {
	t, err := table(kind)
	if err != nil {
		return err
	}
	if !validID(id) {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, t, id)
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM `+t+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", t, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, t, id)
	}
	return nil
}
