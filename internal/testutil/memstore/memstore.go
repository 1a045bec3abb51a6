// Package memstore implementa en memoria todos los puertos de persistencia.
// Se usa en los tests de casos de uso y handlers para no depender de PostgreSQL.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventaris-api/internal/application/inventory"
	"github.com/jhoicas/inventaris-api/internal/domain"
	"github.com/jhoicas/inventaris-api/internal/domain/entity"
	"github.com/jhoicas/inventaris-api/internal/domain/repository"
)

type pairKey struct{ item, warehouse string }

type lookupKey struct{ kind, id string }

// Store guarda todas las entidades en mapas protegidos por un mutex.
type Store struct {
	mu         sync.Mutex
	txMu       sync.Mutex
	items      map[string]entity.Item
	warehouses map[string]entity.Warehouse
	stock      map[pairKey]entity.StockEntry
	lookups    map[lookupKey]entity.Lookup
	users      map[string]entity.User

	// StockInsertErr, si no es nil, lo devuelve el próximo Insert de stock (simula fallo de BD).
	StockInsertErr error
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		items:      map[string]entity.Item{},
		warehouses: map[string]entity.Warehouse{},
		stock:      map[pairKey]entity.StockEntry{},
		lookups:    map[lookupKey]entity.Lookup{},
		users:      map[string]entity.User{},
	}
}

// Items devuelve el repositorio de items.
func (s *Store) Items() repository.ItemRepository { return itemRepo{s} }

// Warehouses devuelve el repositorio de bodegas.
func (s *Store) Warehouses() repository.WarehouseRepository { return warehouseRepo{s} }

// Stock devuelve el repositorio de StockEntry.
func (s *Store) Stock() repository.StockEntryRepository { return stockRepo{s} }

// Lookups devuelve el repositorio de catálogos.
func (s *Store) Lookups() repository.LookupRepository { return lookupRepo{s} }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

// Repos agrupa los repositorios del libro de stock.
func (s *Store) Repos() inventory.Repos {
	return inventory.Repos{Items: s.Items(), Warehouses: s.Warehouses(), Stock: s.Stock()}
}

// Run ejecuta fn de forma serializada; si fn falla se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	snap := s.snapshot()
	if err := fn(s.Repos()); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// StockRows devuelve el número de filas StockEntry (todas).
func (s *Store) StockRows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stock)
}

// ItemRows devuelve el número de items, incluidos los eliminados.
func (s *Store) ItemRows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// PutStock escribe una fila tal cual (para preparar escenarios con borrowed/maintenance).
func (s *Store) PutStock(e entity.StockEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[pairKey{e.ItemID, e.WarehouseID}] = e
}

type snapshot struct {
	items      map[string]entity.Item
	warehouses map[string]entity.Warehouse
	stock      map[pairKey]entity.StockEntry
	lookups    map[lookupKey]entity.Lookup
	users      map[string]entity.User
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		items:      copyMap(s.items),
		warehouses: copyMap(s.warehouses),
		stock:      copyMap(s.stock),
		lookups:    copyMap(s.lookups),
		users:      copyMap(s.users),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = snap.items
	s.warehouses = snap.warehouses
	s.stock = snap.stock
	s.lookups = snap.lookups
	s.users = snap.users
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}

// ── Items ────────────────────────────────────────────────────────────────────

type itemRepo struct{ s *Store }

func (r itemRepo) Create(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.Slug == item.Slug || it.Code == item.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.items[item.ID] = *item
	return nil
}

func (r itemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	it, err := r.GetByIDWithDeleted(ctx, id)
	if err != nil || it == nil || it.IsDeleted() {
		return nil, err
	}
	return it, nil
}

func (r itemRepo) GetByIDWithDeleted(_ context.Context, id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r itemRepo) ExistsByName(_ context.Context, name, excludeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.Name == name && it.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r itemRepo) ExistsBySlug(_ context.Context, slug, excludeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.Slug == slug && it.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r itemRepo) Update(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.ID != item.ID && it.Slug == item.Slug {
			return domain.ErrDuplicate
		}
	}
	r.s.items[item.ID] = *item
	return nil
}

func (r itemRepo) sorted(withDeleted bool) []*entity.Item {
	list := make([]*entity.Item, 0, len(r.s.items))
	for _, it := range r.s.items {
		if it.IsDeleted() && !withDeleted {
			continue
		}
		cp := it
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

func (r itemRepo) List(_ context.Context, limit, offset int) ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.sorted(false), limit, offset), nil
}

func (r itemRepo) ListAll(_ context.Context) ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sorted(false), nil
}

func (r itemRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.sorted(false)), nil
}

func (r itemRepo) SoftDelete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok || it.IsDeleted() {
		return domain.ErrNotFound
	}
	now := time.Now()
	it.DeletedAt = &now
	r.s.items[id] = it
	return nil
}

func (r itemRepo) Restore(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok || !it.IsDeleted() {
		return domain.ErrNotFound
	}
	it.DeletedAt = nil
	r.s.items[id] = it
	return nil
}

func (r itemRepo) ForceDelete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.items, id)
	for k := range r.s.stock {
		if k.item == id {
			delete(r.s.stock, k)
		}
	}
	return nil
}

// ── Warehouses ───────────────────────────────────────────────────────────────

type warehouseRepo struct{ s *Store }

func (r warehouseRepo) adminTaken(w *entity.Warehouse) bool {
	if w.AdminID == nil {
		return false
	}
	for _, other := range r.s.warehouses {
		if other.ID != w.ID && other.AdminID != nil && *other.AdminID == *w.AdminID {
			return true
		}
	}
	return false
}

func (r warehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.adminTaken(w) {
		return domain.ErrDuplicate
	}
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r warehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r warehouseRepo) GetByAdmin(_ context.Context, adminID string) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, w := range r.s.warehouses {
		if w.AdminID != nil && *w.AdminID == adminID {
			cp := w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r warehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.warehouses[w.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.adminTaken(w) {
		return domain.ErrDuplicate
	}
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r warehouseRepo) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.Warehouse, 0, len(r.s.warehouses))
	for _, w := range r.s.warehouses {
		cp := w
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

func (r warehouseRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.warehouses), nil
}

func (r warehouseRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.warehouses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.warehouses, id)
	for k := range r.s.stock {
		if k.warehouse == id {
			delete(r.s.stock, k)
		}
	}
	return nil
}

// ── Stock ────────────────────────────────────────────────────────────────────

type stockRepo struct{ s *Store }

func (r stockRepo) Get(_ context.Context, itemID, warehouseID string) (*entity.StockEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.stock[pairKey{itemID, warehouseID}]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r stockRepo) Insert(_ context.Context, entry *entity.StockEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.StockInsertErr; err != nil {
		r.s.StockInsertErr = nil
		return err
	}
	k := pairKey{entry.ItemID, entry.WarehouseID}
	if _, ok := r.s.stock[k]; ok {
		return domain.ErrConflict
	}
	r.s.stock[k] = *entry
	return nil
}

func (r stockRepo) UpdateAvailable(_ context.Context, itemID, warehouseID string, available decimal.Decimal) (*entity.StockEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := pairKey{itemID, warehouseID}
	e, ok := r.s.stock[k]
	if !ok {
		return nil, domain.ErrNotFound
	}
	e.Available = available
	e.UpdatedAt = time.Now()
	r.s.stock[k] = e
	return &e, nil
}

func (r stockRepo) view(e entity.StockEntry) *entity.WarehouseStock {
	ws := &entity.WarehouseStock{StockEntry: e}
	if w, ok := r.s.warehouses[e.WarehouseID]; ok {
		ws.WarehouseName = w.Name
		ws.WarehouseSlug = w.Slug
		ws.WarehouseDescription = w.Description
	}
	return ws
}

func (r stockRepo) ListByItem(_ context.Context, itemID string) ([]*entity.WarehouseStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := []*entity.WarehouseStock{}
	for k, e := range r.s.stock {
		if k.item == itemID {
			list = append(list, r.view(e))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].WarehouseName < list[j].WarehouseName })
	return list, nil
}

func (r stockRepo) ListByItems(ctx context.Context, itemIDs []string) (map[string][]*entity.WarehouseStock, error) {
	out := make(map[string][]*entity.WarehouseStock, len(itemIDs))
	for _, id := range itemIDs {
		list, err := r.ListByItem(ctx, id)
		if err != nil {
			return nil, err
		}
		out[id] = list
	}
	return out, nil
}

func (r stockRepo) Delete(_ context.Context, itemID, warehouseID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.stock, pairKey{itemID, warehouseID})
	return nil
}

// ── Lookups ──────────────────────────────────────────────────────────────────

type lookupRepo struct{ s *Store }

func (r lookupRepo) Create(_ context.Context, l *entity.Lookup) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for k, other := range r.s.lookups {
		if k.kind == l.Kind && other.Name == l.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.lookups[lookupKey{l.Kind, l.ID}] = *l
	return nil
}

func (r lookupRepo) GetByID(_ context.Context, kind, id string) (*entity.Lookup, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lookups[lookupKey{kind, id}]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r lookupRepo) List(_ context.Context, kind string) ([]*entity.Lookup, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := []*entity.Lookup{}
	for k, l := range r.s.lookups {
		if k.kind == kind {
			cp := l
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r lookupRepo) Count(ctx context.Context, kind string) (int, error) {
	list, err := r.List(ctx, kind)
	return len(list), err
}

func (r lookupRepo) Delete(_ context.Context, kind, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := lookupKey{kind, id}
	if _, ok := r.s.lookups[k]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.lookups, k)
	return nil
}

// ── Users ────────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.users {
		if other.Email == u.Email || other.Name == u.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r userRepo) ExistsBy(_ context.Context, column, value, excludeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ID == excludeID {
			continue
		}
		switch column {
		case "name":
			if u.Name == value {
				return true, nil
			}
		case "email":
			if u.Email == value {
				return true, nil
			}
		case "phone_number":
			if u.PhoneNumber != nil && *u.PhoneNumber == value {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) list(role string) []*entity.User {
	list := []*entity.User{}
	for _, u := range r.s.users {
		if role != "" && u.Role != role {
			continue
		}
		cp := u
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

func (r userRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(""), nil
}

func (r userRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(role), nil
}

func (r userRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.users), nil
}

func (r userRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}
