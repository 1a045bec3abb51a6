package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventaris-api/internal/application/inventory"
	"github.com/jhoicas/inventaris-api/internal/application/usecase"
	"github.com/jhoicas/inventaris-api/internal/domain"
	"github.com/jhoicas/inventaris-api/internal/domain/entity"
	"github.com/jhoicas/inventaris-api/internal/testutil/memstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes compartidos
// ──────────────────────────────────────────────────────────────────────────────

// fakeImages simula el uploader: "bad" es un formato inválido, "boom" un fallo del storage.
type fakeImages struct {
	mu      sync.Mutex
	n       int
	uploads []string
	deleted []string
}

func (f *fakeImages) Upload(_ context.Context, folder, payload, fallback string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch payload {
	case "":
		return fallback, nil
	case "bad":
		return "", fmt.Errorf("%w: formato no soportado", domain.ErrInvalidInput)
	case "boom":
		return "", errors.New("storage caído")
	}
	f.n++
	p := fmt.Sprintf("%s/img-%d.jpg", folder, f.n)
	f.uploads = append(f.uploads, p)
	return p, nil
}

func (f *fakeImages) Delete(_ context.Context, p string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, p)
	return nil
}

func (f *fakeImages) URL(p string) string { return "http://cdn.test/" + p }

// fakeFiles guarda en memoria lo que el caso de uso escribe.
type fakeFiles struct {
	mu    sync.Mutex
	files map[string][]byte
	types map[string]string
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{files: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeFiles) Put(_ context.Context, p string, data []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[p] = data
	f.types[p] = contentType
	return nil
}

func (f *fakeFiles) URL(p string) string { return "http://cdn.test/" + p }

type fakeQR struct{}

func (fakeQR) PNG(content string) ([]byte, error) { return []byte("png:" + content), nil }

type fakeSheet struct {
	title  string
	labels []usecase.Label
}

func (f *fakeSheet) Generate(_ context.Context, title string, labels []usecase.Label) ([]byte, error) {
	f.title = title
	f.labels = labels
	return []byte("%PDF-fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario
// ──────────────────────────────────────────────────────────────────────────────

const (
	gudangA = "gudang-a"
	gudangB = "gudang-b"
	tipoID  = "tipo-1"
)

func d(n int64) *decimal.Decimal {
	v := decimal.NewFromInt(n)
	return &v
}

func str(s string) *string { return &s }

func seedStore(t *testing.T) *memstore.Store {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	now := time.Now()
	desc := "Lantai 2"
	require.NoError(t, store.Warehouses().Create(ctx, &entity.Warehouse{
		ID: gudangA, Name: "Gudang A", Slug: "gudang-a", Description: &desc, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.Warehouses().Create(ctx, &entity.Warehouse{
		ID: gudangB, Name: "Gudang B", Slug: "gudang-b", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.Lookups().Create(ctx, &entity.Lookup{
		ID: tipoID, Kind: entity.LookupItemType, Name: "Elektronik", Slug: "elektronik", CreatedAt: now, UpdatedAt: now,
	}))
	return store
}

func newItemUseCase(store *memstore.Store, images *fakeImages) *usecase.ItemUseCase {
	return usecase.NewItemUseCase(usecase.ItemDeps{
		Repos:   store.Repos(),
		Lookups: store.Lookups(),
		Tx:      store,
		Ledger:  inventory.NewLedger(store.Repos()),
		Images:  images,
	})
}
