package usecase_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventaris-api/internal/application/dto"
	"github.com/jhoicas/inventaris-api/internal/application/usecase"
	"github.com/jhoicas/inventaris-api/internal/domain"
	"github.com/jhoicas/inventaris-api/internal/domain/entity"
)

func createReq(name string) dto.CreateItemRequest {
	return dto.CreateItemRequest{
		Name:        name,
		Price:       d(150000),
		TypeID:      str(tipoID),
		WarehouseID: gudangA,
		Available:   d(10),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestItemCreate_CreaItemYFilaDeStock(t *testing.T) {
	store := seedStore(t)
	images := &fakeImages{}
	uc := newItemUseCase(store, images)

	out, err := uc.Create(context.Background(), "user-1", createReq("  Proyektor Epson  "))
	require.NoError(t, err)

	assert.Equal(t, "Proyektor Epson", out.Name)
	assert.Equal(t, "proyektor-epson", out.Slug)
	assert.Equal(t, entity.ClassificationReusable, out.Classification)
	assert.Regexp(t, regexp.MustCompile(`^BRG-[0-9A-F]{8}$`), out.Code)
	assert.Equal(t, entity.DefaultItemImage, out.Image)
	require.NotNil(t, out.UserID)
	assert.Equal(t, "user-1", *out.UserID)

	require.Len(t, out.Stocks, 1)
	s := out.Stocks[0]
	assert.Equal(t, gudangA, s.WarehouseID)
	assert.Equal(t, "Gudang A", s.WarehouseName)
	assert.True(t, s.Available.Equal(*d(10)))
	assert.True(t, s.Borrowed.IsZero())
	assert.True(t, s.UnderMaintenance.IsZero())
	assert.True(t, out.TotalAvailable.Equal(*d(10)))
	assert.Equal(t, 1, store.StockRows())
}

func TestItemCreate_ConImagen_GuardaRuta(t *testing.T) {
	store := seedStore(t)
	images := &fakeImages{}
	uc := newItemUseCase(store, images)

	req := createReq("Laptop")
	req.Image = "aGVsbG8="
	out, err := uc.Create(context.Background(), "", req)
	require.NoError(t, err)
	assert.Equal(t, "items/img-1.jpg", out.Image)
	assert.Equal(t, "http://cdn.test/items/img-1.jpg", out.ImageURL)
	assert.Nil(t, out.UserID)
}

func TestItemCreate_Validacion_ReportaTodosLosCampos(t *testing.T) {
	store := seedStore(t)
	uc := newItemUseCase(store, &fakeImages{})

	_, err := uc.Create(context.Background(), "", dto.CreateItemRequest{
		Name:           strings.Repeat("x", 256),
		Classification: "otro",
		Price:          d(-1),
		UnitID:         str("no-existe"),
		WarehouseID:    "no-existe",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var v *domain.ValidationError
	require.True(t, errors.As(err, &v))
	for _, field := range []string{"name", "classification", "price", "unit_id", "warehouse_id", "available"} {
		assert.Contains(t, v.Fields, field)
	}
	assert.Equal(t, 0, store.ItemRows())
	assert.Equal(t, 0, store.StockRows())
}

func TestItemCreate_CantidadNegativa_SinFilas(t *testing.T) {
	store := seedStore(t)
	uc := newItemUseCase(store, &fakeImages{})

	req := createReq("Kabel")
	req.Available = d(-5)
	_, err := uc.Create(context.Background(), "", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, store.ItemRows())
	assert.Equal(t, 0, store.StockRows())
}

func TestItemCreate_NombreDuplicado(t *testing.T) {
	store := seedStore(t)
	uc := newItemUseCase(store, &fakeImages{})
	ctx := context.Background()

	_, err := uc.Create(ctx, "", createReq("Printer"))
	require.NoError(t, err)

	_, err = uc.Create(ctx, "", createReq("Printer"))
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v))
	assert.Contains(t, v.Fields, "name")
}

func TestItemCreate_SlugEquivalente_ErrorDeCampoSinSubirImagen(t *testing.T) {
	store := seedStore(t)
	images := &fakeImages{}
	uc := newItemUseCase(store, images)
	ctx := context.Background()

	_, err := uc.Create(ctx, "", createReq("Kursi Lipat"))
	require.NoError(t, err)

	req := createReq("Kursi-Lipat")
	req.Image = "aGVsbG8="
	_, err = uc.Create(ctx, "", req)
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v), "debe ser error de validación, no de duplicado en BD")
	assert.Contains(t, v.Fields, "name")
	assert.NotErrorIs(t, err, domain.ErrDuplicate)
	assert.Empty(t, images.uploads, "la validación corta antes de subir la imagen")
	assert.Equal(t, 1, store.ItemRows())
}

func TestItemCreate_CantidadesFueraDeNumeric_ErrorDeCampo(t *testing.T) {
	store := seedStore(t)
	uc := newItemUseCase(store, &fakeImages{})

	tooPrecise := decimal.RequireFromString("1.005")
	tooLarge := decimal.New(1, 13)
	req := createReq("Meja")
	req.Available = &tooPrecise
	req.Price = &tooLarge
	_, err := uc.Create(context.Background(), "", req)

	var v *domain.ValidationError
	require.True(t, errors.As(err, &v))
	assert.Contains(t, v.Fields, "available")
	assert.Contains(t, v.Fields, "price")
	assert.Equal(t, 0, store.ItemRows())
	assert.Equal(t, 0, store.StockRows())

	ok := decimal.RequireFromString("1.50")
	req = createReq("Meja")
	req.Available = &ok
	_, err = uc.Create(context.Background(), "", req)
	assert.NoError(t, err, "dos decimales caben en NUMERIC(15,2)")
}

func TestItemCreate_ImagenInvalida_ErrorDeCampo(t *testing.T) {
	store := seedStore(t)
	uc := newItemUseCase(store, &fakeImages{})

	req := createReq("Scanner")
	req.Image = "bad"
	_, err := uc.Create(context.Background(), "", req)
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v))
	assert.Contains(t, v.Fields, "image")
	assert.Equal(t, 0, store.ItemRows())
}

func TestItemCreate_FalloDeStock_RollbackYBorraImagen(t *testing.T) {
	store := seedStore(t)
	images := &fakeImages{}
	uc := newItemUseCase(store, images)
	store.StockInsertErr = errors.New("disco lleno")

	req := createReq("Monitor")
	req.Image = "aGVsbG8="
	_, err := uc.Create(context.Background(), "", req)
	require.Error(t, err)

	assert.Equal(t, 0, store.ItemRows(), "el item no debe quedar sin su fila de stock")
	assert.Equal(t, 0, store.StockRows())
	assert.Equal(t, []string{"items/img-1.jpg"}, images.deleted)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func updateReq(name, warehouseID string) dto.UpdateItemRequest {
	return dto.UpdateItemRequest{Name: name, Price: d(200000), WarehouseID: warehouseID}
}

func TestItemUpdate_MismaBodega_SobrescribeAvailable(t *testing.T) {
	store := seedStore(t)
	uc := newItemUseCase(store, &fakeImages{})
	ctx := context.Background()

	created, err := uc.Create(ctx, "", createReq("Proyektor"))
	require.NoError(t, err)

	req := updateReq("Proyektor", gudangA)
	req.Available = d(25)
	out, err := uc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	require.Len(t, out.Stocks, 1)
	assert.True(t, out.Stocks[0].Available.Equal(*d(25)))
	assert.True(t, out.Price.Equal(*d(200000)))
	assert.Equal(t, 1, store.StockRows())
}

func TestItemUpdate_OtraBodega_CreaParYConservaElAnterior(t *testing.T) {
	store := seedStore(t)
	uc := newItemUseCase(store, &fakeImages{})
	ctx := context.Background()

	created, err := uc.Create(ctx, "", createReq("Proyektor"))
	require.NoError(t, err)

	req := updateReq("Proyektor", gudangB)
	req.Available = d(3)
	out, err := uc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	require.Len(t, out.Stocks, 2)
	assert.True(t, out.TotalAvailable.Equal(*d(13)))
}

func TestItemUpdate_SinAvailable_ConservaOIniciaEnCero(t *testing.T) {
	store := seedStore(t)
	uc := newItemUseCase(store, &fakeImages{})
	ctx := context.Background()

	created, err := uc.Create(ctx, "", createReq("Proyektor"))
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, updateReq("Proyektor", gudangA))
	require.NoError(t, err)
	assert.True(t, out.Stocks[0].Available.Equal(*d(10)), "el par existente conserva su valor")

	out, err = uc.Update(ctx, created.ID, updateReq("Proyektor", gudangB))
	require.NoError(t, err)
	for _, s := range out.Stocks {
		if s.WarehouseID == gudangB {
			assert.True(t, s.Available.IsZero(), "un par nuevo inicia en 0")
		}
	}
}

func TestItemUpdate_ConservaBorrowedYMaintenance(t *testing.T) {
	store := seedStore(t)
	uc := newItemUseCase(store, &fakeImages{})
	ctx := context.Background()

	created, err := uc.Create(ctx, "", createReq("Proyektor"))
	require.NoError(t, err)
	row, err := store.Stock().Get(ctx, created.ID, gudangA)
	require.NoError(t, err)
	row.Borrowed = *d(2)
	row.UnderMaintenance = *d(1)
	store.PutStock(*row)

	req := updateReq("Proyektor", gudangA)
	req.Available = d(4)
	out, err := uc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.True(t, out.Stocks[0].Available.Equal(*d(4)))
	assert.True(t, out.Stocks[0].Borrowed.Equal(*d(2)))
	assert.True(t, out.Stocks[0].UnderMaintenance.Equal(*d(1)))
}

func TestItemUpdate_ImagenNueva_BorraLaAnterior(t *testing.T) {
	store := seedStore(t)
	images := &fakeImages{}
	uc := newItemUseCase(store, images)
	ctx := context.Background()

	req := createReq("Proyektor")
	req.Image = "aGVsbG8="
	created, err := uc.Create(ctx, "", req)
	require.NoError(t, err)

	upd := updateReq("Proyektor", gudangA)
	upd.Image = "d29ybGQ="
	out, err := uc.Update(ctx, created.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, "items/img-2.jpg", out.Image)
	assert.Equal(t, []string{"items/img-1.jpg"}, images.deleted)
}

func TestItemUpdate_FalloDeStock_RollbackYBorraImagenNueva(t *testing.T) {
	store := seedStore(t)
	images := &fakeImages{}
	uc := newItemUseCase(store, images)
	ctx := context.Background()

	created, err := uc.Create(ctx, "", createReq("Proyektor"))
	require.NoError(t, err)

	store.StockInsertErr = errors.New("timeout")
	upd := updateReq("Proyektor Baru", gudangB)
	upd.Image = "aGVsbG8="
	upd.Available = d(1)
	_, err = uc.Update(ctx, created.ID, upd)
	require.Error(t, err)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Proyektor", got.Name, "el item no cambia si falla el stock")
	assert.Equal(t, entity.DefaultItemImage, got.Image)
	assert.Len(t, got.Stocks, 1)
	assert.Equal(t, []string{"items/img-1.jpg"}, images.deleted)
}

func TestItemUpdate_NoExiste_NotFound(t *testing.T) {
	uc := newItemUseCase(seedStore(t), &fakeImages{})
	_, err := uc.Update(context.Background(), "no-existe", updateReq("X", gudangA))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemUpdate_MismoNombre_NoEsDuplicado(t *testing.T) {
	store := seedStore(t)
	uc := newItemUseCase(store, &fakeImages{})
	ctx := context.Background()

	created, err := uc.Create(ctx, "", createReq("Proyektor"))
	require.NoError(t, err)
	_, err = uc.Update(ctx, created.ID, updateReq("Proyektor", gudangA))
	assert.NoError(t, err)
}

func TestItemUpdate_SlugDeOtroItem_ErrorDeCampo(t *testing.T) {
	store := seedStore(t)
	images := &fakeImages{}
	uc := newItemUseCase(store, images)
	ctx := context.Background()

	_, err := uc.Create(ctx, "", createReq("Cafe"))
	require.NoError(t, err)
	other, err := uc.Create(ctx, "", createReq("Teh"))
	require.NoError(t, err)

	upd := updateReq("Café", gudangA)
	upd.Image = "aGVsbG8="
	_, err = uc.Update(ctx, other.ID, upd)
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v))
	assert.Contains(t, v.Fields, "name")
	assert.Empty(t, images.uploads)

	got, err := uc.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Teh", got.Name)

	_, err = uc.Update(ctx, other.ID, updateReq("Teh", gudangA))
	assert.NoError(t, err, "su propio slug no cuenta como colisión")
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado y ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func TestItemList_IncluyeStockYTotal(t *testing.T) {
	store := seedStore(t)
	uc := newItemUseCase(store, &fakeImages{})
	ctx := context.Background()

	_, err := uc.Create(ctx, "", createReq("Alpha"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, "", createReq("Beta"))
	require.NoError(t, err)

	out, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Page.Total)
	assert.Equal(t, 20, out.Page.Limit)
	require.Len(t, out.Items, 2)
	for _, it := range out.Items {
		assert.Len(t, it.Stocks, 1)
	}
}

func TestItemDeleteRestorePurge(t *testing.T) {
	store := seedStore(t)
	images := &fakeImages{}
	uc := newItemUseCase(store, images)
	ctx := context.Background()

	req := createReq("Proyektor")
	req.Image = "aGVsbG8="
	created, err := uc.Create(ctx, "", req)
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Purge(ctx, created.ID), domain.ErrConflict, "solo se purgan items eliminados")

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, store.StockRows(), "el stock se conserva tras el borrado lógico")

	restored, err := uc.Restore(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, restored.Stocks, 1)

	require.NoError(t, uc.Delete(ctx, created.ID))
	require.NoError(t, uc.Purge(ctx, created.ID))
	assert.Equal(t, 0, store.ItemRows())
	assert.Equal(t, 0, store.StockRows())
	assert.Equal(t, []string{"items/img-1.jpg"}, images.deleted)
}

func TestNewItemCode_Formato(t *testing.T) {
	code := usecase.NewItemCode()
	assert.Regexp(t, `^BRG-[0-9A-F]{8}$`, code)
	assert.NotEqual(t, code, usecase.NewItemCode())
}
