package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventaris-api/internal/application/dto"
	"github.com/jhoicas/inventaris-api/internal/application/inventory"
	"github.com/jhoicas/inventaris-api/internal/domain"
	"github.com/jhoicas/inventaris-api/internal/domain/entity"
	"github.com/jhoicas/inventaris-api/internal/domain/repository"
	"github.com/jhoicas/inventaris-api/pkg/logger"
	"github.com/jhoicas/inventaris-api/pkg/slug"
)

// MaxNameLength longitud máxima (en caracteres) de nombres de item, bodega y catálogo.
const MaxNameLength = 255

// ItemUseCase crea y actualiza items junto con su fila de stock, en una sola transacción.
type ItemUseCase struct {
	items   repository.ItemRepository
	lookups repository.LookupRepository
	tx      inventory.TxRunner
	ledger  *inventory.Ledger
	images  ImageUploader
	log     *logger.Logger
	now     func() time.Time
	newCode func() string
}

// ItemDeps agrupa las dependencias de ItemUseCase.
type ItemDeps struct {
	Repos   inventory.Repos
	Lookups repository.LookupRepository
	Tx      inventory.TxRunner
	Ledger  *inventory.Ledger
	Images  ImageUploader
	Log     *logger.Logger
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(d ItemDeps) *ItemUseCase {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	return &ItemUseCase{
		items:   d.Repos.Items,
		lookups: d.Lookups,
		tx:      d.Tx,
		ledger:  d.Ledger,
		images:  d.Images,
		log:     log.Component("items"),
		now:     time.Now,
		newCode: NewItemCode,
	}
}

// NewItemCode genera el código BRG-XXXXXXXX que codifica el QR del item.
func NewItemCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BRG-" + strings.ToUpper(id[:8])
}

var amountMessage = fmt.Sprintf("admite %d decimales y debe ser menor que %s", entity.AmountScale, entity.AmountLimit)

// itemInput es la parte común de crear y actualizar.
type itemInput struct {
	name           string
	classification string
	price          *decimal.Decimal
	typeID         *string
	unitID         *string
	categoryID     *string
	warehouseID    string
	available      *decimal.Decimal
	requireStock   bool
}

// validate comprueba todos los campos y devuelve un *domain.ValidationError con cada fallo.
// excludeID es el propio item al actualizar.
func (uc *ItemUseCase) validate(ctx context.Context, in *itemInput, excludeID string) error {
	v := domain.NewValidationError()

	in.name = strings.TrimSpace(in.name)
	switch {
	case in.name == "":
		v.Add("name", "el nombre es obligatorio")
	case utf8.RuneCountInString(in.name) > MaxNameLength:
		v.Add("name", fmt.Sprintf("el nombre no puede superar %d caracteres", MaxNameLength))
	case slug.Make(in.name) == "":
		v.Add("name", "el nombre debe contener letras o números")
	default:
		exists, err := uc.items.ExistsByName(ctx, in.name, excludeID)
		if err != nil {
			return err
		}
		if exists {
			v.Add("name", "ya existe un item con ese nombre")
			break
		}
		exists, err = uc.items.ExistsBySlug(ctx, slug.Make(in.name), excludeID)
		if err != nil {
			return err
		}
		if exists {
			v.Add("name", "ya existe un item con un nombre equivalente")
		}
	}

	if in.classification == "" {
		in.classification = entity.ClassificationReusable
	} else if !entity.IsClassification(in.classification) {
		v.Add("classification", "clasificación inválida (sekali_pakai o berulang)")
	}

	if in.price == nil {
		v.Add("price", "el precio es obligatorio")
	} else if in.price.IsNegative() {
		v.Add("price", "el precio no puede ser negativo")
	} else if !entity.AmountFits(*in.price) {
		v.Add("price", amountMessage)
	}

	for _, ref := range []struct {
		field string
		kind  string
		id    **string
	}{
		{"type_id", entity.LookupItemType, &in.typeID},
		{"unit_id", entity.LookupUnit, &in.unitID},
		{"category_id", entity.LookupCategory, &in.categoryID},
	} {
		if *ref.id == nil || strings.TrimSpace(**ref.id) == "" {
			*ref.id = nil
			continue
		}
		l, err := uc.lookups.GetByID(ctx, ref.kind, **ref.id)
		if err != nil {
			return err
		}
		if l == nil {
			v.Add(ref.field, "no existe")
		}
	}

	if strings.TrimSpace(in.warehouseID) == "" {
		v.Add("warehouse_id", "la bodega es obligatoria")
	} else {
		w, err := uc.ledgerRepos().Warehouses.GetByID(ctx, in.warehouseID)
		if err != nil {
			return err
		}
		if w == nil {
			v.Add("warehouse_id", "la bodega no existe")
		}
	}

	if in.available == nil {
		if in.requireStock {
			v.Add("available", "la cantidad disponible es obligatoria")
		}
	} else if in.available.IsNegative() {
		v.Add("available", "la cantidad disponible no puede ser negativa")
	} else if !entity.AmountFits(*in.available) {
		v.Add("available", amountMessage)
	}

	return v.OrNil()
}

func (uc *ItemUseCase) ledgerRepos() inventory.Repos {
	return uc.ledger.Repos()
}

// uploadImage sube la imagen; los errores de formato se reportan como error de validación del campo.
func (uc *ItemUseCase) uploadImage(ctx context.Context, payload, fallback string) (string, error) {
	p, err := uc.images.Upload(ctx, FolderItems, payload, fallback)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			v := domain.NewValidationError()
			v.Add("image", err.Error())
			return "", v
		}
		return "", err
	}
	return p, nil
}

// discardImage borra una imagen subida que ya no se usa; un fallo solo se registra.
func (uc *ItemUseCase) discardImage(ctx context.Context, p string) {
	if p == "" || p == entity.DefaultItemImage {
		return
	}
	if err := uc.images.Delete(ctx, p); err != nil {
		uc.log.Warn().Err(err).Str("path", p).Msg("no se pudo borrar la imagen")
	}
}

// Create valida, sube la imagen y en una transacción inserta el item y su fila de stock.
// Si la transacción falla, la imagen subida se borra.
func (uc *ItemUseCase) Create(ctx context.Context, userID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	input := itemInput{
		name: in.Name, classification: in.Classification, price: in.Price,
		typeID: in.TypeID, unitID: in.UnitID, categoryID: in.CategoryID,
		warehouseID: in.WarehouseID, available: in.Available, requireStock: true,
	}
	if err := uc.validate(ctx, &input, ""); err != nil {
		return nil, err
	}

	image, err := uc.uploadImage(ctx, in.Image, entity.DefaultItemImage)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	item := &entity.Item{
		ID:             uuid.NewString(),
		Code:           uc.newCode(),
		Name:           input.name,
		Slug:           slug.Make(input.name),
		Classification: input.classification,
		Price:          *input.price,
		TypeID:         input.typeID,
		UnitID:         input.unitID,
		CategoryID:     input.categoryID,
		Image:          image,
		UserID:         nullable(userID),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.tx.Run(ctx, func(repos inventory.Repos) error {
		if err := repos.Items.Create(ctx, item); err != nil {
			return err
		}
		_, err := uc.ledger.WithRepos(repos).AttachOrUpdate(ctx, item.ID, input.warehouseID, *input.available)
		return err
	})
	if err != nil {
		uc.discardImage(ctx, image)
		return nil, err
	}

	uc.log.Info().Str("item_id", item.ID).Str("code", item.Code).Str("warehouse_id", input.warehouseID).
		Str("available", input.available.String()).Msg("item creado")
	return uc.response(ctx, item)
}

// Update actualiza el item y asigna/actualiza su stock en la bodega indicada, en una transacción.
// Las asignaciones a otras bodegas no se tocan.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}

	input := itemInput{
		name: in.Name, classification: in.Classification, price: in.Price,
		typeID: in.TypeID, unitID: in.UnitID, categoryID: in.CategoryID,
		warehouseID: in.WarehouseID, available: in.Available,
	}
	if err := uc.validate(ctx, &input, item.ID); err != nil {
		return nil, err
	}

	oldImage := item.Image
	newImage := ""
	if strings.TrimSpace(in.Image) != "" {
		newImage, err = uc.uploadImage(ctx, in.Image, "")
		if err != nil {
			return nil, err
		}
		item.Image = newImage
	}

	item.Name = input.name
	item.Slug = slug.Make(input.name)
	item.Classification = input.classification
	item.Price = *input.price
	item.TypeID = input.typeID
	item.UnitID = input.unitID
	item.CategoryID = input.categoryID
	item.UpdatedAt = uc.now()

	err = uc.tx.Run(ctx, func(repos inventory.Repos) error {
		if err := repos.Items.Update(ctx, item); err != nil {
			return err
		}
		ledger := uc.ledger.WithRepos(repos)
		available := decimal.Zero
		if input.available != nil {
			available = *input.available
		} else {
			current, err := ledger.Get(ctx, item.ID, input.warehouseID)
			if err != nil {
				return err
			}
			if current != nil {
				available = current.Available
			}
		}
		_, err := ledger.AttachOrUpdate(ctx, item.ID, input.warehouseID, available)
		return err
	})
	if err != nil {
		uc.discardImage(ctx, newImage)
		return nil, err
	}
	if newImage != "" && oldImage != newImage {
		uc.discardImage(ctx, oldImage)
	}

	uc.log.Info().Str("item_id", item.ID).Str("warehouse_id", input.warehouseID).Msg("item actualizado")
	return uc.response(ctx, item)
}

// GetByID devuelve el item con su stock por bodega.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}
	return uc.response(ctx, item)
}

// List lista items con su stock; las filas de stock se leen en una sola consulta.
func (uc *ItemUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ItemListResponse, error) {
	page.DefaultPage()
	list, err := uc.items.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.items.Count(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, it := range list {
		ids = append(ids, it.ID)
	}
	stocks, err := uc.ledger.ListForItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, *uc.toItemResponse(it, stocks[it.ID]))
	}
	return &dto.ItemListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina lógicamente el item; su stock se conserva hasta purgarlo.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.items.SoftDelete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("item_id", id).Msg("item eliminado")
	return nil
}

// Restore recupera un item eliminado lógicamente.
func (uc *ItemUseCase) Restore(ctx context.Context, id string) (*dto.ItemResponse, error) {
	if err := uc.items.Restore(ctx, id); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Purge borra definitivamente un item ya eliminado: su stock cae en cascada y se borra la imagen.
func (uc *ItemUseCase) Purge(ctx context.Context, id string) error {
	item, err := uc.items.GetByIDWithDeleted(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}
	if !item.IsDeleted() {
		return fmt.Errorf("%w: el item debe eliminarse antes de purgarlo", domain.ErrConflict)
	}
	if err := uc.items.ForceDelete(ctx, id); err != nil {
		return err
	}
	if item.HasCustomImage() {
		uc.discardImage(ctx, item.Image)
	}
	uc.log.Info().Str("item_id", id).Msg("item purgado")
	return nil
}

func (uc *ItemUseCase) response(ctx context.Context, item *entity.Item) (*dto.ItemResponse, error) {
	stocks, err := uc.ledger.ListForItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	return uc.toItemResponse(item, stocks), nil
}

func (uc *ItemUseCase) toItemResponse(it *entity.Item, stocks []*entity.WarehouseStock) *dto.ItemResponse {
	out := &dto.ItemResponse{
		ID:             it.ID,
		Code:           it.Code,
		Name:           it.Name,
		Slug:           it.Slug,
		Classification: it.Classification,
		Price:          it.Price,
		TypeID:         it.TypeID,
		UnitID:         it.UnitID,
		CategoryID:     it.CategoryID,
		Image:          it.Image,
		ImageURL:       uc.images.URL(it.Image),
		UserID:         it.UserID,
		TotalAvailable: decimal.Zero,
		Stocks:         make([]dto.StockEntryResponse, 0, len(stocks)),
		DeletedAt:      it.DeletedAt,
		CreatedAt:      it.CreatedAt,
		UpdatedAt:      it.UpdatedAt,
	}
	for _, s := range stocks {
		out.Stocks = append(out.Stocks, toStockEntryResponse(s))
		out.TotalAvailable = out.TotalAvailable.Add(s.Available)
	}
	return out
}

func toStockEntryResponse(s *entity.WarehouseStock) dto.StockEntryResponse {
	return dto.StockEntryResponse{
		ItemID:               s.ItemID,
		WarehouseID:          s.WarehouseID,
		WarehouseName:        s.WarehouseName,
		WarehouseSlug:        s.WarehouseSlug,
		WarehouseDescription: s.WarehouseDescription,
		Available:            s.Available,
		Borrowed:             s.Borrowed,
		UnderMaintenance:     s.UnderMaintenance,
		CreatedAt:            dto.FormatTime(s.CreatedAt),
		UpdatedAt:            dto.FormatTime(s.UpdatedAt),
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
