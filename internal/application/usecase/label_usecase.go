package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventaris-api/internal/application/dto"
	"github.com/jhoicas/inventaris-api/internal/domain"
	"github.com/jhoicas/inventaris-api/internal/domain/entity"
	"github.com/jhoicas/inventaris-api/internal/domain/repository"
	"github.com/jhoicas/inventaris-api/pkg/logger"
)

// Límites y rutas de las etiquetas generadas.
const (
	MaxLabelCopies = 100
	AllLabelsPath  = "qr_codes/generated_qr_codes.pdf"
	labelSheetName = "QR Code Barang"
)

// LabelUseCase genera los QR de los items y sus hojas de etiquetas en PDF.
type LabelUseCase struct {
	items repository.ItemRepository
	qr    QRGenerator
	pdf   LabelSheetGenerator
	files FileStore
	log   *logger.Logger
}

// NewLabelUseCase construye el caso de uso.
func NewLabelUseCase(items repository.ItemRepository, qr QRGenerator, pdf LabelSheetGenerator, files FileStore, log *logger.Logger) *LabelUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LabelUseCase{items: items, qr: qr, pdf: pdf, files: files, log: log.Component("labels")}
}

// QRPath ruta del PNG del QR de un item.
func QRPath(code string) string {
	return "qr_code/" + code + ".png"
}

// ItemLabelsPath ruta de la hoja PDF de un item.
func ItemLabelsPath(itemID string) string {
	return "qr_codes/qr_code_" + itemID + ".pdf"
}

func (uc *LabelUseCase) item(ctx context.Context, id string) (*entity.Item, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}
	return item, nil
}

func (uc *LabelUseCase) storeQR(ctx context.Context, item *entity.Item) (*dto.QRResponse, error) {
	png, err := uc.qr.PNG(item.Code)
	if err != nil {
		return nil, err
	}
	p := QRPath(item.Code)
	if err := uc.files.Put(ctx, p, png, "image/png"); err != nil {
		return nil, fmt.Errorf("guardar qr: %w", err)
	}
	return &dto.QRResponse{ItemID: item.ID, Code: item.Code, Path: p, URL: uc.files.URL(p)}, nil
}

// ItemQR genera (o regenera) el PNG del QR del item.
func (uc *LabelUseCase) ItemQR(ctx context.Context, id string) (*dto.QRResponse, error) {
	item, err := uc.item(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.storeQR(ctx, item)
}

// AllQR genera el PNG del QR de cada item no eliminado.
func (uc *LabelUseCase) AllQR(ctx context.Context) (*dto.QRListResponse, error) {
	items, err := uc.items.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.QRListResponse{Items: make([]dto.QRResponse, 0, len(items))}
	for _, it := range items {
		r, err := uc.storeQR(ctx, it)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, *r)
	}
	return out, nil
}

// AllLabels genera una hoja PDF con una etiqueta por item.
func (uc *LabelUseCase) AllLabels(ctx context.Context) (*dto.LabelPDFResponse, error) {
	items, err := uc.items.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no hay items para generar etiquetas", domain.ErrNotFound)
	}
	labels := make([]Label, 0, len(items))
	for _, it := range items {
		labels = append(labels, Label{Code: it.Code, Name: it.Name})
	}
	return uc.storeSheet(ctx, AllLabelsPath, labels)
}

// ItemLabels genera una hoja PDF con copies etiquetas del item (1 por defecto, hasta MaxLabelCopies).
func (uc *LabelUseCase) ItemLabels(ctx context.Context, id string, copies int) (*dto.LabelPDFResponse, error) {
	if copies == 0 {
		copies = 1
	}
	if copies < 1 || copies > MaxLabelCopies {
		v := domain.NewValidationError()
		v.Add("jumlah", fmt.Sprintf("debe estar entre 1 y %d", MaxLabelCopies))
		return nil, v
	}
	item, err := uc.item(ctx, id)
	if err != nil {
		return nil, err
	}
	labels := make([]Label, copies)
	for i := range labels {
		labels[i] = Label{Code: item.Code, Name: item.Name}
	}
	return uc.storeSheet(ctx, ItemLabelsPath(item.ID), labels)
}

func (uc *LabelUseCase) storeSheet(ctx context.Context, p string, labels []Label) (*dto.LabelPDFResponse, error) {
	doc, err := uc.pdf.Generate(ctx, labelSheetName, labels)
	if err != nil {
		return nil, err
	}
	if err := uc.files.Put(ctx, p, doc, "application/pdf"); err != nil {
		return nil, fmt.Errorf("guardar pdf: %w", err)
	}
	uc.log.Info().Str("path", p).Int("labels", len(labels)).Msg("hoja de etiquetas generada")
	return &dto.LabelPDFResponse{Path: p, URL: uc.files.URL(p), Labels: len(labels)}, nil
}
