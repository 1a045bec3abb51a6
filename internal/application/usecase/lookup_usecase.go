package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventaris-api/internal/application/dto"
	"github.com/jhoicas/inventaris-api/internal/domain"
	"github.com/jhoicas/inventaris-api/internal/domain/entity"
	"github.com/jhoicas/inventaris-api/internal/domain/repository"
	"github.com/jhoicas/inventaris-api/pkg/slug"
)

// LookupUseCase administra los catálogos de tipos, unidades y categorías de item.
type LookupUseCase struct {
	repo repository.LookupRepository
}

// NewLookupUseCase construye el caso de uso.
func NewLookupUseCase(repo repository.LookupRepository) *LookupUseCase {
	return &LookupUseCase{repo: repo}
}

func checkKind(kind string) error {
	if !entity.IsLookupKind(kind) {
		return fmt.Errorf("%w: catálogo desconocido %q", domain.ErrNotFound, kind)
	}
	return nil
}

// List devuelve todas las entradas del catálogo.
func (uc *LookupUseCase) List(ctx context.Context, kind string) ([]dto.LookupResponse, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LookupResponse, 0, len(list))
	for _, l := range list {
		out = append(out, toLookupResponse(l))
	}
	return out, nil
}

// Create agrega una entrada; el nombre es único dentro del catálogo.
func (uc *LookupUseCase) Create(ctx context.Context, kind string, in dto.CreateLookupRequest) (*dto.LookupResponse, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	v := domain.NewValidationError()
	name := strings.TrimSpace(in.Name)
	validateName(v, name)
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	now := time.Now()
	l := &entity.Lookup{
		ID:        uuid.NewString(),
		Kind:      kind,
		Name:      name,
		Slug:      slug.Make(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	out := toLookupResponse(l)
	return &out, nil
}

// Delete elimina una entrada; los items que la usaban quedan sin esa referencia.
func (uc *LookupUseCase) Delete(ctx context.Context, kind, id string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, kind, id)
}

func toLookupResponse(l *entity.Lookup) dto.LookupResponse {
	return dto.LookupResponse{
		ID:        l.ID,
		Kind:      l.Kind,
		Name:      l.Name,
		Slug:      l.Slug,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
