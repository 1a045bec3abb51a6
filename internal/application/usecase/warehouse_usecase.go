package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jhoicas/inventaris-api/internal/application/dto"
	"github.com/jhoicas/inventaris-api/internal/domain"
	"github.com/jhoicas/inventaris-api/internal/domain/entity"
	"github.com/jhoicas/inventaris-api/internal/domain/repository"
	"github.com/jhoicas/inventaris-api/pkg/slug"
)

// WarehouseUseCase casos de uso CRUD para bodegas.
type WarehouseUseCase struct {
	repo  repository.WarehouseRepository
	users repository.UserRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, users repository.UserRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, users: users}
}

// checkAdmin valida que el administrador exista y no gestione ya otra bodega.
func (uc *WarehouseUseCase) checkAdmin(ctx context.Context, v *domain.ValidationError, adminID *string, selfID string) error {
	if adminID == nil || *adminID == "" {
		return nil
	}
	u, err := uc.users.GetByID(ctx, *adminID)
	if err != nil {
		return err
	}
	if u == nil {
		v.Add("admin_id", "el usuario no existe")
		return nil
	}
	w, err := uc.repo.GetByAdmin(ctx, *adminID)
	if err != nil {
		return err
	}
	if w != nil && w.ID != selfID {
		v.Add("admin_id", "el usuario ya administra otra bodega")
	}
	return nil
}

func validateName(v *domain.ValidationError, name string) {
	switch {
	case name == "":
		v.Add("name", "el nombre es obligatorio")
	case utf8.RuneCountInString(name) > MaxNameLength:
		v.Add("name", fmt.Sprintf("el nombre no puede superar %d caracteres", MaxNameLength))
	case slug.Make(name) == "":
		v.Add("name", "el nombre debe contener letras o números")
	}
}

// Create crea una nueva bodega; userID queda como dueño.
func (uc *WarehouseUseCase) Create(ctx context.Context, userID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	v := domain.NewValidationError()
	name := strings.TrimSpace(in.Name)
	validateName(v, name)
	if err := uc.checkAdmin(ctx, v, in.AdminID, ""); err != nil {
		return nil, err
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        slug.Make(name),
		Description: in.Description,
		UserID:      nullable(userID),
		AdminID:     emptyToNil(in.AdminID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza una bodega. Un admin_id vacío ("") la deja sin administrador.
func (uc *WarehouseUseCase) Update(ctx context.Context, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
	}
	v := domain.NewValidationError()
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		validateName(v, name)
		warehouse.Name = name
		warehouse.Slug = slug.Make(name)
	}
	if err := uc.checkAdmin(ctx, v, in.AdminID, warehouse.ID); err != nil {
		return nil, err
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if in.Description != nil {
		warehouse.Description = in.Description
	}
	if in.AdminID != nil {
		warehouse.AdminID = emptyToNil(in.AdminID)
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas con paginación.
func (uc *WarehouseUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.WarehouseListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina una bodega por ID; su stock se borra en cascada.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:          w.ID,
		Name:        w.Name,
		Slug:        w.Slug,
		Description: w.Description,
		UserID:      w.UserID,
		AdminID:     w.AdminID,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
