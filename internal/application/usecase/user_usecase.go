package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventaris-api/internal/application/dto"
	"github.com/jhoicas/inventaris-api/internal/domain"
	"github.com/jhoicas/inventaris-api/internal/domain/entity"
	"github.com/jhoicas/inventaris-api/internal/domain/repository"
	"github.com/jhoicas/inventaris-api/pkg/logger"
)

// MinPasswordLength longitud mínima de una contraseña.
const MinPasswordLength = 8

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo   repository.UserRepository
	images ImageUploader
	log    *logger.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, images ImageUploader, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{repo: repo, images: images, log: log.Component("users")}
}

// CheckPassword aplica la política: al menos 8 caracteres con minúscula, mayúscula y símbolo.
func CheckPassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("la contraseña debe tener al menos %d caracteres", MinPasswordLength)
	}
	var lower, upper, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	if !lower || !upper || !symbol {
		return errors.New("la contraseña debe incluir minúsculas, mayúsculas y un símbolo")
	}
	return nil
}

func (uc *UserUseCase) checkUnique(ctx context.Context, v *domain.ValidationError, column, value, excludeID string) error {
	if value == "" {
		return nil
	}
	exists, err := uc.repo.ExistsBy(ctx, column, value, excludeID)
	if err != nil {
		return err
	}
	if exists {
		v.Add(column, "ya está en uso")
	}
	return nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func (uc *UserUseCase) uploadAvatar(ctx context.Context, payload, fallback string) (string, error) {
	p, err := uc.images.Upload(ctx, FolderAvatars, payload, fallback)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			v := domain.NewValidationError()
			v.Add("avatar", err.Error())
			return "", v
		}
		return "", err
	}
	return p, nil
}

func (uc *UserUseCase) discardAvatar(ctx context.Context, p string) {
	if p == "" || p == entity.DefaultAvatar {
		return
	}
	if err := uc.images.Delete(ctx, p); err != nil {
		uc.log.Warn().Err(err).Str("path", p).Msg("no se pudo borrar el avatar")
	}
}

// Create registra un usuario con la contraseña hasheada con bcrypt.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	v := domain.NewValidationError()
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	phone := emptyToNil(in.PhoneNumber)

	if name == "" {
		v.Add("name", "el nombre es obligatorio")
	} else if utf8.RuneCountInString(name) > MaxNameLength {
		v.Add("name", fmt.Sprintf("el nombre no puede superar %d caracteres", MaxNameLength))
	}
	if !validEmail(email) {
		v.Add("email", "email inválido")
	}
	if err := CheckPassword(in.Password); err != nil {
		v.Add("password", err.Error())
	} else if in.Password != in.PasswordConfirmation {
		v.Add("password_confirmation", "la confirmación no coincide")
	}
	if !entity.IsRole(in.Role) {
		v.Add("role", "rol inválido (admin, operator o viewer)")
	}
	if err := uc.checkUnique(ctx, v, "name", name, ""); err != nil {
		return nil, err
	}
	if err := uc.checkUnique(ctx, v, "email", email, ""); err != nil {
		return nil, err
	}
	if phone != nil {
		if err := uc.checkUnique(ctx, v, "phone_number", *phone, ""); err != nil {
			return nil, err
		}
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	avatar, err := uc.uploadAvatar(ctx, in.Avatar, entity.DefaultAvatar)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PhoneNumber:  phone,
		Avatar:       avatar,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		uc.discardAvatar(ctx, avatar)
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("usuario creado")
	return uc.toUserResponse(user), nil
}

func (uc *UserUseCase) get(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toUserResponse(user), nil
}

// Update modifica el perfil. Un avatar nuevo reemplaza y borra el anterior.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	v := domain.NewValidationError()
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			v.Add("name", "el nombre es obligatorio")
		} else if err := uc.checkUnique(ctx, v, "name", name, id); err != nil {
			return nil, err
		}
		user.Name = name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if !validEmail(email) {
			v.Add("email", "email inválido")
		} else if err := uc.checkUnique(ctx, v, "email", email, id); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = emptyToNil(in.PhoneNumber)
		if user.PhoneNumber != nil {
			if err := uc.checkUnique(ctx, v, "phone_number", *user.PhoneNumber, id); err != nil {
				return nil, err
			}
		}
	}
	if in.Role != nil {
		if !entity.IsRole(*in.Role) {
			v.Add("role", "rol inválido (admin, operator o viewer)")
		}
		user.Role = *in.Role
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	oldAvatar := user.Avatar
	newAvatar := ""
	if strings.TrimSpace(in.Avatar) != "" {
		if newAvatar, err = uc.uploadAvatar(ctx, in.Avatar, ""); err != nil {
			return nil, err
		}
		user.Avatar = newAvatar
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		uc.discardAvatar(ctx, newAvatar)
		return nil, err
	}
	if newAvatar != "" {
		uc.discardAvatar(ctx, oldAvatar)
	}
	return uc.toUserResponse(user), nil
}

// DeleteAvatar vuelve al avatar por defecto y borra el subido.
func (uc *UserUseCase) DeleteAvatar(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	old := user.Avatar
	user.Avatar = entity.DefaultAvatar
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.discardAvatar(ctx, old)
	return uc.toUserResponse(user), nil
}

// ChangePassword cambia la contraseña tras verificar la actual.
func (uc *UserUseCase) ChangePassword(ctx context.Context, id string, in dto.ChangePasswordRequest) error {
	user, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	v := domain.NewValidationError()
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)) != nil {
		v.Add("current_password", "la contraseña actual no es correcta")
	}
	if err := CheckPassword(in.Password); err != nil {
		v.Add("password", err.Error())
	} else if in.Password != in.PasswordConfirmation {
		v.Add("password_confirmation", "la confirmación no coincide")
	}
	if err := v.OrNil(); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, user)
}

// Delete elimina un usuario. Nadie puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return fmt.Errorf("%w: no puede eliminar su propio usuario", domain.ErrForbidden)
	}
	user, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.discardAvatar(ctx, user.Avatar)
	uc.log.Info().Str("user_id", id).Str("by", actorID).Msg("usuario eliminado")
	return nil
}

// List lista todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	return uc.list(uc.repo.List(ctx))
}

// ListOperators lista los usuarios con rol operator.
func (uc *UserUseCase) ListOperators(ctx context.Context) ([]dto.UserResponse, error) {
	return uc.list(uc.repo.ListByRole(ctx, entity.RoleOperator))
}

func (uc *UserUseCase) list(users []*entity.User, err error) ([]dto.UserResponse, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *uc.toUserResponse(u))
	}
	return out, nil
}

func (uc *UserUseCase) toUserResponse(u *entity.User) *dto.UserResponse {
	return ToUserResponse(u, uc.images.URL(u.Avatar))
}

// ToUserResponse arma la salida de un usuario con sus permisos.
func ToUserResponse(u *entity.User, avatarURL string) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Avatar:      u.Avatar,
		AvatarURL:   avatarURL,
		Role:        u.Role,
		Permissions: entity.PermissionsOf(u.Role),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
