package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventaris-api/internal/application/dto"
	"github.com/jhoicas/inventaris-api/internal/application/usecase"
	"github.com/jhoicas/inventaris-api/internal/domain"
	"github.com/jhoicas/inventaris-api/internal/domain/entity"
)

const goodPassword = "Rahasia#123"

func newUserReq(name, email string) dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Name: name, Email: email, Password: goodPassword, PasswordConfirmation: goodPassword,
		Role: entity.RoleOperator,
	}
}

func TestCheckPassword(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{"Rahasia#123", true},
		{"Ab!", false},
		{"rahasia#123", false},
		{"RAHASIA#123", false},
		{"Rahasia1234", false},
	}
	for _, c := range cases {
		err := usecase.CheckPassword(c.password)
		assert.Equal(t, c.ok, err == nil, c.password)
	}
}

func TestUserCreate_HasheaYAsignaAvatarPorDefecto(t *testing.T) {
	store := seedStore(t)
	uc := usecase.NewUserUseCase(store.Users(), &fakeImages{}, nil)

	out, err := uc.Create(context.Background(), newUserReq("Budi", " Budi@Inventaris.Test "))
	require.NoError(t, err)
	assert.Equal(t, "budi@inventaris.test", out.Email)
	assert.Equal(t, entity.DefaultAvatar, out.Avatar)
	assert.Equal(t, entity.PermissionsOf(entity.RoleOperator), out.Permissions)

	u, err := store.Users().GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.NotEqual(t, goodPassword, u.PasswordHash)
}

func TestUserCreate_Validacion(t *testing.T) {
	store := seedStore(t)
	uc := usecase.NewUserUseCase(store.Users(), &fakeImages{}, nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, newUserReq("Budi", "budi@inventaris.test"))
	require.NoError(t, err)

	req := newUserReq("Budi", "budi@inventaris.test")
	req.PasswordConfirmation = "otra"
	req.Role = "root"
	_, err = uc.Create(ctx, req)
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v))
	for _, f := range []string{"name", "email", "password_confirmation", "role"} {
		assert.Contains(t, v.Fields, f)
	}
}

func TestUserUpdate_AvatarNuevoReemplazaAnterior(t *testing.T) {
	store := seedStore(t)
	images := &fakeImages{}
	uc := usecase.NewUserUseCase(store.Users(), images, nil)
	ctx := context.Background()

	req := newUserReq("Budi", "budi@inventaris.test")
	req.Avatar = "aGVsbG8="
	created, err := uc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "avatars/img-1.jpg", created.Avatar)

	out, err := uc.Update(ctx, created.ID, dto.UpdateUserRequest{Name: str("Budi S"), Avatar: "d29ybGQ="})
	require.NoError(t, err)
	assert.Equal(t, "Budi S", out.Name)
	assert.Equal(t, "avatars/img-2.jpg", out.Avatar)
	assert.Equal(t, []string{"avatars/img-1.jpg"}, images.deleted)

	out, err = uc.DeleteAvatar(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultAvatar, out.Avatar)
	assert.Equal(t, []string{"avatars/img-1.jpg", "avatars/img-2.jpg"}, images.deleted)
}

func TestUserChangePassword(t *testing.T) {
	store := seedStore(t)
	uc := usecase.NewUserUseCase(store.Users(), &fakeImages{}, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, newUserReq("Budi", "budi@inventaris.test"))
	require.NoError(t, err)

	err = uc.ChangePassword(ctx, created.ID, dto.ChangePasswordRequest{
		CurrentPassword: "incorrecta", Password: "Nueva#2024", PasswordConfirmation: "Nueva#2024",
	})
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v))
	assert.Contains(t, v.Fields, "current_password")

	require.NoError(t, uc.ChangePassword(ctx, created.ID, dto.ChangePasswordRequest{
		CurrentPassword: goodPassword, Password: "Nueva#2024", PasswordConfirmation: "Nueva#2024",
	}))
}

func TestUserDelete_NoASiMismo(t *testing.T) {
	store := seedStore(t)
	uc := usecase.NewUserUseCase(store.Users(), &fakeImages{}, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, newUserReq("Budi", "budi@inventaris.test"))
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, created.ID, created.ID), domain.ErrForbidden)
	require.NoError(t, uc.Delete(ctx, "admin", created.ID))
	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserListOperators(t *testing.T) {
	store := seedStore(t)
	seedUser(t, store, "adm", "Admin", entity.RoleAdmin)
	seedUser(t, store, "op", "Operator", entity.RoleOperator)
	uc := usecase.NewUserUseCase(store.Users(), &fakeImages{}, nil)

	all, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	ops, err := uc.ListOperators(context.Background())
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "op", ops[0].ID)
}
