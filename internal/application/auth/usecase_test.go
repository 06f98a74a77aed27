package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-inventario/internal/application/auth"
	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/infrastructure/memory"
	"github.com/jhoicas/taller-inventario/pkg/jwt"
)

const testSecret = "test-secret-taller"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 5, Issuer: "taller-inventario-test"})
	return uc, store
}

func register(email, role string) dto.RegisterRequest {
	return dto.RegisterRequest{Email: email, Password: "secreto123", Name: "Usuario", Role: role}
}

func TestRegisterUser_PrimerUsuarioEsAdmin(t *testing.T) {
	uc, _ := newAuth(t)

	out, err := uc.RegisterUser(context.Background(), "", register("Jefe@Taller.bo", entity.RoleTecnico))
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role)
	assert.Equal(t, "jefe@taller.bo", out.Email)
	assert.Equal(t, entity.UserStatusActive, out.Status)
}

func TestRegisterUser_DespuesRequiereAdmin(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, "", register("admin@taller.bo", ""))
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, "", register("otro@taller.bo", ""))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.RegisterUser(ctx, entity.RoleAlmacenero, register("otro@taller.bo", ""))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.RegisterUser(ctx, entity.RoleAdmin, register("otro@taller.bo", ""))
	require.NoError(t, err)
	assert.Equal(t, entity.RoleTecnico, out.Role, "rol por defecto")

	out, err = uc.RegisterUser(ctx, entity.RoleAdmin, register("alm@taller.bo", entity.RoleAlmacenero))
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAlmacenero, out.Role)
}

func TestRegisterUser_EmailRepetidoYRolInvalido(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, "", register("admin@taller.bo", ""))
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, entity.RoleAdmin, register("ADMIN@taller.bo", ""))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, entity.RoleAdmin, register("x@taller.bo", "gerente"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_TokenConRol(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	created, err := uc.RegisterUser(ctx, "", register("admin@taller.bo", ""))
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: " Admin@Taller.bo", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, out.User.ID)

	userID, role, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)

	me, err := uc.Me(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "admin@taller.bo", me.Email)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, "", register("admin@taller.bo", ""))
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@taller.bo", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@taller.bo", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()
	created, err := uc.RegisterUser(ctx, "", register("admin@taller.bo", ""))
	require.NoError(t, err)

	u, err := store.Users().GetByID(ctx, created.ID)
	require.NoError(t, err)
	u.Status = entity.UserStatusInactive
	store.PutUser(u)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@taller.bo", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMe_UsuarioInexistente(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.Me(context.Background(), "nadie")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
