package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pos/internal/application/auth"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/infrastructure/memory"
)

func newAuthUC(store *memory.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "retail-pos-test",
	})
}

func TestRegisterUser_RolPorDefectoVendedor(t *testing.T) {
	uc := newAuthUC(memory.NewStore())

	user, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "caja@tienda.cl",
		Password: "secreto-largo",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, user.Role)
	assert.Equal(t, "active", user.Status)
	assert.Equal(t, "caja@tienda.cl", user.Name, "sin nombre usa el email")
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc := newAuthUC(memory.NewStore())
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "caja@tienda.cl", Password: "secreto-largo"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "caja@tienda.cl", Password: "otro-secreto"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEmailAlreadyExists))
}

func TestLogin_TokenYUsuario(t *testing.T) {
	uc := newAuthUC(memory.NewStore())
	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "admin@tienda.cl", Password: "secreto-largo", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "admin@tienda.cl", Password: "secreto-largo"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, entity.RoleAdmin, resp.User.Role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc := newAuthUC(memory.NewStore())
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "caja@tienda.cl", Password: "secreto-largo"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "caja@tienda.cl", Password: "equivocada"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuthUC(memory.NewStore())

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@tienda.cl", Password: "lo-que-sea"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}
