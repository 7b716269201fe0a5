package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/apptest"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain"
	pkgjwt "github.com/jhoicas/Ventas-api/pkg/jwt"
)

var testCustomerJWT = usecase.CustomerJWTConfig{
	Secret:     "secreto-de-test",
	ExpMinutes: 60,
	Issuer:     "ventas-api-test",
}

func newCustomerUC(store *apptest.Store) *usecase.CustomerUseCase {
	return usecase.NewCustomerUseCase(&apptest.CustomerRepo{S: store}, testCustomerJWT)
}

func TestCustomerRegister_DevuelveTokenDeCliente(t *testing.T) {
	store := apptest.NewStore()
	uc := newCustomerUC(store)

	out, err := uc.Register(dto.RegisterCustomerRequest{
		Name:     "Ana",
		Phone:    "3001234567",
		Password: "secreta1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, branchID, role, err := pkgjwt.Parse(testCustomerJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.Customer.ID, userID)
	assert.Empty(t, branchID, "los clientes no pertenecen a una sucursal")
	assert.Equal(t, "customer", role)
}

func TestCustomerRegister_TelefonoDuplicado_RetornaDuplicate(t *testing.T) {
	store := apptest.NewStore()
	uc := newCustomerUC(store)

	_, err := uc.Register(dto.RegisterCustomerRequest{Name: "Ana", Phone: "3001234567", Password: "secreta1"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterCustomerRequest{Name: "Otra Ana", Phone: "3001234567", Password: "secreta2"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCustomerLogin_CredencialesValidas(t *testing.T) {
	store := apptest.NewStore()
	uc := newCustomerUC(store)

	_, err := uc.Register(dto.RegisterCustomerRequest{Name: "Ana", Phone: "3001234567", Password: "secreta1"})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginCustomerRequest{Phone: "3001234567", Password: "secreta1"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "Ana", out.Customer.Name)
}

func TestCustomerLogin_PasswordIncorrecta_RetornaUnauthorized(t *testing.T) {
	store := apptest.NewStore()
	uc := newCustomerUC(store)

	_, err := uc.Register(dto.RegisterCustomerRequest{Name: "Ana", Phone: "3001234567", Password: "secreta1"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginCustomerRequest{Phone: "3001234567", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCustomerLogin_CreadoPorAdmin_NoPuedeLoguearse(t *testing.T) {
	store := apptest.NewStore()
	uc := newCustomerUC(store)

	// alta por administrador: sin contraseña
	_, err := uc.Create(dto.CreateCustomerRequest{Name: "Pedro", Phone: "3017654321"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginCustomerRequest{Phone: "3017654321", Password: "cualquiera"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCustomerLogin_Inactivo_RetornaForbidden(t *testing.T) {
	store := apptest.NewStore()
	uc := newCustomerUC(store)

	out, err := uc.Register(dto.RegisterCustomerRequest{Name: "Ana", Phone: "3001234567", Password: "secreta1"})
	require.NoError(t, err)
	store.Customers[out.Customer.ID].IsActive = false

	_, err = uc.Login(dto.LoginCustomerRequest{Phone: "3001234567", Password: "secreta1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
