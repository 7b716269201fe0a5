package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/pkg/jwt"
)

// CustomerJWTConfig configuración de tokens para clientes.
type CustomerJWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// CustomerUseCase casos de uso de clientes: alta por administrador y
// autoservicio (registro/login con teléfono y contraseña).
type CustomerUseCase struct {
	repo   repository.CustomerRepository
	jwtCfg CustomerJWTConfig
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, jwtCfg CustomerJWTConfig) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, jwtCfg: jwtCfg}
}

// Create alta de cliente por el administrador, sin credenciales.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	existing, err := uc.repo.GetByPhone(in.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: teléfono %s", domain.ErrDuplicate, in.Phone)
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Register autoservicio: crea el cliente con contraseña y devuelve un token.
// El teléfono es la identidad de login y debe ser único.
func (uc *CustomerUseCase) Register(in dto.RegisterCustomerRequest) (*dto.CustomerAuthResponse, error) {
	existing, err := uc.repo.GetByPhone(in.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: teléfono %s", domain.ErrDuplicate, in.Phone)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Phone:        in.Phone,
		Email:        in.Email,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, customer.ID, "", "customer", uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerAuthResponse{Customer: toCustomerResponse(customer), Token: token}, nil
}

// Login verifica teléfono/contraseña y devuelve un token de cliente.
// Clientes creados por el administrador no tienen contraseña y no pueden loguearse.
func (uc *CustomerUseCase) Login(in dto.LoginCustomerRequest) (*dto.CustomerAuthResponse, error) {
	customer, err := uc.repo.GetByPhone(in.Phone)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !customer.IsActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, customer.ID, "", "customer", uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerAuthResponse{Customer: toCustomerResponse(customer), Token: token}, nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente", domain.ErrNotFound)
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(page, limit int) (*dto.CustomerListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	list, total, err := uc.repo.List(limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Data: items,
		Meta: newListMeta(total, page, limit),
	}, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
}
