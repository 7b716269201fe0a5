package usecase

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// branchCodeSeed primer código cuando no existen sucursales.
const branchCodeSeed = 1000

// BranchUseCase casos de uso CRUD para sucursales.
type BranchUseCase struct {
	repo repository.BranchRepository
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(repo repository.BranchRepository) *BranchUseCase {
	return &BranchUseCase{repo: repo}
}

// Create crea una sucursal. El código es consecutivo: el de la última sucursal
// creada más uno, semilla cuando no hay ninguna.
func (uc *BranchUseCase) Create(in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	last, err := uc.repo.GetLast()
	if err != nil {
		return nil, err
	}
	code := branchCodeSeed
	if last != nil {
		if n, err := strconv.Atoi(last.Code); err == nil {
			code = n + 1
		}
	}
	now := time.Now()
	branch := &entity.Branch{
		ID:        uuid.New().String(),
		Code:      strconv.Itoa(code),
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// GetByID obtiene una sucursal por ID.
func (uc *BranchUseCase) GetByID(id string) (*dto.BranchResponse, error) {
	branch, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, fmt.Errorf("%w: sucursal", domain.ErrNotFound)
	}
	return toBranchResponse(branch), nil
}

// Update actualiza los datos de una sucursal. El código no es modificable.
func (uc *BranchUseCase) Update(id string, in dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	branch, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, fmt.Errorf("%w: sucursal", domain.ErrNotFound)
	}
	if in.Name != nil {
		branch.Name = *in.Name
	}
	if in.Address != nil {
		branch.Address = *in.Address
	}
	if in.Phone != nil {
		branch.Phone = *in.Phone
	}
	branch.UpdatedAt = time.Now()
	if err := uc.repo.Update(branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// ToggleStatus activa o desactiva una sucursal.
func (uc *BranchUseCase) ToggleStatus(id string) (*dto.BranchResponse, error) {
	branch, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, fmt.Errorf("%w: sucursal", domain.ErrNotFound)
	}
	branch.IsActive = !branch.IsActive
	branch.UpdatedAt = time.Now()
	if err := uc.repo.Update(branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// List lista sucursales con paginación y búsqueda opcional.
func (uc *BranchUseCase) List(page, limit int, search string, onlyActive bool) (*dto.BranchListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	list, total, err := uc.repo.List(limit, (page-1)*limit, search, onlyActive)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.BranchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, toBranchResponse(b))
	}
	return &dto.BranchListResponse{
		Data: items,
		Meta: newListMeta(total, page, limit),
	}, nil
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	if b == nil {
		return nil
	}
	return &dto.BranchResponse{
		ID:        b.ID,
		Code:      b.Code,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
	}
}
