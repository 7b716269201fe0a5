package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/apptest"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain"
)

func newProductUC(store *apptest.Store) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(&apptest.ProductRepo{S: store})
}

func TestProductCreate_GeneraCodigoConsecutivo(t *testing.T) {
	store := apptest.NewStore()
	uc := newProductUC(store)

	first, err := uc.Create(dto.CreateProductRequest{
		SKU:                   "SKU-A",
		Name:                  "Arroz 1kg",
		SalesRateIncDisAndTax: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Equal(t, "1000", first.Code, "el primer producto usa la semilla")
	assert.True(t, first.IsActive, "activo por defecto")
	assert.True(t, first.DisplayOnPOS, "visible en POS por defecto")

	second, err := uc.Create(dto.CreateProductRequest{
		SKU:                   "SKU-B",
		Name:                  "Azúcar 1kg",
		SalesRateIncDisAndTax: decimal.NewFromInt(12),
	})
	require.NoError(t, err)
	assert.Equal(t, "1001", second.Code)
}

func TestProductCreate_SKUDuplicado_RetornaDuplicate(t *testing.T) {
	store := apptest.NewStore()
	uc := newProductUC(store)

	_, err := uc.Create(dto.CreateProductRequest{SKU: "SKU-A", Name: "Arroz"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateProductRequest{SKU: "SKU-A", Name: "Otro arroz"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUpdate_NoTocaSKUNiCodigo(t *testing.T) {
	store := apptest.NewStore()
	uc := newProductUC(store)

	created, err := uc.Create(dto.CreateProductRequest{SKU: "SKU-A", Name: "Arroz"})
	require.NoError(t, err)

	newName := "Arroz premium"
	inactive := false
	out, err := uc.Update(created.ID, dto.UpdateProductRequest{
		Name:     &newName,
		IsActive: &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "Arroz premium", out.Name)
	assert.False(t, out.IsActive)
	assert.Equal(t, created.SKU, out.SKU)
	assert.Equal(t, created.Code, out.Code)
}

func TestProductGetByID_Inexistente_RetornaNotFound(t *testing.T) {
	uc := newProductUC(apptest.NewStore())

	_, err := uc.GetByID("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
