package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/apptest"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain"
)

func newBranchUC(store *apptest.Store) *usecase.BranchUseCase {
	return usecase.NewBranchUseCase(&apptest.BranchRepo{S: store})
}

func TestBranchCreate_CodigoConsecutivoDesdeLaUltima(t *testing.T) {
	store := apptest.NewStore()
	uc := newBranchUC(store)

	first, err := uc.Create(dto.CreateBranchRequest{Name: "Centro"})
	require.NoError(t, err)
	assert.Equal(t, "1000", first.Code)
	assert.True(t, first.IsActive)

	second, err := uc.Create(dto.CreateBranchRequest{Name: "Norte"})
	require.NoError(t, err)
	assert.Equal(t, "1001", second.Code)
}

func TestBranchToggleStatus_AlternaActiva(t *testing.T) {
	store := apptest.NewStore()
	uc := newBranchUC(store)

	created, err := uc.Create(dto.CreateBranchRequest{Name: "Centro"})
	require.NoError(t, err)

	out, err := uc.ToggleStatus(created.ID)
	require.NoError(t, err)
	assert.False(t, out.IsActive)

	out, err = uc.ToggleStatus(created.ID)
	require.NoError(t, err)
	assert.True(t, out.IsActive)
}

func TestBranchGetByID_Inexistente_RetornaNotFound(t *testing.T) {
	uc := newBranchUC(apptest.NewStore())

	_, err := uc.GetByID("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
