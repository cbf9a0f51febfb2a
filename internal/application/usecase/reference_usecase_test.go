package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-relief/internal/application/dto"
	"github.com/jhoicas/stock-relief/internal/application/usecase"
	"github.com/jhoicas/stock-relief/internal/domain"
	"github.com/jhoicas/stock-relief/internal/infrastructure/memory"
)

func newReferenceUseCase() *usecase.ReferenceUseCase {
	store := memory.NewStore()
	return usecase.NewReferenceUseCase(store.ProductRepository(), store.LocationRepository())
}

func TestReferenceUseCase_CrearYConsultar(t *testing.T) {
	uc := newReferenceUseCase()
	ctx := context.Background()

	p, err := uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "  Agua potable ", Description: "bidón 5L"})
	require.NoError(t, err)
	assert.Equal(t, "Agua potable", p.Name)
	assert.NotEmpty(t, p.ID)

	got, err := uc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)

	l, err := uc.CreateLocation(ctx, dto.CreateLocationRequest{Name: "Centro Norte"})
	require.NoError(t, err)
	locs, err := uc.ListLocations(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, locs.Items, 1)
	assert.Equal(t, usecase.DefaultReferencePage, locs.Page.Limit)
	assert.Equal(t, l.ID, locs.Items[0].ID)
}

func TestReferenceUseCase_NombreNormalizadoEsUnico(t *testing.T) {
	uc := newReferenceUseCase()
	ctx := context.Background()

	_, err := uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Caf\u00e9"}) // é precompuesta
	require.NoError(t, err)

	_, err = uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Cafe\u0301"}) // e + acento combinante
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestReferenceUseCase_Errores(t *testing.T) {
	uc := newReferenceUseCase()
	ctx := context.Background()

	_, err := uc.CreateLocation(ctx, dto.CreateLocationRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetLocation(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetProduct(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
