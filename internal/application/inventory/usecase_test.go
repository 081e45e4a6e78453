package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-core/internal/application/apptest"
	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/application/inventory"
	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
)

func ptr[T any](v T) *T { return &v }

func newInventory() *inventory.InventoryUseCase {
	db := apptest.NewStore()
	return inventory.NewInventoryUseCase(db.Categories(), db.Products())
}

func TestCategories_CRUD(t *testing.T) {
	uc := newInventory()
	ctx := context.Background()

	bebidas, err := uc.CreateCategory(ctx, dto.CategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)
	_, err = uc.CreateCategory(ctx, dto.CategoryRequest{Name: "Aseo"})
	require.NoError(t, err)

	cats, err := uc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Aseo", cats[0].Name, "ordenadas por nombre")

	require.NoError(t, uc.UpdateCategory(ctx, bebidas.ID, dto.CategoryRequest{Name: "Bebidas frías"}))
	require.NoError(t, uc.DeleteCategory(ctx, bebidas.ID))

	cats, err = uc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
}

func TestCategoryDelete_ProductoConservaReferencia(t *testing.T) {
	uc := newInventory()
	ctx := context.Background()
	cat, err := uc.CreateCategory(ctx, dto.CategoryRequest{Name: "Lácteos"})
	require.NoError(t, err)
	p, err := uc.CreateProduct(ctx, dto.ProductRequest{Name: "Leche", CategoryID: &cat.ID})
	require.NoError(t, err)
	assert.Equal(t, "Lácteos", *p.CategoryName)

	require.NoError(t, uc.DeleteCategory(ctx, cat.ID))

	got, err := uc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, &cat.ID, got.CategoryID)
	assert.Nil(t, got.CategoryName)
}

func TestCreateProduct_CategoriaInexistente(t *testing.T) {
	uc := newInventory()
	ctx := context.Background()

	created, err := uc.CreateProduct(ctx, dto.ProductRequest{
		Name: "Jabón", CategoryID: ptr(int64(999)), Price: decimal.NewFromInt(2500),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	list, err := uc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, ptr(int64(999)), list[0].CategoryID)
	assert.Nil(t, list[0].CategoryName)
}

func TestCreateProduct_ValoresNegativos(t *testing.T) {
	uc := newInventory()
	tests := []struct {
		name string
		in   dto.ProductRequest
	}{
		{name: "precio", in: dto.ProductRequest{Name: "x", Price: decimal.NewFromInt(-1)}},
		{name: "costo", in: dto.ProductRequest{Name: "x", Cost: decimal.RequireFromString("-0.01")}},
		{name: "sin nombre", in: dto.ProductRequest{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateProduct(context.Background(), tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreateProduct_StockNegativoPermitido(t *testing.T) {
	uc := newInventory()
	p, err := uc.CreateProduct(context.Background(), dto.ProductRequest{Name: "x", Stock: -3})
	require.NoError(t, err)
	assert.Equal(t, int64(-3), p.Stock)
}

func TestDeleteProduct_ExcluidoDelListadoPeroLegiblePorID(t *testing.T) {
	uc := newInventory()
	ctx := context.Background()
	p, err := uc.CreateProduct(ctx, dto.ProductRequest{Name: "Arroz", Price: decimal.NewFromInt(3000)})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProduct(ctx, p.ID))

	list, err := uc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := uc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Arroz", got.Name)
	assert.Equal(t, string(entity.StatusInactive), got.Status)
}

func TestUpdateProduct_SobrescribeMinStock(t *testing.T) {
	uc := newInventory()
	ctx := context.Background()
	p, err := uc.CreateProduct(ctx, dto.ProductRequest{Name: "Arroz", Stock: 10, MinStock: ptr(int64(2))})
	require.NoError(t, err)
	assert.False(t, p.LowStock)

	require.NoError(t, uc.UpdateProduct(ctx, p.ID, dto.ProductRequest{Name: "Arroz", Stock: 10, MinStock: ptr(int64(10))}))

	got, err := uc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), *got.MinStock)
	assert.True(t, got.LowStock)
}

func TestUpdateProduct_IDInexistenteNoEsError(t *testing.T) {
	uc := newInventory()
	assert.NoError(t, uc.UpdateProduct(context.Background(), 77, dto.ProductRequest{Name: "x"}))
}

func TestGetProduct_Inexistente(t *testing.T) {
	uc := newInventory()
	_, err := uc.GetProduct(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type fakeGenerator struct {
	got inventory.StockReport
	err error
}

func (g *fakeGenerator) GenerateStockReport(_ context.Context, r inventory.StockReport) ([]byte, error) {
	g.got = r
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-fake"), nil
}

func TestStockReport(t *testing.T) {
	db := apptest.NewStore()
	inv := inventory.NewInventoryUseCase(db.Categories(), db.Products())
	ctx := context.Background()
	_, err := inv.CreateProduct(ctx, dto.ProductRequest{Name: "Arroz", Stock: 1, MinStock: ptr(int64(5))})
	require.NoError(t, err)
	_, err = inv.CreateProduct(ctx, dto.ProductRequest{Name: "Café", Stock: 50, MinStock: ptr(int64(5))})
	require.NoError(t, err)
	baja, err := inv.CreateProduct(ctx, dto.ProductRequest{Name: "Viejo"})
	require.NoError(t, err)
	require.NoError(t, inv.DeleteProduct(ctx, baja.ID))

	gen := &fakeGenerator{}
	uc := inventory.NewReportUseCase(db.Products(), gen)

	pdf, filename, err := uc.StockReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Regexp(t, `^existencias-\d{8}-\d{4}\.pdf$`, filename)

	require.Len(t, gen.got.Lines, 2)
	assert.Equal(t, "Arroz", gen.got.Lines[0].Name)
	assert.True(t, gen.got.Lines[0].LowStock)
	assert.False(t, gen.got.Lines[1].LowStock)
	assert.Equal(t, 1, gen.got.LowStock)
}

func TestStockReport_FalloDelGenerador(t *testing.T) {
	db := apptest.NewStore()
	uc := inventory.NewReportUseCase(db.Products(), &fakeGenerator{err: errors.New("sin fuentes")})

	_, _, err := uc.StockReport(context.Background())
	assert.Error(t, err)
}
