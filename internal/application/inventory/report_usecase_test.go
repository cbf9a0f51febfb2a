package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-relief/internal/application/inventory"
)

type fakeSheetGenerator struct {
	got inventory.StockSheet
}

func (g *fakeSheetGenerator) GenerateStockSheet(_ context.Context, sheet inventory.StockSheet) ([]byte, error) {
	g.got = sheet
	return []byte("%PDF-fake"), nil
}

func TestReportUseCase_PlanillaOrdenadaPorNombre(t *testing.T) {
	f := newFixture(t)
	f.create(t, P3, "", L2, 5)
	f.create(t, P1, "", L2, 7)
	f.create(t, P1, "", L1, 2)
	gen := &fakeSheetGenerator{}
	uc := inventory.NewReportUseCase(f.store.StockRepository(), f.store.ProductRepository(), f.store.LocationRepository(), gen)

	out, err := uc.StockSheetPDF(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(out))

	require.Len(t, gen.got.Rows, 3)
	assert.Equal(t, inventory.StockSheetRow{LocationName: "Centro Norte", ProductName: "Agua", AvailableStock: 2}, gen.got.Rows[0])
	assert.Equal(t, inventory.StockSheetRow{LocationName: "Centro Sur", ProductName: "Agua", AvailableStock: 7}, gen.got.Rows[1])
	assert.Equal(t, inventory.StockSheetRow{LocationName: "Centro Sur", ProductName: "Mantas", AvailableStock: 5}, gen.got.Rows[2])

	sheet, err := uc.BuildStockSheet(context.Background(), L1)
	require.NoError(t, err)
	assert.Len(t, sheet.Rows, 1)
}
