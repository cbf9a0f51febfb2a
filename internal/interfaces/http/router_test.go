package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-relief/internal/application/dto"
	"github.com/jhoicas/stock-relief/internal/application/inventory"
	"github.com/jhoicas/stock-relief/internal/application/usecase"
	"github.com/jhoicas/stock-relief/internal/infrastructure/memory"
	"github.com/jhoicas/stock-relief/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/stock-relief/internal/interfaces/http"
	"github.com/jhoicas/stock-relief/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testAPI struct {
	app     *fiber.App
	product string
	norte   string
	sur     string
}

// buildTestApp arma la API completa sobre el store en memoria con un producto y dos ubicaciones.
func buildTestApp(t *testing.T) *testAPI {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	refUC := usecase.NewReferenceUseCase(store.ProductRepository(), store.LocationRepository())

	ctx := context.Background()
	p, err := refUC.CreateProduct(ctx, dto.CreateProductRequest{Name: "Agua"})
	require.NoError(t, err)
	n, err := refUC.CreateLocation(ctx, dto.CreateLocationRequest{Name: "Centro Norte"})
	require.NoError(t, err)
	s, err := refUC.CreateLocation(ctx, dto.CreateLocationRequest{Name: "Centro Sur"})
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Processor:   inventory.NewTransferProcessor(store, store.ProductRepository(), store.LocationRepository(), log),
		QueryUC:     inventory.NewQueryUseCase(store.MovementRepository(), store.StockRepository()),
		ReportUC:    inventory.NewReportUseCase(store.StockRepository(), store.ProductRepository(), store.LocationRepository(), pdf.NewMarotoStockSheet()),
		AuditUC:     inventory.NewAuditUseCase(store, log),
		ReferenceUC: refUC,
	})
	return &testAPI{app: app, product: p.ID, norte: n.ID, sur: s.ID}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestMovements_AltaTrasladoYEnmienda(t *testing.T) {
	api := buildTestApp(t)

	resp, raw := api.do(t, http.MethodPost, "/api/movements", dto.CreateMovementRequest{
		ProductID: api.product, ToLocationID: api.norte, Qty: 100, MovementDate: "2024-05-01",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	inbound := decode[dto.TransferResponse](t, raw)
	assert.Equal(t, "inbound", inbound.Movement.Kind)
	assert.Nil(t, inbound.Movement.FromLocationID)
	assert.Equal(t, "2024-05-01", inbound.Movement.MovementDate)

	resp, raw = api.do(t, http.MethodPost, "/api/movements", dto.CreateMovementRequest{
		ProductID: api.product, FromLocationID: api.norte, ToLocationID: api.sur, Qty: 20,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	transfer := decode[dto.TransferResponse](t, raw)
	assert.Len(t, transfer.Stock, 2)

	qty := int64(35)
	resp, raw = api.do(t, http.MethodPatch, "/api/movements/"+transfer.Movement.ID, dto.AmendMovementRequest{Qty: &qty})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	amended := decode[dto.TransferResponse](t, raw)
	assert.Equal(t, int64(35), amended.Movement.Qty)

	resp, raw = api.do(t, http.MethodGet, "/api/stock?location_id="+api.norte, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	stock := decode[dto.StockListResponse](t, raw)
	require.Len(t, stock.Items, 1)
	assert.Equal(t, int64(65), stock.Items[0].AvailableStock)

	resp, raw = api.do(t, http.MethodGet, "/api/movements/"+transfer.Movement.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(35), decode[dto.MovementResponse](t, raw).Qty)

	resp, raw = api.do(t, http.MethodGet, "/api/movements?location_id="+api.sur, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.MovementListResponse](t, raw).Items, 1)

	resp, raw = api.do(t, http.MethodGet, "/api/audit/stock", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.AuditResponse](t, raw).Consistent)
}

func TestMovements_StockInsuficienteDevuelve409(t *testing.T) {
	api := buildTestApp(t)
	resp, _ := api.do(t, http.MethodPost, "/api/movements", dto.CreateMovementRequest{ProductID: api.product, ToLocationID: api.norte, Qty: 40})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, raw := api.do(t, http.MethodPost, "/api/movements", dto.CreateMovementRequest{ProductID: api.product, FromLocationID: api.norte, Qty: 50})

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body := decode[dto.StockErrorResponse](t, raw)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, "from", body.Leg)
	assert.Equal(t, api.norte, body.LocationID)
	assert.Equal(t, int64(40), body.Available)
	assert.Contains(t, body.Message, "Centro Norte")
}

func TestMovements_SinFilaDeStockDevuelve409(t *testing.T) {
	api := buildTestApp(t)

	resp, raw := api.do(t, http.MethodPost, "/api/movements", dto.CreateMovementRequest{ProductID: api.product, FromLocationID: api.sur, Qty: 1})

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "NO_STOCK_RECORD", decode[dto.StockErrorResponse](t, raw).Code)
}

func TestMovements_ErroresDeValidacion(t *testing.T) {
	api := buildTestApp(t)

	resp, raw := api.do(t, http.MethodPost, "/api/movements", dto.CreateMovementRequest{ProductID: api.product, Qty: 1})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_LOCATIONS", decode[dto.ErrorResponse](t, raw).Code)

	resp, raw = api.do(t, http.MethodPost, "/api/movements", dto.CreateMovementRequest{ProductID: api.product, ToLocationID: api.norte, Qty: -3})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)

	resp, raw = api.do(t, http.MethodPost, "/api/movements", dto.CreateMovementRequest{ProductID: "00000000-0000-0000-0000-000000000000", ToLocationID: api.norte, Qty: 1})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, raw).Code)

	resp, _ = api.do(t, http.MethodGet, "/api/movements?from=01-01-2024", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = api.do(t, http.MethodPatch, "/api/movements/no-existe", map[string]int{"qty": 3})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestReferencias_Consulta(t *testing.T) {
	api := buildTestApp(t)

	resp, raw := api.do(t, http.MethodGet, "/api/locations", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.LocationListResponse](t, raw).Items, 2)

	resp, raw = api.do(t, http.MethodGet, "/api/products/"+api.product, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Agua", decode[dto.ProductResponse](t, raw).Name)

	resp, _ = api.do(t, http.MethodGet, "/api/locations/no-existe", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStock_PlanillaPDF(t *testing.T) {
	api := buildTestApp(t)
	resp, _ := api.do(t, http.MethodPost, "/api/movements", dto.CreateMovementRequest{ProductID: api.product, ToLocationID: api.sur, Qty: 12})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, raw := api.do(t, http.MethodGet, "/api/stock/sheet.pdf", nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}
