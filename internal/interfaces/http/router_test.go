package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/helados-api/internal/application/audit"
	"github.com/jhoicas/helados-api/internal/application/cash"
	"github.com/jhoicas/helados-api/internal/application/inventory"
	"github.com/jhoicas/helados-api/internal/application/localsales"
	"github.com/jhoicas/helados-api/internal/application/ownersales"
	"github.com/jhoicas/helados-api/internal/application/payments"
	"github.com/jhoicas/helados-api/internal/application/purchases"
	"github.com/jhoicas/helados-api/internal/application/receipts"
	"github.com/jhoicas/helados-api/internal/application/transfers"
	"github.com/jhoicas/helados-api/internal/application/trips"
	"github.com/jhoicas/helados-api/internal/application/workers"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/helados-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/helados-api/internal/interfaces/http"
)

// buildAPI arma la API completa sobre el almacén en memoria.
func buildAPI(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.New()
	store.SeedInventory(
		entity.InventoryItem{ID: "i1", FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr1", Quantity: 50, MinStockAlert: 20},
		entity.InventoryItem{ID: "i2", FreezerID: "fz1", ProductID: "p2", FlavorID: "f1", ProviderID: "pr1", Quantity: 2, MinStockAlert: 20},
	)
	store.SeedWorker(entity.Worker{ID: "w1", Name: "Juan"})

	repos := store.Repos()
	invLedger := inventory.NewLedger(20)
	cashLedger := cash.NewLedger()
	tripsUC := trips.NewUseCase(store, repos, invLedger, cashLedger)
	ownerSalesUC := ownersales.NewUseCase(store, repos, invLedger, cashLedger)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		InventoryUC:  inventory.NewUseCase(store, repos.Inventory, invLedger),
		TripsUC:      tripsUC,
		OwnerSalesUC: ownerSalesUC,
		TransfersUC:  transfers.NewUseCase(store, repos.Transfers, invLedger),
		CashUC:       cash.NewUseCase(store, repos.Cash, cashLedger),
		PaymentsUC:   payments.NewUseCase(store, repos.Payments),
		LocalSalesUC: localsales.NewUseCase(store, repos.LocalSales, invLedger, cashLedger),
		PurchasesUC:  purchases.NewUseCase(store, repos.Purchases, invLedger),
		WorkersUC:    workers.NewUseCase(store, repos),
		AuditUC:      audit.NewUseCase(repos.Audit),
		ReceiptsUC:   receipts.NewUseCase(tripsUC, ownerSalesUC, infrapdf.NewMarotoPDFGenerator(), "Heladería"),
		JWTSecret:    testJWTSecret,
	})
	return app, store
}

func call(t *testing.T, app *fiber.App, method, path, role string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func TestTripFlow_SalidaLiquidacionYComprobante(t *testing.T) {
	app, _ := buildAPI(t)

	resp, body := call(t, app, http.MethodPost, "/api/trips", entity.RoleAdmin, fiber.Map{
		"worker_id": "w1",
		"loaded_items": []fiber.Map{
			{"inventory_id": "i1", "product_id": "p1", "flavor_id": "f1", "freezer_id": "fz1", "quantity": 10, "unit_price": 2},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var trip entity.WorkerTrip
	require.NoError(t, json.Unmarshal(body, &trip))
	assert.Equal(t, entity.TripInProgress, trip.Status)

	resp, body = call(t, app, http.MethodGet, "/api/trips/active", entity.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), trip.ID)

	resp, body = call(t, app, http.MethodPost, "/api/trips/"+trip.ID+"/complete", entity.RoleAdmin, fiber.Map{
		"returned_items": []fiber.Map{
			{"product_id": "p1", "flavor_id": "f1", "quantity": 3, "destination_freezer_id": "fz1"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var done entity.WorkerTrip
	require.NoError(t, json.Unmarshal(body, &done))
	assert.Equal(t, 7, done.SoldQuantity)
	assert.Equal(t, "14", done.AmountDue.String())

	resp, _ = call(t, app, http.MethodPost, "/api/trips/"+trip.ID+"/complete", entity.RoleAdmin, fiber.Map{})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "un viaje liquidado no se liquida de nuevo")

	resp, body = call(t, app, http.MethodGet, "/api/trips/"+trip.ID+"/receipt", entity.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp, body = call(t, app, http.MethodGet, "/api/cash/balance", entity.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var balance map[string]any
	require.NoError(t, json.Unmarshal(body, &balance))
	assert.Equal(t, "14", balance["current_balance"])
	assert.Equal(t, true, balance["is_consistent"])
}

func TestTripCreate_StockInsuficienteDevuelve409ConPila(t *testing.T) {
	app, store := buildAPI(t)

	resp, body := call(t, app, http.MethodPost, "/api/trips", entity.RoleOwner, fiber.Map{
		"worker_id": "w1",
		"loaded_items": []fiber.Map{
			{"inventory_id": "i1", "product_id": "p1", "flavor_id": "f1", "freezer_id": "fz1", "quantity": 5, "unit_price": 2},
			{"inventory_id": "i2", "product_id": "p2", "flavor_id": "f1", "freezer_id": "fz1", "quantity": 3, "unit_price": 2},
		},
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var out apphttp.InsufficientStockResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)
	assert.Equal(t, "i2", out.InventoryID)

	it, err := store.Repos().Inventory.GetByID(t.Context(), "i1")
	require.NoError(t, err)
	assert.Equal(t, 50, it.Quantity)
}

func TestCreateTrip_BodyInvalido(t *testing.T) {
	app, _ := buildAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/trips", bytes.NewBufferString("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleAdmin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRutasSoloOwner(t *testing.T) {
	app, _ := buildAPI(t)

	resp, _ := call(t, app, http.MethodPost, "/api/cash/withdrawals", entity.RoleAdmin, fiber.Map{"amount": 10})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := call(t, app, http.MethodPost, "/api/cash/expenses", entity.RoleAdmin, fiber.Map{"amount": 10, "category": "hielo"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, _ = call(t, app, http.MethodPost, "/api/owner-sales", entity.RoleAdmin, fiber.Map{})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestInventoryRoutes(t *testing.T) {
	app, _ := buildAPI(t)

	resp, body := call(t, app, http.MethodGet, "/api/inventory/low-stock", entity.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"i2"`)

	resp, _ = call(t, app, http.MethodGet, "/api/inventory/no-existe", entity.RoleAdmin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/api/inventory/i2/subtract", entity.RoleAdmin, fiber.Map{"quantity": 5})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/api/inventory/i2/subtract", entity.RoleAdmin, fiber.Map{"quantity": 1})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestTransfer_MismoCongeladorDevuelve400(t *testing.T) {
	app, _ := buildAPI(t)

	resp, body := call(t, app, http.MethodPost, "/api/transfers", entity.RoleAdmin, fiber.Map{
		"from_freezer_id": "fz1", "to_freezer_id": "fz1",
		"items": []fiber.Map{{"product_id": "p1", "flavor_id": "f1", "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "VALIDATION")
}

func TestLocalSale_RegistraCajaYCompraSumaStock(t *testing.T) {
	app, store := buildAPI(t)

	resp, body := call(t, app, http.MethodPost, "/api/local-sales", entity.RoleAdmin, fiber.Map{
		"sale_type": "local",
		"items": []fiber.Map{
			{"inventory_id": "i1", "product_id": "p1", "flavor_id": "f1", "freezer_id": "fz1", "quantity": 4, "unit_price": 2.5},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = call(t, app, http.MethodGet, "/api/local-sales/today", entity.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"sale_type":"local"`)

	resp, body = call(t, app, http.MethodGet, "/api/cash/balance", entity.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var balance map[string]any
	require.NoError(t, json.Unmarshal(body, &balance))
	assert.Equal(t, "10", balance["current_balance"])

	resp, body = call(t, app, http.MethodPost, "/api/purchases", entity.RoleOwner, fiber.Map{
		"provider_id":    "pr1",
		"payment_status": "credit",
		"items": []fiber.Map{
			{"product_id": "p1", "flavor_id": "f1", "freezer_id": "fz1", "quantity": 20, "unit_price": 1},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	it, err := store.Repos().Inventory.GetByID(t.Context(), "i1")
	require.NoError(t, err)
	assert.Equal(t, 66, it.Quantity)

	resp, _ = call(t, app, http.MethodGet, "/api/purchases/no-existe", entity.RoleAdmin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
