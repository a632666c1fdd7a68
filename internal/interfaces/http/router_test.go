package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario-pos/internal/application/auth"
	"inventario-pos/internal/application/dto"
	"inventario-pos/internal/application/ledger"
	"inventario-pos/internal/application/pos"
	"inventario-pos/internal/application/purchasing"
	"inventario-pos/internal/application/usecase"
	"inventario-pos/internal/infrastructure/memory"
	"inventario-pos/internal/infrastructure/pdf"
	apphttp "inventario-pos/internal/interfaces/http"
)

// buildAPI levanta la API completa sobre el almacén en memoria con los datos demo.
func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, memory.Seed(store))

	txRunner := memory.NewTxRunner(store)
	queries := ledger.NewQueryUseCase(store.Movements(), store.Products())

	deps := apphttp.RouterDeps{
		AuthUC: auth.NewUseCase(store.Users(), auth.Config{
			Secret: testJWTSecret, Issuer: testIssuer, ExpMinutes: testExpMin,
		}),
		ProductUC:      usecase.NewProductUseCase(store.Products()),
		SupplierUC:     usecase.NewSupplierUseCase(store.Suppliers()),
		UserUC:         usecase.NewUserUseCase(store.Users()),
		DashboardUC:    usecase.NewDashboardUseCase(store.Products(), store.Movements(), queries),
		RecordMovement: ledger.NewRecordMovementUseCase(txRunner, nil),
		LedgerQueries:  queries,
		CheckoutUC:     pos.NewCheckoutUseCase(txRunner, store.Products(), store.Sales(), nil),
		PurchasingUC: purchasing.NewUseCase(
			txRunner, store.PurchaseOrders(), store.Suppliers(), store.Products(), nil,
		),
		Receipt:   pdf.NewReceiptGenerator("Tienda Demo"),
		JWTSecret: testJWTSecret,
	}

	app := fiber.New()
	apphttp.Router(app, deps)
	return app
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	body, _ := json.Marshal(dto.LoginRequest{Email: email, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "login debe responder 200")

	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return "Bearer " + out.Token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAPI_LoginYRegistroDeMovimiento(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app, "inventario@ejemplo.com", "inventario123")

	resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", token, dto.RecordMovementRequest{
		ProductID: "1", Type: "entrada", Quantity: 10, Reason: "Compra a proveedor",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.RecordMovementResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.StockApplied)
	require.NotNil(t, out.NewStock)
	assert.EqualValues(t, 25, *out.NewStock) // el seed deja 15
	assert.Equal(t, "3", out.Movement.UserID)
}

func TestAPI_MovimientoAProductoInexistenteQuedaEnElLog(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app, "inventario@ejemplo.com", "inventario123")

	resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", token, dto.RecordMovementRequest{
		ProductID: "99", Type: "salida", Quantity: 1, Reason: "Ajuste",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.RecordMovementResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.StockApplied)
	assert.Nil(t, out.NewStock)

	// El movimiento es consultable en el log.
	listResp := doJSON(t, app, http.MethodGet, "/api/inventory/movements?product_id=99", token, nil)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list dto.MovementListResponse
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	assert.Len(t, list.Items, 1)
}

func TestAPI_VendedorNoPuedeRegistrarMovimientos(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app, "ventas@ejemplo.com", "ventas123")

	resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", token, dto.RecordMovementRequest{
		ProductID: "1", Type: "entrada", Quantity: 1, Reason: "x",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_CheckoutDesdeElPOS(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app, "ventas@ejemplo.com", "ventas123")

	resp := doJSON(t, app, http.MethodPost, "/api/pos/checkout", token, dto.CheckoutRequest{
		Items:         []dto.CartLineRequest{{ProductID: "3", Quantity: 2}},
		PaymentMethod: "tarjeta",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sale dto.SaleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sale))
	require.Len(t, sale.Items, 1)
	assert.EqualValues(t, 2, sale.Items[0].Quantity)

	// El ticket PDF se sirve con el content type correcto.
	pdfResp := doJSON(t, app, http.MethodGet, "/api/pos/sales/"+sale.ID+"/receipt", token, nil)
	defer pdfResp.Body.Close()
	require.Equal(t, http.StatusOK, pdfResp.StatusCode)
	assert.Equal(t, "application/pdf", pdfResp.Header.Get("Content-Type"))
}

func TestAPI_UsuariosSoloParaAdmin(t *testing.T) {
	app := buildAPI(t)

	vendedor := login(t, app, "ventas@ejemplo.com", "ventas123")
	resp := doJSON(t, app, http.MethodGet, "/api/users/", vendedor, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin := login(t, app, "admin@ejemplo.com", "admin123")
	resp2 := doJSON(t, app, http.MethodGet, "/api/users/", admin, nil)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestAPI_DashboardYLowStock(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app, "admin@ejemplo.com", "admin123")

	resp := doJSON(t, app, http.MethodGet, "/api/dashboard/summary", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sum dto.DashboardSummaryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sum))
	assert.Equal(t, 5, sum.TotalProducts)

	lowResp := doJSON(t, app, http.MethodGet, "/api/inventory/low-stock", token, nil)
	defer lowResp.Body.Close()
	assert.Equal(t, http.StatusOK, lowResp.StatusCode)
}

func TestAPI_SinTokenRetorna401(t *testing.T) {
	app := buildAPI(t)

	resp := doJSON(t, app, http.MethodGet, "/api/products/", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_HealthEsPublico(t *testing.T) {
	app := buildAPI(t)

	resp := doJSON(t, app, http.MethodGet, "/health", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
