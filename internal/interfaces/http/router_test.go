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
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/business"
	"github.com/jhoicas/Facturacion-api/internal/application/catalog"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/history"
	"github.com/jhoicas/Facturacion-api/internal/application/report"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/docrepo"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/memstore"
	infrapdf "github.com/jhoicas/Facturacion-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Facturacion-api/internal/interfaces/http"
)

func newTestAPI(t *testing.T) *fiber.App {
	t.Helper()
	app, _ := newTestAPIWithStore(t)
	return app
}

func newTestAPIWithStore(t *testing.T) (*fiber.App, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	t.Cleanup(func() { _ = store.Close() })

	runner := docrepo.NewTxRunner(store)
	productCatalog := docrepo.NewProductCatalog(store)
	invoices := docrepo.NewInvoiceReader(store)
	settings := billing.DefaultSettings()
	log := zerolog.Nop()

	app := apphttp.NewApp("facturacion-test")
	apphttp.Router(app, apphttp.RouterDeps{
		CommitInvoice: billing.NewCommitInvoiceUseCase(runner, productCatalog, settings, log),
		EditInvoice:   billing.NewEditInvoiceUseCase(runner, settings, log),
		DeleteInvoice: billing.NewDeleteInvoiceUseCase(runner, settings, log),
		InvoiceQuery:  billing.NewInvoiceQueryUseCase(invoices, docrepo.NewCounterStore(store), settings.Prefixes),
		InvoicePDF:    billing.NewPDFUseCase(invoices, infrapdf.NewMarotoPDFGenerator()),
		ProductUC:     catalog.NewProductUseCase(runner, productCatalog, settings, log),
		MovementsUC:   catalog.NewMovementsUseCase(productCatalog, docrepo.NewMovementReader(store)),
		CategoryUC:    catalog.NewCategoryUseCase(docrepo.NewCategoryRepository(store), log),
		CustomerUC:    billing.NewCustomerUseCase(docrepo.NewCustomerDirectory(store), log),
		BusinessUC:    business.NewUseCase(docrepo.NewBusinessRepository(store)),
		HistoryUC:     history.NewUseCase(docrepo.NewHistoryReader(store)),
		SalesReport:   report.NewSalesUseCase(docrepo.NewSalesReport(store)),
		JWTSecret:     testJWTSecret,
		ServiceName:   "facturacion-test",
	})
	return app, store
}

func call(t *testing.T, app *fiber.App, method, path, role string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createProduct(t *testing.T, app *fiber.App, name string, stock int64) string {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/products", "admin", dto.CreateProductRequest{
		Name:           name,
		Category:       "Herramientas",
		UnitPrice:      decimal.RequireFromString("10.00"),
		WholesalePrice: decimal.RequireFromString("8.00"),
		Stock:          stock,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp).ID
}

func invoiceDraft(docType, productID string, qty int64) dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		DocumentType: docType,
		Customer:     dto.CustomerData{DocumentID: "1712345678", FirstName: "Ana", LastName: "Pérez"},
		Items:        []dto.InvoiceItemRequest{{ProductID: productID, Quantity: qty, PriceTier: "Unitario"}},
	}
}

func TestHealth_Publico(t *testing.T) {
	app := newTestAPI(t)
	resp := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_RequiereToken(t *testing.T) {
	app := newTestAPI(t)
	resp := call(t, app, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProducts_VendedorNoPuedeCrear(t *testing.T) {
	app := newTestAPI(t)
	resp := call(t, app, http.MethodPost, "/api/products", "vendedor", dto.CreateProductRequest{Name: "x"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestInvoices_FlujoCompleto(t *testing.T) {
	app := newTestAPI(t)
	productID := createProduct(t, app, "Martillo", 5)

	resp := call(t, app, http.MethodPost, "/api/invoices", "vendedor", invoiceDraft("Factura", productID, 3))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	inv := decode[dto.InvoiceResponse](t, resp)
	assert.Equal(t, "F001-000001", inv.DocumentNumber)
	assert.True(t, decimal.RequireFromString("30").Equal(inv.Subtotal))
	assert.True(t, decimal.RequireFromString("4.5").Equal(inv.Tax))
	assert.True(t, decimal.RequireFromString("34.5").Equal(inv.Total))

	resp = call(t, app, http.MethodGet, "/api/products/"+productID, "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(2), decode[dto.ProductResponse](t, resp).Stock)

	resp = call(t, app, http.MethodGet, "/api/invoices/next-number?type=Factura", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	next := decode[dto.NextNumberResponse](t, resp)
	assert.Equal(t, "F001-000002", next.DocumentNumber)

	resp = call(t, app, http.MethodGet, "/api/invoices/"+inv.ID, "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, inv.ID, decode[dto.InvoiceResponse](t, resp).ID)

	resp = call(t, app, http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "factura_F001-000001.pdf")

	resp = call(t, app, http.MethodGet, "/api/products/"+productID+"/movements", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	movs := decode[[]dto.MovementResponse](t, resp)
	require.Len(t, movs, 2)
	byType := map[string]int64{}
	for _, m := range movs {
		byType[m.Type] = m.Quantity
	}
	assert.Equal(t, map[string]int64{"ADJUSTMENT": 5, "OUT": -3}, byType)

	resp = call(t, app, http.MethodDelete, "/api/invoices/"+inv.ID, "vendedor", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodDelete, "/api/invoices/"+inv.ID, "admin", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/products/"+productID, "admin", nil)
	assert.Equal(t, int64(5), decode[dto.ProductResponse](t, resp).Stock)
}

func TestInvoices_StockInsuficiente_409(t *testing.T) {
	app := newTestAPI(t)
	productID := createProduct(t, app, "Serrucho", 1)

	resp := call(t, app, http.MethodPost, "/api/invoices", "vendedor", invoiceDraft("NotaVenta", productID, 2))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Contains(t, body.Message, "Serrucho")
}

func TestInvoices_TipoInvalido_400(t *testing.T) {
	app := newTestAPI(t)
	productID := createProduct(t, app, "Taladro", 3)

	resp := call(t, app, http.MethodPost, "/api/invoices", "vendedor", invoiceDraft("Boleta", productID, 1))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestInvoices_NoExiste_404(t *testing.T) {
	app := newTestAPI(t)
	resp := call(t, app, http.MethodGet, "/api/invoices/no-existe", "admin", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProducts_ListaOcultosSoloAdmin(t *testing.T) {
	app := newTestAPI(t)
	productID := createProduct(t, app, "Clavos", 100)
	resp := call(t, app, http.MethodPatch, "/api/products/"+productID+"/visibility", "admin", dto.VisibilityRequest{Visible: false})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/products?all=true", "vendedor", nil)
	assert.Empty(t, decode[dto.ProductListResponse](t, resp).Items)

	resp = call(t, app, http.MethodGet, "/api/products?all=true", "admin", nil)
	assert.Len(t, decode[dto.ProductListResponse](t, resp).Items, 1)
}

func TestBusiness_GuardarYLeer(t *testing.T) {
	app := newTestAPI(t)

	resp := call(t, app, http.MethodPut, "/api/business", "vendedor", dto.BusinessRequest{Name: "X"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPut, "/api/business", "admin", dto.BusinessRequest{Name: "Ferretería Central", TaxID: "0999999999001"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/business", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ferretería Central", decode[dto.BusinessResponse](t, resp).Name)
}

func TestReports_SoloAdmin(t *testing.T) {
	app := newTestAPI(t)

	resp := call(t, app, http.MethodGet, "/api/reports/sales", "vendedor", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/reports/sales?from=2026-01-01&to=2026-01-31", "admin", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/reports/sales?from=ayer", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/history", "admin", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCategories_CrudYVisibilidad(t *testing.T) {
	app := newTestAPI(t)

	resp := call(t, app, http.MethodPost, "/api/categories", "vendedor", dto.CategoryRequest{Name: "x", Description: "y"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/categories", "admin", dto.CategoryRequest{Name: "Pinturas"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/categories", "admin", dto.CategoryRequest{Name: "Herramientas", Description: "Manuales y eléctricas"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.CategoryResponse](t, resp)
	assert.True(t, created.Visible)
	assert.Equal(t, 1, created.Priority)

	resp = call(t, app, http.MethodPatch, "/api/categories/"+created.ID+"/visibility", "admin", dto.VisibilityRequest{Visible: false})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/categories", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[dto.CategoryListResponse](t, resp).Items)

	resp = call(t, app, http.MethodGet, "/api/categories?all=true", "admin", nil)
	assert.Len(t, decode[dto.CategoryListResponse](t, resp).Items, 1)

	resp = call(t, app, http.MethodDelete, "/api/categories/"+created.ID, "admin", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/categories/"+created.ID, "admin", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCustomers_BuscarPorCedula(t *testing.T) {
	app, store := newTestAPIWithStore(t)
	require.NoError(t, docrepo.NewCustomerDirectory(store).Upsert(context.Background(), &entity.CustomerSnapshot{
		DocumentID: "1712345678", FirstName: "Ana", LastName: "Pérez", Email: "ana@correo.ec",
	}))

	resp := call(t, app, http.MethodGet, "/api/customers?document_id=1712345678", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.CustomerData](t, resp)
	assert.Equal(t, "Ana", got.FirstName)
	assert.Equal(t, "ana@correo.ec", got.Email)

	resp = call(t, app, http.MethodGet, "/api/customers?document_id=0000000000", "vendedor", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/customers", "vendedor", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
