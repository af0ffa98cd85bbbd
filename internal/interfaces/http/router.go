package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/business"
	"github.com/jhoicas/Facturacion-api/internal/application/catalog"
	"github.com/jhoicas/Facturacion-api/internal/application/history"
	"github.com/jhoicas/Facturacion-api/internal/application/report"
	"github.com/jhoicas/Facturacion-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CommitInvoice *billing.CommitInvoiceUseCase
	EditInvoice   *billing.EditInvoiceUseCase
	DeleteInvoice *billing.DeleteInvoiceUseCase
	InvoiceQuery  *billing.InvoiceQueryUseCase
	InvoicePDF    *billing.PDFUseCase
	ProductUC     *catalog.ProductUseCase
	MovementsUC   *catalog.MovementsUseCase
	CategoryUC    *catalog.CategoryUseCase
	CustomerUC    *billing.CustomerUseCase
	BusinessUC    *business.UseCase
	HistoryUC     *history.UseCase
	SalesReport   *report.SalesUseCase
	JWTSecret     string
	ServiceName   string
}

// NewApp instancia Fiber con JSON de json-iterator y el manejador de errores de la API.
func NewApp(appName string) *fiber.App {
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	// Todo /api requiere Bearer Token
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleSeller)
	adminOnly := RequireRole(jwt.RoleAdmin)

	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.CommitInvoice, deps.EditInvoice, deps.DeleteInvoice, deps.InvoiceQuery, deps.InvoicePDF)
	invoices.Post("/", anyRole, invoiceHandler.Create)
	invoices.Get("/", anyRole, invoiceHandler.List)
	invoices.Get("/next-number", anyRole, invoiceHandler.NextNumber)
	invoices.Get("/:id", anyRole, invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", anyRole, invoiceHandler.PDF)
	invoices.Put("/:id", adminOnly, invoiceHandler.Update)
	invoices.Delete("/:id", adminOnly, invoiceHandler.Delete)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.MovementsUC)
	products.Get("/", anyRole, productHandler.List)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Patch("/:id/visibility", adminOnly, productHandler.SetVisibility)
	products.Put("/:id/stock", adminOnly, productHandler.AdjustStock)
	products.Get("/:id/movements", adminOnly, productHandler.Movements)

	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", anyRole, categoryHandler.List)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Get("/:id", anyRole, categoryHandler.GetByID)
	categories.Put("/:id", adminOnly, categoryHandler.Update)
	categories.Patch("/:id/visibility", adminOnly, categoryHandler.SetVisibility)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	customerHandler := NewCustomerHandler(deps.CustomerUC)
	api.Get("/customers", anyRole, customerHandler.Lookup)

	businessHandler := NewBusinessHandler(deps.BusinessUC)
	api.Get("/business", anyRole, businessHandler.Get)
	api.Put("/business", adminOnly, businessHandler.Save)

	reportHandler := NewReportHandler(deps.HistoryUC, deps.SalesReport)
	api.Get("/history", adminOnly, reportHandler.History)
	api.Get("/reports/sales", adminOnly, reportHandler.Sales)
}
