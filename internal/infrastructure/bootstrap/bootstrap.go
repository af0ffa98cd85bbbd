// Package bootstrap arma el almacenamiento y los casos de uso a partir de la configuración.
// Lo comparten cmd/api y cmd/facturactl.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/business"
	"github.com/jhoicas/Facturacion-api/internal/application/catalog"
	"github.com/jhoicas/Facturacion-api/internal/application/history"
	"github.com/jhoicas/Facturacion-api/internal/application/report"
	"github.com/jhoicas/Facturacion-api/internal/domain/docstore"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/invoicing"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/boltstore"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/docrepo"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/memstore"
	infrapdf "github.com/jhoicas/Facturacion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Facturacion-api/pkg/config"
)

// Stores almacenamiento de documentos y reporte de ventas del driver elegido.
type Stores struct {
	Driver string
	Docs   docstore.Store
	Sales  repository.SalesReportRepository
}

// Close libera el almacenamiento (pool o archivo bbolt).
func (s *Stores) Close() error {
	return s.Docs.Close()
}

// OpenStores abre el driver indicado por STORE_DRIVER. Con postgres además asegura el esquema.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		store := memstore.New()
		return &Stores{Driver: cfg.Store.Driver, Docs: store, Sales: docrepo.NewSalesReport(store)}, nil

	case config.DriverBolt:
		store, err := boltstore.Open(cfg.Store.BoltPath)
		if err != nil {
			return nil, err
		}
		return &Stores{Driver: cfg.Store.Driver, Docs: store, Sales: docrepo.NewSalesReport(store)}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Stores{Driver: cfg.Store.Driver, Docs: postgres.NewStore(pool), Sales: postgres.NewSalesReport(pool)}, nil

	default:
		return nil, fmt.Errorf("bootstrap: driver desconocido %q", cfg.Store.Driver)
	}
}

// BillingSettings traduce la configuración a billing.Settings.
func BillingSettings(cfg *config.Config) billing.Settings {
	s := billing.DefaultSettings()
	s.TaxRate = cfg.Billing.TaxRate
	s.EditTaxRate = cfg.Billing.EditTaxRate
	s.Prefixes = invoicing.Prefixes{
		entity.DocumentTypeInvoice:   cfg.Billing.InvoicePrefix,
		entity.DocumentTypeSalesNote: cfg.Billing.SalesNotePrefix,
	}
	s.FooterMessage = cfg.Billing.FooterMessage
	s.Retry = billing.RetryPolicy{
		MaxAttempts:     cfg.Tx.MaxAttempts,
		InitialInterval: time.Duration(cfg.Tx.InitialBackoffMS) * time.Millisecond,
		MaxInterval:     time.Duration(cfg.Tx.MaxBackoffMS) * time.Millisecond,
	}
	return s
}

// Services casos de uso listos para inyectar en HTTP o en la CLI.
type Services struct {
	CommitInvoice *billing.CommitInvoiceUseCase
	EditInvoice   *billing.EditInvoiceUseCase
	DeleteInvoice *billing.DeleteInvoiceUseCase
	InvoiceQuery  *billing.InvoiceQueryUseCase
	InvoicePDF    *billing.PDFUseCase
	Products      *catalog.ProductUseCase
	Movements     *catalog.MovementsUseCase
	Categories    *catalog.CategoryUseCase
	Customers     *billing.CustomerUseCase
	Business      *business.UseCase
	History       *history.UseCase
	Sales         *report.SalesUseCase
}

// NewServices construye los casos de uso sobre stores. log recibe un sublogger por componente.
func NewServices(stores *Stores, settings billing.Settings, log zerolog.Logger) *Services {
	docs := stores.Docs
	runner := docrepo.NewTxRunner(docs)
	productCatalog := docrepo.NewProductCatalog(docs)
	invoices := docrepo.NewInvoiceReader(docs)
	billingLog := log.With().Str("component", "billing").Logger()
	catalogLog := log.With().Str("component", "catalog").Logger()

	return &Services{
		CommitInvoice: billing.NewCommitInvoiceUseCase(runner, productCatalog, settings, billingLog),
		EditInvoice:   billing.NewEditInvoiceUseCase(runner, settings, billingLog),
		DeleteInvoice: billing.NewDeleteInvoiceUseCase(runner, settings, billingLog),
		InvoiceQuery:  billing.NewInvoiceQueryUseCase(invoices, docrepo.NewCounterStore(docs), settings.Prefixes),
		InvoicePDF:    billing.NewPDFUseCase(invoices, infrapdf.NewMarotoPDFGenerator()),
		Products:      catalog.NewProductUseCase(runner, productCatalog, settings, catalogLog),
		Movements:     catalog.NewMovementsUseCase(productCatalog, docrepo.NewMovementReader(docs)),
		Categories:    catalog.NewCategoryUseCase(docrepo.NewCategoryRepository(docs), catalogLog),
		Customers:     billing.NewCustomerUseCase(docrepo.NewCustomerDirectory(docs), billingLog),
		Business:      business.NewUseCase(docrepo.NewBusinessRepository(docs)),
		History:       history.NewUseCase(docrepo.NewHistoryReader(docs)),
		Sales:         report.NewSalesUseCase(stores.Sales),
	}
}
