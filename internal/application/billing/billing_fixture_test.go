package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain/docstore"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/docrepo"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/memstore"
)

var (
	fixedNow = time.Date(2026, 5, 4, 15, 30, 0, 0, time.UTC)
	seededAt = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
)

type fixture struct {
	store    *memstore.Store
	runner   billing.BillingTxRunner
	catalog  *docrepo.ProductCatalog
	invoices *docrepo.InvoiceReader
	commit   *billing.CommitInvoiceUseCase
	edit     *billing.EditInvoiceUseCase
	delete   *billing.DeleteInvoiceUseCase
	query    *billing.InvoiceQueryUseCase
	settings billing.Settings
}

func testSettings() billing.Settings {
	s := billing.DefaultSettings()
	s.FooterMessage = "Gracias por su compra"
	s.Retry = billing.RetryPolicy{MaxAttempts: 10, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}
	s.Now = func() time.Time { return fixedNow }
	return s
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithRunner(t, nil)
}

// newFixtureWithRunner permite envolver el runner real (para inyectar fallas).
func newFixtureWithRunner(t *testing.T, wrap func(billing.BillingTxRunner) billing.BillingTxRunner) *fixture {
	t.Helper()
	store := memstore.New()
	var runner billing.BillingTxRunner = docrepo.NewTxRunner(store)
	if wrap != nil {
		runner = wrap(runner)
	}
	settings := testSettings()
	catalog := docrepo.NewProductCatalog(store)
	invoices := docrepo.NewInvoiceReader(store)
	log := zerolog.Nop()
	return &fixture{
		store:    store,
		runner:   runner,
		catalog:  catalog,
		invoices: invoices,
		commit:   billing.NewCommitInvoiceUseCase(runner, catalog, settings, log),
		edit:     billing.NewEditInvoiceUseCase(runner, settings, log),
		delete:   billing.NewDeleteInvoiceUseCase(runner, settings, log),
		query:    billing.NewInvoiceQueryUseCase(invoices, docrepo.NewCounterStore(store), settings.Prefixes),
		settings: settings,
	}
}

func (f *fixture) seedProduct(t *testing.T, id, name, unit, wholesale string, stock int64) {
	t.Helper()
	p := &entity.Product{
		ID:             id,
		Name:           name,
		UnitPrice:      decimal.RequireFromString(unit),
		WholesalePrice: decimal.RequireFromString(wholesale),
		Stock:          stock,
		Visible:        true,
		CreatedAt:      seededAt,
		UpdatedAt:      seededAt,
	}
	require.NoError(t, docrepo.NewTxRunner(f.store).RunBilling(context.Background(), func(_ context.Context, r repository.TxRepos) error {
		return r.Products.Create(p)
	}))
}

func (f *fixture) setCounter(t *testing.T, docType entity.DocumentType, last int64) {
	t.Helper()
	require.NoError(t, f.store.RunTransaction(context.Background(), func(_ context.Context, tx docstore.Tx) error {
		return tx.Set(docstore.Doc(docrepo.CollectionCounters, string(docType)), map[string]any{"ultimo": last})
	}))
}

func (f *fixture) stock(t *testing.T, id string) int64 {
	t.Helper()
	p, err := f.catalog.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func (f *fixture) nextSeq(t *testing.T, docType entity.DocumentType) int64 {
	t.Helper()
	next, err := f.query.NextNumber(context.Background(), string(docType))
	require.NoError(t, err)
	return next.Sequence
}

func (f *fixture) countInvoices(t *testing.T) int {
	t.Helper()
	list, err := f.invoices.List(context.Background(), "")
	require.NoError(t, err)
	return len(list)
}
