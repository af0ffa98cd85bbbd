package billing_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

func draft(docType entity.DocumentType, items ...dto.InvoiceItemRequest) dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		DocumentType: string(docType),
		Customer:     dto.CustomerData{DocumentID: "0912345678", FirstName: "Ana", LastName: "Torres"},
		Items:        items,
	}
}

func item(productID string, qty int64, tier entity.PriceTier) dto.InvoiceItemRequest {
	return dto.InvoiceItemRequest{ProductID: productID, Quantity: qty, PriceTier: string(tier)}
}

func TestCommit_AsignaSiguienteNumeroYDescuentaStock(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Widget", "10.00", "8.00", 10)
	f.setCounter(t, entity.DocumentTypeInvoice, 5)

	inv, err := f.commit.Commit(context.Background(), "u1", draft(entity.DocumentTypeInvoice, item("p1", 3, entity.PriceTierUnit)))
	require.NoError(t, err)

	assert.Equal(t, "F001-000006", inv.DocumentNumber)
	assert.Equal(t, int64(6), inv.Sequence)
	assert.Equal(t, "30.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "4.50", inv.Tax.StringFixed(2))
	assert.Equal(t, "34.50", inv.Total.StringFixed(2))
	assert.Equal(t, "Gracias por su compra", inv.FooterMessage)
	assert.Equal(t, fixedNow, inv.CreatedAt)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "Widget", inv.Items[0].ProductName)

	assert.Equal(t, int64(7), f.stock(t, "p1"))
	assert.Equal(t, int64(7), f.nextSeq(t, entity.DocumentTypeInvoice))
	p, err := f.catalog.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, p.UpdatedAt.Equal(fixedNow), "el stock usa el reloj de la operación")

	stored, err := f.query.GetInvoice(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "F001-000006", stored.DocumentNumber)
	assert.Equal(t, "Ana", stored.Customer.FirstName)
}

func TestCommit_StockInsuficienteNoDejaEfectos(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Widget", "10.00", "8.00", 2)
	f.setCounter(t, entity.DocumentTypeInvoice, 5)

	_, err := f.commit.Commit(context.Background(), "u1", draft(entity.DocumentTypeInvoice, item("p1", 3, entity.PriceTierUnit)))

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Widget", stockErr.ProductName)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), f.stock(t, "p1"))
	assert.Equal(t, int64(6), f.nextSeq(t, entity.DocumentTypeInvoice))
	assert.Zero(t, f.countInvoices(t))
}

func TestCommit_LineasRepetidasSeSumanParaElStock(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Widget", "10.00", "8.00", 3)

	_, err := f.commit.Commit(context.Background(), "u1", draft(entity.DocumentTypeInvoice,
		item("p1", 2, entity.PriceTierUnit),
		item("p1", 2, entity.PriceTierWholesale),
	))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(3), f.stock(t, "p1"))
}

func TestCommit_SumaDeLineasQueDesbordaSeRechaza(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Widget", "10.00", "8.00", 5)

	_, err := f.commit.Commit(context.Background(), "u1", draft(entity.DocumentTypeInvoice,
		item("p1", math.MaxInt64, entity.PriceTierUnit),
		item("p1", math.MaxInt64, entity.PriceTierUnit),
	))

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, domain.ReasonInvalidQuantity, vErr.Reason)
	assert.Equal(t, int64(5), f.stock(t, "p1"))
	assert.Equal(t, int64(1), f.nextSeq(t, entity.DocumentTypeInvoice))
	assert.Zero(t, f.countInvoices(t))
}

func TestCommit_TotalesConDosLineasYPrecioMayorista(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "a", "Producto A", "10.00", "9.00", 10)
	f.seedProduct(t, "b", "Producto B", "6.00", "5.00", 10)

	inv, err := f.commit.Commit(context.Background(), "u1", draft(entity.DocumentTypeInvoice,
		item("a", 2, entity.PriceTierUnit),
		item("b", 3, entity.PriceTierWholesale),
	))
	require.NoError(t, err)
	assert.Equal(t, "35.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "5.25", inv.Tax.StringFixed(2))
	assert.Equal(t, "40.25", inv.Total.StringFixed(2))
	assert.Equal(t, "5", inv.Items[1].UnitPriceUsed.String())

	note, err := f.commit.Commit(context.Background(), "u1", draft(entity.DocumentTypeSalesNote,
		item("a", 2, entity.PriceTierUnit),
		item("b", 3, entity.PriceTierWholesale),
	))
	require.NoError(t, err)
	assert.Equal(t, "NV001-000001", note.DocumentNumber)
	assert.True(t, note.Tax.IsZero())
	assert.Equal(t, "35.00", note.Total.StringFixed(2))
}

func TestCommit_ContadoresIndependientesPorTipo(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Widget", "1", "1", 100)

	for i := 0; i < 3; i++ {
		_, err := f.commit.Commit(context.Background(), "u1", draft(entity.DocumentTypeInvoice, item("p1", 1, entity.PriceTierUnit)))
		require.NoError(t, err)
	}
	note, err := f.commit.Commit(context.Background(), "u1", draft(entity.DocumentTypeSalesNote, item("p1", 1, entity.PriceTierUnit)))
	require.NoError(t, err)

	assert.Equal(t, "NV001-000001", note.DocumentNumber)
	assert.Equal(t, int64(4), f.nextSeq(t, entity.DocumentTypeInvoice))
}

func TestCommit_Validaciones(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Widget", "10", "8", 10)
	hidden := "oculto"
	f.seedProduct(t, hidden, "Oculto", "1", "1", 10)
	// Ocultar el producto.
	require.NoError(t, f.runnerHide(hidden))

	cases := map[string]struct {
		in     dto.CreateInvoiceRequest
		reason string
	}{
		"tipo desconocido":     {draft("Recibo", item("p1", 1, entity.PriceTierUnit)), domain.ReasonInvalidDocumentType},
		"sin líneas":           {draft(entity.DocumentTypeInvoice), domain.ReasonNoLineItems},
		"producto vacío":       {draft(entity.DocumentTypeInvoice, item("", 1, entity.PriceTierUnit)), domain.ReasonNoLineItems},
		"cantidad cero":        {draft(entity.DocumentTypeInvoice, item("p1", 0, entity.PriceTierUnit)), domain.ReasonInvalidQuantity},
		"tipo de precio":       {draft(entity.DocumentTypeInvoice, item("p1", 1, "Especial")), domain.ReasonInvalidPriceTier},
		"producto inexistente": {draft(entity.DocumentTypeInvoice, item("nope", 1, entity.PriceTierUnit)), domain.ReasonInvalidProduct},
		"producto oculto":      {draft(entity.DocumentTypeInvoice, item(hidden, 1, entity.PriceTierUnit)), domain.ReasonInvalidProduct},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.commit.Commit(context.Background(), "u1", tc.in)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.reason, vErr.Reason)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, int64(1), f.nextSeq(t, entity.DocumentTypeInvoice))
	assert.Equal(t, int64(10), f.stock(t, "p1"))
}

func (f *fixture) runnerHide(id string) error {
	return f.runner.RunBilling(context.Background(), func(_ context.Context, r repository.TxRepos) error {
		p, err := r.Products.GetByID(id)
		if err != nil {
			return err
		}
		p.Visible = false
		return r.Products.Update(p)
	})
}

func TestCommit_ConcurrenciaSinSobreventaNiNumerosDuplicados(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Widget", "10", "8", 5)

	const buyers = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = map[string]int{}
		failed  int
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inv, err := f.commit.Commit(context.Background(), "u1", draft(entity.DocumentTypeInvoice, item("p1", 1, entity.PriceTierUnit)))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				assert.True(t, errors.Is(err, domain.ErrInsufficientStock), "error inesperado: %v", err)
				failed++
				return
			}
			numbers[inv.DocumentNumber]++
		}()
	}
	wg.Wait()

	assert.Len(t, numbers, 5)
	for n, c := range numbers {
		assert.Equal(t, 1, c, "número duplicado %s", n)
	}
	for _, want := range []string{"F001-000001", "F001-000002", "F001-000003", "F001-000004", "F001-000005"} {
		assert.Contains(t, numbers, want)
	}
	assert.Equal(t, buyers-5, failed)
	assert.Equal(t, int64(0), f.stock(t, "p1"))
	assert.Equal(t, 5, f.countInvoices(t))
}

// failingInvoices hace fallar la escritura de la venta después de descontar stock y contador.
type failingInvoices struct {
	repository.InvoiceRepository
}

func (failingInvoices) Create(*entity.Invoice) error { return errors.New("disco lleno") }

type injectingRunner struct {
	inner billing.BillingTxRunner
}

func (r injectingRunner) RunBilling(ctx context.Context, fn func(context.Context, repository.TxRepos) error) error {
	return r.inner.RunBilling(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		repos.Invoices = failingInvoices{repos.Invoices}
		return fn(ctx, repos)
	})
}

func TestCommit_FallaDeEscrituraRevierteTodo(t *testing.T) {
	f := newFixtureWithRunner(t, func(inner billing.BillingTxRunner) billing.BillingTxRunner {
		return injectingRunner{inner: inner}
	})
	f.seedProduct(t, "p1", "Widget", "10", "8", 5)

	_, err := f.commit.Commit(context.Background(), "u1", draft(entity.DocumentTypeInvoice, item("p1", 2, entity.PriceTierUnit)))
	require.Error(t, err)
	assert.Equal(t, "disco lleno", err.Error())

	assert.Equal(t, int64(5), f.stock(t, "p1"))
	assert.Equal(t, int64(1), f.nextSeq(t, entity.DocumentTypeInvoice))
	assert.Zero(t, f.countInvoices(t))
}

func TestCommit_ContextoCancelado(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Widget", "10", "8", 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.commit.Commit(ctx, "u1", draft(entity.DocumentTypeInvoice, item("p1", 1, entity.PriceTierUnit)))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(5), f.stock(t, "p1"))
}
