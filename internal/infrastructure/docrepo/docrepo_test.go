package docrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/docstore"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/docrepo"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/memstore"
)

func TestCounter_AllocateNextYPeek(t *testing.T) {
	store := memstore.New()
	runner := docrepo.NewTxRunner(store)
	counters := docrepo.NewCounterStore(store)
	ctx := context.Background()

	next, err := counters.PeekNext(ctx, entity.DocumentTypeInvoice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	for want := int64(1); want <= 3; want++ {
		var got int64
		require.NoError(t, runner.RunBilling(ctx, func(_ context.Context, r repository.TxRepos) error {
			var err error
			got, err = r.Counters.AllocateNext(entity.DocumentTypeInvoice)
			return err
		}))
		assert.Equal(t, want, got)
	}

	next, err = counters.PeekNext(ctx, entity.DocumentTypeInvoice)
	require.NoError(t, err)
	assert.Equal(t, int64(4), next)

	// Contadores independientes por tipo.
	next, err = counters.PeekNext(ctx, entity.DocumentTypeSalesNote)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)
}

func TestProduct_CrearActualizarStock(t *testing.T) {
	store := memstore.New()
	runner := docrepo.NewTxRunner(store)
	catalog := docrepo.NewProductCatalog(store)
	ctx := context.Background()
	stockAt := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	p := &entity.Product{ID: "p1", Name: "Widget", UnitPrice: decimal.NewFromInt(10), WholesalePrice: decimal.NewFromInt(8), Stock: 5, Visible: true}
	hidden := &entity.Product{ID: "p2", Name: "Antiguo", UnitPrice: decimal.NewFromInt(1), Stock: 1}
	require.NoError(t, runner.RunBilling(ctx, func(_ context.Context, r repository.TxRepos) error {
		if err := r.Products.Create(p); err != nil {
			return err
		}
		return r.Products.Create(hidden)
	}))
	require.NoError(t, runner.RunBilling(ctx, func(_ context.Context, r repository.TxRepos) error {
		return r.Products.UpdateStock("p1", 2, stockAt)
	}))

	got, err := catalog.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Stock)
	assert.True(t, got.UpdatedAt.Equal(stockAt))
	assert.True(t, got.UnitPrice.Equal(decimal.NewFromInt(10)))

	visible, err := catalog.ListVisible(ctx)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "p1", visible[0].ID)

	err = runner.RunBilling(ctx, func(_ context.Context, r repository.TxRepos) error {
		return r.Products.UpdateStock("nope", 1, stockAt)
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = catalog.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoice_ListFiltraYOrdena(t *testing.T) {
	store := memstore.New()
	runner := docrepo.NewTxRunner(store)
	reader := docrepo.NewInvoiceReader(store)
	ctx := context.Background()
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	invoices := []*entity.Invoice{
		{ID: "a", DocumentType: entity.DocumentTypeInvoice, DocumentNumber: "F001-000001", Sequence: 1, CreatedAt: base, Total: decimal.RequireFromString("40.25"), Tax: decimal.RequireFromString("5.25"), Subtotal: decimal.NewFromInt(35)},
		{ID: "b", DocumentType: entity.DocumentTypeSalesNote, DocumentNumber: "NV001-000001", Sequence: 1, CreatedAt: base.Add(time.Hour), Total: decimal.NewFromInt(7), Subtotal: decimal.NewFromInt(7)},
		{ID: "c", DocumentType: entity.DocumentTypeInvoice, DocumentNumber: "F001-000002", Sequence: 2, CreatedAt: base.Add(2 * time.Hour), Total: decimal.RequireFromString("11.50"), Tax: decimal.RequireFromString("1.50"), Subtotal: decimal.NewFromInt(10),
			Items: []entity.InvoiceLineItem{{ProductID: "p1", ProductName: "Widget", Quantity: 1, PriceTier: entity.PriceTierUnit, UnitPriceUsed: decimal.NewFromInt(10), LineSubtotal: decimal.NewFromInt(10)}}},
	}
	require.NoError(t, runner.RunBilling(ctx, func(_ context.Context, r repository.TxRepos) error {
		for _, inv := range invoices {
			if err := r.Invoices.Create(inv); err != nil {
				return err
			}
		}
		return nil
	}))

	facturas, err := reader.List(ctx, entity.DocumentTypeInvoice)
	require.NoError(t, err)
	require.Len(t, facturas, 2)
	assert.Equal(t, "c", facturas[0].ID)
	assert.Equal(t, "a", facturas[1].ID)
	require.Len(t, facturas[0].Items, 1)
	assert.Equal(t, entity.PriceTierUnit, facturas[0].Items[0].PriceTier)

	all, err := reader.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	report := docrepo.NewSalesReport(store)
	rows, err := report.Summarize(ctx, base, base.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, entity.DocumentTypeInvoice, rows[0].DocumentType)
	assert.Equal(t, int64(2), rows[0].Count)
	assert.Equal(t, "51.75", rows[0].Total.StringFixed(2))
	assert.Equal(t, "6.75", rows[0].Tax.StringFixed(2))
	assert.Equal(t, entity.DocumentTypeSalesNote, rows[1].DocumentType)

	// El límite superior es exclusivo.
	rows, err = report.Summarize(ctx, base, base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].Count)
}

func TestBusiness_GetSinConfigurarYSave(t *testing.T) {
	store := memstore.New()
	repo := docrepo.NewBusinessRepository(store)
	ctx := context.Background()

	info, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, info)

	require.NoError(t, repo.Save(ctx, &entity.BusinessInfo{Name: "Ferretería Central", TaxID: "0999999999001"}))
	info, err = repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "Ferretería Central", info.Name)
}

func TestHistory_ListByUserMasRecientePrimero(t *testing.T) {
	store := memstore.New()
	runner := docrepo.NewTxRunner(store)
	reader := docrepo.NewHistoryReader(store)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, runner.RunBilling(ctx, func(_ context.Context, r repository.TxRepos) error {
		for _, e := range []entity.HistoryEntry{
			{ID: "h1", UserID: "u1", Action: entity.HistoryInvoiceCreated, CreatedAt: base},
			{ID: "h2", UserID: "u2", Action: entity.HistoryInvoiceCreated, CreatedAt: base},
			{ID: "h3", UserID: "u1", Action: entity.HistoryInvoiceDeleted, CreatedAt: base.Add(time.Minute)},
		} {
			e := e
			if err := r.History.Append(&e); err != nil {
				return err
			}
		}
		return nil
	}))

	entries, err := reader.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "h3", entries[0].ID)
	assert.Equal(t, entity.HistoryInvoiceDeleted, entries[0].Action)
}

func TestDocumentosExistentes_SeLeenConSusCampos(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	require.NoError(t, store.RunTransaction(ctx, func(_ context.Context, tx docstore.Tx) error {
		if err := tx.Set(docstore.Doc(docrepo.CollectionProducts, "p1"), map[string]any{
			"nombre": "Martillo", "categoria": "Herramientas", "marca": "Stanley",
			"precioUnitario": "10.50", "precioMayor": "9", "stock": "12", "visible": true,
		}); err != nil {
			return err
		}
		if err := tx.Set(docstore.Doc(docrepo.CollectionBusiness, "config"), map[string]any{
			"nombre": "Ferretería El Sol", "ruc": "0991234567001", "correo": "info@elsol.ec", "propietario": "Luis",
		}); err != nil {
			return err
		}
		if err := tx.Set(docstore.Doc(docrepo.CollectionHistory, "h1"), map[string]any{
			"usuarioId": "u1", "accion": "venta", "descripcion": "Factura F001-000042", "fecha": "2025-11-03T10:00:00Z",
		}); err != nil {
			return err
		}
		return tx.Set(docstore.Doc(docrepo.CollectionInvoices, "v1"), map[string]any{
			"tipodocumento":   "Factura",
			"numerodocumento": "F001-000042",
			"fechaRegistro":   "2025-11-03",
			"negocio":         map[string]any{"nombre": "Ferretería El Sol", "email": "info@elsol.ec"},
			"cliente":         map[string]any{"documento": "0912345678", "nombre": "Ana", "correo": "ana@correo.ec"},
			"usuarioRegistro": "admin",
			"items": []map[string]any{{
				"idProducto": "p1", "nombre": "Martillo", "cantidad": 2, "tipoPrecio": "Unitario",
				"precioUsado": 10.5, "subtotal": 21,
			}},
			"subtotal":   21,
			"iva":        3.15,
			"total":      24.15,
			"mensajePie": "Gracias por su compra",
		})
	}))

	p, err := docrepo.NewProductCatalog(store).GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(12), p.Stock)
	assert.True(t, p.UnitPrice.Equal(decimal.RequireFromString("10.50")))

	biz, err := docrepo.NewBusinessRepository(store).Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, biz)
	assert.Equal(t, "info@elsol.ec", biz.Email)

	hist, err := docrepo.NewHistoryReader(store).ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, "Factura F001-000042", hist[0].Detail)

	inv, err := docrepo.NewInvoiceReader(store).GetByID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentTypeInvoice, inv.DocumentType)
	assert.Equal(t, int64(42), inv.Sequence)
	assert.Equal(t, time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC), inv.IssueDate)
	assert.Equal(t, "0912345678", inv.Customer.DocumentID)
	assert.Equal(t, "ana@correo.ec", inv.Customer.Email)
	assert.Equal(t, "info@elsol.ec", inv.Business.Email)
	assert.Equal(t, "admin", inv.CreatedBy)
	assert.Equal(t, "Gracias por su compra", inv.FooterMessage)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "24.15", inv.Total.StringFixed(2))
}

func TestBusiness_GuardaCorreoEnConfig(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	require.NoError(t, docrepo.NewBusinessRepository(store).Save(ctx, &entity.BusinessInfo{Name: "El Sol", Email: "info@elsol.ec"}))

	var raw map[string]any
	ok, err := store.Get(ctx, docstore.Doc(docrepo.CollectionBusiness, "config"), &raw)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "info@elsol.ec", raw["correo"])
	assert.NotContains(t, raw, "email")
}

func TestCustomerDirectory_UsaDocumentosDeUsuarios(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	require.NoError(t, store.RunTransaction(ctx, func(_ context.Context, tx docstore.Tx) error {
		return tx.Set(docstore.Doc(docrepo.CollectionCustomers, "abc123"), map[string]any{
			"cedula": "0912345678", "nombre": "Ana", "apellido": "Torres", "correo": "ana@correo.ec", "rol": "cliente",
		})
	}))
	dir := docrepo.NewCustomerDirectory(store)

	c, err := dir.FindByDocumentID(ctx, "0912345678")
	require.NoError(t, err)
	assert.Equal(t, "Torres", c.LastName)
	assert.Equal(t, "ana@correo.ec", c.Email)

	require.NoError(t, dir.Upsert(ctx, &entity.CustomerSnapshot{DocumentID: "0912345678", Phone: "0991112223"}))
	var raw map[string]any
	ok, err := store.Get(ctx, docstore.Doc(docrepo.CollectionCustomers, "abc123"), &raw)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "cliente", raw["rol"])
	assert.Equal(t, "Ana", raw["nombre"])
	assert.Equal(t, "0991112223", raw["telefono"])

	_, err = dir.FindByDocumentID(ctx, "1700000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryRepository_LeePrioridadComoTexto(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	require.NoError(t, store.RunTransaction(ctx, func(_ context.Context, tx docstore.Tx) error {
		return tx.Set(docstore.Doc(docrepo.CollectionCategories, "c1"), map[string]any{
			"nombre": "Pinturas", "descripcion": "d", "visible": true, "prioridad": "2",
		})
	}))
	c, err := docrepo.NewCategoryRepository(store).GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, 2, c.Priority)
}
