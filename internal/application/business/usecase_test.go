package business_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/business"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/docrepo"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/memstore"
)

func TestGet_SinConfigurarDevuelveVacio(t *testing.T) {
	uc := business.NewUseCase(docrepo.NewBusinessRepository(memstore.New()))
	got, err := uc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &dto.BusinessResponse{}, got)
}

func TestSave_RequiereNombre(t *testing.T) {
	uc := business.NewUseCase(docrepo.NewBusinessRepository(memstore.New()))
	_, err := uc.Save(context.Background(), dto.BusinessRequest{TaxID: "0999999999001"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSave_SeCopiaEnVentasNuevasPeroNoEnLasAnteriores(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	uc := business.NewUseCase(docrepo.NewBusinessRepository(store))
	runner := docrepo.NewTxRunner(store)
	commit := billing.NewCommitInvoiceUseCase(runner, docrepo.NewProductCatalog(store), billing.DefaultSettings(), zerolog.Nop())

	require.NoError(t, runner.RunBilling(ctx, func(_ context.Context, r repository.TxRepos) error {
		return r.Products.Create(&entity.Product{ID: "p1", Name: "Widget", UnitPrice: decimal.NewFromInt(1), WholesalePrice: decimal.NewFromInt(1), Stock: 10, Visible: true})
	}))
	draft := dto.CreateInvoiceRequest{
		DocumentType: string(entity.DocumentTypeSalesNote),
		Items:        []dto.InvoiceItemRequest{{ProductID: "p1", Quantity: 1, PriceTier: string(entity.PriceTierUnit)}},
	}

	_, err := uc.Save(ctx, dto.BusinessRequest{Name: "Ferretería Central", TaxID: "0999999999001", City: "Guayaquil"})
	require.NoError(t, err)
	first, err := commit.Commit(ctx, "u1", draft)
	require.NoError(t, err)

	_, err = uc.Save(ctx, dto.BusinessRequest{Name: "Ferretería Norte"})
	require.NoError(t, err)
	second, err := commit.Commit(ctx, "u1", draft)
	require.NoError(t, err)

	stored, err := docrepo.NewInvoiceReader(store).GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ferretería Central", stored.Business.Name)
	assert.Equal(t, "Guayaquil", stored.Business.City)
	assert.Equal(t, "Ferretería Norte", second.Business.Name)
}
