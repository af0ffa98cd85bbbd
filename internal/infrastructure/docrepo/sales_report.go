package docrepo

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain/docstore"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.SalesReportRepository = (*SalesReport)(nil)

// SalesReport agrega en memoria los documentos de ventas. Para PostgreSQL existe una
// versión que agrega en SQL (postgres.SalesReport).
type SalesReport struct {
	store docstore.Store
}

// NewSalesReport crea el reporte genérico.
func NewSalesReport(store docstore.Store) *SalesReport {
	return &SalesReport{store: store}
}

// Summarize totales por tipo de documento para ventas con createdAt en [from, to).
func (r *SalesReport) Summarize(ctx context.Context, from, to time.Time) ([]entity.SalesTotals, error) {
	snaps, err := r.store.List(ctx, CollectionInvoices)
	if err != nil {
		return nil, err
	}
	docs, err := decodeAll[invoiceDoc](snaps)
	if err != nil {
		return nil, err
	}
	acc := map[entity.DocumentType]*entity.SalesTotals{}
	for _, d := range docs {
		if d.CreatedAt.Before(from) || !d.CreatedAt.Before(to) {
			continue
		}
		t := entity.DocumentType(d.TipoDocumento)
		row, ok := acc[t]
		if !ok {
			row = &entity.SalesTotals{DocumentType: t, Subtotal: decimal.Zero, Tax: decimal.Zero, Total: decimal.Zero}
			acc[t] = row
		}
		row.Count++
		row.Subtotal = row.Subtotal.Add(d.Subtotal)
		row.Tax = row.Tax.Add(d.IVA)
		row.Total = row.Total.Add(d.Total)
	}
	out := make([]entity.SalesTotals, 0, len(acc))
	for _, row := range acc {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DocumentType < out[j].DocumentType })
	return out, nil
}
