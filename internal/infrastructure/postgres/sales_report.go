package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.SalesReportRepository = (*SalesReport)(nil)

// SalesReport agrega las ventas en SQL con aritmética NUMERIC; los montos se leen
// como decimal.Decimal gracias al codec registrado en NewPool.
type SalesReport struct {
	pool *pgxpool.Pool
}

// NewSalesReport crea el reporte.
func NewSalesReport(pool *pgxpool.Pool) *SalesReport {
	return &SalesReport{pool: pool}
}

func (r *SalesReport) Summarize(ctx context.Context, from, to time.Time) ([]entity.SalesTotals, error) {
	const q = `
		SELECT data->>'tipodocumento'                                AS tipo,
		       COUNT(*)                                              AS cantidad,
		       COALESCE(SUM((data->>'subtotal')::numeric), 0)::numeric AS subtotal,
		       COALESCE(SUM((data->>'iva')::numeric), 0)::numeric      AS iva,
		       COALESCE(SUM((data->>'total')::numeric), 0)::numeric    AS total
		FROM documents
		WHERE collection = 'ventas'
		  AND (data->>'createdAt')::timestamptz >= $1
		  AND (data->>'createdAt')::timestamptz <  $2
		GROUP BY 1
		ORDER BY 1`
	rows, err := r.pool.Query(ctx, q, from, to)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := make([]entity.SalesTotals, 0)
	for rows.Next() {
		var (
			docType              string
			count                int64
			subtotal, tax, total decimal.Decimal
		)
		if err := rows.Scan(&docType, &count, &subtotal, &tax, &total); err != nil {
			return nil, mapError(err)
		}
		out = append(out, entity.SalesTotals{
			DocumentType: entity.DocumentType(docType),
			Count:        count,
			Subtotal:     subtotal,
			Tax:          tax,
			Total:        total,
		})
	}
	return out, mapError(rows.Err())
}
