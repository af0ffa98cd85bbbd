// Package report resúmenes de ventas por período.
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// SalesUseCase totales de ventas por tipo de documento.
type SalesUseCase struct {
	repo repository.SalesReportRepository
	now  func() time.Time
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(repo repository.SalesReportRepository) *SalesUseCase {
	return &SalesUseCase{repo: repo, now: time.Now}
}

// Summary totales de las ventas creadas entre from y to (YYYY-MM-DD, ambos inclusive).
// Sin fechas: el mes en curso.
func (uc *SalesUseCase) Summary(ctx context.Context, from, to string) (*dto.SalesReportResponse, error) {
	start, end, err := uc.period(from, to)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.Summarize(ctx, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, billing.StoreErr(err)
	}
	resp := &dto.SalesReportResponse{
		From:  start.Format(dateLayout),
		To:    end.Format(dateLayout),
		Rows:  make([]dto.SalesRowResponse, 0, len(rows)),
		Total: decimal.Zero,
	}
	for _, r := range rows {
		resp.Rows = append(resp.Rows, dto.SalesRowResponse{
			DocumentType: string(r.DocumentType),
			Count:        r.Count,
			Subtotal:     r.Subtotal,
			Tax:          r.Tax,
			Total:        r.Total,
		})
		resp.Total = resp.Total.Add(r.Total)
	}
	return resp, nil
}

func (uc *SalesUseCase) period(from, to string) (time.Time, time.Time, error) {
	now := uc.now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	var err error
	if from != "" {
		if start, err = time.Parse(dateLayout, from); err != nil {
			return start, end, domain.ErrInvalidInput
		}
	}
	if to != "" {
		if end, err = time.Parse(dateLayout, to); err != nil {
			return start, end, domain.ErrInvalidInput
		}
	}
	if end.Before(start) {
		return start, end, domain.ErrInvalidInput
	}
	return start, end, nil
}
