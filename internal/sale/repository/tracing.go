package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/mbarros/stock-control/internal/sale/domain"
)

var tracer = otel.Tracer("sale-repository")

// TracingSaleRepository wraps a SaleRepository with tracing.
type TracingSaleRepository struct {
	inner domain.SaleRepository
}

func NewTracingSaleRepository(inner domain.SaleRepository) *TracingSaleRepository {
	return &TracingSaleRepository{inner: inner}
}

func (r *TracingSaleRepository) LoadAll() ([]domain.Sale, int, error) {
	_, span := tracer.Start(context.Background(), "repository.LoadAll")
	defer span.End()

	sales, skipped, err := r.inner.LoadAll()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, err
	}

	span.SetAttributes(
		attribute.Int("sale.count", len(sales)),
		attribute.Int("sale.skipped_rows", skipped),
	)
	return sales, skipped, nil
}

func (r *TracingSaleRepository) Append(sale domain.Sale) error {
	_, span := tracer.Start(context.Background(), "repository.Append")
	defer span.End()
	span.SetAttributes(
		attribute.String("sale.product", sale.Product),
		attribute.Int("sale.quantity", sale.Quantity),
	)

	if err := r.inner.Append(sale); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
