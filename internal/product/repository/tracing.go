package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/mbarros/stock-control/internal/product/domain"
)

var tracer = otel.Tracer("product-repository")

// TracingProductRepository wraps a ProductRepository with tracing.
type TracingProductRepository struct {
	inner domain.ProductRepository
}

func NewTracingProductRepository(inner domain.ProductRepository) *TracingProductRepository {
	return &TracingProductRepository{inner: inner}
}

func (r *TracingProductRepository) LoadAll() ([]domain.Product, int, error) {
	_, span := tracer.Start(context.Background(), "repository.LoadAll")
	defer span.End()

	products, skipped, err := r.inner.LoadAll()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, err
	}

	span.SetAttributes(
		attribute.Int("product.count", len(products)),
		attribute.Int("product.skipped_rows", skipped),
	)
	return products, skipped, nil
}

func (r *TracingProductRepository) SaveAll(products []domain.Product) error {
	_, span := tracer.Start(context.Background(), "repository.SaveAll")
	defer span.End()
	span.SetAttributes(attribute.Int("product.count", len(products)))

	if err := r.inner.SaveAll(products); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (r *TracingProductRepository) StageSaveAll(products []domain.Product) (domain.StagedSave, error) {
	_, span := tracer.Start(context.Background(), "repository.StageSaveAll")
	defer span.End()
	span.SetAttributes(attribute.Int("product.count", len(products)))

	staged, err := r.inner.StageSaveAll(products)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return staged, nil
}
