package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/mbarros/stock-control/internal/customer/domain"
)

var tracer = otel.Tracer("customer-repository")

// TracingCustomerRepository wraps a CustomerRepository with tracing.
type TracingCustomerRepository struct {
	inner domain.CustomerRepository
}

func NewTracingCustomerRepository(inner domain.CustomerRepository) *TracingCustomerRepository {
	return &TracingCustomerRepository{inner: inner}
}

func (r *TracingCustomerRepository) LoadAll() ([]domain.Customer, int, error) {
	_, span := tracer.Start(context.Background(), "repository.LoadAll")
	defer span.End()

	customers, skipped, err := r.inner.LoadAll()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, err
	}

	span.SetAttributes(
		attribute.Int("customer.count", len(customers)),
		attribute.Int("customer.skipped_rows", skipped),
	)
	return customers, skipped, nil
}

func (r *TracingCustomerRepository) Append(customer domain.Customer) error {
	_, span := tracer.Start(context.Background(), "repository.Append")
	defer span.End()
	span.SetAttributes(attribute.String("customer.cpf", customer.CPF))

	if err := r.inner.Append(customer); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
