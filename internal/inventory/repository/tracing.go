package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tansu/stockroom/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// TracingItemRepository decorates an ItemRepository with OpenTelemetry
// spans. It implements domain.ItemRepository and is what wire injects.
type TracingItemRepository struct {
	inner domain.ItemRepository
}

func NewTracingItemRepository(inner domain.ItemRepository) *TracingItemRepository {
	return &TracingItemRepository{inner: inner}
}

func (r *TracingItemRepository) Create(ctx context.Context, item *domain.Item) error {
	ctx, span := tracer.Start(ctx, "repository.Item.Create",
		trace.WithAttributes(
			attribute.String("item.name", item.Name),
			attribute.Int("item.total_quantity", item.TotalQuantity),
		),
	)
	defer span.End()

	err := r.inner.Create(ctx, item)
	recordSpanError(span, err)
	if err == nil {
		span.SetAttributes(attribute.Int("item.id", int(item.ID)))
	}
	return err
}

func (r *TracingItemRepository) FindByID(ctx context.Context, id uint) (*domain.Item, error) {
	ctx, span := tracer.Start(ctx, "repository.Item.FindByID",
		trace.WithAttributes(attribute.Int("item.id", int(id))),
	)
	defer span.End()

	item, err := r.inner.FindByID(ctx, id)
	recordSpanError(span, err)
	return item, err
}

func (r *TracingItemRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Item, error) {
	ctx, span := tracer.Start(ctx, "repository.Item.FindAll",
		trace.WithAttributes(
			attribute.Int("query.limit", limit),
			attribute.Int("query.offset", offset),
		),
	)
	defer span.End()

	items, err := r.inner.FindAll(ctx, limit, offset)
	recordSpanError(span, err)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(items)))
	}
	return items, err
}

func (r *TracingItemRepository) Update(ctx context.Context, item *domain.Item) error {
	ctx, span := tracer.Start(ctx, "repository.Item.Update",
		trace.WithAttributes(attribute.Int("item.id", int(item.ID))),
	)
	defer span.End()

	err := r.inner.Update(ctx, item)
	recordSpanError(span, err)
	return err
}

func (r *TracingItemRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.Item.Delete",
		trace.WithAttributes(attribute.Int("item.id", int(id))),
	)
	defer span.End()

	err := r.inner.Delete(ctx, id)
	recordSpanError(span, err)
	return err
}

func (r *TracingItemRepository) AdjustStock(ctx context.Context, id uint, delta int) error {
	ctx, span := tracer.Start(ctx, "repository.Item.AdjustStock",
		trace.WithAttributes(
			attribute.Int("item.id", int(id)),
			attribute.Int("stock.delta", delta),
		),
	)
	defer span.End()

	err := r.inner.AdjustStock(ctx, id, delta)
	recordSpanError(span, err)
	return err
}

// TracingBorrowRequestRepository decorates a BorrowRequestRepository
// with OpenTelemetry spans.
type TracingBorrowRequestRepository struct {
	inner domain.BorrowRequestRepository
}

func NewTracingBorrowRequestRepository(inner domain.BorrowRequestRepository) *TracingBorrowRequestRepository {
	return &TracingBorrowRequestRepository{inner: inner}
}

func (r *TracingBorrowRequestRepository) Create(ctx context.Context, request *domain.BorrowRequest) error {
	ctx, span := tracer.Start(ctx, "repository.BorrowRequest.Create",
		trace.WithAttributes(
			attribute.Int("request.user_id", int(request.UserID)),
			attribute.Int("request.item_id", int(request.ItemID)),
			attribute.Int("request.quantity", request.QuantityRequested),
		),
	)
	defer span.End()

	err := r.inner.Create(ctx, request)
	recordSpanError(span, err)
	if err == nil {
		span.SetAttributes(attribute.Int("request.id", int(request.ID)))
	}
	return err
}

func (r *TracingBorrowRequestRepository) FindByID(ctx context.Context, id uint) (*domain.BorrowRequest, error) {
	ctx, span := tracer.Start(ctx, "repository.BorrowRequest.FindByID",
		trace.WithAttributes(attribute.Int("request.id", int(id))),
	)
	defer span.End()

	request, err := r.inner.FindByID(ctx, id)
	recordSpanError(span, err)
	return request, err
}

func (r *TracingBorrowRequestRepository) FindDetailByID(ctx context.Context, id uint) (*domain.BorrowRequestDetail, error) {
	ctx, span := tracer.Start(ctx, "repository.BorrowRequest.FindDetailByID",
		trace.WithAttributes(attribute.Int("request.id", int(id))),
	)
	defer span.End()

	detail, err := r.inner.FindDetailByID(ctx, id)
	recordSpanError(span, err)
	return detail, err
}

func (r *TracingBorrowRequestRepository) FindAll(ctx context.Context, status string, limit, offset int) ([]domain.BorrowRequestDetail, error) {
	ctx, span := tracer.Start(ctx, "repository.BorrowRequest.FindAll",
		trace.WithAttributes(attribute.String("query.status", status)),
	)
	defer span.End()

	requests, err := r.inner.FindAll(ctx, status, limit, offset)
	recordSpanError(span, err)
	return requests, err
}

func (r *TracingBorrowRequestRepository) FindByUserID(ctx context.Context, userID uint, status string, limit, offset int) ([]domain.BorrowRequestDetail, error) {
	ctx, span := tracer.Start(ctx, "repository.BorrowRequest.FindByUserID",
		trace.WithAttributes(
			attribute.Int("request.user_id", int(userID)),
			attribute.String("query.status", status),
		),
	)
	defer span.End()

	requests, err := r.inner.FindByUserID(ctx, userID, status, limit, offset)
	recordSpanError(span, err)
	return requests, err
}

func (r *TracingBorrowRequestRepository) CountByItemID(ctx context.Context, itemID uint) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.BorrowRequest.CountByItemID",
		trace.WithAttributes(attribute.Int("item.id", int(itemID))),
	)
	defer span.End()

	count, err := r.inner.CountByItemID(ctx, itemID)
	recordSpanError(span, err)
	return count, err
}

func (r *TracingBorrowRequestRepository) Transition(ctx context.Context, id uint, in domain.TransitionInput) (*domain.BorrowRequest, error) {
	ctx, span := tracer.Start(ctx, "repository.BorrowRequest.Transition",
		trace.WithAttributes(
			attribute.Int("request.id", int(id)),
			attribute.String("request.target_status", in.TargetStatus),
			attribute.Int("request.actor_id", int(in.Actor.ID)),
		),
	)
	defer span.End()

	request, err := r.inner.Transition(ctx, id, in)
	recordSpanError(span, err)
	if err == nil {
		span.SetAttributes(attribute.String("request.status", request.Status))
	}
	return request, err
}

func recordSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
