package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tansu/stockroom/internal/inventory/domain"
)

func TestCreateRequest(t *testing.T) {
	env := newTestEnv(t)
	item := env.seedItem(t, 5, 5)
	handler := NewCreateRequestHandler(env.requests, env.items, nil)

	expected := time.Now().Add(7 * 24 * time.Hour)
	request, err := handler.Handle(context.Background(), CreateRequestCommand{
		UserID:             7,
		ItemID:             item.ID,
		Quantity:           3,
		ExpectedReturnDate: &expected,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, request.Status)
	assert.Equal(t, 3, request.QuantityRequested)
	assert.NotZero(t, request.ID)

	// Creation never touches the stock ledger
	got, err := env.items.FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.AvailableQuantity)
}

func TestCreateRequestValidation(t *testing.T) {
	env := newTestEnv(t)
	item := env.seedItem(t, 5, 5)
	handler := NewCreateRequestHandler(env.requests, env.items, nil)

	_, err := handler.Handle(context.Background(), CreateRequestCommand{
		ItemID:   item.ID,
		Quantity: 1,
	})
	assert.Error(t, err)

	_, err = handler.Handle(context.Background(), CreateRequestCommand{
		UserID:   7,
		ItemID:   item.ID,
		Quantity: 0,
	})
	assert.Error(t, err)

	past := time.Now().Add(-72 * time.Hour)
	_, err = handler.Handle(context.Background(), CreateRequestCommand{
		UserID:             7,
		ItemID:             item.ID,
		Quantity:           1,
		ExpectedReturnDate: &past,
	})
	assert.Error(t, err)
}

func TestCreateRequestAdvisoryStockCheck(t *testing.T) {
	env := newTestEnv(t)
	item := env.seedItem(t, 5, 2)
	handler := NewCreateRequestHandler(env.requests, env.items, nil)

	_, err := handler.Handle(context.Background(), CreateRequestCommand{
		UserID:   7,
		ItemID:   item.ID,
		Quantity: 3,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCreateRequestItemNotFound(t *testing.T) {
	env := newTestEnv(t)
	handler := NewCreateRequestHandler(env.requests, env.items, nil)

	_, err := handler.Handle(context.Background(), CreateRequestCommand{
		UserID:   7,
		ItemID:   9999,
		Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}
