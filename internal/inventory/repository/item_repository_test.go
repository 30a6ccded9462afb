package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tansu/stockroom/internal/inventory/domain"
)

func TestItemCRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormItemRepository(db)
	ctx := context.Background()

	item := seedItem(t, db, 10, 10)
	require.NotZero(t, item.ID)

	found, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dell Latitude", found.Name)
	assert.Equal(t, 10, found.TotalQuantity)

	found.Name = "Dell Latitude 7420"
	found.Description = "Loaner laptop, refreshed"
	require.NoError(t, repo.Update(ctx, found))

	found, err = repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dell Latitude 7420", found.Name)

	items, err := repo.FindAll(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, repo.Delete(ctx, item.ID))

	_, err = repo.FindByID(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestItemUpdateNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormItemRepository(db)

	err := repo.Update(context.Background(), &domain.Item{ID: 9999, Name: "ghost"})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestItemDeleteBlockedByRequests(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormItemRepository(db)
	item := seedItem(t, db, 5, 5)
	seedRequest(t, db, item.ID, 2, domain.StatusPending)

	err := repo.Delete(context.Background(), item.ID)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)

	// Item survives the failed delete
	_, err = repo.FindByID(context.Background(), item.ID)
	require.NoError(t, err)
}

func TestAdjustStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormItemRepository(db)
	ctx := context.Background()
	item := seedItem(t, db, 5, 5)

	require.NoError(t, repo.AdjustStock(ctx, item.ID, -2))
	assert.Equal(t, 3, itemAvailable(t, db, item.ID))

	require.NoError(t, repo.AdjustStock(ctx, item.ID, 2))
	assert.Equal(t, 5, itemAvailable(t, db, item.ID))
}

func TestAdjustStockBounds(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormItemRepository(db)
	ctx := context.Background()
	item := seedItem(t, db, 5, 3)

	// Below zero
	err := repo.AdjustStock(ctx, item.ID, -4)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)

	// Above total
	err = repo.AdjustStock(ctx, item.ID, 3)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)

	// Failed adjustments leave the ledger untouched
	assert.Equal(t, 3, itemAvailable(t, db, item.ID))

	err = repo.AdjustStock(ctx, 9999, 1)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}
