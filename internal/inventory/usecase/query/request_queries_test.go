package query

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tansu/stockroom/internal/inventory/domain"
	"github.com/tansu/stockroom/internal/inventory/repository"
)

func newTestRequests(t *testing.T) *repository.GormBorrowRequestRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repository.NewGormItemRepository(db).AutoMigrate())

	item := &domain.Item{Name: "Label printer", TotalQuantity: 5, AvailableQuantity: 5}
	require.NoError(t, repository.NewGormItemRepository(db).Create(context.Background(), item))

	repo := repository.NewGormBorrowRequestRepository(db)
	for _, r := range []domain.BorrowRequest{
		{UserID: 7, ItemID: item.ID, QuantityRequested: 1, Status: domain.StatusPending, RequestDate: time.Now()},
		{UserID: 7, ItemID: item.ID, QuantityRequested: 2, Status: domain.StatusApproved, RequestDate: time.Now()},
		{UserID: 9, ItemID: item.ID, QuantityRequested: 1, Status: domain.StatusPending, RequestDate: time.Now()},
	} {
		request := r
		require.NoError(t, repo.Create(context.Background(), &request))
	}
	return repo
}

func TestListRequestsScoping(t *testing.T) {
	repo := newTestRequests(t)
	handler := NewListRequestsHandler(repo)

	all, err := handler.Handle(context.Background(), ListRequestsQuery{
		Actor: domain.Actor{ID: 1, Role: domain.RoleAdmin},
	})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := handler.Handle(context.Background(), ListRequestsQuery{
		Actor: domain.Actor{ID: 7, Role: domain.RoleEmployee},
	})
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, r := range mine {
		assert.Equal(t, uint(7), r.UserID)
		assert.Equal(t, "Label printer", r.ItemName)
	}

	pending, err := handler.Handle(context.Background(), ListRequestsQuery{
		Actor:  domain.Actor{ID: 1, Role: domain.RoleAdmin},
		Status: domain.StatusPending,
	})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	_, err = handler.Handle(context.Background(), ListRequestsQuery{
		Actor:  domain.Actor{ID: 1, Role: domain.RoleAdmin},
		Status: "pending",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestGetRequestScoping(t *testing.T) {
	repo := newTestRequests(t)
	handler := NewGetRequestHandler(repo)

	request, err := handler.Handle(context.Background(), GetRequestQuery{
		RequestID: 1,
		Actor:     domain.Actor{ID: 7, Role: domain.RoleEmployee},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), request.UserID)
	assert.Equal(t, "Label printer", request.ItemName)

	// Both a missing request and someone else's request read the same
	// to an employee.
	_, err = handler.Handle(context.Background(), GetRequestQuery{
		RequestID: 3,
		Actor:     domain.Actor{ID: 7, Role: domain.RoleEmployee},
	})
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)

	_, err = handler.Handle(context.Background(), GetRequestQuery{
		RequestID: 9999,
		Actor:     domain.Actor{ID: 1, Role: domain.RoleAdmin},
	})
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)

	request, err = handler.Handle(context.Background(), GetRequestQuery{
		RequestID: 3,
		Actor:     domain.Actor{ID: 1, Role: domain.RoleAdmin},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(9), request.UserID)
}
