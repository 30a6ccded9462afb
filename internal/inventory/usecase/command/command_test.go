package command

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tansu/stockroom/internal/inventory/domain"
	"github.com/tansu/stockroom/internal/inventory/repository"
)

type testEnv struct {
	items    *repository.GormItemRepository
	requests *repository.GormBorrowRequestRepository
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	items := repository.NewGormItemRepository(db)
	require.NoError(t, items.AutoMigrate())

	return testEnv{
		items:    items,
		requests: repository.NewGormBorrowRequestRepository(db),
	}
}

func (e testEnv) seedItem(t *testing.T, total, available int) *domain.Item {
	t.Helper()

	item := &domain.Item{
		Name:              "HDMI projector",
		TotalQuantity:     total,
		AvailableQuantity: available,
	}
	require.NoError(t, e.items.Create(context.Background(), item))
	return item
}

func (e testEnv) seedRequest(t *testing.T, userID, itemID uint, qty int, status string) *domain.BorrowRequest {
	t.Helper()

	request := &domain.BorrowRequest{
		UserID:            userID,
		ItemID:            itemID,
		QuantityRequested: qty,
		Status:            status,
		RequestDate:       time.Now(),
	}
	require.NoError(t, e.requests.Create(context.Background(), request))
	return request
}
