package repository

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
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, NewGormItemRepository(db).AutoMigrate())
	return db
}

func seedItem(t *testing.T, db *gorm.DB, total, available int) *domain.Item {
	t.Helper()

	item := &domain.Item{
		Name:              "Dell Latitude",
		Description:       "Loaner laptop",
		TotalQuantity:     total,
		AvailableQuantity: available,
	}
	require.NoError(t, NewGormItemRepository(db).Create(context.Background(), item))
	return item
}

func seedRequest(t *testing.T, db *gorm.DB, itemID uint, qty int, status string) *domain.BorrowRequest {
	t.Helper()

	request := &domain.BorrowRequest{
		UserID:            7,
		ItemID:            itemID,
		QuantityRequested: qty,
		Status:            status,
		RequestDate:       time.Now(),
	}
	require.NoError(t, NewGormBorrowRequestRepository(db).Create(context.Background(), request))
	return request
}

func itemAvailable(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()

	item, err := NewGormItemRepository(db).FindByID(context.Background(), id)
	require.NoError(t, err)
	return item.AvailableQuantity
}

func yesterday() *time.Time {
	d := time.Now().Add(-24 * time.Hour)
	return &d
}

func TestTransitionApproveReservesStock(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5, 5)
	request := seedRequest(t, db, item.ID, 3, domain.StatusPending)
	repo := NewGormBorrowRequestRepository(db)

	remarks := "approved for the week"
	updated, err := repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus: domain.StatusApproved,
		Actor:        domain.Actor{ID: 1, Role: domain.RoleAdmin},
		AdminRemarks: &remarks,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusApproved, updated.Status)
	require.NotNil(t, updated.AdminRemarks)
	assert.Equal(t, remarks, *updated.AdminRemarks)
	require.NotNil(t, updated.LastUpdatedByAdminID)
	assert.Equal(t, uint(1), *updated.LastUpdatedByAdminID)

	assert.Equal(t, 2, itemAvailable(t, db, item.ID))
}

func TestTransitionApproveInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5, 5)
	first := seedRequest(t, db, item.ID, 3, domain.StatusPending)
	second := seedRequest(t, db, item.ID, 3, domain.StatusPending)
	repo := NewGormBorrowRequestRepository(db)

	_, err := repo.Transition(context.Background(), first.ID, domain.TransitionInput{
		TargetStatus: domain.StatusApproved,
		Actor:        domain.Actor{ID: 1, Role: domain.RoleAdmin},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, itemAvailable(t, db, item.ID))

	// Second approval needs 3 but only 2 remain
	_, err = repo.Transition(context.Background(), second.ID, domain.TransitionInput{
		TargetStatus: domain.StatusApproved,
		Actor:        domain.Actor{ID: 1, Role: domain.RoleAdmin},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nothing moved: stock untouched, request still pending
	assert.Equal(t, 2, itemAvailable(t, db, item.ID))
	current, err := repo.FindByID(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, current.Status)
}

func TestTransitionReturnReleasesStock(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5, 5)
	request := seedRequest(t, db, item.ID, 3, domain.StatusPending)
	repo := NewGormBorrowRequestRepository(db)

	_, err := repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus: domain.StatusApproved,
		Actor:        domain.Actor{ID: 1, Role: domain.RoleAdmin},
	})
	require.NoError(t, err)

	updated, err := repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus:     domain.StatusReturned,
		Actor:            domain.Actor{ID: 1, Role: domain.RoleAdmin},
		ActualReturnDate: yesterday(),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusReturned, updated.Status)
	require.NotNil(t, updated.ActualReturnDate)
	assert.Equal(t, 5, itemAvailable(t, db, item.ID))
}

func TestTransitionReturnRequiresReturnDate(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5, 5)
	request := seedRequest(t, db, item.ID, 3, domain.StatusPending)
	repo := NewGormBorrowRequestRepository(db)

	_, err := repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus: domain.StatusApproved,
		Actor:        domain.Actor{ID: 1, Role: domain.RoleAdmin},
	})
	require.NoError(t, err)

	// Missing date
	_, err = repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus: domain.StatusReturned,
		Actor:        domain.Actor{ID: 1, Role: domain.RoleAdmin},
	})
	assert.ErrorIs(t, err, domain.ErrMissingReturnDate)

	// Future date
	future := time.Now().Add(48 * time.Hour)
	_, err = repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus:     domain.StatusReturned,
		Actor:            domain.Actor{ID: 1, Role: domain.RoleAdmin},
		ActualReturnDate: &future,
	})
	assert.ErrorIs(t, err, domain.ErrMissingReturnDate)

	// No stock released, status unchanged, reservation still outstanding
	assert.Equal(t, 2, itemAvailable(t, db, item.ID))
	current, err := repo.FindByID(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, current.Status)
}

func TestTransitionCancelFromPendingLeavesStockAlone(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5, 5)
	request := seedRequest(t, db, item.ID, 3, domain.StatusPending)
	repo := NewGormBorrowRequestRepository(db)

	updated, err := repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus: domain.StatusCancelled,
		Actor:        domain.Actor{ID: 7, Role: domain.RoleEmployee},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, updated.Status)
	assert.Equal(t, 5, itemAvailable(t, db, item.ID))
}

func TestTransitionCancelFromApprovedReleasesStock(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5, 5)
	request := seedRequest(t, db, item.ID, 3, domain.StatusPending)
	repo := NewGormBorrowRequestRepository(db)

	_, err := repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus: domain.StatusApproved,
		Actor:        domain.Actor{ID: 1, Role: domain.RoleAdmin},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, itemAvailable(t, db, item.ID))

	_, err = repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus: domain.StatusCancelled,
		Actor:        domain.Actor{ID: 1, Role: domain.RoleAdmin},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, itemAvailable(t, db, item.ID))
}

func TestTransitionRejectFromApprovedReleasesStock(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5, 5)
	request := seedRequest(t, db, item.ID, 2, domain.StatusPending)
	repo := NewGormBorrowRequestRepository(db)

	_, err := repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus: domain.StatusApproved,
		Actor:        domain.Actor{ID: 1, Role: domain.RoleAdmin},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, itemAvailable(t, db, item.ID))

	_, err = repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus: domain.StatusRejected,
		Actor:        domain.Actor{ID: 1, Role: domain.RoleAdmin},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, itemAvailable(t, db, item.ID))
}

func TestTransitionOverdueKeepsReservation(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5, 5)
	request := seedRequest(t, db, item.ID, 3, domain.StatusPending)
	repo := NewGormBorrowRequestRepository(db)

	_, err := repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus: domain.StatusApproved,
		Actor:        domain.Actor{ID: 1, Role: domain.RoleAdmin},
	})
	require.NoError(t, err)

	// Marking overdue does not touch the ledger
	_, err = repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus: domain.StatusOverdue,
		Actor:        domain.Actor{ID: 1, Role: domain.RoleAdmin},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, itemAvailable(t, db, item.ID))

	// Returning from overdue releases the reservation taken at approval
	_, err = repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus:     domain.StatusReturned,
		Actor:            domain.Actor{ID: 1, Role: domain.RoleAdmin},
		ActualReturnDate: yesterday(),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, itemAvailable(t, db, item.ID))
}

func TestTransitionNoOp(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5, 5)
	request := seedRequest(t, db, item.ID, 3, domain.StatusPending)
	repo := NewGormBorrowRequestRepository(db)

	_, err := repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus: domain.StatusPending,
		Actor:        domain.Actor{ID: 1, Role: domain.RoleAdmin},
	})
	assert.ErrorIs(t, err, domain.ErrNoOp)

	// Approving twice reports NoOp and does not double-reserve
	_, err = repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus: domain.StatusApproved,
		Actor:        domain.Actor{ID: 1, Role: domain.RoleAdmin},
	})
	require.NoError(t, err)

	_, err = repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus: domain.StatusApproved,
		Actor:        domain.Actor{ID: 1, Role: domain.RoleAdmin},
	})
	assert.ErrorIs(t, err, domain.ErrNoOp)
	assert.Equal(t, 2, itemAvailable(t, db, item.ID))
}

func TestTransitionIllegalFromTerminal(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5, 5)
	repo := NewGormBorrowRequestRepository(db)

	for _, terminal := range []string{domain.StatusReturned, domain.StatusRejected, domain.StatusCancelled} {
		request := seedRequest(t, db, item.ID, 1, terminal)

		_, err := repo.Transition(context.Background(), request.ID, domain.TransitionInput{
			TargetStatus: domain.StatusApproved,
			Actor:        domain.Actor{ID: 1, Role: domain.RoleAdmin},
		})
		assert.ErrorIs(t, err, domain.ErrIllegalTransition, terminal)
	}

	assert.Equal(t, 5, itemAvailable(t, db, item.ID))
}

func TestTransitionIllegalSkipsAhead(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5, 5)
	request := seedRequest(t, db, item.ID, 3, domain.StatusPending)
	repo := NewGormBorrowRequestRepository(db)

	// Pending cannot jump straight to Returned or Overdue
	_, err := repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus:     domain.StatusReturned,
		Actor:            domain.Actor{ID: 1, Role: domain.RoleAdmin},
		ActualReturnDate: yesterday(),
	})
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	_, err = repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus: domain.StatusOverdue,
		Actor:        domain.Actor{ID: 1, Role: domain.RoleAdmin},
	})
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
}

func TestTransitionEmployeeCancelsOwnPending(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5, 5)
	request := seedRequest(t, db, item.ID, 2, domain.StatusPending)
	repo := NewGormBorrowRequestRepository(db)

	updated, err := repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus: domain.StatusCancelled,
		Actor:        domain.Actor{ID: 7, Role: domain.RoleEmployee},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, updated.Status)
	assert.Nil(t, updated.LastUpdatedByAdminID)
	assert.Equal(t, 5, itemAvailable(t, db, item.ID))
}

func TestTransitionEmployeeCannotCancelAfterApproval(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5, 5)
	request := seedRequest(t, db, item.ID, 3, domain.StatusPending)
	repo := NewGormBorrowRequestRepository(db)

	// An admin approval lands first; the requester's cancel arrives
	// against the now-Approved row and must not undo the reservation,
	// no matter how stale the requester's view of the request was.
	_, err := repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus: domain.StatusApproved,
		Actor:        domain.Actor{ID: 1, Role: domain.RoleAdmin},
	})
	require.NoError(t, err)

	_, err = repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus: domain.StatusCancelled,
		Actor:        domain.Actor{ID: 7, Role: domain.RoleEmployee},
	})
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	current, err := repo.FindByID(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, current.Status)
	assert.Equal(t, 2, itemAvailable(t, db, item.ID))
}

func TestTransitionEmployeeRestrictions(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5, 5)
	repo := NewGormBorrowRequestRepository(db)
	employee := domain.Actor{ID: 7, Role: domain.RoleEmployee}

	t.Run("cannot approve", func(t *testing.T) {
		request := seedRequest(t, db, item.ID, 1, domain.StatusPending)
		_, err := repo.Transition(context.Background(), request.ID, domain.TransitionInput{
			TargetStatus: domain.StatusApproved,
			Actor:        employee,
		})
		assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	})

	t.Run("cannot cancel someone else's request", func(t *testing.T) {
		other := &domain.BorrowRequest{
			UserID:            42,
			ItemID:            item.ID,
			QuantityRequested: 1,
			Status:            domain.StatusPending,
			RequestDate:       time.Now(),
		}
		require.NoError(t, repo.Create(context.Background(), other))

		_, err := repo.Transition(context.Background(), other.ID, domain.TransitionInput{
			TargetStatus: domain.StatusCancelled,
			Actor:        employee,
		})
		assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	})

	assert.Equal(t, 5, itemAvailable(t, db, item.ID))
}

func TestTransitionReturnAcceptsTodaysDate(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5, 5)
	request := seedRequest(t, db, item.ID, 3, domain.StatusPending)
	repo := NewGormBorrowRequestRepository(db)

	_, err := repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus: domain.StatusApproved,
		Actor:        domain.Actor{ID: 1, Role: domain.RoleAdmin},
	})
	require.NoError(t, err)

	// A date-only value for today parses to midnight UTC; it must pass
	// the non-future check regardless of the server's timezone.
	y, m, d := time.Now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	updated, err := repo.Transition(context.Background(), request.ID, domain.TransitionInput{
		TargetStatus:     domain.StatusReturned,
		Actor:            domain.Actor{ID: 1, Role: domain.RoleAdmin},
		ActualReturnDate: &today,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReturned, updated.Status)
	assert.Equal(t, 5, itemAvailable(t, db, item.ID))
}

func TestTransitionRequestNotFound(t *testing.T) {
	db := newTestDB(t)
	seedItem(t, db, 5, 5)
	repo := NewGormBorrowRequestRepository(db)

	_, err := repo.Transition(context.Background(), 9999, domain.TransitionInput{
		TargetStatus: domain.StatusApproved,
		Actor:        domain.Actor{ID: 1, Role: domain.RoleAdmin},
	})
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}

func TestTransitionFullLifecycleRoundTrip(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 4, 4)
	repo := NewGormBorrowRequestRepository(db)

	// Two requests cycling through approval and return never drift the ledger
	for i := 0; i < 2; i++ {
		request := seedRequest(t, db, item.ID, 4, domain.StatusPending)

		_, err := repo.Transition(context.Background(), request.ID, domain.TransitionInput{
			TargetStatus: domain.StatusApproved,
			Actor:        domain.Actor{ID: 1, Role: domain.RoleAdmin},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, itemAvailable(t, db, item.ID))

		_, err = repo.Transition(context.Background(), request.ID, domain.TransitionInput{
			TargetStatus:     domain.StatusReturned,
			Actor:            domain.Actor{ID: 1, Role: domain.RoleAdmin},
			ActualReturnDate: yesterday(),
		})
		require.NoError(t, err)
		assert.Equal(t, 4, itemAvailable(t, db, item.ID))
	}
}

func TestFindByUserIDFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 10, 10)
	repo := NewGormBorrowRequestRepository(db)

	seedRequest(t, db, item.ID, 1, domain.StatusPending)
	seedRequest(t, db, item.ID, 1, domain.StatusCancelled)

	other := &domain.BorrowRequest{
		UserID:            99,
		ItemID:            item.ID,
		QuantityRequested: 1,
		Status:            domain.StatusPending,
		RequestDate:       time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), other))

	mine, err := repo.FindByUserID(context.Background(), 7, "", 10, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, r := range mine {
		assert.Equal(t, "Dell Latitude", r.ItemName)
	}

	pending, err := repo.FindByUserID(context.Background(), 7, domain.StatusPending, 10, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := repo.FindAll(context.Background(), domain.StatusPending, 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	detail, err := repo.FindDetailByID(context.Background(), mine[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Dell Latitude", detail.ItemName)

	_, err = repo.FindDetailByID(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}
