package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tansu/stockroom/internal/inventory/domain"
)

type GormBorrowRequestRepository struct {
	db *gorm.DB
}

func NewGormBorrowRequestRepository(db *gorm.DB) *GormBorrowRequestRepository {
	return &GormBorrowRequestRepository{db: db}
}

func (r *GormBorrowRequestRepository) Create(ctx context.Context, request *domain.BorrowRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return domain.NewStorageError("create borrow request", err)
	}
	return nil
}

func (r *GormBorrowRequestRepository) FindByID(ctx context.Context, id uint) (*domain.BorrowRequest, error) {
	var request domain.BorrowRequest
	if err := r.db.WithContext(ctx).First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, domain.NewStorageError("find borrow request", err)
	}
	return &request, nil
}

// detailQuery joins the item into the request row so listings carry
// the item name and image without a second lookup per request.
func (r *GormBorrowRequestRepository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&domain.BorrowRequest{}).
		Select("borrow_requests.*, items.name AS item_name, items.image_url AS item_image_url").
		Joins("JOIN items ON items.id = borrow_requests.item_id")
}

func (r *GormBorrowRequestRepository) FindDetailByID(ctx context.Context, id uint) (*domain.BorrowRequestDetail, error) {
	var detail domain.BorrowRequestDetail
	result := r.detailQuery(ctx).
		Where("borrow_requests.id = ?", id).
		Limit(1).
		Scan(&detail)
	if result.Error != nil {
		return nil, domain.NewStorageError("find borrow request detail", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrRequestNotFound
	}
	return &detail, nil
}

func (r *GormBorrowRequestRepository) FindAll(ctx context.Context, status string, limit, offset int) ([]domain.BorrowRequestDetail, error) {
	var requests []domain.BorrowRequestDetail
	query := r.detailQuery(ctx).Order("borrow_requests.request_date DESC")
	if status != "" {
		query = query.Where("borrow_requests.status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Scan(&requests).Error; err != nil {
		return nil, domain.NewStorageError("list borrow requests", err)
	}
	return requests, nil
}

func (r *GormBorrowRequestRepository) FindByUserID(ctx context.Context, userID uint, status string, limit, offset int) ([]domain.BorrowRequestDetail, error) {
	var requests []domain.BorrowRequestDetail
	query := r.detailQuery(ctx).
		Where("borrow_requests.user_id = ?", userID).
		Order("borrow_requests.request_date DESC")
	if status != "" {
		query = query.Where("borrow_requests.status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Scan(&requests).Error; err != nil {
		return nil, domain.NewStorageError("list borrow requests by user", err)
	}
	return requests, nil
}

func (r *GormBorrowRequestRepository) CountByItemID(ctx context.Context, itemID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.BorrowRequest{}).
		Where("item_id = ?", itemID).
		Count(&count).Error; err != nil {
		return 0, domain.NewStorageError("count borrow requests", err)
	}
	return count, nil
}

// Transition moves a request to a new status and applies the matching
// stock reservation or release, all inside one transaction. The request
// row is locked first, then the item row when a ledger call is needed, so
// two concurrent transitions touching the same item serialize. Any
// failure rolls the whole step back: no status change, no partial stock
// adjustment.
func (r *GormBorrowRequestRepository) Transition(ctx context.Context, id uint, in domain.TransitionInput) (*domain.BorrowRequest, error) {
	var request domain.BorrowRequest

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&request, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRequestNotFound
			}
			return domain.NewStorageError("lock borrow request", err)
		}

		if request.Status == in.TargetStatus {
			return domain.ErrNoOp
		}

		// Employees may only cancel their own request while it is
		// still pending. Checked under the row lock: an approval that
		// committed a moment earlier is visible here, so the requester
		// cannot undo an admin-granted reservation.
		if !in.Actor.IsAdmin() {
			if in.TargetStatus != domain.StatusCancelled ||
				request.UserID != in.Actor.ID ||
				request.Status != domain.StatusPending {
				return domain.ErrIllegalTransition
			}
		}

		if !domain.CanTransition(request.Status, in.TargetStatus) {
			return domain.ErrIllegalTransition
		}

		switch in.TargetStatus {
		case domain.StatusApproved:
			// Reserve: the one deduction this request will ever hold.
			if err := adjustStockLocked(tx, request.ItemID, -request.QuantityRequested); err != nil {
				if errors.Is(err, domain.ErrConstraintViolation) {
					return domain.ErrInsufficientStock
				}
				return err
			}

		case domain.StatusReturned:
			if in.ActualReturnDate == nil || calendarDate(*in.ActualReturnDate).After(calendarDate(time.Now())) {
				return domain.ErrMissingReturnDate
			}
			if domain.Reserved(request.Status) {
				if err := adjustStockLocked(tx, request.ItemID, request.QuantityRequested); err != nil {
					return err
				}
			}
			request.ActualReturnDate = in.ActualReturnDate

		case domain.StatusCancelled, domain.StatusRejected:
			// Release only when a reservation is outstanding; from
			// Pending nothing was reserved.
			if request.Status == domain.StatusApproved {
				if err := adjustStockLocked(tx, request.ItemID, request.QuantityRequested); err != nil {
					return err
				}
			}
		}

		request.Status = in.TargetStatus
		if in.AdminRemarks != nil {
			request.AdminRemarks = in.AdminRemarks
		}
		if in.Actor.IsAdmin() {
			actorID := in.Actor.ID
			request.LastUpdatedByAdminID = &actorID
		}

		if err := tx.Save(&request).Error; err != nil {
			return domain.NewStorageError("update borrow request", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// calendarDate normalizes a timestamp to its calendar date. Return
// dates arrive date-only over the wire; comparing dates keeps the
// "not in the future" rule stable across timezones.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
