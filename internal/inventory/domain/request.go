package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Request statuses
const (
	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
	StatusReturned  = "Returned"
	StatusCancelled = "Cancelled"
	StatusOverdue   = "Overdue"
)

// BorrowRequest represents an employee's request to borrow units of an item.
// Exactly one stock reservation is outstanding per request at any time: the
// quantity is deducted from the item once on entering Approved and restored
// once on leaving Approved (or Overdue) into a terminal status.
type BorrowRequest struct {
	ID                   uint           `json:"id" gorm:"primaryKey"`
	UserID               uint           `json:"user_id" gorm:"not null;index"`
	ItemID               uint           `json:"item_id" gorm:"not null;index"`
	QuantityRequested    int            `json:"quantity_requested" gorm:"not null"`
	Status               string         `json:"status" gorm:"not null;default:'Pending';index"`
	RequestDate          time.Time      `json:"request_date" gorm:"not null"`
	ExpectedReturnDate   *time.Time     `json:"expected_return_date"`
	ActualReturnDate     *time.Time     `json:"actual_return_date"`
	AdminRemarks         *string        `json:"admin_remarks"`
	LastUpdatedByAdminID *uint          `json:"last_updated_by_admin_id"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (BorrowRequest) TableName() string {
	return "borrow_requests"
}

// transitions is the request status graph. Returned, Rejected and
// Cancelled are terminal.
var transitions = map[string][]string{
	StatusPending:   {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:  {StatusReturned, StatusCancelled, StatusRejected, StatusOverdue},
	StatusOverdue:   {StatusReturned},
	StatusReturned:  {},
	StatusRejected:  {},
	StatusCancelled: {},
}

// ValidStatus reports whether s is one of the six recognized statuses.
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal reports whether a status permits no further transitions.
func IsTerminal(s string) bool {
	targets, ok := transitions[s]
	return ok && len(targets) == 0
}

// CanTransition reports whether the status graph permits from -> to.
func CanTransition(from, to string) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Reserved reports whether a request in the given status holds a stock
// reservation. Overdue requests keep the reservation taken at approval.
func Reserved(status string) bool {
	return status == StatusApproved || status == StatusOverdue
}

// TransitionInput carries the mutable fields of a status transition.
// The acting user travels with the input so authorization is enforced
// inside the same transaction that locks the request row.
type TransitionInput struct {
	TargetStatus     string
	Actor            Actor
	AdminRemarks     *string
	ActualReturnDate *time.Time
}

// BorrowRequestDetail is the read model for request listings: the
// request row joined with the item it references. Requester and admin
// display names live in the user service; clients compose them from
// the user ids carried on the request.
type BorrowRequestDetail struct {
	BorrowRequest
	ItemName     string `json:"item_name"`
	ItemImageURL string `json:"item_image_url"`
}

// BorrowRequestRepository defines the contract for borrow request data
// access. Transition executes the whole lifecycle step in one transaction:
// authorization, status change, remarks and stock adjustment commit
// together or not at all. The Find* listings return the joined read
// model; FindByID returns the bare row for lifecycle checks.
type BorrowRequestRepository interface {
	Create(ctx context.Context, request *BorrowRequest) error
	FindByID(ctx context.Context, id uint) (*BorrowRequest, error)
	FindDetailByID(ctx context.Context, id uint) (*BorrowRequestDetail, error)
	FindAll(ctx context.Context, status string, limit, offset int) ([]BorrowRequestDetail, error)
	FindByUserID(ctx context.Context, userID uint, status string, limit, offset int) ([]BorrowRequestDetail, error)
	CountByItemID(ctx context.Context, itemID uint) (int64, error)
	Transition(ctx context.Context, id uint, in TransitionInput) (*BorrowRequest, error)
}
