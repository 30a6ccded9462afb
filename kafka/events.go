package kafka

import "time"

// BorrowRequestedEvent is published when an employee files a new
// borrow request.
type BorrowRequestedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	RequestID uint      `json:"request_id"`
	ItemID    uint      `json:"item_id"`
	UserID    uint      `json:"user_id"`
	Quantity  int32     `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// BorrowTransitionedEvent is published after a request status
// transition commits.
type BorrowTransitionedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	RequestID uint      `json:"request_id"`
	ItemID    uint      `json:"item_id"`
	UserID    uint      `json:"user_id"`
	Quantity  int32     `json:"quantity"`
	NewStatus string    `json:"new_status"`
	ActorID   uint      `json:"actor_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeBorrowRequested    = "borrow.requested"
	EventTypeBorrowTransitioned = "borrow.transitioned"
)

// Kafka topics
const (
	TopicBorrowLifecycle = "borrow-lifecycle"
)
