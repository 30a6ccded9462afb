package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		StatusPending, StatusApproved, StatusRejected,
		StatusReturned, StatusCancelled, StatusOverdue,
	} {
		assert.True(t, ValidStatus(s), s)
	}

	assert.False(t, ValidStatus("Archived"))
	assert.False(t, ValidStatus("pending")) // statuses are case sensitive
	assert.False(t, ValidStatus(""))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusReturned, false},
		{StatusPending, StatusOverdue, false},

		{StatusApproved, StatusReturned, true},
		{StatusApproved, StatusCancelled, true},
		{StatusApproved, StatusRejected, true},
		{StatusApproved, StatusOverdue, true},
		{StatusApproved, StatusPending, false},

		{StatusOverdue, StatusReturned, true},
		{StatusOverdue, StatusCancelled, false},
		{StatusOverdue, StatusRejected, false},
		{StatusOverdue, StatusApproved, false},

		// Terminal statuses permit nothing
		{StatusReturned, StatusPending, false},
		{StatusReturned, StatusApproved, false},
		{StatusRejected, StatusPending, false},
		{StatusCancelled, StatusApproved, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusReturned))
	assert.True(t, IsTerminal(StatusRejected))
	assert.True(t, IsTerminal(StatusCancelled))

	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusApproved))
	assert.False(t, IsTerminal(StatusOverdue))
	assert.False(t, IsTerminal("Archived"))
}

func TestReserved(t *testing.T) {
	assert.True(t, Reserved(StatusApproved))
	assert.True(t, Reserved(StatusOverdue))

	assert.False(t, Reserved(StatusPending))
	assert.False(t, Reserved(StatusReturned))
	assert.False(t, Reserved(StatusRejected))
	assert.False(t, Reserved(StatusCancelled))
}

func TestItemQuantitiesValid(t *testing.T) {
	assert.True(t, (&Item{TotalQuantity: 10, AvailableQuantity: 10}).QuantitiesValid())
	assert.True(t, (&Item{TotalQuantity: 10, AvailableQuantity: 0}).QuantitiesValid())
	assert.True(t, (&Item{TotalQuantity: 0, AvailableQuantity: 0}).QuantitiesValid())

	assert.False(t, (&Item{TotalQuantity: 10, AvailableQuantity: 11}).QuantitiesValid())
	assert.False(t, (&Item{TotalQuantity: 10, AvailableQuantity: -1}).QuantitiesValid())
	assert.False(t, (&Item{TotalQuantity: -1, AvailableQuantity: -1}).QuantitiesValid())
}

func TestActorIsAdmin(t *testing.T) {
	assert.True(t, Actor{ID: 1, Role: RoleAdmin}.IsAdmin())
	assert.False(t, Actor{ID: 2, Role: RoleEmployee}.IsAdmin())
	assert.False(t, Actor{ID: 3, Role: "manager"}.IsAdmin())
}
