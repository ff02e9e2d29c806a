package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name     string
		from     Status
		to       Status
		expected bool
	}{
		{"pending_to_preparing", StatusPending, StatusPreparing, true},
		{"preparing_to_ready", StatusPreparing, StatusReady, true},
		{"ready_to_completed", StatusReady, StatusCompleted, true},
		{"skip_pending_to_ready", StatusPending, StatusReady, false},
		{"skip_pending_to_completed", StatusPending, StatusCompleted, false},
		{"backward_ready_to_preparing", StatusReady, StatusPreparing, false},
		{"backward_completed_to_pending", StatusCompleted, StatusPending, false},
		{"same_status", StatusPreparing, StatusPreparing, false},
		{"completed_is_terminal", StatusCompleted, StatusCompleted, false},
		{"unknown_target", StatusPending, Status("cancelled"), false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, CanTransition(testCase.from, testCase.to))
		})
	}
}

func TestStatus_Next(t *testing.T) {
	next, ok := StatusPending.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusPreparing, next)

	_, ok = StatusCompleted.Next()
	assert.False(t, ok)
}

func TestStatus_Predicates(t *testing.T) {
	assert.True(t, StatusReady.IsActive())
	assert.False(t, StatusCompleted.IsActive())

	assert.True(t, StatusPending.AcceptsGuestMessage())
	assert.True(t, StatusPreparing.AcceptsGuestMessage())
	assert.False(t, StatusReady.AcceptsGuestMessage())
	assert.False(t, StatusCompleted.AcceptsGuestMessage())

	assert.False(t, Status("").Valid())
	assert.Equal(t, []string{"pending", "preparing", "ready"}, StatusStrings(ActiveStatuses))
}
