package order

import (
	"QR-Ordering-Backend/domain"
	"QR-Ordering-Backend/entities"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from entities.OrderStatus
		to   entities.OrderStatus
		want bool
	}{
		{"pendingToPreparing", entities.OrderPending, entities.OrderPreparing, true},
		{"preparingToReady", entities.OrderPreparing, entities.OrderReady, true},
		{"readyToServed", entities.OrderReady, entities.OrderServed, true},
		{"servedToCompleted", entities.OrderServed, entities.OrderCompleted, true},
		{"pendingToCancelled", entities.OrderPending, entities.OrderCancelled, true},
		{"preparingToCancelled", entities.OrderPreparing, entities.OrderCancelled, true},
		{"readyToCancelled", entities.OrderReady, entities.OrderCancelled, true},
		{"servedToCancelled", entities.OrderServed, entities.OrderCancelled, false},
		{"completedToCancelled", entities.OrderCompleted, entities.OrderCancelled, false},
		{"cancelledToPending", entities.OrderCancelled, entities.OrderPending, false},
		{"readyToPreparing", entities.OrderReady, entities.OrderPreparing, false},
		{"pendingToReady", entities.OrderPending, entities.OrderReady, false},
		{"preparingToPreparing", entities.OrderPreparing, entities.OrderPreparing, false},
		{"unknownTarget", entities.OrderPending, entities.OrderStatus("LOST"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestStatusNeverRegresses(t *testing.T) {
	all := []entities.OrderStatus{
		entities.OrderPending, entities.OrderPreparing, entities.OrderReady,
		entities.OrderServed, entities.OrderCompleted, entities.OrderCancelled,
	}
	for _, from := range all {
		for _, to := range all {
			if !CanTransition(from, to) {
				continue
			}
			assert.False(t, from.IsTerminal(), "%s is terminal but moved to %s", from, to)
			if to != entities.OrderCancelled {
				assert.Greater(t, statusRank[to], statusRank[from], "%s -> %s regresses", from, to)
			}
		}
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name        string
		current     entities.OrderStatus
		action      Action
		wantStatus  entities.OrderStatus
		wantNotices []Notice
		wantErr     error
	}{
		{
			name:        "acceptReleasesToKitchen",
			current:     entities.OrderPending,
			action:      ActionAccept,
			wantStatus:  entities.OrderPreparing,
			wantNotices: []Notice{NoticeKitchenRelease, NoticeStatusUpdated},
		},
		{
			name:        "readyAnnouncesToCustomerAndWaiter",
			current:     entities.OrderPreparing,
			action:      ActionReady,
			wantStatus:  entities.OrderReady,
			wantNotices: []Notice{NoticeStatusUpdated, NoticeOrderReady},
		},
		{
			name:        "serve",
			current:     entities.OrderReady,
			action:      ActionServe,
			wantStatus:  entities.OrderServed,
			wantNotices: []Notice{NoticeStatusUpdated},
		},
		{
			name:        "cancelPending",
			current:     entities.OrderPending,
			action:      ActionCancel,
			wantStatus:  entities.OrderCancelled,
			wantNotices: []Notice{NoticeStatusUpdated},
		},
		{
			name:    "acceptTwice",
			current: entities.OrderPreparing,
			action:  ActionAccept,
			wantErr: domain.ErrInvalidTransition,
		},
		{
			name:    "completeCancelled",
			current: entities.OrderCancelled,
			action:  ActionComplete,
			wantErr: domain.ErrOrderClosed,
		},
		{
			name:    "cancelCompleted",
			current: entities.OrderCompleted,
			action:  ActionCancel,
			wantErr: domain.ErrInvalidTransition,
		},
		{
			name:    "unknownAction",
			current: entities.OrderPending,
			action:  Action("reheat"),
			wantErr: domain.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := Apply(tt.current, tt.action)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, outcome.Status)
			assert.Equal(t, tt.wantNotices, outcome.Notices)
		})
	}
}

func TestActionFor(t *testing.T) {
	action, err := ActionFor(entities.OrderServed)
	require.NoError(t, err)
	assert.Equal(t, ActionServe, action)

	_, err = ActionFor(entities.OrderPending)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
