package order

import (
	"QR-Ordering-Backend/domain"
	"QR-Ordering-Backend/entities"
	"fmt"
)

type Action string

const (
	ActionAccept   Action = "accept"
	ActionReady    Action = "ready"
	ActionServe    Action = "serve"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// Notice names a broadcast a transition must raise once it is persisted.
type Notice int

const (
	NoticeKitchenRelease Notice = iota
	NoticeStatusUpdated
	NoticeOrderReady
)

type Outcome struct {
	Status  entities.OrderStatus
	Notices []Notice
}

var (
	actionTargets = map[Action]entities.OrderStatus{
		ActionAccept:   entities.OrderPreparing,
		ActionReady:    entities.OrderReady,
		ActionServe:    entities.OrderServed,
		ActionComplete: entities.OrderCompleted,
		ActionCancel:   entities.OrderCancelled,
	}

	statusRank = map[entities.OrderStatus]int{
		entities.OrderPending:   0,
		entities.OrderPreparing: 1,
		entities.OrderReady:     2,
		entities.OrderServed:    3,
		entities.OrderCompleted: 4,
	}
)

// CanTransition reports whether an order may move from one status to
// another. Orders advance one step at a time; cancellation is allowed
// until the order has been served.
func CanTransition(from, to entities.OrderStatus) bool {
	if from.IsTerminal() {
		return false
	}
	if to == entities.OrderCancelled {
		return from == entities.OrderPending || from == entities.OrderPreparing || from == entities.OrderReady
	}
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank == fromRank+1
}

// Apply resolves an action against the current status.
func Apply(current entities.OrderStatus, action Action) (Outcome, error) {
	target, ok := actionTargets[action]
	if !ok {
		return Outcome{}, fmt.Errorf("unknown order action %q: %w", action, domain.ErrInvalidTransition)
	}
	if current.IsTerminal() {
		return Outcome{}, fmt.Errorf("order is %s: %w", current, domain.ErrOrderClosed)
	}
	if !CanTransition(current, target) {
		return Outcome{}, fmt.Errorf("cannot move order from %s to %s: %w", current, target, domain.ErrInvalidTransition)
	}

	outcome := Outcome{Status: target}
	if action == ActionAccept {
		outcome.Notices = append(outcome.Notices, NoticeKitchenRelease)
	}
	outcome.Notices = append(outcome.Notices, NoticeStatusUpdated)
	if action == ActionReady {
		outcome.Notices = append(outcome.Notices, NoticeOrderReady)
	}
	return outcome, nil
}

// ActionFor maps a requested status to the action that produces it.
func ActionFor(target entities.OrderStatus) (Action, error) {
	for action, status := range actionTargets {
		if status == target {
			return action, nil
		}
	}
	return "", fmt.Errorf("%s: %w", target, domain.ErrUnknownOrderStatus)
}
