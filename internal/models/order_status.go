// internal/models/order_status.go
package models

// blockedTransitions lists the backward moves the workflow refuses.
// Anything not listed here is allowed, including staying in the same
// state and skipping forward (DRAFT -> DELIVERED).
var blockedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusDraft, OrderStatusDelivered},
	OrderStatusSent:      {OrderStatusPending, OrderStatusDraft},
	OrderStatusDelivered: {OrderStatusSent, OrderStatusDraft},
}

// CanTransitionTo reports whether an order in status s may move to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !next.IsValid() {
		return false
	}
	for _, blocked := range blockedTransitions[s] {
		if blocked == next {
			return false
		}
	}
	return true
}
