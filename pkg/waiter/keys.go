package waiter

import "fmt"

// WaiterCallKey marks a table that has called a waiter within the cooldown.
func WaiterCallKey(tableID string) string {
	return fmt.Sprintf("qr_ordering:waiter_call:%s", tableID)
}
