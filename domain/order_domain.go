package domain

import (
	"fmt"
	"time"
)

var (
	MessageSuccessCreateOrder     = "order created successfully"
	MessageSuccessGetOrder        = "order retrieved successfully"
	MessageSuccessGetOrders       = "orders retrieved successfully"
	MessageSuccessAcceptOrder     = "order accepted successfully"
	MessageSuccessMarkItemReady   = "order item marked ready"
	MessageSuccessMarkOrderReady  = "order marked ready"
	MessageSuccessUpdateOrder     = "order status updated successfully"
	MessageSuccessCancelOrder     = "order cancelled successfully"
	MessageSuccessGetKitchenQueue = "kitchen queue retrieved successfully"

	MessageFailedCreateOrder     = "failed to create order"
	MessageFailedGetOrder        = "failed to retrieve order"
	MessageFailedGetOrders       = "failed to retrieve orders"
	MessageFailedAcceptOrder     = "failed to accept order"
	MessageFailedMarkItemReady   = "failed to mark order item ready"
	MessageFailedMarkOrderReady  = "failed to mark order ready"
	MessageFailedUpdateOrder     = "failed to update order status"
	MessageFailedCancelOrder     = "failed to cancel order"
	MessageFailedGetKitchenQueue = "failed to retrieve kitchen queue"

	ErrOrderNotFound           = fmt.Errorf("order %w", ErrNotFound)
	ErrOrderItemNotFound       = fmt.Errorf("order item %w", ErrNotFound)
	ErrMenuItemNotFound        = fmt.Errorf("menu item %w", ErrNotFound)
	ErrEmptyCart               = fmt.Errorf("order must contain at least one item: %w", ErrBadRequest)
	ErrMenuItemUnavailable     = fmt.Errorf("menu item is not available: %w", ErrBadRequest)
	ErrModifierUnavailable     = fmt.Errorf("modifier option is not available: %w", ErrBadRequest)
	ErrModifierNotAllowed      = fmt.Errorf("modifier option does not belong to the menu item: %w", ErrBadRequest)
	ErrModifierRequired        = fmt.Errorf("required modifier group has no selection: %w", ErrBadRequest)
	ErrModifierLimitExceeded   = fmt.Errorf("too many options selected for modifier group: %w", ErrBadRequest)
	ErrOrderStatusChanged      = fmt.Errorf("order status changed concurrently: %w", ErrConflict)
	ErrOrderNotAccepted        = fmt.Errorf("order has not been accepted: %w", ErrInvalidTransition)
	ErrOrderClosed             = fmt.Errorf("order is already closed: %w", ErrInvalidTransition)
	ErrUnknownOrderStatus      = fmt.Errorf("unknown order status: %w", ErrInvalidTransition)
	ErrOrderNotForThisTable    = fmt.Errorf("order belongs to another table: %w", ErrForbidden)
	ErrDuplicateModifierOption = fmt.Errorf("modifier option selected twice: %w", ErrBadRequest)
)

type (
	CreateOrderItemRequest struct {
		MenuItemID        string   `json:"menu_item_id" validate:"required,uuid"`
		Quantity          int      `json:"quantity" validate:"required,min=1,max=99"`
		ModifierOptionIDs []string `json:"modifier_option_ids" validate:"omitempty,dive,uuid"`
		SpecialRequest    string   `json:"special_request" validate:"max=500"`
	}

	CreateOrderRequest struct {
		Items []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
		Notes string                   `json:"notes" validate:"max=1000"`
	}

	UpdateOrderStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=PENDING PREPARING READY SERVED COMPLETED CANCELLED"`
		Reason string `json:"reason" validate:"max=255"`
	}

	CancelOrderRequest struct {
		Reason string `json:"reason" validate:"max=255"`
	}

	OrderFilter struct {
		Status  string
		TableID string
		Page    int
		Limit   int
	}

	OrderItemModifierResponse struct {
		ID               string `json:"id"`
		ModifierOptionID string `json:"modifier_option_id"`
		Name             string `json:"name"`
		PriceDelta       int64  `json:"price_delta"`
	}

	OrderItemResponse struct {
		ID             string                      `json:"id"`
		MenuItemID     string                      `json:"menu_item_id"`
		Name           string                      `json:"name"`
		Quantity       int                         `json:"quantity"`
		UnitPrice      int64                       `json:"unit_price"`
		LineTotal      int64                       `json:"line_total"`
		Status         string                      `json:"status"`
		PreparedAt     *time.Time                  `json:"prepared_at,omitempty"`
		SpecialRequest string                      `json:"special_request,omitempty"`
		Modifiers      []OrderItemModifierResponse `json:"modifiers"`
	}

	OrderResponse struct {
		ID           string              `json:"id"`
		TableID      string              `json:"table_id"`
		TableNumber  string              `json:"table_number,omitempty"`
		Status       string              `json:"status"`
		Subtotal     int64               `json:"subtotal"`
		TaxAmount    int64               `json:"tax_amount"`
		TotalAmount  int64               `json:"total_amount"`
		Notes        string              `json:"notes,omitempty"`
		CancelReason string              `json:"cancel_reason,omitempty"`
		Items        []OrderItemResponse `json:"items"`
		CreatedAt    time.Time           `json:"created_at"`
		UpdatedAt    time.Time           `json:"updated_at"`
	}
)
