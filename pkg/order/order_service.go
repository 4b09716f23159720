package order

import (
	"QR-Ordering-Backend/domain"
	"QR-Ordering-Backend/entities"
	"QR-Ordering-Backend/pkg/menu"
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type (
	OrderService interface {
		CreateOrder(ctx context.Context, tableID string, req domain.CreateOrderRequest) (*domain.OrderResponse, error)
		GetOrder(ctx context.Context, orderID string) (*domain.OrderResponse, error)
		GetOrderForTable(ctx context.Context, orderID, tableID string) (*domain.OrderResponse, error)
		GetOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.OrderResponse, int64, error)
		GetKitchenOrders(ctx context.Context) ([]*domain.OrderResponse, error)
		AcceptOrder(ctx context.Context, orderID string) (*domain.OrderResponse, error)
		MarkItemReady(ctx context.Context, orderID, itemID string) (*domain.OrderItemResponse, error)
		MarkOrderReady(ctx context.Context, orderID string) (*domain.OrderResponse, error)
		MarkServed(ctx context.Context, orderID string) (*domain.OrderResponse, error)
		CompleteOrder(ctx context.Context, orderID string) (*domain.OrderResponse, error)
		CancelOrder(ctx context.Context, orderID, reason string) (*domain.OrderResponse, error)
		UpdateStatus(ctx context.Context, orderID string, req domain.UpdateOrderStatusRequest) (*domain.OrderResponse, error)
	}

	// Notifier receives order changes after they are persisted.
	Notifier interface {
		OrderCreated(order *domain.OrderResponse)
		OrderAccepted(order *domain.OrderResponse)
		OrderStatusUpdated(order *domain.OrderResponse)
		OrderReady(order *domain.OrderResponse)
		OrderItemStatusUpdated(orderID, itemID, status string)
	}

	// PaymentLedger reports how much has been paid against an order.
	PaymentLedger interface {
		SumPaid(ctx context.Context, orderID uuid.UUID) (int64, error)
	}

	orderService struct {
		orderRepository OrderRepository
		menuRepository  menu.MenuRepository
		paymentLedger   PaymentLedger
		notifier        Notifier
		taxRateBps      int64
		now             func() time.Time
	}
)

func NewOrderService(
	orderRepository OrderRepository,
	menuRepository menu.MenuRepository,
	paymentLedger PaymentLedger,
	notifier Notifier,
	taxRateBps int64,
) OrderService {
	return &orderService{
		orderRepository: orderRepository,
		menuRepository:  menuRepository,
		paymentLedger:   paymentLedger,
		notifier:        notifier,
		taxRateBps:      taxRateBps,
		now:             time.Now,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, tableID string, req domain.CreateOrderRequest) (resp *domain.OrderResponse, err error) {
	defer func() { recordOperation("create", err) }()

	tableUUID, err := uuid.Parse(tableID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	if len(req.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	menuIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, line := range req.Items {
		id, err := uuid.Parse(line.MenuItemID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		menuIDs = append(menuIDs, id)
	}
	menuItems, err := s.menuRepository.GetMenuItemsByIDs(ctx, menuIDs)
	if err != nil {
		return nil, err
	}
	catalogue := make(map[uuid.UUID]*entities.MenuItem, len(menuItems))
	for _, item := range menuItems {
		catalogue[item.ID] = item
	}

	order := &entities.Order{
		ID:      uuid.New(),
		TableID: tableUUID,
		Status:  entities.OrderPending,
		Notes:   req.Notes,
	}
	for i, line := range req.Items {
		menuItem, ok := catalogue[menuIDs[i]]
		if !ok {
			return nil, fmt.Errorf("%s: %w", line.MenuItemID, domain.ErrMenuItemNotFound)
		}
		if !menuItem.IsAvailable {
			return nil, fmt.Errorf("%s: %w", menuItem.Name, domain.ErrMenuItemUnavailable)
		}
		modifiers, err := resolveModifiers(menuItem, line.ModifierOptionIDs)
		if err != nil {
			return nil, err
		}

		unitPrice := menuItem.Price
		for _, m := range modifiers {
			unitPrice += m.PriceDelta
		}
		lineTotal := unitPrice * int64(line.Quantity)
		order.Subtotal += lineTotal

		order.Items = append(order.Items, &entities.OrderItem{
			ID:             uuid.New(),
			OrderID:        order.ID,
			MenuItemID:     menuItem.ID,
			Name:           menuItem.Name,
			UnitPrice:      unitPrice,
			Quantity:       line.Quantity,
			LineTotal:      lineTotal,
			Status:         entities.OrderItemPending,
			SpecialRequest: line.SpecialRequest,
			Position:       i,
			Modifiers:      modifiers,
		})
	}
	order.TaxAmount = taxFor(order.Subtotal, s.taxRateBps)
	order.TotalAmount = order.Subtotal + order.TaxAmount

	if err := s.orderRepository.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	stored, err := s.orderRepository.GetOrderByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	resp = toOrderResponse(stored)
	s.notifier.OrderCreated(resp)
	log.Infow("order created", "order_id", resp.ID, "table_id", resp.TableID, "total", resp.TotalAmount)
	return resp, nil
}

// resolveModifiers checks the selected options against the item's own
// modifier groups and snapshots name and price onto the order line.
func resolveModifiers(item *entities.MenuItem, optionIDs []string) ([]*entities.OrderItemModifier, error) {
	type choice struct {
		option *entities.ModifierOption
		group  *entities.ModifierGroup
	}
	allowed := make(map[uuid.UUID]choice)
	for _, group := range item.ModifierGroups {
		for _, option := range group.Options {
			allowed[option.ID] = choice{option: option, group: group}
		}
	}

	seen := make(map[uuid.UUID]bool, len(optionIDs))
	perGroup := make(map[uuid.UUID]int)
	modifiers := make([]*entities.OrderItemModifier, 0, len(optionIDs))
	for _, raw := range optionIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		if seen[id] {
			return nil, fmt.Errorf("%s: %w", raw, domain.ErrDuplicateModifierOption)
		}
		seen[id] = true

		c, ok := allowed[id]
		if !ok {
			return nil, fmt.Errorf("%s on %s: %w", raw, item.Name, domain.ErrModifierNotAllowed)
		}
		if !c.option.IsAvailable {
			return nil, fmt.Errorf("%s: %w", c.option.Name, domain.ErrModifierUnavailable)
		}
		perGroup[c.group.ID]++
		if c.group.MaxSelect > 0 && perGroup[c.group.ID] > c.group.MaxSelect {
			return nil, fmt.Errorf("%s: %w", c.group.Name, domain.ErrModifierLimitExceeded)
		}
		modifiers = append(modifiers, &entities.OrderItemModifier{
			ModifierOptionID: c.option.ID,
			Name:             c.option.Name,
			PriceDelta:       c.option.PriceDelta,
		})
	}

	for _, group := range item.ModifierGroups {
		if group.IsRequired && perGroup[group.ID] == 0 {
			return nil, fmt.Errorf("%s: %w", group.Name, domain.ErrModifierRequired)
		}
	}
	return modifiers, nil
}

// taxFor rounds half up to the nearest minor unit.
func taxFor(subtotal, bps int64) int64 {
	if bps <= 0 {
		return 0
	}
	return (subtotal*bps + 5000) / 10000
}

func (s *orderService) GetOrder(ctx context.Context, orderID string) (*domain.OrderResponse, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}
	order, err := s.orderRepository.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

func (s *orderService) GetOrderForTable(ctx context.Context, orderID, tableID string) (*domain.OrderResponse, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.TableID != tableID {
		return nil, domain.ErrOrderNotForThisTable
	}
	return order, nil
}

func (s *orderService) GetOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.OrderResponse, int64, error) {
	if filter.TableID != "" {
		if _, err := uuid.Parse(filter.TableID); err != nil {
			return nil, 0, domain.ErrParseUUID
		}
	}
	orders, count, err := s.orderRepository.GetOrders(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]*domain.OrderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, toOrderResponse(order))
	}
	return result, count, nil
}

// GetKitchenOrders lists what the kitchen is allowed to see. Pending orders
// stay hidden until a waiter accepts them.
func (s *orderService) GetKitchenOrders(ctx context.Context) ([]*domain.OrderResponse, error) {
	orders, err := s.orderRepository.GetOrdersByStatus(ctx, entities.OrderPreparing, entities.OrderReady)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.OrderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, toOrderResponse(order))
	}
	return result, nil
}

func (s *orderService) AcceptOrder(ctx context.Context, orderID string) (*domain.OrderResponse, error) {
	return s.apply(ctx, orderID, ActionAccept, "")
}

// MarkOrderReady moves the order to READY even when some items are still
// pending; staff can close out a ticket by hand.
func (s *orderService) MarkOrderReady(ctx context.Context, orderID string) (*domain.OrderResponse, error) {
	return s.apply(ctx, orderID, ActionReady, "")
}

func (s *orderService) MarkServed(ctx context.Context, orderID string) (*domain.OrderResponse, error) {
	resp, err := s.apply(ctx, orderID, ActionServe, "")
	if err != nil {
		return nil, err
	}
	return s.completeIfPaid(ctx, resp), nil
}

// completeIfPaid closes a just-served order that was settled in advance.
// Failures leave the order SERVED for staff to complete by hand.
func (s *orderService) completeIfPaid(ctx context.Context, served *domain.OrderResponse) *domain.OrderResponse {
	if s.paymentLedger == nil || served.TotalAmount <= 0 {
		return served
	}
	paid, err := s.paymentLedger.SumPaid(ctx, uuid.MustParse(served.ID))
	if err != nil {
		log.Warnw("failed to read payments for served order", "order_id", served.ID, "error", err)
		return served
	}
	if paid < served.TotalAmount {
		return served
	}
	completed, err := s.apply(ctx, served.ID, ActionComplete, "")
	if err != nil {
		log.Warnw("failed to complete prepaid order", "order_id", served.ID, "error", err)
		return served
	}
	return completed
}

func (s *orderService) CompleteOrder(ctx context.Context, orderID string) (*domain.OrderResponse, error) {
	return s.apply(ctx, orderID, ActionComplete, "")
}

func (s *orderService) CancelOrder(ctx context.Context, orderID, reason string) (*domain.OrderResponse, error) {
	return s.apply(ctx, orderID, ActionCancel, reason)
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID string, req domain.UpdateOrderStatusRequest) (*domain.OrderResponse, error) {
	action, err := ActionFor(entities.OrderStatus(req.Status))
	if err != nil {
		return nil, err
	}
	if action == ActionServe {
		return s.MarkServed(ctx, orderID)
	}
	return s.apply(ctx, orderID, action, req.Reason)
}

func (s *orderService) apply(ctx context.Context, orderID string, action Action, reason string) (resp *domain.OrderResponse, err error) {
	defer func() { recordOperation(string(action), err) }()

	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}
	order, err := s.orderRepository.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	outcome, err := Apply(order.Status, action)
	if err != nil {
		return nil, err
	}

	now := s.now()
	fields := map[string]any{}
	switch outcome.Status {
	case entities.OrderPreparing:
		fields["accepted_at"] = now
	case entities.OrderReady:
		fields["ready_at"] = now
	case entities.OrderServed:
		fields["served_at"] = now
	case entities.OrderCompleted:
		fields["completed_at"] = now
	case entities.OrderCancelled:
		fields["cancelled_at"] = now
		fields["cancel_reason"] = reason
	}

	ok, err := s.orderRepository.UpdateStatus(ctx, id, order.Status, outcome.Status, fields)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrOrderStatusChanged
	}

	if outcome.Status.IsTerminal() {
		if err := s.orderRepository.ReleaseTableIfIdle(ctx, order.TableID); err != nil {
			log.Warnw("failed to release table", "table_id", order.TableID.String(), "error", err)
		}
	}

	updated, err := s.orderRepository.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp = toOrderResponse(updated)
	s.announce(outcome.Notices, resp)
	log.Infow("order status updated", "order_id", resp.ID, "from", string(order.Status), "to", resp.Status)
	return resp, nil
}

func (s *orderService) announce(notices []Notice, order *domain.OrderResponse) {
	for _, notice := range notices {
		switch notice {
		case NoticeKitchenRelease:
			s.notifier.OrderAccepted(order)
		case NoticeStatusUpdated:
			s.notifier.OrderStatusUpdated(order)
		case NoticeOrderReady:
			s.notifier.OrderReady(order)
		}
	}
}

// MarkItemReady is idempotent: an item that is already READY keeps its
// original prepared time, and the current state is broadcast again.
func (s *orderService) MarkItemReady(ctx context.Context, orderID, itemID string) (resp *domain.OrderItemResponse, err error) {
	defer func() { recordOperation("item_ready", err) }()

	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}
	itemUUID, err := uuid.Parse(itemID)
	if err != nil {
		return nil, domain.ErrOrderItemNotFound
	}

	order, err := s.orderRepository.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item := findItem(order, itemUUID)
	if item == nil {
		return nil, domain.ErrOrderItemNotFound
	}

	switch {
	case order.Status.IsTerminal():
		return nil, fmt.Errorf("order is %s: %w", order.Status, domain.ErrOrderClosed)
	case order.Status == entities.OrderPending:
		return nil, domain.ErrOrderNotAccepted
	case order.Status == entities.OrderServed:
		return nil, fmt.Errorf("order already served: %w", domain.ErrInvalidTransition)
	}

	if item.Status == entities.OrderItemPending {
		if _, err := s.orderRepository.MarkItemReady(ctx, id, itemUUID, s.now()); err != nil {
			return nil, err
		}
		// re-read either way; a concurrent writer may have won the update
		order, err = s.orderRepository.GetOrderByID(ctx, id)
		if err != nil {
			return nil, err
		}
		item = findItem(order, itemUUID)
		if item == nil {
			return nil, domain.ErrOrderItemNotFound
		}
	}

	itemResp := toOrderItemResponse(item)
	s.notifier.OrderItemStatusUpdated(order.ID.String(), item.ID.String(), itemResp.Status)
	return &itemResp, nil
}

func findItem(order *entities.Order, itemID uuid.UUID) *entities.OrderItem {
	for _, item := range order.Items {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}

func toOrderResponse(order *entities.Order) *domain.OrderResponse {
	items := make([]domain.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, toOrderItemResponse(item))
	}
	resp := &domain.OrderResponse{
		ID:           order.ID.String(),
		TableID:      order.TableID.String(),
		Status:       string(order.Status),
		Subtotal:     order.Subtotal,
		TaxAmount:    order.TaxAmount,
		TotalAmount:  order.TotalAmount,
		Notes:        order.Notes,
		CancelReason: order.CancelReason,
		Items:        items,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
	if order.Table != nil {
		resp.TableNumber = order.Table.Number
	}
	return resp
}

func toOrderItemResponse(item *entities.OrderItem) domain.OrderItemResponse {
	modifiers := make([]domain.OrderItemModifierResponse, 0, len(item.Modifiers))
	for _, m := range item.Modifiers {
		modifiers = append(modifiers, domain.OrderItemModifierResponse{
			ID:               m.ID.String(),
			ModifierOptionID: m.ModifierOptionID.String(),
			Name:             m.Name,
			PriceDelta:       m.PriceDelta,
		})
	}
	return domain.OrderItemResponse{
		ID:             item.ID.String(),
		MenuItemID:     item.MenuItemID.String(),
		Name:           item.Name,
		Quantity:       item.Quantity,
		UnitPrice:      item.UnitPrice,
		LineTotal:      item.LineTotal,
		Status:         string(item.Status),
		PreparedAt:     item.PreparedAt,
		SpecialRequest: item.SpecialRequest,
		Modifiers:      modifiers,
	}
}
