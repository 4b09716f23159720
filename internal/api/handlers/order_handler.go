package handlers

import (
	"QR-Ordering-Backend/domain"
	"QR-Ordering-Backend/internal/api/presenters"
	"QR-Ordering-Backend/pkg/order"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	OrderHandler interface {
		CreateOrder(c *fiber.Ctx) error
		GetOrder(c *fiber.Ctx) error
		GetOrders(c *fiber.Ctx) error
		GetKitchenOrders(c *fiber.Ctx) error
		AcceptOrder(c *fiber.Ctx) error
		MarkItemReady(c *fiber.Ctx) error
		MarkOrderReady(c *fiber.Ctx) error
		MarkServed(c *fiber.Ctx) error
		CompleteOrder(c *fiber.Ctx) error
		CancelOrder(c *fiber.Ctx) error
		UpdateStatus(c *fiber.Ctx) error
	}

	orderHandler struct {
		orderService order.OrderService
		validator    *validator.Validate
	}
)

func NewOrderHandler(orderService order.OrderService, validator *validator.Validate) OrderHandler {
	return &orderHandler{
		orderService: orderService,
		validator:    validator,
	}
}

// failed reports unclassified errors as 500; client mistakes carry an
// error kind.
func failed(c *fiber.Ctx, message string, err error) error {
	return presenters.ErrorResponse(c, presenters.StatusFromError(err, fiber.StatusInternalServerError), message, err)
}

func (h *orderHandler) CreateOrder(c *fiber.Ctx) error {
	tableID := c.Locals("table_id").(string)

	req := new(domain.CreateOrderRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateOrder, err)
	}

	resp, err := h.orderService.CreateOrder(c.Context(), tableID, *req)
	if err != nil {
		return failed(c, domain.MessageFailedCreateOrder, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusCreated, domain.MessageSuccessCreateOrder)
}

// GetOrder serves both staff and guests; a guest only sees orders placed
// from their own table.
func (h *orderHandler) GetOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")

	var (
		resp *domain.OrderResponse
		err  error
	)
	if tableID, ok := c.Locals("table_id").(string); ok {
		resp, err = h.orderService.GetOrderForTable(c.Context(), orderID, tableID)
	} else {
		resp, err = h.orderService.GetOrder(c.Context(), orderID)
	}
	if err != nil {
		return failed(c, domain.MessageFailedGetOrder, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessGetOrder)
}

func (h *orderHandler) GetOrders(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	filter := domain.OrderFilter{
		Status:  c.Query("status"),
		TableID: c.Query("table_id"),
		Page:    page,
		Limit:   limit,
	}
	orders, count, err := h.orderService.GetOrders(c.Context(), filter)
	if err != nil {
		return failed(c, domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"orders": orders,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) GetKitchenOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.GetKitchenOrders(c.Context())
	if err != nil {
		return failed(c, domain.MessageFailedGetKitchenQueue, err)
	}
	return presenters.SuccessResponse(c, orders, fiber.StatusOK, domain.MessageSuccessGetKitchenQueue)
}

func (h *orderHandler) AcceptOrder(c *fiber.Ctx) error {
	resp, err := h.orderService.AcceptOrder(c.Context(), c.Params("id"))
	if err != nil {
		return failed(c, domain.MessageFailedAcceptOrder, err)
	}
	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessAcceptOrder)
}

func (h *orderHandler) MarkItemReady(c *fiber.Ctx) error {
	resp, err := h.orderService.MarkItemReady(c.Context(), c.Params("id"), c.Params("itemId"))
	if err != nil {
		return failed(c, domain.MessageFailedMarkItemReady, err)
	}
	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessMarkItemReady)
}

func (h *orderHandler) MarkOrderReady(c *fiber.Ctx) error {
	resp, err := h.orderService.MarkOrderReady(c.Context(), c.Params("id"))
	if err != nil {
		return failed(c, domain.MessageFailedMarkOrderReady, err)
	}
	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessMarkOrderReady)
}

func (h *orderHandler) MarkServed(c *fiber.Ctx) error {
	resp, err := h.orderService.MarkServed(c.Context(), c.Params("id"))
	if err != nil {
		return failed(c, domain.MessageFailedUpdateOrder, err)
	}
	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessUpdateOrder)
}

func (h *orderHandler) CompleteOrder(c *fiber.Ctx) error {
	resp, err := h.orderService.CompleteOrder(c.Context(), c.Params("id"))
	if err != nil {
		return failed(c, domain.MessageFailedUpdateOrder, err)
	}
	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessUpdateOrder)
}

func (h *orderHandler) CancelOrder(c *fiber.Ctx) error {
	req := new(domain.CancelOrderRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCancelOrder, err)
	}

	resp, err := h.orderService.CancelOrder(c.Context(), c.Params("id"), req.Reason)
	if err != nil {
		return failed(c, domain.MessageFailedCancelOrder, err)
	}
	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessCancelOrder)
}

func (h *orderHandler) UpdateStatus(c *fiber.Ctx) error {
	req := new(domain.UpdateOrderStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateOrder, err)
	}

	resp, err := h.orderService.UpdateStatus(c.Context(), c.Params("id"), *req)
	if err != nil {
		return failed(c, domain.MessageFailedUpdateOrder, err)
	}
	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessUpdateOrder)
}
