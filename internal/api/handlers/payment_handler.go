package handlers

import (
	"QR-Ordering-Backend/domain"
	"QR-Ordering-Backend/internal/api/presenters"
	"QR-Ordering-Backend/pkg/payment"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type (
	PaymentHandler interface {
		RecordPayment(c *fiber.Ctx) error
		GetPayments(c *fiber.Ctx) error
		CreateOnlineCheckout(c *fiber.Ctx) error
		MidtransWebhookHandler(c *fiber.Ctx) error
	}

	paymentHandler struct {
		paymentService payment.PaymentService
		validator      *validator.Validate
	}
)

func NewPaymentHandler(paymentService payment.PaymentService, validator *validator.Validate) PaymentHandler {
	return &paymentHandler{
		paymentService: paymentService,
		validator:      validator,
	}
}

func (h *paymentHandler) RecordPayment(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.RecordPaymentRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRecordPayment, err)
	}

	resp, err := h.paymentService.RecordPayment(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return failed(c, domain.MessageFailedRecordPayment, err)
	}
	return presenters.SuccessResponse(c, resp, fiber.StatusCreated, domain.MessageSuccessRecordPayment)
}

func (h *paymentHandler) GetPayments(c *fiber.Ctx) error {
	var (
		summary *domain.PaymentSummary
		err     error
	)
	if tableID, ok := c.Locals("table_id").(string); ok {
		summary, err = h.paymentService.GetSummaryForTable(c.Context(), c.Params("id"), tableID)
	} else {
		summary, err = h.paymentService.GetSummary(c.Context(), c.Params("id"))
	}
	if err != nil {
		return failed(c, domain.MessageFailedGetPayments, err)
	}
	return presenters.SuccessResponse(c, summary, fiber.StatusOK, domain.MessageSuccessGetPayments)
}

func (h *paymentHandler) CreateOnlineCheckout(c *fiber.Ctx) error {
	tableID := c.Locals("table_id").(string)

	req := new(domain.OnlinePaymentRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateCheckout, err)
	}

	resp, err := h.paymentService.CreateOnlineCheckout(c.Context(), c.Params("id"), tableID, *req)
	if err != nil {
		return failed(c, domain.MessageFailedCreateCheckout, err)
	}
	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessCreateCheckout)
}

func (h *paymentHandler) MidtransWebhookHandler(c *fiber.Ctx) error {
	req := new(domain.MidtransNotification)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.paymentService.HandleMidtransNotification(c.Context(), *req); err != nil {
		log.Errorw("midtrans notification failed", "order_id", req.OrderID, "error", err)
		return failed(c, domain.MessageFailedWebhook, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessWebhook)
}
