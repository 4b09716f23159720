package handlers

import (
	"QR-Ordering-Backend/domain"
	"QR-Ordering-Backend/entities"
	"QR-Ordering-Backend/internal/api/presenters"
	"QR-Ordering-Backend/internal/middleware"
	"QR-Ordering-Backend/pkg/table"
	"QR-Ordering-Backend/pkg/waiter"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	TableHandler interface {
		GetTables(c *fiber.Ctx) error
		GenerateQR(c *fiber.Ctx) error
		GetSession(c *fiber.Ctx) error
		CallWaiter(c *fiber.Ctx) error
	}

	tableHandler struct {
		tableService  table.TableService
		waiterService waiter.WaiterService
		validator     *validator.Validate
	}
)

func NewTableHandler(tableService table.TableService, waiterService waiter.WaiterService, validator *validator.Validate) TableHandler {
	return &tableHandler{
		tableService:  tableService,
		waiterService: waiterService,
		validator:     validator,
	}
}

func (h *tableHandler) GetTables(c *fiber.Ctx) error {
	tables, err := h.tableService.GetTables(c.Context())
	if err != nil {
		return failed(c, domain.MessageFailedGetTables, err)
	}
	return presenters.SuccessResponse(c, tables, fiber.StatusOK, domain.MessageSuccessGetTables)
}

func (h *tableHandler) GenerateQR(c *fiber.Ctx) error {
	resp, err := h.tableService.GenerateQR(c.Context(), c.Params("id"))
	if err != nil {
		return failed(c, domain.MessageFailedGenerateQR, err)
	}
	return presenters.SuccessResponse(c, resp, fiber.StatusCreated, domain.MessageSuccessGenerateQR)
}

// GetSession is the guest landing call: it resolves the scanned QR token
// to its table.
func (h *tableHandler) GetSession(c *fiber.Ctx) error {
	token := c.Get(middleware.TableTokenHeader)
	if token == "" {
		token = c.Query("token")
	}

	resp, err := h.tableService.GetSession(c.Context(), token)
	if err != nil {
		return failed(c, domain.MessageFailedGetSession, err)
	}
	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessGetSession)
}

func (h *tableHandler) CallWaiter(c *fiber.Ctx) error {
	t := c.Locals("table").(*entities.Table)

	req := new(domain.WaiterCallRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCallWaiter, err)
	}

	if err := h.waiterService.CallWaiter(c.Context(), t, *req); err != nil {
		return failed(c, domain.MessageFailedCallWaiter, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCallWaiter)
}
