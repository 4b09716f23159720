package handlers

import (
	"QR-Ordering-Backend/domain"
	"QR-Ordering-Backend/internal/api/presenters"
	"QR-Ordering-Backend/pkg/menu"

	"github.com/gofiber/fiber/v2"
)

type (
	MenuHandler interface {
		GetMenu(c *fiber.Ctx) error
	}

	menuHandler struct {
		menuService menu.MenuService
	}
)

func NewMenuHandler(menuService menu.MenuService) MenuHandler {
	return &menuHandler{
		menuService: menuService,
	}
}

func (h *menuHandler) GetMenu(c *fiber.Ctx) error {
	categories, err := h.menuService.GetMenu(c.Context())
	if err != nil {
		return failed(c, domain.MessageFailedGetMenu, err)
	}
	return presenters.SuccessResponse(c, categories, fiber.StatusOK, domain.MessageSuccessGetMenu)
}
