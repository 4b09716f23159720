package middleware

import (
	"QR-Ordering-Backend/domain"
	"QR-Ordering-Backend/internal/api/presenters"
	"QR-Ordering-Backend/pkg/jwt"
	"QR-Ordering-Backend/pkg/table"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const TableTokenHeader = "X-Table-Token"

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		RoleMiddleware(roles ...string) fiber.Handler
		TableMiddleware(tableService table.TableService) fiber.Handler
		TableOrStaffMiddleware(jwtService jwt.JWTService, tableService table.TableService) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + TableTokenHeader,
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	})
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func tableToken(c *fiber.Ctx) string {
	if token := c.Get(TableTokenHeader); token != "" {
		return token
	}
	return c.Query("token")
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}
		userID, role, err := jwtService.GetUserIDByToken(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}
		c.Locals("user_id", userID)
		c.Locals("role", role)
		return c.Next()
	}
}

func (m *middleware) RoleMiddleware(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MesaageUserNotAllowed, domain.ErrUserNotAllowed)
	}
}

func (m *middleware) TableMiddleware(tableService table.TableService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := tableService.ValidateToken(c.Context(), tableToken(c))
		if err != nil {
			return presenters.ErrorResponse(c, presenters.StatusFromError(err, fiber.StatusUnauthorized), domain.MessageFailedTableSession, err)
		}
		c.Locals("table", t)
		c.Locals("table_id", t.ID.String())
		return c.Next()
	}
}

// TableOrStaffMiddleware lets either a signed-in staff member or a guest
// holding the table's current QR token through.
func (m *middleware) TableOrStaffMiddleware(jwtService jwt.JWTService, tableService table.TableService) fiber.Handler {
	staff := m.AuthMiddleware(jwtService)
	guest := m.TableMiddleware(tableService)
	return func(c *fiber.Ctx) error {
		if bearerToken(c) != "" {
			return staff(c)
		}
		return guest(c)
	}
}
