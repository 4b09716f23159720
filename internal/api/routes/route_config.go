package routes

import (
	"QR-Ordering-Backend/domain"
	"QR-Ordering-Backend/internal/api/handlers"
	"QR-Ordering-Backend/internal/middleware"
	"QR-Ordering-Backend/pkg/jwt"
	"QR-Ordering-Backend/pkg/table"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	MenuHandler     handlers.MenuHandler
	OrderHandler    handlers.OrderHandler
	PaymentHandler  handlers.PaymentHandler
	TableHandler    handlers.TableHandler
	RealtimeHandler handlers.RealtimeHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
	TableService    table.TableService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.User()
	c.Customer()
	c.Orders()
	c.Kitchen()
	c.Tables()
	c.Realtime()
}

func (c *Config) auth() fiber.Handler {
	return c.Middleware.AuthMiddleware(c.JWTService)
}

func (c *Config) roles(roles ...string) fiber.Handler {
	return c.Middleware.RoleMiddleware(roles...)
}

func (c *Config) GuestRoute() {
	c.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	c.App.Get("/api/v1/menu", c.MenuHandler.GetMenu)
	c.App.Get("/api/v1/session", c.TableHandler.GetSession)
	c.App.Post("/webhook/midtrans", c.PaymentHandler.MidtransWebhookHandler)
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.auth(), c.UserHandler.Me)
	}
}

// Customer routes authenticate with the table's QR token.
func (c *Config) Customer() {
	guest := c.Middleware.TableMiddleware(c.TableService)
	c.App.Post("/api/v1/orders", guest, c.OrderHandler.CreateOrder)
	c.App.Post("/api/v1/orders/:id/payments/online", guest, c.PaymentHandler.CreateOnlineCheckout)
	c.App.Post("/api/v1/waiter/call", guest, c.TableHandler.CallWaiter)
}

func (c *Config) Orders() {
	either := c.Middleware.TableOrStaffMiddleware(c.JWTService, c.TableService)
	floor := c.roles(domain.RoleWaiter, domain.RoleAdmin)
	kitchen := c.roles(domain.RoleKitchen, domain.RoleAdmin)

	orders := c.App.Group("/api/v1/orders")
	orders.Get("", c.auth(), c.roles(domain.RoleAdmin, domain.RoleWaiter, domain.RoleKitchen), c.OrderHandler.GetOrders)
	orders.Get("/:id", either, c.OrderHandler.GetOrder)
	orders.Get("/:id/payments", either, c.PaymentHandler.GetPayments)

	orders.Patch("/:id/accept", c.auth(), floor, c.OrderHandler.AcceptOrder)
	orders.Patch("/:id/items/:itemId/ready", c.auth(), kitchen, c.OrderHandler.MarkItemReady)
	orders.Patch("/:id/ready", c.auth(), kitchen, c.OrderHandler.MarkOrderReady)
	orders.Patch("/:id/serve", c.auth(), floor, c.OrderHandler.MarkServed)
	orders.Patch("/:id/complete", c.auth(), floor, c.OrderHandler.CompleteOrder)
	orders.Patch("/:id/cancel", c.auth(), floor, c.OrderHandler.CancelOrder)
	orders.Patch("/:id/status", c.auth(), c.roles(domain.RoleAdmin), c.OrderHandler.UpdateStatus)
	orders.Post("/:id/payments", c.auth(), floor, c.PaymentHandler.RecordPayment)
}

func (c *Config) Kitchen() {
	kitchen := c.App.Group("/api/v1/kitchen", c.auth(), c.roles(domain.RoleKitchen, domain.RoleAdmin))
	kitchen.Get("/orders", c.OrderHandler.GetKitchenOrders)
}

func (c *Config) Tables() {
	tables := c.App.Group("/api/v1/tables", c.auth())
	tables.Get("", c.roles(domain.RoleAdmin, domain.RoleWaiter), c.TableHandler.GetTables)
	tables.Post("/:id/qr", c.roles(domain.RoleAdmin), c.TableHandler.GenerateQR)
}

func (c *Config) Realtime() {
	c.App.Get("/ws", c.RealtimeHandler.Upgrade, c.RealtimeHandler.Serve())
}
