package config

import (
	"QR-Ordering-Backend/internal/api/handlers"
	"QR-Ordering-Backend/internal/api/routes"
	"QR-Ordering-Backend/internal/middleware"
	"QR-Ordering-Backend/internal/utils"
	"QR-Ordering-Backend/internal/utils/mailing"
	"QR-Ordering-Backend/internal/utils/storage"
	"QR-Ordering-Backend/pkg/jwt"
	"QR-Ordering-Backend/pkg/menu"
	"QR-Ordering-Backend/pkg/midtrans"
	"QR-Ordering-Backend/pkg/order"
	"QR-Ordering-Backend/pkg/payment"
	"QR-Ordering-Backend/pkg/realtime"
	"QR-Ordering-Backend/pkg/table"
	"QR-Ordering-Backend/pkg/user"
	"QR-Ordering-Backend/pkg/waiter"
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: false,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))
	app.Use(middleware.PrometheusMiddleware())

	app.Use(limiter.New(limiter.Config{
		Max:        30,
		Expiration: 1 * time.Second,
		Next: func(c *fiber.Ctx) bool {
			// long-lived sockets and scrapes are not rate limited
			return c.Path() == "/ws" || c.Path() == "/metrics"
		},
	}))

	// utils
	s3, err := storage.NewAwsS3(context.Background())
	if err != nil {
		log.Warnw("S3 disabled, QR images will not be stored", "error", err)
		s3 = nil
	}
	var mailer payment.Mailer
	if m := mailing.NewMailer(); m != nil {
		mailer = m
	}
	var gateway midtrans.MidtransService
	if serverKey := utils.GetConfig("SERVER_KEY"); serverKey != "" {
		gateway = midtrans.NewMidtransService(serverKey, utils.GetConfig("IsProd") == "true")
	}
	var throttle waiter.Throttle
	if addr := utils.GetConfig("REDIS_ADDR"); addr != "" {
		rdb := rd.NewClient(&rd.Options{
			Addr:     addr,
			Password: utils.GetConfig("REDIS_PASSWORD"),
			DB:       utils.GetConfigInt("REDIS_DB", 0),
		})
		cooldown := time.Duration(utils.GetConfigInt("WAITER_CALL_COOLDOWN_SECONDS", 60)) * time.Second
		throttle = waiter.NewRedisThrottle(rdb, cooldown)
	}

	// realtime
	hub := realtime.NewHub()
	notifier := realtime.NewNotifier(hub)

	// Repository
	userRepository := user.NewUserRepository(db)
	menuRepository := menu.NewMenuRepository(db)
	tableRepository := table.NewTableRepository(db)
	orderRepository := order.NewOrderRepository(db)
	paymentRepository := payment.NewPaymentRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	menuService := menu.NewMenuService(menuRepository)
	tableService := table.NewTableService(tableRepository, jwtService, s3, utils.GetConfig("APP_URL"))
	orderService := order.NewOrderService(
		orderRepository,
		menuRepository,
		paymentRepository,
		notifier,
		int64(utils.GetConfigInt("TAX_RATE_BPS", 0)),
	)
	paymentService := payment.NewPaymentService(paymentRepository, orderService, gateway, notifier, mailer)
	waiterService := waiter.NewWaiterService(throttle, notifier)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	menuHandler := handlers.NewMenuHandler(menuService)
	orderHandler := handlers.NewOrderHandler(orderService, validator)
	paymentHandler := handlers.NewPaymentHandler(paymentService, validator)
	tableHandler := handlers.NewTableHandler(tableService, waiterService, validator)
	realtimeHandler := handlers.NewRealtimeHandler(hub, jwtService)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		MenuHandler:     menuHandler,
		OrderHandler:    orderHandler,
		PaymentHandler:  paymentHandler,
		TableHandler:    tableHandler,
		RealtimeHandler: realtimeHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
		TableService:    tableService,
	}
	routesConfig.Setup()
	return app, nil
}
