package main

import (
	"QR-Ordering-Backend/cmd/config"
	migration "QR-Ordering-Backend/cmd/database/migrate"
	"QR-Ordering-Backend/cmd/database/seed"
	"QR-Ordering-Backend/internal/utils"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	migrate := flag.Bool("migrate", false, "run database migrations and exit")
	seedData := flag.Bool("seed", false, "load demo staff, tables and menu and exit")
	flag.Parse()

	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if *migrate || *seedData {
		if *migrate {
			if err := migration.Migrate(db); err != nil {
				log.Fatalf("migration failed: %v", err)
			}
		}
		if *seedData {
			if err := seed.Seed(context.Background(), db); err != nil {
				log.Fatalf("seed failed: %v", err)
			}
		}
		return
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to build app: %v", err)
	}

	port := utils.GetConfig("APP_PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		log.Errorw("shutdown failed", "error", err)
	}
}
