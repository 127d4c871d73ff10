package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"gatewise-vms/internal/adapters/http/middleware"
	"gatewise-vms/internal/adapters/http/routes"
	"gatewise-vms/internal/adapters/persistence/memstore"
	"gatewise-vms/internal/config"
	"gatewise-vms/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "gatewise-vms/docs" // Swagger docs
)

// @title GateWise VMS API
// @version 1.0
// @description Visitor and resident management API for gated residential properties
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@gatewise.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.gatewise.io
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Create the in-memory directory store
	store := memstore.New()

	// Seed the demo roster (dev default; SEED_DEMO_DATA=false to skip)
	if cfg.Seed.DemoData {
		if err := config.NewSeeder(store).Run(); err != nil {
			log.Printf("⚠️ Warning: Failed to seed demo data: %v", err)
		}
	}

	// Start Cron Service (overstay sweep + nightly pattern scan)
	visitorService := services.NewVisitorService(store, cfg.Policy)
	patternService := services.NewPatternService(store, cfg.Policy)
	cronService := services.NewCronService(visitorService, patternService)
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "GateWise VMS API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass store and cfg for dependency injection)
	routes.Setup(app, store, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
