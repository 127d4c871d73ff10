package routes

import (
	"gatewise-vms/internal/adapters/http/handlers"
	"gatewise-vms/internal/adapters/http/middleware"
	"gatewise-vms/internal/adapters/persistence/memstore"
	"gatewise-vms/internal/config"
	"gatewise-vms/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, store *memstore.Directory, cfg *config.Config) {
	// Initialize services
	authService := services.NewAuthService(store, cfg)
	registrationService := services.NewRegistrationService(store)
	residentService := services.NewResidentService(store)
	visitorService := services.NewVisitorService(store, cfg.Policy)
	patternService := services.NewPatternService(store, cfg.Policy)
	gateService := services.NewGateService(store)
	maintenanceService := services.NewMaintenanceService(store)
	alertService := services.NewAlertService(store)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	registrationHandler := handlers.NewRegistrationHandler(registrationService)
	residentHandler := handlers.NewResidentHandler(residentService, visitorService, maintenanceService)
	managementHandler := handlers.NewManagementHandler(residentService, registrationService, maintenanceService, alertService)
	securityHandler := handlers.NewSecurityHandler(visitorService, gateService, patternService, alertService, maintenanceService)
	adminHandler := handlers.NewAdminHandler(authService, registrationService, residentService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public, rate limited)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Registration routes (public, rate limited)
	registerRoutes := apiV1.Group("/register")
	setupRegistrationRoutes(registerRoutes, registrationHandler)

	// Registration form lookups (public)
	apiV1.Get("/properties/approved", registrationHandler.ApprovedProperties)

	// Resident portal
	residentRoutes := apiV1.Group("/resident")
	residentRoutes.Use(middleware.AuthMiddleware(cfg))
	residentRoutes.Use(middleware.ResidentOnly())
	setupResidentRoutes(residentRoutes, residentHandler)

	// Management portal
	managementRoutes := apiV1.Group("/management")
	managementRoutes.Use(middleware.AuthMiddleware(cfg))
	managementRoutes.Use(middleware.ManagementOnly())
	setupManagementRoutes(managementRoutes, managementHandler)

	// Security portal
	securityRoutes := apiV1.Group("/security")
	securityRoutes.Use(middleware.AuthMiddleware(cfg))
	securityRoutes.Use(middleware.SecurityOnly())
	setupSecurityRoutes(securityRoutes, securityHandler)

	// Platform operator
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Use(middleware.SuperAdminOnly())
	setupAdminRoutes(adminRoutes, adminHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (5 req/min/IP)
	authLimiter := middleware.AuthRateLimiter()
	router.Post("/resident/login", authLimiter, handler.LoginResident)
	router.Post("/pm/login", authLimiter, handler.LoginPM)
	router.Post("/security/login", authLimiter, handler.LoginSecurity)
	router.Post("/admin/login", authLimiter, handler.LoginAdmin)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupRegistrationRoutes configures the public self-registration routes
func setupRegistrationRoutes(router fiber.Router, handler *handlers.RegistrationHandler) {
	limiter := middleware.AuthRateLimiter()
	router.Post("/resident", limiter, handler.RegisterResident)
	router.Post("/property", limiter, handler.RegisterProperty)
	router.Post("/staff", limiter, handler.RegisterStaff)
	router.Post("/officer", limiter, handler.RegisterOfficer)
}

// setupResidentRoutes configures the resident portal routes
func setupResidentRoutes(router fiber.Router, handler *handlers.ResidentHandler) {
	router.Get("/me", handler.Me)
	router.Patch("/me/preferences", handler.UpdatePreferences)
	router.Get("/me/visitors", handler.MyVisitors)
	router.Post("/maintenance", handler.ReportMaintenance)
	router.Get("/maintenance", handler.MyMaintenance)
}

// setupManagementRoutes configures the management portal routes
func setupManagementRoutes(router fiber.Router, handler *handlers.ManagementHandler) {
	router.Get("/residents", handler.ListResidents)
	router.Post("/residents/import", handler.ImportResidents)
	router.Patch("/residents/:id", handler.UpdateResident)
	router.Post("/residents/:id/approve", handler.ApproveResident)
	router.Post("/residents/:id/reject", handler.RejectResident)

	router.Get("/staff-requests", handler.ListStaffRequests)
	router.Post("/staff-requests/:id/approve", handler.ApproveStaff)
	router.Post("/staff-requests/:id/reject", handler.RejectStaff)

	router.Get("/maintenance", handler.ListMaintenance)
	router.Patch("/maintenance/:id", handler.ReviewMaintenance)

	router.Get("/alert-notes", handler.ListAlertNotes)
}

// setupSecurityRoutes configures the security portal routes
func setupSecurityRoutes(router fiber.Router, handler *handlers.SecurityHandler) {
	// Gate kiosks burst during shift changes; give them their own limit
	gateLimiter := middleware.GateRateLimiter()

	router.Post("/visitors/check-in", gateLimiter, handler.CheckInVisitor)
	router.Post("/visitors/:id/check-out", handler.CheckOutVisitor)
	router.Get("/visitors", handler.ListVisitors)
	router.Get("/visitors/overstayed", handler.ListOverstayed)

	router.Post("/gate/lookup", gateLimiter, handler.GateLookup)
	router.Post("/gate/log", handler.LogGateCheckIn)
	router.Get("/gate/logs", handler.GateLogs)

	router.Get("/alerts/consecutive", handler.ConsecutiveAlerts)

	router.Post("/alert-notes", handler.FileAlertNote)
	router.Get("/alert-notes", handler.ListAlertNotes)
	router.Patch("/alert-notes/:id", handler.TriageAlertNote)

	router.Post("/maintenance", handler.ReportMaintenance)
}

// setupAdminRoutes configures the platform operator routes
func setupAdminRoutes(router fiber.Router, handler *handlers.AdminHandler) {
	router.Get("/credentials", handler.Credentials)
	router.Get("/residents", handler.ListResidents)

	router.Get("/property-requests", handler.ListPropertyRequests)
	router.Post("/property-requests/:id/approve", handler.ApproveProperty)
	router.Post("/property-requests/:id/reject", handler.RejectProperty)

	router.Get("/officer-requests", handler.ListOfficerRequests)
	router.Post("/officer-requests/:id/approve", handler.ApproveOfficer)
	router.Post("/officer-requests/:id/reject", handler.RejectOfficer)
}
