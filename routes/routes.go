package routes

import (
	"DreyCare/cache"
	"DreyCare/config"
	"DreyCare/controllers"
	"DreyCare/handlers"
	"DreyCare/middlewares"
	"DreyCare/repositories"
	"DreyCare/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://dreycare.example.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories
	visitRepo := repositories.NewVisitRepository(cache)
	prescriptionRepo := repositories.NewPrescriptionRepository(cache)
	labResultRepo := repositories.NewLabResultRepository(cache)
	drugRepo := repositories.NewDrugRepository(cache)
	patientRepo := repositories.NewPatientRepository(cache)
	messageRepo := repositories.NewMessageRepository(cache)
	userRepo := repositories.NewUserRepository(db, cache)

	// Initialize services
	visitService := services.NewVisitService(visitRepo)
	routerService := services.NewRouterService(visitRepo, prescriptionRepo)
	billingService := services.NewBillingService(visitRepo, services.DefaultPricing())
	stockService := services.NewStockService(drugRepo)
	drugService := services.NewDrugService(drugRepo)
	labService := services.NewLabService(labResultRepo, visitRepo)
	prescriptionService := services.NewPrescriptionService(prescriptionRepo)
	patientService := services.NewPatientService(patientRepo)
	messageService := services.NewMessageService(messageRepo)
	userService := services.NewUserService(userRepo)
	statsService := services.NewStatsService()

	// Initialize handlers
	visitHandler := handlers.NewVisitHandler(visitService, routerService)
	billingHandler := handlers.NewBillingHandler(billingService)
	drugHandler := handlers.NewDrugHandler(drugService, stockService)
	labHandler := handlers.NewLabHandler(labService)
	prescriptionHandler := handlers.NewPrescriptionHandler(prescriptionService)
	patientHandler := handlers.NewPatientHandler(patientService)
	messageHandler := handlers.NewMessageHandler(messageService)
	statsHandler := handlers.NewStatsHandler(statsService)
	authHandler := handlers.NewAuthHandler(userService)

	// Register routes
	controllers.SetupHospitalRoutes(
		router,
		visitHandler,
		patientHandler,
		drugHandler,
		labHandler,
		billingHandler,
		prescriptionHandler,
		messageHandler,
		statsHandler,
	)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
