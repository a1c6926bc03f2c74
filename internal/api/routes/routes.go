package routes

import (
	"letter-office-backend/internal/api/handlers"
	"letter-office-backend/internal/api/middleware"
	"letter-office-backend/internal/auth"
	"letter-office-backend/internal/config"
	"letter-office-backend/internal/repository"
	"letter-office-backend/internal/service"
	"letter-office-backend/internal/settings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config, settingsStore *settings.Store) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	// Initialize validator
	validator := validator.New()

	// Initialize repositories
	organizationRepo := repository.NewOrganizationRepository(db)
	contactRepo := repository.NewContactRepository(db)
	letterRepo := repository.NewLetterRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	organizationService := service.NewOrganizationService(organizationRepo, validator)
	contactService := service.NewContactService(contactRepo, organizationRepo, validator)
	letterService := service.NewLetterService(letterRepo, organizationRepo, contactRepo, settingsStore, validator, cfg.LetterRequireRecipient)
	userService := service.NewUserService(userRepo, validator)
	authService := auth.NewService(userRepo, cfg, validator)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	organizationHandler := handlers.NewOrganizationHandler(organizationService)
	contactHandler := handlers.NewContactHandler(contactService)
	letterHandler := handlers.NewLetterHandler(letterService)
	userHandler := handlers.NewUserHandler(userService)
	settingsHandler := handlers.NewSettingsHandler(settingsStore)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/live", healthHandler.Live)

	// Auth routes
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/bootstrap", authHandler.Bootstrap)
	}

	// Authenticated API routes
	api := router.Group("/api")
	api.Use(auth.RequireAuth(authService))
	{
		organizations := api.Group("/organizations")
		{
			organizations.POST("", organizationHandler.CreateOrganization)
			organizations.GET("", organizationHandler.ListOrganizations)
			organizations.GET("/:id", organizationHandler.GetOrganization)
			organizations.PUT("/:id", organizationHandler.UpdateOrganization)
			organizations.DELETE("/:id", organizationHandler.DeleteOrganization)
		}

		contacts := api.Group("/contacts")
		{
			contacts.POST("", contactHandler.CreateContact)
			contacts.GET("", contactHandler.ListContacts)
			contacts.GET("/:id", contactHandler.GetContact)
			contacts.PUT("/:id", contactHandler.UpdateContact)
			contacts.DELETE("/:id", contactHandler.DeleteContact)
		}

		letters := api.Group("/letters")
		{
			letters.POST("", letterHandler.GenerateLetter)
			letters.GET("", letterHandler.ListLetters)
			letters.GET("/types", letterHandler.GetLetterTypes)
			letters.GET("/:code", letterHandler.GetLetter)
			letters.GET("/:code/file", letterHandler.DownloadLetter)
		}

		// Office settings changes affect every generated letter, so the
		// whole group is admin-only.
		settingsGroup := api.Group("/settings")
		settingsGroup.Use(auth.RequireAdmin())
		{
			settingsGroup.GET("", settingsHandler.GetSettings)
			settingsGroup.PUT("", settingsHandler.UpdateSettings)
		}

		// User administration is admin-only
		users := api.Group("/users")
		users.Use(auth.RequireAdmin())
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	return router
}
