package routes

import (
	"cookmastery/backend/config"
	"cookmastery/backend/controllers"
	"cookmastery/backend/metrics"
	"cookmastery/backend/middleware"
	"cookmastery/backend/models"
	"cookmastery/backend/repository"
	"cookmastery/backend/services"
	"cookmastery/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// NewApp builds the fiber app with the shared middleware chain and all
// routes mounted.
func NewApp(db *gorm.DB, cfg *config.Config, logger *utils.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "cookmastery",
		ErrorHandler: utils.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))
	app.Use(middleware.LoggingMiddleware(logger))
	app.Use(metrics.Handler())

	SetupRoutes(app, db, cfg, logger)
	return app
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *utils.Logger) {
	// Repositories and services
	contentRepo := repository.NewContentRepo(db, logger)
	completionRepo := repository.NewCompletionRepo(db, logger)
	userRepo := repository.NewUserRepo(db, logger)

	contentService := services.NewContentService(contentRepo, completionRepo, logger)
	completionService := services.NewCompletionService(contentRepo, completionRepo, logger)
	progressService := services.NewProgressService(repository.NewProgressRepo(db, logger), logger)
	cookbookService := services.NewCookbookService(repository.NewCookbookRepo(db, logger), logger)
	profileService := services.NewProfileService(userRepo, logger)
	authService := services.NewAuthService(userRepo, cfg, logger)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	optionalAuth := middleware.OptionalAuthMiddleware(cfg)

	// Service routes
	healthController := controllers.NewHealthController(db, logger)
	app.Get("/healthz", healthController.Health)
	app.Get("/metrics", metrics.Exposer())

	api := app.Group("/api")

	// Auth routes
	authController := controllers.NewAuthController(authService)
	api.Post("/auth/register", authController.Register)
	api.Post("/auth/login", authController.Login)

	// Content routes
	contentController := controllers.NewContentController(contentService, completionService, profileService)
	for _, r := range []struct {
		prefix string
		kind   models.ContentKind
	}{
		{"/tutorials", models.KindTutorial},
		{"/articles", models.KindArticle},
	} {
		group := api.Group(r.prefix)
		group.Get("/", optionalAuth, contentController.List(r.kind))
		group.Get("/:id", optionalAuth, contentController.Get(r.kind))
		group.Post("/:id/complete", authMiddleware, contentController.Complete(r.kind))
	}
	api.Get("/content", optionalAuth, contentController.ListAll)
	api.Get("/recommendations", authMiddleware, contentController.Recommendations)

	// Profile routes
	profileController := controllers.NewProfileController(profileService)
	api.Get("/profile", authMiddleware, profileController.GetProfile)
	api.Patch("/profile", authMiddleware, profileController.UpdateProfile)

	// Progress routes
	progressController := controllers.NewProgressController(progressService, profileService)
	api.Get("/progress/summary", authMiddleware, progressController.GetSummary)

	// Cookbook routes
	cookbookController := controllers.NewCookbookController(cookbookService)
	cookbook := api.Group("/cookbook", authMiddleware)
	cookbook.Get("/", cookbookController.List)
	cookbook.Post("/", cookbookController.Create)
	cookbook.Get("/:id", cookbookController.Get)
	cookbook.Patch("/:id", cookbookController.Update)
	cookbook.Delete("/:id", cookbookController.Delete)
}
