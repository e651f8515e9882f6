package app

import (
	"espoir-backend/internal/auth"
	"espoir-backend/internal/campaigns"
	"espoir-backend/internal/categories"
	"espoir-backend/internal/config"
	"espoir-backend/internal/content"
	"espoir-backend/internal/database"
	"espoir-backend/internal/donations"
	"espoir-backend/internal/health"
	"espoir-backend/internal/middleware"
	"espoir-backend/internal/models"
	"espoir-backend/internal/orders"
	"espoir-backend/internal/products"
	"espoir-backend/internal/projects"
	"espoir-backend/internal/stats"
	"espoir-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with global middleware and all routes.
// The gorm DB and Redis client are returned for startup checks.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
	}))

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	healthHandlers := &health.Handlers{DB: db, Rdb: rdb}
	app.Get("/health", healthHandlers.JSON)

	authHandlers := &auth.Handlers{Service: &auth.Service{DB: db}, Rdb: rdb, Config: sessionCfg}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)
	authGroup.Post("/forgot-password", authHandlers.ForgotPassword)
	authGroup.Post("/reset-password", authHandlers.ResetPassword)

	// db is nil when DATABASE_URL is unset (some tests); only auth and
	// health routes are available then.
	if db == nil {
		return app, db, rdb, nil
	}

	admin := middleware.RequireAuth()
	adminOnly := middleware.RequireRole(string(models.RoleAdmin))

	projectHandlers := &projects.Handlers{Service: &projects.Service{DB: db}}
	projectGroup := app.Group("/api/v1/projects")
	projectGroup.Get("/", projectHandlers.ListProjects)
	projectGroup.Get("/:idOrSlug", projectHandlers.GetProject)
	projectGroup.Post("/", admin, projectHandlers.CreateProject)
	projectGroup.Put("/:id", admin, projectHandlers.UpdateProject)
	projectGroup.Delete("/:id", admin, projectHandlers.DeleteProject)

	campaignHandlers := &campaigns.Handlers{Service: &campaigns.Service{DB: db}}
	campaignGroup := app.Group("/api/v1/campaigns")
	campaignGroup.Get("/", campaignHandlers.ListCampaigns)
	campaignGroup.Get("/:idOrSlug", campaignHandlers.GetCampaign)
	campaignGroup.Post("/", admin, campaignHandlers.CreateCampaign)
	campaignGroup.Put("/:id", admin, campaignHandlers.UpdateCampaign)
	campaignGroup.Delete("/:id", admin, campaignHandlers.DeleteCampaign)

	donationHandlers := &donations.Handlers{Service: &donations.Service{
		DB:              db,
		CheckoutBaseURL: cfg.CheckoutBaseURL,
	}}
	donationGroup := app.Group("/api/v1/donations")
	donationGroup.Post("/", donationHandlers.CreateDonation)
	donationGroup.Post("/:id/confirm", donationHandlers.ConfirmPayment)
	donationGroup.Get("/", admin, donationHandlers.ListDonations)
	donationGroup.Get("/:id", donationHandlers.GetDonation)

	productHandlers := &products.Handlers{Service: &products.Service{DB: db}}
	productGroup := app.Group("/api/v1/products")
	productGroup.Get("/", productHandlers.ListProducts)
	productGroup.Get("/:idOrSlug", productHandlers.GetProduct)
	productGroup.Post("/", admin, productHandlers.CreateProduct)
	productGroup.Put("/:id", admin, productHandlers.UpdateProduct)
	productGroup.Delete("/:id", admin, productHandlers.DeleteProduct)

	categoryHandlers := &categories.Handlers{Service: &categories.Service{DB: db}}
	categoryGroup := app.Group("/api/v1/categories")
	categoryGroup.Get("/", categoryHandlers.ListCategories)
	categoryGroup.Get("/:idOrSlug", categoryHandlers.GetCategory)
	categoryGroup.Post("/", admin, categoryHandlers.CreateCategory)
	categoryGroup.Put("/:id", admin, categoryHandlers.UpdateCategory)
	categoryGroup.Delete("/:id", admin, categoryHandlers.DeleteCategory)

	orderHandlers := &orders.Handlers{Service: &orders.Service{DB: db}}
	orderGroup := app.Group("/api/v1/orders")
	orderGroup.Post("/", orderHandlers.CreateOrder)
	orderGroup.Get("/", admin, orderHandlers.ListOrders)
	orderGroup.Get("/:idOrNumber", orderHandlers.GetOrder)
	orderGroup.Patch("/:id/status", admin, orderHandlers.UpdateStatus)

	contentHandlers := &content.Handlers{Service: &content.Service{DB: db}}
	contentGroup := app.Group("/api/v1/content")
	contentGroup.Get("/", contentHandlers.ListContent)
	contentGroup.Get("/:idOrSlug", contentHandlers.GetContent)
	contentGroup.Post("/", admin, contentHandlers.CreateContent)
	contentGroup.Put("/:id", admin, contentHandlers.UpdateContent)
	contentGroup.Delete("/:id", admin, contentHandlers.DeleteContent)

	userHandlers := &users.Handlers{Service: &users.Service{DB: db}}
	userGroup := app.Group("/api/v1/users", admin, adminOnly)
	userGroup.Get("/", userHandlers.ListUsers)
	userGroup.Get("/:id", userHandlers.GetUser)
	userGroup.Post("/", userHandlers.CreateUser)
	userGroup.Put("/:id", userHandlers.UpdateUser)
	userGroup.Delete("/:id", userHandlers.DeleteUser)

	statsHandlers := &stats.Handlers{Service: &stats.Service{DB: db}}
	statsGroup := app.Group("/api/v1/stats", admin)
	statsGroup.Get("/overview", statsHandlers.GetOverview)
	statsGroup.Get("/projects", statsHandlers.GetProjectTotals)

	return app, db, rdb, nil
}
