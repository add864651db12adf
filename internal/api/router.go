package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/csemotors/dealership/internal/api/handler"
	"github.com/csemotors/dealership/internal/api/middleware"
	"github.com/csemotors/dealership/internal/api/view"
	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
	"github.com/csemotors/dealership/internal/core/service"
	"github.com/csemotors/dealership/internal/core/token"
	"github.com/csemotors/dealership/internal/infrastructure/config"
	mongodb "github.com/csemotors/dealership/internal/infrastructure/db/mongo"
	redisdb "github.com/csemotors/dealership/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditRecorder, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	valid := handler.NewFormValidator()
	e.Validator = valid
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("dealership"))

	// --- Dependencies ---
	issuer := token.NewIssuer(cfg.Session.Secret, cfg.Session.TTL)
	policy := domain.NewLockoutPolicy(cfg.Lockout.MaxAttempts, cfg.Lockout.Duration)

	accountRepo := mongodb.NewAccountRepository(db)
	inventoryRepo := mongodb.NewInventoryRepository(db)
	navCache := redisdb.NewNavCache(rdb)

	accountService := service.NewAccountService(accountRepo, issuer, policy, audit, cfg.Session.BcryptCost, log)
	inventoryService := service.NewInventoryService(inventoryRepo, navCache, log)

	accountHandler := handler.NewAccountHandler(accountService, inventoryService, valid, issuer.TTL(), log)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, valid, log)

	// Identity is resolved once here; route guards only read the result.
	e.Use(middleware.Session(issuer))

	// --- Public pages ---
	e.GET("/", inventoryHandler.Home)
	e.GET("/inv/type/:classificationId", inventoryHandler.ByClassification)
	e.GET("/inv/detail/:invId", inventoryHandler.Detail)

	// --- Account routes (anonymous) ---
	e.GET("/account/login", accountHandler.ShowLogin)
	e.POST("/account/login", accountHandler.Login)
	e.GET("/account/register", accountHandler.ShowRegister)
	e.POST("/account/register", accountHandler.Register)
	e.GET("/account/logout", accountHandler.Logout)

	// --- Account routes (logged in) ---
	acct := e.Group("/account", middleware.RequireLogin)
	acct.GET("/", accountHandler.Home)
	acct.GET("/update", accountHandler.ShowUpdate)
	acct.POST("/update", accountHandler.UpdateProfile)
	acct.POST("/password", accountHandler.UpdatePassword)

	// --- Lockout administration (Employee or Admin) ---
	admin := e.Group("/account", middleware.RequireLogin, middleware.RequireStaff)
	admin.GET("/locked", accountHandler.LockedList)
	admin.POST("/unlock/:id", accountHandler.Unlock)

	// --- Inventory management (Employee or Admin) ---
	staff := e.Group("/inv", middleware.RequireLogin, middleware.RequireStaff)
	staff.GET("/", inventoryHandler.Management)
	staff.GET("/classification/new", inventoryHandler.ShowAddClassification)
	staff.POST("/classification/new", inventoryHandler.AddClassification)
	staff.GET("/vehicle/new", inventoryHandler.ShowAddVehicle)
	staff.POST("/vehicle/new", inventoryHandler.AddVehicle)
	staff.GET("/edit/:invId", inventoryHandler.ShowEditVehicle)
	staff.POST("/update", inventoryHandler.UpdateVehicle)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
