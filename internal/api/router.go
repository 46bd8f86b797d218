package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fieldops/dispatch-system/internal/api/handler"
	"github.com/fieldops/dispatch-system/internal/api/middleware"
	"github.com/fieldops/dispatch-system/internal/core/ports"
	"github.com/fieldops/dispatch-system/internal/core/service"
	"github.com/fieldops/dispatch-system/internal/infrastructure/config"
	mongodb "github.com/fieldops/dispatch-system/internal/infrastructure/db/mongo"
	redisdb "github.com/fieldops/dispatch-system/internal/infrastructure/db/redis"
	"github.com/fieldops/dispatch-system/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The notification dispatcher is constructed by the caller so its worker
// lifecycle can be tied to the process lifecycle.
func NewRouter(db *mongo.Database, rdb *goredis.Client, dispatcher ports.NotificationDispatcher, cfg *config.Config) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("dispatch"))

	// --- Repositories ---
	authRepo := mongodb.NewAuthRepository(db)
	technicianRepo := mongodb.NewTechnicianRepository(db)
	orderRepo := mongodb.NewWorkOrderRepository(db)
	lockoutStore := redisdb.NewLockoutStore(rdb)

	clock := ports.SystemClock{}

	// --- Services ---
	guard := service.NewLoginGuard(lockoutStore, clock, cfg.Lockout.MaxFailures, cfg.Lockout.Window)
	authService := service.NewAuthService(authRepo, guard, clock, cfg.JWTSecret, 24*time.Hour)
	technicianService := service.NewTechnicianService(technicianRepo, clock, log)
	orderService := service.NewWorkOrderService(orderRepo, technicianRepo, clock, cfg.Assignment.SaturationThreshold, log)
	assignmentService := service.NewAssignmentService(technicianRepo, orderRepo, dispatcher, clock, cfg.Assignment.SaturationThreshold, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	technicianHandler := handler.NewTechnicianHandler(technicianService)
	orderHandler := handler.NewWorkOrderHandler(orderService)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService)

	authMiddleware := middleware.Auth(cfg.JWTSecret)
	staffOnly := middleware.RBAC("supervisor", "admin")
	adminOnly := middleware.RBAC("admin")

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Technician registry ---
	technicians := e.Group("/v1/technicians", authMiddleware, staffOnly)
	technicians.GET("", technicianHandler.List)
	technicians.GET("/:id", technicianHandler.Get)
	technicians.POST("", technicianHandler.Create, adminOnly)

	// --- Work-order registry ---
	orders := e.Group("/v1/work-orders", authMiddleware, staffOnly)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("", orderHandler.Create)
	orders.PATCH("/:id/status", orderHandler.AdvanceStatus)

	// --- Assignment ---
	assignments := e.Group("/v1/assignments", authMiddleware, staffOnly)
	assignments.POST("/manual", assignmentHandler.AssignManual)
	assignments.POST("/automatic", assignmentHandler.AssignAutomatic)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
