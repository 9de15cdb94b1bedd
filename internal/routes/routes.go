package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"sla-mart/internal/controllers"
	"sla-mart/internal/metrics"
	"sla-mart/internal/repositories"
	"sla-mart/internal/services"
	"sla-mart/pkg/config"
	"sla-mart/pkg/middleware"
	"sla-mart/pkg/service"
)

// InitRouter собирает слои приложения и навешивает маршруты.
// Возвращает сервис пересчета: main использует его для встроенного
// тикера, если тот включен конфигурацией.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	m *metrics.Metrics,
	logger *zap.Logger,
	cfg *config.Config,
) services.RefreshServiceInterface {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	// --- 1. РЕПОЗИТОРИИ ---
	eventRepo := repositories.NewEventRepository(dbConn, logger)
	rosterRepo := repositories.NewRosterRepository(dbConn)
	calendarRepo := repositories.NewCalendarRepository(dbConn)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, logger)
	refreshRunRepo := repositories.NewRefreshRunRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- 2. СЕРВИСЫ ---
	authService := services.NewAuthService(jwtSvc, cfg.Auth, logger)
	refreshService := services.NewRefreshService(
		eventRepo, rosterRepo, calendarRepo, dashboardRepo, refreshRunRepo,
		cacheRepo, m, cfg.Mart, logger,
	)
	dashboardService := services.NewDashboardService(dashboardRepo, refreshRunRepo, cacheRepo, cfg.Mart, logger)

	// --- 3. КОНТРОЛЛЕРЫ ---
	authController := controllers.NewAuthController(authService, logger)
	dashboardController := controllers.NewDashboardController(dashboardService, logger)
	reportController := controllers.NewReportController(dashboardService, logger)
	refreshController := controllers.NewRefreshController(refreshService, logger)

	// --- 4. МАРШРУТЫ ---
	api.POST("/auth/login", authController.Login)

	secureGroup := api.Group("", authMW.Auth)
	secureGroup.GET("/dashboard", dashboardController.GetDashboard)
	secureGroup.GET("/dashboard/report", reportController.GetReport)
	secureGroup.POST("/refresh", refreshController.Refresh)

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	logger.Info("InitRouter: Маршруты созданы")
	return refreshService
}
