package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/praja-edu/results-portal-api/api/swagger"
	"github.com/praja-edu/results-portal-api/internal/handler"
	"github.com/praja-edu/results-portal-api/internal/middleware"
	"github.com/praja-edu/results-portal-api/internal/models"
	"github.com/praja-edu/results-portal-api/internal/repository"
	"github.com/praja-edu/results-portal-api/internal/service"
	"github.com/praja-edu/results-portal-api/pkg/cache"
	"github.com/praja-edu/results-portal-api/pkg/config"
	"github.com/praja-edu/results-portal-api/pkg/database"
	"github.com/praja-edu/results-portal-api/pkg/export"
	"github.com/praja-edu/results-portal-api/pkg/logger"
	corsmiddleware "github.com/praja-edu/results-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/praja-edu/results-portal-api/pkg/middleware/requestid"
)

// @title School Results Portal API
// @version 1.0.0
// @description Multi-tenant results management for districts, mandals and schools
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	// Redis is optional: analytics caching degrades to direct queries without it.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, analytics cache disabled", "error", err)
		redisClient = nil
	}

	userRepo := repository.NewUserRepository(db)
	entityRepo := repository.NewEntityRepository(db)
	markRepo := repository.NewMarkRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	publicRepo := repository.NewPublicRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Analytics.CacheTTL, logr, cfg.Analytics.CacheEnabled && redisClient != nil)

	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, entityRepo, nil, logr)
	entitySvc := service.NewEntityService(entityRepo, nil, logr)
	markSvc := service.NewMarkService(markRepo, cacheSvc, metricsSvc, nil, logr)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo, userRepo, cacheSvc, metricsSvc, logr)
	publicSvc := service.NewPublicService(publicRepo, logr)
	cardSvc := service.NewCardService(publicRepo, export.NewCSVExporter(), export.NewPDFExporter(), cfg.Portal.PublicBaseURL, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	entityHandler := handler.NewEntityHandler(entitySvc)
	markHandler := handler.NewMarkHandler(markSvc)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc)
	publicHandler := handler.NewPublicHandler(publicSvc)
	cardHandler := handler.NewCardHandler(cardSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", authHandler.Login)
	api.GET("/public/student/:token", publicHandler.StudentResult)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))
	{
		authed.GET("/auth/me", authHandler.Me)

		admin := authed.Group("/admin", middleware.RequireRoles(models.RoleAdmin, models.RoleDEO, models.RoleMEO))
		{
			admin.POST("/create-user", userHandler.Create)
			admin.GET("/users", userHandler.List)
			admin.PUT("/users/:id", userHandler.Update)
			admin.DELETE("/users/:id", userHandler.Deactivate)
			admin.GET("/stats", analyticsHandler.AdminStats)
		}

		authed.GET("/entities/:type", middleware.Officials(), entityHandler.List)
		authed.POST("/districts", middleware.RequireRoles(models.RoleAdmin), entityHandler.CreateDistrict)
		authed.POST("/mandals", middleware.RequireRoles(models.RoleAdmin, models.RoleDEO), entityHandler.CreateMandal)
		authed.POST("/schools", middleware.RequireRoles(models.RoleAdmin, models.RoleDEO, models.RoleMEO), entityHandler.CreateSchool)
		authed.POST("/classes", middleware.RequireRoles(models.RoleAdmin), entityHandler.CreateClass)
		authed.POST("/subjects", middleware.RequireRoles(models.RoleAdmin), entityHandler.CreateSubject)
		authed.POST("/exams", middleware.RequireRoles(models.RoleAdmin), entityHandler.CreateExam)
		authed.POST("/students", middleware.Officials(), entityHandler.CreateStudent)

		authed.GET("/marks/fetch", middleware.Officials(), markHandler.Fetch)
		authed.POST("/marks/bulk-update", middleware.Officials(), markHandler.BulkUpdate)

		analytics := authed.Group("/analytics", middleware.Officials())
		{
			analytics.GET("/stats", analyticsHandler.Stats)
			analytics.GET("/entity-performance", analyticsHandler.EntityPerformance)
			analytics.GET("/drill-down", analyticsHandler.DrillDown)
			analytics.GET("/student-marks", analyticsHandler.StudentMarks)
		}

		cards := authed.Group("/schools/:schoolId/qr-data", middleware.Officials())
		{
			cards.GET("", cardHandler.QRData)
			cards.GET("/export.csv", cardHandler.ExportCSV)
			cards.GET("/export.pdf", cardHandler.ExportPDF)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
