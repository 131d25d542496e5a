package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pitadomingos/procuretrack-sub002/internal/config"
	"github.com/pitadomingos/procuretrack-sub002/internal/middleware"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/entity"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/handler"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/repository"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting procuretrack service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Site{},
		&entity.Supplier{},
		&entity.PurchaseOrder{},
		&entity.POItem{},
		&entity.ClientQuote{},
		&entity.Requisition{},
		&entity.ActivityLog{},
	); err != nil {
		zapLogger.Warn("AutoMigrate warning", zap.Error(err))
	}

	rdb := initRedis(cfg.Redis)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		zapLogger.Warn("Redis unavailable, dashboard caching disabled", zap.Error(err))
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, db, rdb)
	handlers := handler.NewHandlers(services, repos.ActivityLog)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		pos := v1.Group("/purchase-orders")
		{
			pos.GET("", h.PO.ListPOs)
			pos.GET("/export", h.PO.ExportPOs)
			pos.GET("/:id", h.PO.GetPO)
			pos.GET("/:id/items", h.PO.ListItems)
			pos.POST("", h.PO.CreatePO)
			pos.PUT("/:id", h.PO.ReplacePO)
			pos.DELETE("/:id", h.PO.DeletePO)

			pos.POST("/:id/submit", h.PO.SubmitPO)
			pos.POST("/:id/approve", middleware.RequireRole("approver"), h.PO.ApprovePO)
			pos.POST("/:id/reject", middleware.RequireRole("approver"), h.PO.RejectPO)
		}

		v1.POST("/grn", h.GRN.ProcessGRN)

		quotes := v1.Group("/quotes")
		{
			quotes.GET("", h.Quote.ListQuotes)
			quotes.GET("/:id", h.Quote.GetQuote)
			quotes.POST("", h.Quote.CreateQuote)
			quotes.PUT("/:id", h.Quote.UpdateQuote)

			quotes.POST("/:id/submit", h.Quote.SubmitQuote)
			quotes.POST("/:id/approve", middleware.RequireRole("approver"), h.Quote.ApproveQuote)
			quotes.POST("/:id/reject", middleware.RequireRole("approver"), h.Quote.RejectQuote)
		}

		requisitions := v1.Group("/requisitions")
		{
			requisitions.GET("", h.Requisition.ListRequisitions)
			requisitions.GET("/:id", h.Requisition.GetRequisition)
			requisitions.POST("", h.Requisition.CreateRequisition)
			requisitions.PUT("/:id", h.Requisition.UpdateRequisition)

			requisitions.POST("/:id/submit", h.Requisition.SubmitRequisition)
			requisitions.POST("/:id/approve", middleware.RequireRole("approver"), h.Requisition.ApproveRequisition)
			requisitions.POST("/:id/reject", middleware.RequireRole("approver"), h.Requisition.RejectRequisition)
		}

		suppliers := v1.Group("/suppliers")
		{
			suppliers.GET("", h.Supplier.ListSuppliers)
			suppliers.GET("/:id", h.Supplier.GetSupplier)
			suppliers.POST("", h.Supplier.CreateSupplier)
			suppliers.PUT("/:id", h.Supplier.UpdateSupplier)
			suppliers.DELETE("/:id", h.Supplier.DeleteSupplier)
		}

		sites := v1.Group("/sites")
		{
			sites.GET("", h.Site.ListSites)
			sites.GET("/:id", h.Site.GetSite)
			sites.POST("", h.Site.CreateSite)
			sites.PUT("/:id", h.Site.UpdateSite)
			sites.DELETE("/:id", h.Site.DeleteSite)
		}

		users := v1.Group("/users")
		{
			users.GET("", h.User.ListUsers)
			users.GET("/:id", h.User.GetUser)
			users.POST("", h.User.CreateUser)
			users.PUT("/:id", h.User.UpdateUser)
			users.DELETE("/:id", h.User.DeleteUser)
		}

		v1.GET("/dashboard/stats", h.Dashboard.GetStats)
		v1.GET("/charts/monthly-spend", h.Dashboard.GetMonthlySpend)
		v1.GET("/charts/po-status", h.Dashboard.GetPOStatusCounts)
		v1.GET("/charts/site-spend", h.Dashboard.GetSiteSpend)
		v1.GET("/activity-log", h.Dashboard.ListActivity)
	}
}
