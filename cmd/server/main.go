package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentride/internal/config"
	"rentride/internal/handlers"
	"rentride/internal/middleware"
	"rentride/internal/repositories/mongodb"
	"rentride/internal/services"
	"rentride/pkg/auth"
	"rentride/pkg/cache"
	"rentride/pkg/database"
	"rentride/pkg/logger"
	"rentride/pkg/maps"
	"rentride/pkg/oauth"
	"rentride/pkg/storage"
	"rentride/pkg/websocket"
	"rentride/routes"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// MongoDB
	mongoDB, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Close()

	if err := database.NewMigrator(mongoDB.Database).Up(); err != nil {
		appLogger.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	cacheService := services.NewCacheService(redisCache, appLogger, "rentride", 15*time.Minute)

	storageProvider, err := buildStorageProvider(cfg.Storage)
	if err != nil {
		appLogger.Fatalf("Failed to initialize storage: %v", err)
	}

	// Optional external providers. Each one is skipped when not configured
	// and the services degrade accordingly.
	var googleProvider oauth.OAuthProvider
	if cfg.OAuth.Google.ClientID != "" {
		googleProvider = oauth.NewGoogleOAuthProvider(
			cfg.OAuth.Google.ClientID,
			cfg.OAuth.Google.ClientSecret,
			cfg.OAuth.Google.RedirectURL,
		)
	}

	var firebaseVerifier services.FirebaseVerifier
	if cfg.OAuth.Firebase.ProjectID != "" {
		verifier, err := auth.NewFirebaseVerifier(cfg.OAuth.Firebase.ProjectID, cfg.OAuth.Firebase.CredentialsFile)
		if err != nil {
			appLogger.Fatalf("Failed to initialize Firebase verifier: %v", err)
		}
		firebaseVerifier = verifier
	}

	var mapsProvider maps.MapsProvider
	if cfg.Maps.APIKey != "" {
		provider, err := maps.NewGoogleMapsProvider(cfg.Maps.APIKey)
		if err != nil {
			appLogger.Fatalf("Failed to initialize maps provider: %v", err)
		}
		mapsProvider = provider
	}

	// WebSocket hub
	wsHandler := websocket.NewHandler()

	// Repositories
	userRepo := mongodb.NewUserRepository(mongoDB.Database, cacheService)
	vehicleRepo := mongodb.NewVehicleRepository(mongoDB.Database, cacheService)
	bookingRepo := mongodb.NewBookingRepository(mongoDB.Database)
	chatRepo := mongodb.NewChatRepository(mongoDB.Database)
	callRepo := mongodb.NewCallRepository(mongoDB.Database)

	// Services
	authService := services.NewAuthService(userRepo, cacheService, googleProvider, firebaseVerifier, cfg.Security.JWTSecret, appLogger)
	vehicleService := services.NewVehicleService(vehicleRepo, userRepo, mapsProvider, appLogger)
	bookingService := services.NewBookingService(bookingRepo, vehicleRepo, userRepo, wsHandler, appLogger)
	chatService := services.NewChatService(chatRepo, userRepo, wsHandler, appLogger)
	callService := services.NewCallService(callRepo, userRepo, wsHandler, appLogger)

	// Presence follows the websocket connection lifecycle: online on first
	// connection, offline (plus call cleanup) when the last one drops.
	hub := wsHandler.GetHub()
	hub.OnConnect = func(userID primitive.ObjectID) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := chatService.SetPresence(ctx, userID, true); err != nil {
			appLogger.WithError(err).Warn("Failed to mark user online")
		}
	}
	hub.OnDisconnect = func(userID primitive.ObjectID) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := chatService.SetPresence(ctx, userID, false); err != nil {
			appLogger.WithError(err).Warn("Failed to mark user offline")
		}
		if err := callService.CleanupFor(ctx, userID); err != nil {
			appLogger.WithError(err).Warn("Failed to clean up calls")
		}
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	chatHandler := handlers.NewChatHandler(chatService)
	callHandler := handlers.NewCallHandler(callService)
	mediaHandler := handlers.NewMediaHandler(storageProvider)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))

	router.GET("/health", func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		if err := mongoDB.Ping(); err != nil {
			status["status"] = "degraded"
			status["mongodb"] = err.Error()
		}
		if err := redisCache.Ping(c.Request.Context()); err != nil {
			status["status"] = "degraded"
			status["redis"] = err.Error()
		}
		c.JSON(http.StatusOK, status)
	})

	authRequired := middleware.AuthRequired(cfg.Security.JWTSecret, authService)

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, authHandler, authRequired)
		routes.SetupVehicleRoutes(v1, vehicleHandler, authRequired)
		routes.SetupBookingRoutes(v1, bookingHandler, authRequired)
		routes.SetupChatRoutes(v1, chatHandler, authRequired)
		routes.SetupCallRoutes(v1, callHandler, authRequired)
		routes.SetupMediaRoutes(v1, mediaHandler, authRequired)
		routes.SetupWebSocketRoutes(v1, wsHandler, authRequired)
	}

	if cfg.Storage.Provider == "local" {
		router.Static("/uploads", cfg.Storage.Local.BasePath)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.Infof("Server listening on port %d", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Errorf("Forced shutdown: %v", err)
	}
}

func buildStorageProvider(cfg *config.StorageConfig) (storage.StorageProvider, error) {
	switch cfg.Provider {
	case "s3":
		return storage.NewAWSS3Storage(cfg.AWS.Region, cfg.AWS.Bucket, cfg.AWS.CDNDomain)
	case "gcs":
		return storage.NewGCPStorage(cfg.GCP.Bucket, cfg.GCP.CredentialsFile, cfg.GCP.CDNDomain)
	default:
		return storage.NewLocalStorage(cfg.Local.BasePath, cfg.Local.BaseURL)
	}
}
