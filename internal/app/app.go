package app

import (
	"context"
	"fmt"

	"github.com/ecopontos/ecopontos-api/internal/adapter/database"
	httpadapter "github.com/ecopontos/ecopontos-api/internal/adapter/http"
	"github.com/ecopontos/ecopontos-api/internal/app/account"
	"github.com/ecopontos/ecopontos-api/internal/app/auth"
	"github.com/ecopontos/ecopontos-api/internal/app/offer"
	"github.com/ecopontos/ecopontos-api/internal/infra/metrics"
	"github.com/ecopontos/ecopontos-api/internal/infra/middleware"
	"github.com/ecopontos/ecopontos-api/pkg/cache"
	"github.com/ecopontos/ecopontos-api/pkg/config"
	"github.com/ecopontos/ecopontos-api/pkg/ratelimit"
	"github.com/ecopontos/ecopontos-api/pkg/security"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// App agrega todas as dependências da aplicação
type App struct {
	Logger         *zap.Logger
	Config         *config.Config
	DB             *database.Database
	Cache          cache.Cache
	Middleware     *middleware.Middleware
	MetricsHandler *middleware.MetricsHandler
	APIMetrics     *metrics.APIMetrics

	authHandler   *httpadapter.AuthHandler
	userHandler   *httpadapter.UserHandler
	marketHandler *httpadapter.MarketHandler
	offerHandler  *httpadapter.OfferHandler
	healthChecker *httpadapter.HealthChecker
}

// NewApp cria uma nova instância da aplicação com todas as dependências injetadas
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	// Inicializar banco de dados
	dbConfig := database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        gormLogLevel(cfg.Database.LogLevel),
		SlowThreshold:   cfg.Database.SlowThreshold,
		MigrationDir:    cfg.Database.MigrationDir,
		SkipMigrations:  cfg.Database.SkipMigrations,
	}

	db, err := database.NewDatabase(ctx, dbConfig, logger)
	if err != nil {
		return nil, err
	}

	// Inicializar métricas
	apiMetrics := metrics.NewAPIMetrics()
	metricsHandler := middleware.NewMetricsHandler(apiMetrics, logger)

	// Inicializar cache conforme a configuração
	appCache, redisClient, err := newCache(cfg, apiMetrics, logger)
	if err != nil {
		return nil, err
	}

	// Inicializar repositórios
	userRepo := database.NewUserRepository(db.DB())
	marketRepo := database.NewMarketRepository(db.DB())
	offerRepo := database.NewOfferRepository(db.DB(), logger)
	redemptionRepo := database.NewRedemptionRepository(db.DB(), logger)

	// Inicializar gerenciador de chaves JWT
	keyManager, err := security.NewKeyManager(logger)
	if err != nil {
		return nil, err
	}

	// Inicializar serviços
	authService := auth.NewAuthService(keyManager, userRepo, marketRepo, cfg.Auth.TokenExpiration, logger)
	accountService := account.NewService(userRepo, marketRepo, logger)
	offerService := offer.NewService(offerRepo, redemptionRepo, appCache, apiMetrics, logger)

	// Rate limiting exige Redis; sem ele os limites viram no-ops
	var limiter *ratelimit.RedisLimiter
	if cfg.Features.RateLimiter && redisClient != nil {
		limiter = ratelimit.NewRedisLimiter(redisClient, logger)
	} else if cfg.Features.RateLimiter {
		logger.Warn("Rate limiting habilitado mas sem Redis configurado, limites desativados")
	}

	middlewares := middleware.NewMiddleware(logger, authService, apiMetrics, limiter, cfg.Tracing.ServiceName)

	return &App{
		Logger:         logger,
		Config:         cfg,
		DB:             db,
		Cache:          appCache,
		Middleware:     middlewares,
		MetricsHandler: metricsHandler,
		APIMetrics:     apiMetrics,

		authHandler:   httpadapter.NewAuthHandler(authService, logger),
		userHandler:   httpadapter.NewUserHandler(accountService, logger),
		marketHandler: httpadapter.NewMarketHandler(accountService, logger),
		offerHandler:  httpadapter.NewOfferHandler(offerService, logger),
		healthChecker: httpadapter.NewHealthChecker(db, appCache, logger),
	}, nil
}

// RegisterRoutes registra todas as rotas no router
func (a *App) RegisterRoutes(router *gin.Engine) {
	// Middleware global
	router.Use(a.Middleware.Recovery())
	router.Use(a.Middleware.Logger())
	router.Use(a.Middleware.SecurityHeaders())
	router.Use(a.Middleware.CORS())
	if a.Config.Metrics.Enabled {
		router.Use(a.Middleware.Metrics())
	}
	if a.Config.Tracing.Enabled {
		router.Use(a.Middleware.Tracing())
	}

	// Health checks
	if a.Config.Features.HealthCheck {
		router.GET("/health", a.healthChecker.LivenessCheck)
		router.GET("/health/liveness", a.healthChecker.LivenessCheck)
		router.GET("/health/readiness", a.healthChecker.ReadinessCheck)
		router.GET("/health/detailed", a.healthChecker.DetailedHealth)
	}

	// Métricas do Prometheus
	if a.Config.Metrics.Enabled {
		a.MetricsHandler.RegisterEndpoint(router)
	}

	// Autenticação: login de usuários e de mercados
	authGroup := router.Group("/auth")
	authGroup.Use(a.Middleware.LoginRateLimit())
	{
		authGroup.POST("/user", a.authHandler.LoginUser)
		authGroup.POST("/market", a.authHandler.LoginMarket)
	}

	// Cadastro público
	router.POST("/users", a.userHandler.Register)
	router.POST("/markets", a.marketHandler.Register)

	// Catálogo público
	router.GET("/markets", a.marketHandler.List)
	router.GET("/market/offers", a.offerHandler.ListActive)

	// Rotas autenticadas
	authenticated := router.Group("/")
	authenticated.Use(a.Middleware.Authenticate)
	{
		authenticated.GET("/profile/me", a.userHandler.Me)

		market := authenticated.Group("/market")
		{
			// Operações exclusivas de mercados
			market.POST("/offers", a.Middleware.RequireMarket, a.offerHandler.Create)
			market.GET("/my-offers", a.Middleware.RequireMarket, a.offerHandler.ListMine)
			market.PATCH("/my-offers/:id/active", a.Middleware.RequireMarket, a.offerHandler.SetActive)

			// Resgate exclusivo de usuários
			market.POST("/redeem", a.Middleware.RequireUser, a.offerHandler.Redeem)
		}
	}
}

// newCache constrói a implementação de cache configurada. Retorna também o
// cliente Redis quando houver, para reuso pelo rate limiter.
func newCache(cfg *config.Config, apiMetrics *metrics.APIMetrics, logger *zap.Logger) (cache.Cache, *redis.Client, error) {
	if !cfg.Cache.Enabled || !cfg.Features.Caching {
		logger.Info("Cache desabilitado na configuração")
		return cache.NewNoopCache(), nil, nil
	}

	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(
			cfg.Cache.Redis.Address,
			cfg.Cache.Redis.Password,
			cfg.Cache.Redis.DB,
			logger,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("erro ao conectar ao Redis: %w", err)
		}
		return redisCache, redisCache.Client(), nil
	case "memory":
		return cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL, apiMetrics, logger), nil, nil
	default:
		return nil, nil, fmt.Errorf("tipo de cache inválido: %s", cfg.Cache.Type)
	}
}

// gormLogLevel converte o nível de log configurado para o nível do GORM
func gormLogLevel(level string) database.LogLevel {
	switch level {
	case "silent":
		return database.LogLevelSilent
	case "error":
		return database.LogLevelError
	case "info":
		return database.LogLevelInfo
	default:
		return database.LogLevelWarn
	}
}
