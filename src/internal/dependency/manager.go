package dependency

import (
	"recipebox-svc/src/clients"
	"recipebox-svc/src/internal/admin"
	"recipebox-svc/src/internal/auth"
	"recipebox-svc/src/internal/cache"
	"recipebox-svc/src/internal/config"
	"recipebox-svc/src/internal/recipe"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/streadway/amqp"
)

type Manager struct {
	Router        *gin.Engine
	Config        *config.Configuration
	Mongodb       *clients.MongoDB
	Redis         *clients.RedisClient
	RabbitMQ      *clients.RabbitMQ
	AdminRepo     admin.Repository
	Reconciler    *admin.Reconciler
	AuthService   auth.Service
	AuthHandler   auth.Handler
	RecipeService recipe.Service
	RecipeHandler recipe.Handler
	CacheService  cache.Service
	Publisher     *clients.ActivityPublisher
}

func NewDependencyManager(router *gin.Engine,
	mongodb *clients.MongoDB,
	redisClient *clients.RedisClient,
	rabbitMQ *clients.RabbitMQ,
	cfg *config.Configuration) *Manager {

	var redisConn *redis.Client
	if redisClient != nil {
		redisConn = redisClient.Client
	}

	var channel *amqp.Channel
	if rabbitMQ != nil {
		channel = rabbitMQ.Channel
	}

	publisher := clients.NewActivityPublisher(cfg, channel)
	cacheService := cache.NewCacheService(redisConn, cfg)

	adminRepo := admin.NewAdminRepository(mongodb, cfg.Database.AdminCollection)
	reconciler := admin.NewReconciler(adminRepo, &cfg.Admin)

	authService := auth.NewAuthService(adminRepo, &cfg.Security)
	authHandler := auth.NewHandler(cfg, authService, publisher)

	recipeRepo := recipe.NewRecipeRepository(mongodb, cfg.Database.RecipeCollection)
	recipeService := recipe.NewRecipeService(recipeRepo, cacheService)
	recipeHandler := recipe.NewHandler(cfg, recipeService, publisher)

	return &Manager{
		Router:        router,
		Config:        cfg,
		Mongodb:       mongodb,
		Redis:         redisClient,
		RabbitMQ:      rabbitMQ,
		AdminRepo:     adminRepo,
		Reconciler:    reconciler,
		AuthService:   authService,
		AuthHandler:   authHandler,
		RecipeService: recipeService,
		RecipeHandler: recipeHandler,
		CacheService:  cacheService,
		Publisher:     publisher,
	}
}
