package server

import (
	"time"

	"recipebox-svc/src/clients"
	"recipebox-svc/src/internal/dependency"
	"recipebox-svc/src/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func SetupRoutes(deps *dependency.Manager) {
	router := deps.Router
	router.Use(middleware.RequestID())
	router.Use(enableCORS)

	setupHealthEndpoints(deps)
	setupAuthRoutes(router, deps)
	setupRecipeRoutes(router, deps)
}

func setupHealthEndpoints(deps *dependency.Manager) {
	router := deps.Router
	mongodb := deps.Mongodb
	redisClient := deps.Redis
	cfg := deps.Config

	router.GET("/health", func(c *gin.Context) {
		log.Info("Health check endpoint requested")

		mongoStatus := "ok"
		if err := mongodb.Client.Ping(c.Request.Context(), nil); err != nil {
			mongoStatus = "error: " + err.Error()
		}

		redisStatus := "ok"
		if redisClient == nil {
			redisStatus = "disabled"
		} else if err := redisClient.Client.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "error: " + err.Error()
		}

		c.JSON(200, gin.H{
			"status":    "ok",
			"service":   cfg.App.Name,
			"version":   cfg.App.Version,
			"mongodb":   mongoStatus,
			"redis":     redisStatus,
			"timestamp": time.Now().UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	})

	router.GET("/health/detailed", func(c *gin.Context) {
		log.Info("Detailed health check endpoint requested")

		c.JSON(200, gin.H{
			"status":  "operational",
			"service": cfg.App.Name,
			"version": cfg.App.Version,
			"components": gin.H{
				"database": gin.H{
					"mongodb": getStatus(isMongoConnected(mongodb, c)),
					"redis":   getStatus(redisClient != nil && isRedisConnected(redisClient.Client, c)),
				},
				"services": gin.H{
					"auth":    "operational",
					"recipes": "operational",
					"cache":   "operational",
				},
			},
		})
	})
}

func setupAuthRoutes(router *gin.Engine, deps *dependency.Manager) {
	handler := deps.AuthHandler

	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/login",
			setRouteName("login"),
			handler.Login)

		authGroup.GET("/verify",
			setRouteName("verifyToken"),
			handler.Verify)
	}
}

func setupRecipeRoutes(router *gin.Engine, deps *dependency.Manager) {
	authMiddleware := middleware.NewAuthMiddleware(deps.AuthService)
	handler := deps.RecipeHandler

	recipes := router.Group("/api/recipes")
	{
		// Public read endpoints
		recipes.GET("",
			setRouteName("listRecipes"),
			handler.GetAll)

		recipes.GET("/:id",
			setRouteName("getRecipe"),
			handler.GetOne)

		// Mutations require a valid bearer token
		recipes.POST("",
			setRouteName("createRecipe"),
			authMiddleware.RequireAuth(),
			handler.Create)

		recipes.PUT("/:id",
			setRouteName("updateRecipe"),
			authMiddleware.RequireAuth(),
			handler.Update)

		recipes.DELETE("/:id",
			setRouteName("deleteRecipe"),
			authMiddleware.RequireAuth(),
			handler.Delete)
	}
}

func setRouteName(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("route_name", name)
		c.Next()
	}
}

func isMongoConnected(mongodb *clients.MongoDB, c *gin.Context) bool {
	if err := mongodb.Client.Ping(c.Request.Context(), nil); err != nil {
		return false
	}
	return true
}

func isRedisConnected(redisClient *redis.Client, c *gin.Context) bool {
	if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
		return false
	}
	return true
}

func enableCORS(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if c.Request.Method == "OPTIONS" {
		c.AbortWithStatus(204)
		return
	}

	c.Next()
}

func getStatus(b bool) string {
	if b {
		return "connected"
	}
	return "disconnected"
}
